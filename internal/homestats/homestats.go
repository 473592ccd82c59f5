package homestats

import (
	"log/slog"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio/internal/models"
)

// HomeStatsID is the fixed primary key of the single stats row.
const HomeStatsID = "home-stats"

// Default values written the first time the stats are read.
const (
	DefaultYearsExperience    = "3+"
	DefaultProjectsDone       = "50+"
	DefaultClientSatisfaction = "100%"
	DefaultHeroTitle          = "Full Stack Developer"
	DefaultHeroBio            = "I create beautiful, functional, and user-friendly websites and applications with cutting-edge technologies. Welcome to my digital portfolio where innovation meets creativity."
)

// HomeStats holds the hero headline figures shown on the home page
type HomeStats struct {
	models.Base
	YearsExperience    string `gorm:"not null;size:50" json:"yearsExperience"`
	ProjectsDone       string `gorm:"not null;size:50" json:"projectsDone"`
	ClientSatisfaction string `gorm:"not null;size:50" json:"clientSatisfaction"`
	HeroTitle          string `gorm:"not null;size:255" json:"heroTitle"`
	HeroBio            string `gorm:"not null" json:"heroBio"`
}

// TableName specifies the table name for GORM
func (HomeStats) TableName() string {
	return "home_stats"
}

// Input is the stats replace payload. Every field is required.
type Input struct {
	YearsExperience    string `json:"yearsExperience"`
	ProjectsDone       string `json:"projectsDone"`
	ClientSatisfaction string `json:"clientSatisfaction"`
	HeroTitle          string `json:"heroTitle"`
	HeroBio            string `json:"heroBio"`
}

// Defaults returns the stats used before anything has been saved.
func Defaults() HomeStats {
	return HomeStats{
		Base:               models.Base{ID: HomeStatsID},
		YearsExperience:    DefaultYearsExperience,
		ProjectsDone:       DefaultProjectsDone,
		ClientSatisfaction: DefaultClientSatisfaction,
		HeroTitle:          DefaultHeroTitle,
		HeroBio:            DefaultHeroBio,
	}
}

// Get returns the stats row, inserting the defaults first when it does not exist.
func Get(db *gorm.DB) (*HomeStats, error) {
	defaults := Defaults()
	err := models.PerformWrite(slog.Default(), db, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&defaults).Error
	})
	if err != nil {
		return nil, err
	}

	var stats HomeStats
	if err := db.Where("id = ?", HomeStatsID).First(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// Upsert replaces the stats in a single statement.
func Upsert(db *gorm.DB, in Input) (*HomeStats, error) {
	fields := []string{in.YearsExperience, in.ProjectsDone, in.ClientSatisfaction, in.HeroTitle, in.HeroBio}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return nil, models.NewValidationError("All fields are required")
		}
	}

	stats := &HomeStats{
		Base:               models.Base{ID: HomeStatsID},
		YearsExperience:    strings.TrimSpace(in.YearsExperience),
		ProjectsDone:       strings.TrimSpace(in.ProjectsDone),
		ClientSatisfaction: strings.TrimSpace(in.ClientSatisfaction),
		HeroTitle:          strings.TrimSpace(in.HeroTitle),
		HeroBio:            strings.TrimSpace(in.HeroBio),
	}

	err := models.PerformWrite(slog.Default(), db, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"years_experience", "projects_done", "client_satisfaction", "hero_title", "hero_bio", "updated_at",
			}),
		}).Create(stats).Error
	})
	if err != nil {
		return nil, err
	}

	var saved HomeStats
	if err := db.Where("id = ?", HomeStatsID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}
