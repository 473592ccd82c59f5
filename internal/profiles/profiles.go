package profiles

import (
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio/internal/models"
)

// ProfileID is the fixed primary key of the single profile row.
const ProfileID = "profile"

// Profile is the site owner's public identity
type Profile struct {
	models.Base
	Name      string `gorm:"not null;size:255" json:"name"`
	Title     string `gorm:"size:255" json:"title"`
	Bio       string `json:"bio"`
	Email     string `gorm:"size:255" json:"email"`
	Phone     string `gorm:"size:50" json:"phone"`
	Location  string `gorm:"size:255" json:"location"`
	Website   string `gorm:"size:2048" json:"website"`
	Avatar    string `gorm:"size:2048" json:"avatar"`
	Resume    string `gorm:"size:2048" json:"resume"`
	Github    string `gorm:"size:2048" json:"github"`
	Linkedin  string `gorm:"size:2048" json:"linkedin"`
	Twitter   string `gorm:"size:2048" json:"twitter"`
	Instagram string `gorm:"size:2048" json:"instagram"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// Input is the profile upsert payload.
type Input struct {
	Name      string `json:"name" yaml:"name"`
	Title     string `json:"title" yaml:"title"`
	Bio       string `json:"bio" yaml:"bio"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	Location  string `json:"location" yaml:"location"`
	Website   string `json:"website" yaml:"website"`
	Avatar    string `json:"avatar" yaml:"avatar"`
	Resume    string `json:"resume" yaml:"resume"`
	Github    string `json:"github" yaml:"github"`
	Linkedin  string `json:"linkedin" yaml:"linkedin"`
	Twitter   string `json:"twitter" yaml:"twitter"`
	Instagram string `json:"instagram" yaml:"instagram"`
}

var updatableColumns = []string{
	"name", "title", "bio", "email", "phone", "location", "website",
	"avatar", "resume", "github", "linkedin", "twitter", "instagram", "updated_at",
}

func (in Input) apply(p *Profile) {
	p.Name = strings.TrimSpace(in.Name)
	p.Title = strings.TrimSpace(in.Title)
	p.Bio = in.Bio
	p.Email = strings.TrimSpace(in.Email)
	p.Phone = strings.TrimSpace(in.Phone)
	p.Location = strings.TrimSpace(in.Location)
	p.Website = strings.TrimSpace(in.Website)
	p.Avatar = strings.TrimSpace(in.Avatar)
	p.Resume = strings.TrimSpace(in.Resume)
	p.Github = strings.TrimSpace(in.Github)
	p.Linkedin = strings.TrimSpace(in.Linkedin)
	p.Twitter = strings.TrimSpace(in.Twitter)
	p.Instagram = strings.TrimSpace(in.Instagram)
}

// Get returns the profile, or nil when none has been saved yet.
func Get(db *gorm.DB) (*Profile, error) {
	var profile Profile
	err := db.Where("id = ?", ProfileID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates or replaces the profile in a single statement.
func Upsert(db *gorm.DB, in Input) (*Profile, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}

	profile := &Profile{Base: models.Base{ID: ProfileID}}
	in.apply(profile)

	err := models.PerformWrite(slog.Default(), db, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(updatableColumns),
		}).Create(profile).Error
	})
	if err != nil {
		return nil, err
	}

	return Get(db)
}

// CreateIfMissing stores in as the profile unless one already exists.
// It reports whether a row was created.
func CreateIfMissing(db *gorm.DB, in Input) (bool, error) {
	if strings.TrimSpace(in.Name) == "" {
		return false, models.NewValidationError("Name is required")
	}

	profile := &Profile{Base: models.Base{ID: ProfileID}}
	in.apply(profile)

	var created bool
	err := models.PerformWrite(slog.Default(), db, func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(profile)
		created = result.RowsAffected > 0
		return result.Error
	})
	if err != nil {
		return false, err
	}
	return created, nil
}
