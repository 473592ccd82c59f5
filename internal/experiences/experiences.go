package experiences

import (
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"portfolio/internal/models"
)

// Experience is a position held at a company
type Experience struct {
	models.Base
	Company      string            `gorm:"not null;size:255" json:"company"`
	Position     string            `gorm:"not null;size:255" json:"position"`
	Description  string            `json:"description"`
	StartDate    time.Time         `gorm:"not null" json:"startDate"`
	EndDate      *time.Time        `json:"endDate"`
	Current      bool              `gorm:"column:is_current;not null;default:false" json:"current"`
	Location     string            `gorm:"size:255" json:"location"`
	Website      string            `gorm:"size:2048" json:"website"`
	Technologies models.StringList `gorm:"not null" json:"technologies"`
	Order        int               `gorm:"column:sort_order;not null;default:0" json:"order"`
}

// TableName specifies the table name for GORM
func (Experience) TableName() string {
	return "experiences"
}

// AfterFind loads a NULL technologies column as an empty list.
func (e *Experience) AfterFind(tx *gorm.DB) error {
	models.EnsureLists(&e.Technologies)
	return nil
}

// Input is the create/update payload for an experience.
type Input struct {
	Company      string            `json:"company"`
	Position     string            `json:"position"`
	Description  string            `json:"description"`
	StartDate    string            `json:"startDate"`
	EndDate      string            `json:"endDate"`
	Current      bool              `json:"current"`
	Location     string            `json:"location"`
	Website      string            `json:"website"`
	Technologies models.StringList `json:"technologies"`
	Order        int               `json:"order"`
}

func (in Input) validate() (time.Time, error) {
	if strings.TrimSpace(in.Company) == "" || strings.TrimSpace(in.Position) == "" {
		return time.Time{}, models.NewValidationError("Company and position are required")
	}
	start, ok := models.ParseDate(in.StartDate)
	if !ok {
		return time.Time{}, models.NewValidationError("A valid start date is required")
	}
	return start, nil
}

func (in Input) apply(e *Experience, start time.Time) {
	e.Company = strings.TrimSpace(in.Company)
	e.Position = strings.TrimSpace(in.Position)
	e.Description = in.Description
	e.StartDate = start
	e.Current = in.Current
	e.EndDate = nil
	if !in.Current {
		e.EndDate = models.ParseOptionalDate(in.EndDate)
	}
	e.Location = strings.TrimSpace(in.Location)
	e.Website = strings.TrimSpace(in.Website)
	e.Technologies = in.Technologies
	if e.Technologies == nil {
		e.Technologies = models.StringList{}
	}
	e.Order = in.Order
}

// List returns current positions first, then the most recent.
func List(db *gorm.DB) ([]Experience, error) {
	var experiences []Experience
	err := db.Order("is_current DESC").
		Order("start_date DESC").
		Find(&experiences).Error
	if err != nil {
		return nil, err
	}
	return experiences, nil
}

// Find retrieves an experience by ID
func Find(db *gorm.DB, id string) (*Experience, error) {
	var experience Experience
	if err := db.Where("id = ?", id).First(&experience).Error; err != nil {
		return nil, err
	}
	return &experience, nil
}

// Create validates the input and stores a new experience
func Create(db *gorm.DB, in Input) (*Experience, error) {
	start, err := in.validate()
	if err != nil {
		return nil, err
	}

	experience := &Experience{}
	in.apply(experience, start)

	err = models.PerformWrite(slog.Default(), db, func(tx *gorm.DB) error {
		return tx.Create(experience).Error
	})
	if err != nil {
		return nil, err
	}
	return experience, nil
}

// Update replaces every editable field of an existing experience
func Update(db *gorm.DB, id string, in Input) (*Experience, error) {
	start, err := in.validate()
	if err != nil {
		return nil, err
	}

	experience, err := Find(db, id)
	if err != nil {
		return nil, err
	}
	in.apply(experience, start)

	err = models.PerformWrite(slog.Default(), db, func(tx *gorm.DB) error {
		return tx.Save(experience).Error
	})
	if err != nil {
		return nil, err
	}
	return experience, nil
}

// Delete removes an experience by ID
func Delete(db *gorm.DB, id string) error {
	return models.DeleteByID(db, &Experience{}, id)
}

// Count returns the number of experiences
func Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Experience{}).Count(&count).Error
	return count, err
}
