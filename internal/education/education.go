package education

import (
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"portfolio/internal/models"
)

// Education is a degree or course of study
type Education struct {
	models.Base
	Institution string     `gorm:"not null;size:255" json:"institution"`
	Degree      string     `gorm:"not null;size:255" json:"degree"`
	Field       string     `gorm:"size:255" json:"field"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	GPA         string     `gorm:"column:gpa;size:20" json:"gpa"`
	Description string     `json:"description"`
	Location    string     `gorm:"size:255" json:"location"`
	Website     string     `gorm:"size:2048" json:"website"`
	Order       int        `gorm:"column:sort_order;not null;default:0" json:"order"`
}

// TableName specifies the table name for GORM
func (Education) TableName() string {
	return "education"
}

// Input is the create/update payload for an education entry.
type Input struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	GPA         string `json:"gpa"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	Order       int    `json:"order"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Institution) == "" || strings.TrimSpace(in.Degree) == "" {
		return models.NewValidationError("Institution and degree are required")
	}
	return nil
}

func (in Input) apply(e *Education) {
	e.Institution = strings.TrimSpace(in.Institution)
	e.Degree = strings.TrimSpace(in.Degree)
	e.Field = strings.TrimSpace(in.Field)
	e.StartDate = models.ParseOptionalDate(in.StartDate)
	e.EndDate = models.ParseOptionalDate(in.EndDate)
	e.GPA = strings.TrimSpace(in.GPA)
	e.Description = in.Description
	e.Location = strings.TrimSpace(in.Location)
	e.Website = strings.TrimSpace(in.Website)
	e.Order = in.Order
}

// List returns every entry by display order, most recent first within an order.
func List(db *gorm.DB) ([]Education, error) {
	var entries []Education
	err := db.Order("sort_order ASC").
		Order("start_date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Find retrieves an education entry by ID
func Find(db *gorm.DB, id string) (*Education, error) {
	var entry Education
	if err := db.Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create validates the input and stores a new entry
func Create(db *gorm.DB, in Input) (*Education, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	entry := &Education{}
	in.apply(entry)

	err := models.PerformWrite(slog.Default(), db, func(tx *gorm.DB) error {
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Update replaces every editable field of an existing entry
func Update(db *gorm.DB, id string, in Input) (*Education, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	entry, err := Find(db, id)
	if err != nil {
		return nil, err
	}
	in.apply(entry)

	err = models.PerformWrite(slog.Default(), db, func(tx *gorm.DB) error {
		return tx.Save(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes an education entry by ID
func Delete(db *gorm.DB, id string) error {
	return models.DeleteByID(db, &Education{}, id)
}

// Count returns the number of education entries
func Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Education{}).Count(&count).Error
	return count, err
}
