package skills

import (
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"portfolio/internal/models"
)

// Skill levels are a 1-5 proficiency scale.
const (
	MinLevel = 1
	MaxLevel = 5
)

// Categories returns the vocabulary offered by the admin screens. The store
// accepts any non-empty category.
func Categories() []string {
	return []string{"frontend", "backend", "database", "tools", "languages", "frameworks", "other"}
}

// Skill is a single technology or competency
type Skill struct {
	models.Base
	Name     string `gorm:"not null;size:255" json:"name"`
	Category string `gorm:"not null;size:50;index" json:"category"`
	Level    int    `gorm:"not null;default:1" json:"level"`
	Icon     string `gorm:"size:50" json:"icon"`
	Color    string `gorm:"size:20" json:"color"`
	Order    int    `gorm:"column:sort_order;not null;default:0" json:"order"`
}

// TableName specifies the table name for GORM
func (Skill) TableName() string {
	return "skills"
}

// Input is the create/update payload for a skill.
type Input struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    int    `json:"level"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	Order    int    `json:"order"`
}

func (in *Input) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" {
		return models.NewValidationError("Name and category are required")
	}
	if in.Level == 0 {
		in.Level = MinLevel
	}
	if in.Level < MinLevel || in.Level > MaxLevel {
		return models.NewValidationError(fmt.Sprintf("Level must be between %d and %d", MinLevel, MaxLevel))
	}
	return nil
}

func (in Input) apply(s *Skill) {
	s.Name = strings.TrimSpace(in.Name)
	s.Category = strings.ToLower(strings.TrimSpace(in.Category))
	s.Level = in.Level
	s.Icon = strings.TrimSpace(in.Icon)
	s.Color = strings.TrimSpace(in.Color)
	s.Order = in.Order
}

// List returns every skill by display order, category and name.
func List(db *gorm.DB) ([]Skill, error) {
	var skills []Skill
	err := db.Order("sort_order ASC").
		Order("category ASC").
		Order("name ASC").
		Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

// Find retrieves a skill by ID
func Find(db *gorm.DB, id string) (*Skill, error) {
	var skill Skill
	if err := db.Where("id = ?", id).First(&skill).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

// Create validates the input and stores a new skill
func Create(db *gorm.DB, in Input) (*Skill, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	skill := &Skill{}
	in.apply(skill)

	err := models.PerformWrite(slog.Default(), db, func(tx *gorm.DB) error {
		return tx.Create(skill).Error
	})
	if err != nil {
		return nil, err
	}
	return skill, nil
}

// Update replaces every editable field of an existing skill
func Update(db *gorm.DB, id string, in Input) (*Skill, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	skill, err := Find(db, id)
	if err != nil {
		return nil, err
	}
	in.apply(skill)

	err = models.PerformWrite(slog.Default(), db, func(tx *gorm.DB) error {
		return tx.Save(skill).Error
	})
	if err != nil {
		return nil, err
	}
	return skill, nil
}

// Delete removes a skill by ID
func Delete(db *gorm.DB, id string) error {
	return models.DeleteByID(db, &Skill{}, id)
}

// Count returns the number of skills
func Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Skill{}).Count(&count).Error
	return count, err
}
