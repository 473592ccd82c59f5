package projects

import (
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"portfolio/internal/models"
)

// Status represents the lifecycle stage of a project
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in-progress"
	StatusPlanned    Status = "planned"
)

// ValidStatuses returns all valid project statuses
func ValidStatuses() []Status {
	return []Status{StatusCompleted, StatusInProgress, StatusPlanned}
}

// IsValidStatus checks if the given status is valid
func IsValidStatus(s Status) bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Project is a portfolio work item
type Project struct {
	models.Base
	Title        string            `gorm:"not null;size:255" json:"title"`
	Description  string            `gorm:"not null" json:"description"`
	Content      string            `gorm:"not null;default:''" json:"content"`
	Image        string            `gorm:"size:2048" json:"image"`
	Images       models.StringList `gorm:"not null" json:"images"`
	Technologies models.StringList `gorm:"not null" json:"technologies"`
	LiveURL      string            `gorm:"column:live_url;size:2048" json:"liveUrl"`
	GithubURL    string            `gorm:"column:github_url;size:2048" json:"githubUrl"`
	Featured     bool              `gorm:"not null;default:false" json:"featured"`
	Status       Status            `gorm:"size:20;not null;default:'completed'" json:"status"`
	StartDate    *time.Time        `json:"startDate"`
	EndDate      *time.Time        `json:"endDate"`
	Order        int               `gorm:"column:sort_order;not null;default:0" json:"order"`
}

// TableName specifies the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// AfterFind loads NULL list columns as empty lists.
func (p *Project) AfterFind(tx *gorm.DB) error {
	models.EnsureLists(&p.Images, &p.Technologies)
	return nil
}

// Input is the create/update payload for a project.
type Input struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Content      string            `json:"content"`
	Image        string            `json:"image"`
	Images       models.StringList `json:"images"`
	Technologies models.StringList `json:"technologies"`
	LiveURL      string            `json:"liveUrl"`
	GithubURL    string            `json:"githubUrl"`
	Featured     bool              `json:"featured"`
	Status       Status            `json:"status"`
	StartDate    string            `json:"startDate"`
	EndDate      string            `json:"endDate"`
	Order        int               `json:"order"`
}

func (in *Input) validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return models.NewValidationError("Title and description are required")
	}
	if in.Status == "" {
		in.Status = StatusCompleted
	}
	if !IsValidStatus(in.Status) {
		return models.NewValidationError("Status must be one of completed, in-progress, planned")
	}
	return nil
}

func (in Input) apply(p *Project) {
	p.Title = strings.TrimSpace(in.Title)
	p.Description = strings.TrimSpace(in.Description)
	p.Content = in.Content
	p.Image = strings.TrimSpace(in.Image)
	p.Images = in.Images
	if p.Images == nil {
		p.Images = models.StringList{}
	}
	p.Technologies = in.Technologies
	if p.Technologies == nil {
		p.Technologies = models.StringList{}
	}
	p.LiveURL = strings.TrimSpace(in.LiveURL)
	p.GithubURL = strings.TrimSpace(in.GithubURL)
	p.Featured = in.Featured
	p.Status = in.Status
	p.StartDate = models.ParseOptionalDate(in.StartDate)
	p.EndDate = models.ParseOptionalDate(in.EndDate)
	p.Order = in.Order
}

// List returns every project, featured first, then by display order, newest first.
func List(db *gorm.DB) ([]Project, error) {
	var projects []Project
	err := db.Order("featured DESC").
		Order("sort_order ASC").
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Find retrieves a project by ID
func Find(db *gorm.DB, id string) (*Project, error) {
	var project Project
	if err := db.Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Create validates the input and stores a new project
func Create(db *gorm.DB, in Input) (*Project, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	project := &Project{}
	in.apply(project)

	err := models.PerformWrite(slog.Default(), db, func(tx *gorm.DB) error {
		return tx.Create(project).Error
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Update replaces every editable field of an existing project
func Update(db *gorm.DB, id string, in Input) (*Project, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	project, err := Find(db, id)
	if err != nil {
		return nil, err
	}
	in.apply(project)

	err = models.PerformWrite(slog.Default(), db, func(tx *gorm.DB) error {
		return tx.Save(project).Error
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project by ID
func Delete(db *gorm.DB, id string) error {
	return models.DeleteByID(db, &Project{}, id)
}

// Count returns the number of projects
func Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Project{}).Count(&count).Error
	return count, err
}
