// Package seeder fills an empty database with the admin account and sample
// portfolio content.
package seeder

import (
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"portfolio/internal/education"
	"portfolio/internal/experiences"
	"portfolio/internal/profiles"
	"portfolio/internal/projects"
	"portfolio/internal/skills"
	"portfolio/internal/users"
)

//go:embed seed.yml
var defaultSeed []byte

// Data is the content written by the seeder.
type Data struct {
	Profile     profiles.Input      `yaml:"profile"`
	Projects    []projects.Input    `yaml:"projects"`
	Skills      []skills.Input      `yaml:"skills"`
	Experiences []experiences.Input `yaml:"experiences"`
	Education   []education.Input   `yaml:"education"`
}

// DefaultData returns the embedded sample content.
func DefaultData() (*Data, error) {
	return ParseData(defaultSeed)
}

// ParseData decodes seed content from YAML.
func ParseData(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &data, nil
}

// DBManager supplies the database connection.
type DBManager interface {
	GetConnection() *gorm.DB
}

// Report counts the rows the seeder created.
type Report struct {
	ProfileCreated bool
	Projects       int
	Skills         int
	Experiences    int
	Education      int
}

// Seeder writes seed data. It never overwrites existing content.
type Seeder struct {
	DBManager DBManager
	Logger    *slog.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(dbManager DBManager, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{DBManager: dbManager, Logger: logger}
}

// Run ensures the admin user exists and seeds each content collection that
// is still empty. The profile is only created when none exists. A nil data
// uses the built-in sample.
func (s *Seeder) Run(adminEmail, adminPassword string, data *Data) (*Report, error) {
	if data == nil {
		var err error
		if data, err = DefaultData(); err != nil {
			return nil, err
		}
	}

	db := s.DBManager.GetConnection()
	report := &Report{}

	if adminPassword != "" {
		if err := users.EnsureAdminUser(db, adminEmail, adminPassword); err != nil {
			return nil, fmt.Errorf("failed to ensure admin user: %w", err)
		}
	} else {
		s.Logger.Warn("No admin password configured, skipping admin user")
	}

	created, err := profiles.CreateIfMissing(db, data.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to seed profile: %w", err)
	}
	report.ProfileCreated = created

	if report.Projects, err = seedIfEmpty(db, projects.Count, data.Projects, projects.Create); err != nil {
		return nil, fmt.Errorf("failed to seed projects: %w", err)
	}
	if report.Skills, err = seedIfEmpty(db, skills.Count, data.Skills, skills.Create); err != nil {
		return nil, fmt.Errorf("failed to seed skills: %w", err)
	}
	if report.Experiences, err = seedIfEmpty(db, experiences.Count, data.Experiences, experiences.Create); err != nil {
		return nil, fmt.Errorf("failed to seed experiences: %w", err)
	}
	if report.Education, err = seedIfEmpty(db, education.Count, data.Education, education.Create); err != nil {
		return nil, fmt.Errorf("failed to seed education: %w", err)
	}

	s.Logger.Info("Seeding completed",
		slog.Bool("profile_created", report.ProfileCreated),
		slog.Int("projects", report.Projects),
		slog.Int("skills", report.Skills),
		slog.Int("experiences", report.Experiences),
		slog.Int("education", report.Education))
	return report, nil
}

func seedIfEmpty[In any, T any](db *gorm.DB, count func(*gorm.DB) (int64, error), rows []In, create func(*gorm.DB, In) (*T, error)) (int, error) {
	existing, err := count(db)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}

	for _, row := range rows {
		if _, err := create(db, row); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}
