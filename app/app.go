// Package app is the public entry point for embedding the portfolio server.
package app

import (
	"portfolio/internal"
	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/seeder"
)

// Re-export core types
type (
	Application = internal.Application
	ServerDeps  = internal.ServerDeps
	Config      = config.Config
	DBManager   = database.DBManager
	SeedData    = seeder.Data
	SeedReport  = seeder.Report
)

// GetConfig returns the application configuration
func GetConfig() *Config {
	return config.GetConfig()
}

// NewApp creates a new application from the environment configuration
func NewApp() (*Application, error) {
	return internal.NewApp()
}

// NewAppWithConfig creates a new application with the provided config
func NewAppWithConfig(cfg *Config) (*Application, error) {
	return internal.NewAppWithConfig(cfg)
}

// Seed ensures the admin user and fills empty content tables with the
// built-in sample data.
func Seed(a *Application, adminEmail, adminPassword string) (*SeedReport, error) {
	return seeder.NewSeeder(a.DBManager, a.Logger).Run(adminEmail, adminPassword, nil)
}
