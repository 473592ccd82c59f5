package jobs

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"portfolio/internal/contacts"
)

// DBManager supplies the database connection for jobs.
type DBManager interface {
	GetConnection() *gorm.DB
}

// ContactRetentionJob deletes read contact messages past the retention period.
type ContactRetentionJob struct {
	dbManager     DBManager
	logger        *slog.Logger
	retentionDays int
}

// NewContactRetentionJob creates the job. retentionDays <= 0 disables it.
func NewContactRetentionJob(dbManager DBManager, logger *slog.Logger, retentionDays int) *ContactRetentionJob {
	return &ContactRetentionJob{
		dbManager:     dbManager,
		logger:        logger,
		retentionDays: retentionDays,
	}
}

func (j *ContactRetentionJob) Name() string { return "contact_retention" }

func (j *ContactRetentionJob) Interval() time.Duration { return 24 * time.Hour }

// Run removes read messages older than the retention period. Unread messages
// are always kept.
func (j *ContactRetentionJob) Run() error {
	if j.retentionDays <= 0 {
		j.logger.Debug("Contact retention disabled")
		return nil
	}

	cutoffDate := time.Now().AddDate(0, 0, -j.retentionDays)
	j.logger.Info("Starting cleanup of old contact messages",
		slog.Int("retention_days", j.retentionDays),
		slog.Time("cutoff_date", cutoffDate))

	deleted, err := contacts.DeleteReadOlderThan(j.dbManager.GetConnection(), cutoffDate)
	if err != nil {
		j.logger.Error("Failed to delete old contact messages",
			slog.Any("error", err),
			slog.Int64("deleted_so_far", deleted))
		return err
	}

	j.logger.Info("Cleaned up old contact messages",
		slog.Int64("deleted_count", deleted),
		slog.Int("retention_days", j.retentionDays))
	return nil
}
