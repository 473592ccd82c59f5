package jobs

import (
	"log/slog"
	"os"
	"time"
)

// Reloader is a lookup database that can be reopened from disk.
type Reloader interface {
	Reload()
}

// GeoLiteReloadJob reopens the GeoLite database when the file on disk changes,
// so a database replaced by an external updater is picked up without restart.
type GeoLiteReloadJob struct {
	path     string
	locator  Reloader
	logger   *slog.Logger
	interval time.Duration
	lastMod  time.Time
}

// NewGeoLiteReloadJob creates a job watching path.
func NewGeoLiteReloadJob(path string, locator Reloader, logger *slog.Logger) *GeoLiteReloadJob {
	j := &GeoLiteReloadJob{path: path, locator: locator, logger: logger, interval: time.Hour}
	if info, err := os.Stat(path); err == nil {
		j.lastMod = info.ModTime()
	}
	return j
}

func (j *GeoLiteReloadJob) Name() string { return "geolite_reload" }

func (j *GeoLiteReloadJob) Interval() time.Duration { return j.interval }

// Run reloads the database if its modification time moved.
func (j *GeoLiteReloadJob) Run() error {
	if j.path == "" {
		return nil
	}

	info, err := os.Stat(j.path)
	if os.IsNotExist(err) {
		j.logger.Debug("GeoLite database not present", slog.String("path", j.path))
		return nil
	}
	if err != nil {
		return err
	}

	if !info.ModTime().After(j.lastMod) {
		return nil
	}

	j.logger.Info("GeoLite database changed on disk, reloading",
		slog.String("path", j.path),
		slog.Time("modified", info.ModTime()))
	j.locator.Reload()
	j.lastMod = info.ModTime()
	return nil
}
