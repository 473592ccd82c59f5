// Package geoip resolves client IPs to ISO country codes using a GeoLite2 database.
package geoip

import (
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/oschwald/geoip2-golang"
)

// Locator looks up countries. The database is optional: without one every
// lookup returns an empty code.
type Locator struct {
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
	reader *geoip2.Reader
}

// Open creates a locator for the database at path.
func Open(path string, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Locator{path: path, logger: logger}
	l.reader = l.load()
	return l
}

func (l *Locator) load() *geoip2.Reader {
	if l.path == "" {
		l.logger.Debug("GeoIP database path not configured - country lookup disabled")
		return nil
	}

	fileInfo, err := os.Stat(l.path)
	if os.IsNotExist(err) {
		l.logger.Info("GeoLite2 database not found - country lookup disabled",
			slog.String("path", l.path),
			slog.String("hint", "Download from https://www.maxmind.com/en/geolite2/signup"))
		return nil
	} else if err != nil {
		l.logger.Warn("Error checking GeoLite2 database file",
			slog.String("path", l.path),
			slog.Any("error", err))
		return nil
	}

	reader, err := geoip2.Open(l.path)
	if err != nil {
		l.logger.Error("Failed to open GeoLite2 database",
			slog.String("path", l.path),
			slog.Any("error", err))
		return nil
	}

	l.logger.Info("GeoLite2 database initialized",
		slog.String("path", l.path),
		slog.Int64("size_bytes", fileInfo.Size()))
	return reader
}

// Enabled reports whether a database is loaded.
func (l *Locator) Enabled() bool {
	if l == nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reader != nil
}

// CountryCode returns the ISO country code for ip, or "" when unknown.
func (l *Locator) CountryCode(ip string) string {
	if l == nil {
		return ""
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.reader == nil {
		return ""
	}

	record, err := l.reader.Country(parsed)
	if err != nil {
		l.logger.Debug("GeoIP lookup failed", slog.String("ip", ip), slog.Any("error", err))
		return ""
	}
	return record.Country.IsoCode
}

// Reload reopens the database from disk, e.g. after a download.
func (l *Locator) Reload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.reader != nil {
		l.reader.Close()
	}
	l.reader = l.load()
}

// Close releases the database.
func (l *Locator) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.reader == nil {
		return nil
	}
	err := l.reader.Close()
	l.reader = nil
	return err
}
