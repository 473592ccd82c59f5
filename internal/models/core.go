package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/karloscodes/cartridge/sqlite"
	"gorm.io/gorm"
)

// Base carries the identity and timestamps shared by every content row.
type Base struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate assigns a random id when none was set.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// StringList is an ordered list of strings stored as JSON text.
// Decoding never fails: anything that is not a JSON array of strings reads as empty.
type StringList []string

// DecodeStringList decodes serialized text, falling back to an empty list.
func DecodeStringList(text string) StringList {
	text = strings.TrimSpace(text)
	if text == "" {
		return StringList{}
	}
	var items []string
	if err := json.Unmarshal([]byte(text), &items); err != nil || items == nil {
		return StringList{}
	}
	return StringList(items)
}

// Scan implements sql.Scanner
func (s *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		*s = DecodeStringList(string(v))
	case string:
		*s = DecodeStringList(v)
	default:
		*s = StringList{}
	}
	return nil
}

// EnsureLists replaces nil lists with empty ones. A NULL column never reaches
// Scan, so models call this from AfterFind.
func EnsureLists(lists ...*StringList) {
	for _, list := range lists {
		if *list == nil {
			*list = StringList{}
		}
	}
}

// Value implements driver.Valuer. Empty lists are stored as "[]", never NULL.
func (s StringList) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// GormDataType keeps the column a plain text column on every dialect.
func (StringList) GormDataType() string {
	return "text"
}

// MarshalJSON implements the json.Marshaler interface
func (s StringList) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// UnmarshalJSON accepts a JSON array or a string holding a serialized array.
func (s *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = StringList{}
		return nil
	}
	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			*s = StringList{}
			return nil
		}
		*s = DecodeStringList(text)
		return nil
	}
	*s = DecodeStringList(string(data))
	return nil
}

// dateFormats defines accepted date formats for content dates
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04", // HTML datetime-local format
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseDate parses a date string using multiple formats
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseOptionalDate returns nil for empty or unparseable values.
func ParseOptionalDate(value string) *time.Time {
	parsed, ok := ParseDate(value)
	if !ok {
		return nil
	}
	return &parsed
}

// DeleteByID removes the row of model's table with the given id.
// It returns gorm.ErrRecordNotFound when no row matched.
func DeleteByID(db *gorm.DB, model any, id string) error {
	var affected int64
	err := PerformWrite(slog.Default(), db, func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(model)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PerformWrite executes a write transaction with retry logic for SQLite busy errors.
// This is a wrapper that delegates to cartridge's sqlite.PerformWrite implementation.
func PerformWrite(logger *slog.Logger, dbConn *gorm.DB, f func(tx *gorm.DB) error) error {
	if logger == nil {
		logger = slog.Default()
	}
	return sqlite.PerformWrite(logger, dbConn, f)
}
