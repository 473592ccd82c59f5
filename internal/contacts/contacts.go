package contacts

import (
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"portfolio/internal/models"
)

// Contact is a message left through the public contact form
type Contact struct {
	models.Base
	Name    string `gorm:"not null;size:255" json:"name"`
	Email   string `gorm:"not null;size:255" json:"email"`
	Subject string `gorm:"size:255" json:"subject"`
	Message string `gorm:"not null" json:"message"`
	Read    bool   `gorm:"column:is_read;not null;default:false;index" json:"read"`
	Country string `gorm:"size:2" json:"country,omitempty"`
}

// TableName specifies the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// Input is the public contact form payload.
type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Message) == "" {
		return models.NewValidationError("Missing required fields")
	}
	if !strings.Contains(in.Email, "@") {
		return models.NewValidationError("Invalid email address")
	}
	return nil
}

// Create validates and stores a contact message. country is an ISO code and may be empty.
func Create(db *gorm.DB, in Input, country string) (*Contact, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	contact := &Contact{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
		Country: strings.ToUpper(country),
	}

	err := models.PerformWrite(slog.Default(), db, func(tx *gorm.DB) error {
		return tx.Create(contact).Error
	})
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// List returns every message, newest first.
func List(db *gorm.DB) ([]Contact, error) {
	var contacts []Contact
	if err := db.Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// Find retrieves a contact by ID
func Find(db *gorm.DB, id string) (*Contact, error) {
	var contact Contact
	if err := db.Where("id = ?", id).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// SetRead marks a message read or unread and returns the updated row.
func SetRead(db *gorm.DB, id string, read bool) (*Contact, error) {
	contact, err := Find(db, id)
	if err != nil {
		return nil, err
	}

	err = models.PerformWrite(slog.Default(), db, func(tx *gorm.DB) error {
		return tx.Model(contact).Update("is_read", read).Error
	})
	if err != nil {
		return nil, err
	}
	contact.Read = read
	return contact, nil
}

// Delete removes a contact by ID
func Delete(db *gorm.DB, id string) error {
	return models.DeleteByID(db, &Contact{}, id)
}

// Count returns the number of messages
func Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Contact{}).Count(&count).Error
	return count, err
}

// CountUnread returns the number of messages not yet marked read
func CountUnread(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Contact{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

const deleteBatchSize = 1000

// DeleteReadOlderThan removes read messages created before cutoff, in batches.
// It returns the number of rows deleted.
func DeleteReadOlderThan(db *gorm.DB, cutoff time.Time) (int64, error) {
	var total int64

	for {
		var ids []string
		err := db.Model(&Contact{}).
			Where("is_read = ? AND created_at < ?", true, cutoff).
			Limit(deleteBatchSize).
			Pluck("id", &ids).Error
		if err != nil {
			return total, err
		}
		if len(ids) == 0 {
			return total, nil
		}

		var affected int64
		err = models.PerformWrite(slog.Default(), db, func(tx *gorm.DB) error {
			result := tx.Where("id IN ?", ids).Delete(&Contact{})
			affected = result.RowsAffected
			return result.Error
		})
		if err != nil {
			return total, err
		}
		total += affected

		if len(ids) < deleteBatchSize {
			return total, nil
		}

		time.Sleep(100 * time.Millisecond)
	}
}
