package users

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/karloscodes/cartridge/crypto"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio/internal/models"
)

// Role is a user's permission level.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEditor
}

type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Email             string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Name              string    `gorm:"size:255" json:"name"`
	EncryptedPassword string    `gorm:"not null" json:"-"`
	Role              Role      `gorm:"not null;size:20;default:editor" json:"role"`
}

// HasRole reports whether the user holds role. Admins hold every role.
func (u *User) HasRole(role Role) bool {
	if u == nil {
		return false
	}
	return u.Role == RoleAdmin || u.Role == role
}

// ErrUserExists is returned when attempting to create a user that already exists.
var ErrUserExists = errors.New("user already exists")

// ErrUserNotFound is returned when a user lookup fails.
var ErrUserNotFound = gorm.ErrRecordNotFound

// ErrInvalidCredentials is returned by Authenticate for a wrong email or password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// bcrypt hash of "dummy", compared against when the email is unknown so that
// both failure paths take the same time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail retrieves a user by email.
func FindByEmail(db *gorm.DB, email string) (*User, error) {
	var user User
	if err := db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID retrieves a user by ID.
func FindByID(db *gorm.DB, id uint) (*User, error) {
	var user User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user with the supplied credentials and role. It returns ErrUserExists if the email is taken.
func CreateUser(dbConn *gorm.DB, email, name, password string, role Role) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}
	if password == "" {
		return nil, errors.New("password cannot be empty")
	}
	if !role.IsValid() {
		return nil, errors.New("unknown role: " + string(role))
	}

	if _, err := FindByEmail(dbConn, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := crypto.GeneratePasswordHash(password)
	if err != nil {
		return nil, err
	}

	newUser := &User{
		Email:             email,
		Name:              strings.TrimSpace(name),
		EncryptedPassword: string(hashedPassword),
		Role:              role,
	}

	err = models.PerformWrite(slog.Default(), dbConn, func(tx *gorm.DB) error {
		return tx.Create(newUser).Error
	})
	if err != nil {
		return nil, err
	}
	return newUser, nil
}

// CreateAdminUser creates a new admin user with the supplied credentials. It returns ErrUserExists if the user already exists.
func CreateAdminUser(dbConn *gorm.DB, email, password string) error {
	_, err := CreateUser(dbConn, email, "", password, RoleAdmin)
	return err
}

// ChangePassword updates a user's password given their email.
func ChangePassword(dbConn *gorm.DB, email, password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	user, err := FindByEmail(dbConn, email)
	if err != nil {
		return err
	}

	hashedPassword, err := crypto.GeneratePasswordHash(password)
	if err != nil {
		return err
	}

	return models.PerformWrite(slog.Default(), dbConn, func(tx *gorm.DB) error {
		return tx.Model(user).Update("encrypted_password", string(hashedPassword)).Error
	})
}

// Authenticate returns the user matching email and password.
func Authenticate(dbConn *gorm.DB, email, password string) (*User, error) {
	user, err := FindByEmail(dbConn, email)
	if err != nil {
		crypto.VerifyPassword(dummyHash, password)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.VerifyPassword(user.EncryptedPassword, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// EnsureAdminUser creates an admin with the given credentials if the email is not
// registered yet. Existing users are left untouched.
func EnsureAdminUser(dbConn *gorm.DB, email, password string) error {
	logger := slog.Default()
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return errors.New("admin email and password are required")
	}

	hashedPassword, err := crypto.GeneratePasswordHash(password)
	if err != nil {
		logger.Error("Failed to generate password hash", slog.Any("error", err))
		return err
	}

	now := time.Now().UTC()
	admin := &User{
		CreatedAt:         now,
		UpdatedAt:         now,
		Email:             email,
		Name:              "Admin",
		EncryptedPassword: string(hashedPassword),
		Role:              RoleAdmin,
	}

	err = models.PerformWrite(logger, dbConn, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(admin).Error
	})
	if err != nil {
		logger.Error("Failed to upsert admin user", slog.String("email", email), slog.Any("error", err))
		return err
	}
	logger.Info("Ensured admin user exists", slog.String("email", email))
	return nil
}

// Count returns the number of users
func Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&User{}).Count(&count).Error
	return count, err
}
