package testsupport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	ctestsupport "github.com/karloscodes/cartridge/testsupport"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"portfolio/internal"
	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/users"
)

// SessionCookieName is the expected cookie name for session cookies in tests.
// This should match the pattern used in app.go: cfg.AppName + "_session"
const SessionCookieName = "portfolio_session"

// BrowserUserAgent passes the contact form's bot filter.
const BrowserUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

func init() {
	if os.Getenv("PORTFOLIO_ENV") == "" {
		os.Setenv("PORTFOLIO_ENV", config.Test)
	}
}

// testDBCache caches test databases by test name to allow multiple calls
// within the same test to share the same database
var testDBCache = make(map[string]*gorm.DB)
var testDBCacheMu sync.Mutex

// TestDBManager wraps cartridge's TestDBManager
type TestDBManager struct {
	*ctestsupport.TestDBManager
}

// NewTestDBManager creates a TestDBManager around an already migrated db
func NewTestDBManager(db *gorm.DB) *TestDBManager {
	return &TestDBManager{
		TestDBManager: ctestsupport.NewTestDBManager(db),
	}
}

// SetupTestDB creates a test database with all models migrated.
// Uses a named in-memory database with cache=shared to allow multiple connections
// to share the same database within a test. Caches the database by test name
// so multiple calls within the same test return the same database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Use root test name for caching so subtests share their parent's database
	rootName := t.Name()
	if idx := strings.Index(rootName, "/"); idx > 0 {
		rootName = rootName[:idx]
	}

	testDBCacheMu.Lock()
	if db, exists := testDBCache[rootName]; exists {
		testDBCacheMu.Unlock()
		return db
	}
	testDBCacheMu.Unlock()

	dsn := fmt.Sprintf("file:test_%s_%d?mode=memory&cache=shared", rootName, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("testsupport: failed to open test database: %v", err)
	}

	db.Exec("PRAGMA foreign_keys = ON")

	if err := db.AutoMigrate(database.AllModels()...); err != nil {
		t.Fatalf("testsupport: failed to migrate models: %v", err)
	}

	testDBCacheMu.Lock()
	testDBCache[rootName] = db
	testDBCacheMu.Unlock()

	t.Cleanup(func() {
		testDBCacheMu.Lock()
		delete(testDBCache, rootName)
		testDBCacheMu.Unlock()
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// SetupTestDBManager creates a test DB manager using cartridge's testsupport
func SetupTestDBManager(t *testing.T) (*TestDBManager, *slog.Logger) {
	cfg := config.GetConfig()

	// SAFETY CHECK: Ensure we're in test environment
	if cfg.Environment != config.Test {
		t.Fatalf("CRITICAL: Tests must run in test environment! Current: %s. Set PORTFOLIO_ENV=test", cfg.Environment)
	}

	db := SetupTestDB(t)
	return NewTestDBManager(db), GetLogger()
}

// CleanAllTables clears all non-system tables in the database
func CleanAllTables(db *gorm.DB) {
	var tableNames []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'").Scan(&tableNames)
	if len(tableNames) == 0 {
		return
	}

	db.Exec("PRAGMA foreign_keys = OFF")
	defer db.Exec("PRAGMA foreign_keys = ON")

	db.Transaction(func(tx *gorm.DB) error {
		for _, table := range tableNames {
			tx.Exec("DELETE FROM " + table)
		}
		return nil
	})
}

// CreateTestUser creates a user with a bcrypt-hashed password and the given role.
func CreateTestUser(db *gorm.DB, email, password string, role users.Role) *users.User {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("testsupport: failed to hash password: %v", err))
	}

	user := &users.User{
		Email:             email,
		Name:              strings.Split(email, "@")[0],
		EncryptedPassword: string(hashedPassword),
		Role:              role,
	}
	if err := db.Create(user).Error; err != nil {
		panic(fmt.Sprintf("testsupport: failed to create user %s: %v", email, err))
	}
	return user
}

// GetLogger returns a test logger
func GetLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(handler)
}

// NewTestApp creates a fiber app with every application route mounted on db.
// The public cache is disabled so each request reads the database.
func NewTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	return newTestApp(t, db, 0)
}

// NewCachedTestApp is NewTestApp with the public read cache enabled, as in
// production.
func NewCachedTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	return newTestApp(t, db, 300)
}

func newTestApp(t *testing.T, db *gorm.DB, cacheTTLSeconds int) *fiber.App {
	t.Helper()

	cfg := *config.GetConfig()
	cfg.Environment = config.Test
	cfg.CacheTTLSeconds = cacheTTLSeconds

	srv, err := internal.NewServer(internal.ServerDeps{
		Config:    &cfg,
		Logger:    GetLogger(),
		DBManager: NewTestDBManager(db),
	})
	require.NoError(t, err)
	return srv.App()
}

// LoginTestUser logs in through the JSON API and returns the session cookie
// header value.
func LoginTestUser(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", BrowserUserAgent)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookieName {
			return fmt.Sprintf("%s=%s", cookie.Name, cookie.Value)
		}
	}
	t.Fatalf("testsupport: login response carried no %s cookie", SessionCookieName)
	return ""
}
