package projects

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"portfolio/internal/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&Project{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		name        string
		input       Input
		wantErr     bool
		errContains string
	}{
		{
			name: "valid project",
			input: Input{
				Title:        "E-Commerce Platform",
				Description:  "Storefront with payments",
				Technologies: models.StringList{"Go", "Postgres"},
				Featured:     true,
				Status:       StatusInProgress,
				StartDate:    "2024-01-01",
			},
		},
		{
			name:  "defaults applied",
			input: Input{Title: "Minimal", Description: "Just the basics"},
		},
		{
			name:        "missing title",
			input:       Input{Description: "No title"},
			wantErr:     true,
			errContains: "Title and description are required",
		},
		{
			name:        "blank description",
			input:       Input{Title: "No description", Description: "   "},
			wantErr:     true,
			errContains: "Title and description are required",
		},
		{
			name:        "unknown status",
			input:       Input{Title: "Bad", Description: "status", Status: "archived"},
			wantErr:     true,
			errContains: "Status must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, err := Create(db, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, models.ErrValidation))
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, project.ID)
			assert.NotNil(t, project.Technologies)
			assert.NotNil(t, project.Images)
			assert.True(t, IsValidStatus(project.Status))
		})
	}

	var count int64
	require.NoError(t, db.Model(&Project{}).Count(&count).Error)
	assert.Equal(t, int64(2), count, "invalid projects must not be persisted")
}

func TestCreateDefaults(t *testing.T) {
	db := setupTestDB(t)

	project, err := Create(db, Input{Title: "Weather", Description: "Forecasts", StartDate: "not a date"})
	require.NoError(t, err)

	loaded, err := Find(db, project.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, loaded.Status)
	assert.Equal(t, models.StringList{}, loaded.Technologies)
	assert.Equal(t, models.StringList{}, loaded.Images)
	assert.Nil(t, loaded.StartDate)
	assert.Equal(t, 0, loaded.Order)
}

func TestListOrdering(t *testing.T) {
	db := setupTestDB(t)

	inputs := []Input{
		{Title: "A", Description: "a", Featured: false, Order: 2},
		{Title: "B", Description: "b", Featured: true, Order: 1},
		{Title: "C", Description: "c", Featured: false, Order: 3},
	}
	for _, in := range inputs {
		_, err := Create(db, in)
		require.NoError(t, err)
	}

	list, err := List(db)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "B", list[0].Title)
	assert.Equal(t, "A", list[1].Title)
	assert.Equal(t, "C", list[2].Title)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)

	project, err := Create(db, Input{
		Title:        "Task App",
		Description:  "Teams",
		Technologies: models.StringList{"React"},
		Featured:     true,
	})
	require.NoError(t, err)

	t.Run("replaces the full payload", func(t *testing.T) {
		updated, err := Update(db, project.ID, Input{
			Title:        "Task App v2",
			Description:  "Teams and chat",
			Technologies: models.StringList{"Go", "HTMX"},
			Status:       StatusPlanned,
		})
		require.NoError(t, err)
		assert.Equal(t, project.ID, updated.ID)

		loaded, err := Find(db, project.ID)
		require.NoError(t, err)
		assert.Equal(t, "Task App v2", loaded.Title)
		assert.False(t, loaded.Featured)
		assert.Equal(t, StatusPlanned, loaded.Status)
		assert.Equal(t, models.StringList{"Go", "HTMX"}, loaded.Technologies)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := Update(db, "missing", Input{Title: "x", Description: "y"})
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("invalid payload leaves row untouched", func(t *testing.T) {
		_, err := Update(db, project.ID, Input{Title: ""})
		require.ErrorIs(t, err, models.ErrValidation)

		loaded, err := Find(db, project.ID)
		require.NoError(t, err)
		assert.Equal(t, "Task App v2", loaded.Title)
	})
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	project, err := Create(db, Input{Title: "Delete me", Description: "soon"})
	require.NoError(t, err)

	require.NoError(t, Delete(db, project.ID))

	_, err = Find(db, project.ID)
	assert.True(t, models.IsNotFound(err))

	err = Delete(db, project.ID)
	assert.True(t, models.IsNotFound(err))
}
