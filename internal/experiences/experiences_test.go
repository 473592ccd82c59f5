package experiences_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"portfolio/internal/experiences"
	"portfolio/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&experiences.Experience{}))
	return db
}

func TestCreate(t *testing.T) {
	t.Run("requires company, position and a start date", func(t *testing.T) {
		db := setupTestDB(t)

		cases := []experiences.Input{
			{Position: "Engineer", StartDate: "2022-01-01"},
			{Company: "Acme", StartDate: "2022-01-01"},
			{Company: "Acme", Position: "Engineer"},
			{Company: "Acme", Position: "Engineer", StartDate: "last spring"},
		}
		for _, in := range cases {
			_, err := experiences.Create(db, in)
			assert.ErrorIs(t, err, models.ErrValidation)
		}

		count, err := experiences.Count(db)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("current position drops the end date", func(t *testing.T) {
		db := setupTestDB(t)

		exp, err := experiences.Create(db, experiences.Input{
			Company:      "Tech Solutions",
			Position:     "Senior Engineer",
			StartDate:    "2022-01-01",
			EndDate:      "2023-01-01",
			Current:      true,
			Technologies: models.StringList{"Go", "AWS"},
		})
		require.NoError(t, err)

		loaded, err := experiences.Find(db, exp.ID)
		require.NoError(t, err)
		assert.Nil(t, loaded.EndDate)
		assert.True(t, loaded.Current)
		assert.Equal(t, models.StringList{"Go", "AWS"}, loaded.Technologies)
	})

	t.Run("past position keeps the end date", func(t *testing.T) {
		db := setupTestDB(t)

		exp, err := experiences.Create(db, experiences.Input{
			Company:   "StartupXYZ",
			Position:  "Engineer",
			StartDate: "2020-06-01",
			EndDate:   "2021-12-31",
		})
		require.NoError(t, err)
		require.NotNil(t, exp.EndDate)
		assert.Equal(t, 2021, exp.EndDate.Year())
		assert.Equal(t, models.StringList{}, exp.Technologies)
	})
}

func TestListOrdering(t *testing.T) {
	db := setupTestDB(t)

	for _, in := range []experiences.Input{
		{Company: "Old", Position: "Dev", StartDate: "2018-01-01", EndDate: "2019-01-01"},
		{Company: "Now", Position: "Lead", StartDate: "2021-01-01", Current: true},
		{Company: "Recent", Position: "Dev", StartDate: "2019-06-01", EndDate: "2020-12-01"},
	} {
		_, err := experiences.Create(db, in)
		require.NoError(t, err)
	}

	list, err := experiences.List(db)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Now", list[0].Company)
	assert.Equal(t, "Recent", list[1].Company)
	assert.Equal(t, "Old", list[2].Company)
}

func TestUpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)

	exp, err := experiences.Create(db, experiences.Input{Company: "Acme", Position: "Dev", StartDate: "2020-01-01", Current: true})
	require.NoError(t, err)

	updated, err := experiences.Update(db, exp.ID, experiences.Input{
		Company:   "Acme",
		Position:  "Staff Dev",
		StartDate: "2020-01-01",
		EndDate:   "2024-05-01",
	})
	require.NoError(t, err)
	assert.False(t, updated.Current)
	require.NotNil(t, updated.EndDate)

	_, err = experiences.Update(db, "missing", experiences.Input{Company: "x", Position: "y", StartDate: "2020-01-01"})
	assert.True(t, models.IsNotFound(err))

	require.NoError(t, experiences.Delete(db, exp.ID))
	assert.True(t, models.IsNotFound(experiences.Delete(db, exp.ID)))
}
