package utils

import (
	"testing"
	"time"

	"edume/database"
	"edume/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestExpireStaleChecks(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	stale := models.Check{AuthorID: 1, CourseID: 1, OrderID: 1, Status: models.CheckStatusPending}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Model(&stale).
		UpdateColumn("created_at", time.Now().Add(-72*time.Hour)).Error)

	fresh := models.Check{AuthorID: 1, CourseID: 1, OrderID: 2, Status: models.CheckStatusPending}
	require.NoError(t, db.Create(&fresh).Error)

	paid := models.Check{AuthorID: 1, CourseID: 1, OrderID: 3, Status: models.CheckStatusPaid}
	require.NoError(t, db.Create(&paid).Error)
	require.NoError(t, db.Model(&paid).
		UpdateColumn("created_at", time.Now().Add(-72*time.Hour)).Error)

	ExpireStaleChecks()

	var gotStale models.Check
	require.NoError(t, db.First(&gotStale, stale.ID).Error)
	assert.Equal(t, models.CheckStatusCancelled, gotStale.Status)

	var gotFresh models.Check
	require.NoError(t, db.First(&gotFresh, fresh.ID).Error)
	assert.Equal(t, models.CheckStatusPending, gotFresh.Status)

	var gotPaid models.Check
	require.NoError(t, db.First(&gotPaid, paid.ID).Error)
	assert.Equal(t, models.CheckStatusPaid, gotPaid.Status)
}
