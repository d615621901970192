package services

import (
	"fmt"
	"testing"

	"edume/database"
	"edume/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, phone string) *models.User {
	t.Helper()

	user := models.User{
		Phone:     phone,
		FirstName: "Test",
		Password:  "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createCourse(t *testing.T, db *gorm.DB, authorID uint, price int64) *models.Course {
	t.Helper()

	course := models.Course{
		AuthorID:    authorID,
		Name:        fmt.Sprintf("Course %d", price),
		Description: "test course",
		Price:       price,
	}
	require.NoError(t, db.Create(&course).Error)
	return &course
}

func createModule(t *testing.T, db *gorm.DB, courseID uint, sequence int) *models.Module {
	t.Helper()

	module := models.Module{
		CourseID: courseID,
		Name:     fmt.Sprintf("Module %d", sequence),
		Sequence: sequence,
	}
	require.NoError(t, db.Create(&module).Error)
	return &module
}

// createLessonChain creates n content lessons in the module linked
// previous/next in creation order and returns them head first.
func createLessonChain(t *testing.T, db *gorm.DB, moduleID uint, n int) []*models.Lesson {
	t.Helper()

	lessons := make([]*models.Lesson, 0, n)
	for i := 0; i < n; i++ {
		lesson := models.Lesson{
			ModuleID: moduleID,
			Name:     fmt.Sprintf("Lesson %d", i+1),
			Type:     models.LessonTypeContent,
		}
		if i > 0 {
			lesson.PreviousID = &lessons[i-1].ID
		}
		require.NoError(t, db.Create(&lesson).Error)
		if i > 0 {
			require.NoError(t, db.Model(lessons[i-1]).Update("next_id", lesson.ID).Error)
			lessons[i-1].NextID = &lesson.ID
		}
		lessons = append(lessons, &lesson)
	}
	return lessons
}
