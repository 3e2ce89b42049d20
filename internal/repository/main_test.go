package repository

import (
	"fmt"
	"testing"

	"skillcircle/internal/database"
	"skillcircle/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory database with the full schema,
// including the partial unique index on course_requests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed",
		Role:     models.UserRoleLearner,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func createTestCourse(t *testing.T, db *gorm.DB, owner *models.User) *models.Course {
	t.Helper()
	course := &models.Course{
		Title:        "Intro to Go",
		Description:  "A course about Go",
		Platform:     "Udemy",
		Availability: models.CourseAvailable,
		Type:         models.CourseTypeLend,
		OwnerID:      owner.ID,
		Category:     "Programming",
		Difficulty:   models.DifficultyBeginner,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}
