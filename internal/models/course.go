package models

import "time"

// CourseAvailability defines whether a shared course can currently be requested.
type CourseAvailability string

const (
	// CourseAvailable means the course is open for access requests.
	CourseAvailable CourseAvailability = "available"
	// CourseBusy means the course is currently lent out or in use.
	CourseBusy CourseAvailability = "busy"
	// CourseCompleted means the owner has finished sharing the course.
	CourseCompleted CourseAvailability = "completed"
)

// CourseType defines the sharing mode of a course listing.
type CourseType string

const (
	// CourseTypeLend offers the course one-way.
	CourseTypeLend CourseType = "lend"
	// CourseTypeExchange offers the course in exchange for another.
	CourseTypeExchange CourseType = "exchange"
)

// CourseDifficulty grades a course listing by required experience.
type CourseDifficulty string

const (
	DifficultyBeginner     CourseDifficulty = "beginner"
	DifficultyIntermediate CourseDifficulty = "intermediate"
	DifficultyAdvanced     CourseDifficulty = "advanced"
)

// DefaultCourseImageURL is used when a listing is created without an image.
const DefaultCourseImageURL = "https://images.pexels.com/photos/5427674/pexels-photo-5427674.jpeg?auto=compress&cs=tinysrgb&w=800"

// Course is a shareable reference to externally-hosted learning material.
type Course struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	Title        string             `gorm:"not null" json:"title"`
	Description  string             `gorm:"type:text;not null" json:"description"`
	Platform     string             `gorm:"not null" json:"platform"`
	ImageURL     string             `json:"image_url"`
	Availability CourseAvailability `gorm:"type:varchar(20);not null;default:'available';index" json:"availability"`
	Type         CourseType         `gorm:"type:varchar(20);not null" json:"type"`
	OwnerID      uint               `gorm:"not null;index" json:"owner_id"`
	Owner        *User              `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Category     string             `gorm:"not null;index" json:"category"`
	Duration     string             `json:"duration"`
	Difficulty   CourseDifficulty   `gorm:"type:varchar(20);not null;default:'beginner'" json:"difficulty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
