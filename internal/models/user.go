// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserRole distinguishes users who primarily learn from users who share courses.
type UserRole string

const (
	// UserRoleLearner is a user who primarily requests access to courses.
	UserRoleLearner UserRole = "learner"
	// UserRoleSharer is a user who primarily shares courses.
	UserRoleSharer UserRole = "sharer"
)

// User represents a member of the SkillCircle platform.
type User struct {
	ID        uint                        `gorm:"primaryKey" json:"id"`
	Name      string                      `gorm:"not null" json:"name"`
	Email     string                      `gorm:"unique;not null" json:"email"`
	Password  string                      `gorm:"not null" json:"-"`
	Role      UserRole                    `gorm:"type:varchar(20);not null" json:"role"`
	Bio       string                      `gorm:"type:text" json:"bio"`
	Skills    datatypes.JSONSlice[string] `json:"skills"`
	Interests datatypes.JSONSlice[string] `json:"interests"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`

	// Derived associations, filled by the repository for public profiles.
	JoinedCircles []StudyCircle `gorm:"many2many:circle_members;joinForeignKey:UserID;joinReferences:CircleID" json:"joined_circles,omitempty"`
	SharedCourses []Course      `gorm:"foreignKey:OwnerID" json:"shared_courses,omitempty"`
}
