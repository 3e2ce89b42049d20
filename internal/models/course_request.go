package models

import "time"

// RequestStatus defines lifecycle states for course access requests.
type RequestStatus string

const (
	// RequestStatusPending indicates the request is awaiting the owner's review.
	RequestStatusPending RequestStatus = "pending"
	// RequestStatusApproved indicates the owner granted access.
	RequestStatusApproved RequestStatus = "approved"
	// RequestStatusDenied indicates the owner declined access.
	RequestStatusDenied RequestStatus = "denied"
)

// CourseRequest mediates a learner's request to use another user's course.
// At most one active (pending or approved) request may exist per
// (course, requester) pair; a partial unique index enforces this.
type CourseRequest struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	CourseID    uint          `gorm:"not null;index" json:"course_id"`
	Course      *Course       `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	RequesterID uint          `gorm:"not null;index" json:"requester_id"`
	Requester   *User         `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	OwnerID     uint          `gorm:"not null;index" json:"owner_id"`
	Owner       *User         `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Reason      string        `gorm:"type:text" json:"reason"`
	TimeWindow  string        `json:"time_window"`
	Status      RequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Message     string        `gorm:"type:text" json:"message"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
