package models

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultMaxMembers caps a circle's membership when none is specified.
const DefaultMaxMembers = 10

// StudyCircle is a capped-membership study group around a topic.
// Invariants: MemberCount <= MaxMembers and the creator is always a member.
// MemberCount is denormalized and maintained transactionally by the
// repository so that concurrent joins cannot overshoot MaxMembers.
type StudyCircle struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	Name         string                      `gorm:"not null" json:"name"`
	Topic        string                      `gorm:"not null;index" json:"topic"`
	SkillLevel   CourseDifficulty            `gorm:"type:varchar(20);not null" json:"skill_level"`
	Availability string                      `gorm:"not null" json:"availability"`
	Goals        string                      `gorm:"type:text;not null" json:"goals"`
	Resources    datatypes.JSONSlice[string] `json:"resources"`
	CreatorID    uint                        `gorm:"not null;index" json:"creator_id"`
	Creator      *User                       `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Members      []User                      `gorm:"many2many:circle_members;joinForeignKey:CircleID;joinReferences:UserID" json:"members,omitempty"`
	MaxMembers   int                         `gorm:"not null;default:10" json:"max_members"`
	MemberCount  int                         `gorm:"not null;default:0" json:"member_count"`
	IsActive     bool                        `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (StudyCircle) TableName() string {
	return "study_circles"
}

// CircleMember maps users to study circles.
type CircleMember struct {
	CircleID  uint      `gorm:"primaryKey;autoIncrement:false" json:"circle_id"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (CircleMember) TableName() string {
	return "circle_members"
}
