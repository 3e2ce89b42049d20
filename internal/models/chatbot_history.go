package models

import "time"

// DefaultChatTopic is assigned when a question arrives without a topic.
const DefaultChatTopic = "general"

// ChatbotHistory is one persisted question/answer exchange with the study
// assistant. Entries are append-only and deletable only by their owner.
type ChatbotHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Topic     string    `gorm:"not null;default:'general';index" json:"topic"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (ChatbotHistory) TableName() string {
	return "chatbot_history"
}
