package models

import "time"

// MessageType discriminates direct messages from circle messages.
type MessageType string

const (
	// MessageTypeDirect is a one-to-one message; Receiver is set.
	MessageTypeDirect MessageType = "direct"
	// MessageTypeGroup is a circle message; Circle is set.
	MessageTypeGroup MessageType = "group"
)

// Message is a direct or group chat message. Messages are immutable once
// created except for the read flag.
type Message struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	SenderID    uint         `gorm:"not null;index" json:"sender_id"`
	Sender      *User        `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	ReceiverID  *uint        `gorm:"index" json:"receiver_id,omitempty"`
	Receiver    *User        `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	CircleID    *uint        `gorm:"index" json:"circle_id,omitempty"`
	Circle      *StudyCircle `gorm:"foreignKey:CircleID" json:"circle,omitempty"`
	Content     string       `gorm:"type:text;not null" json:"content"`
	MessageType MessageType  `gorm:"type:varchar(10);not null;index" json:"message_type"`
	IsRead      bool         `gorm:"not null;default:false" json:"is_read"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Conversation summarizes the direct-message thread with one peer: the peer's
// public identity and the chronologically latest message exchanged with them.
type Conversation struct {
	Peer        User    `json:"peer"`
	LastMessage Message `json:"last_message"`
}
