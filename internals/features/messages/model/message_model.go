package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MessageRecipientStudent    = "student"
	MessageRecipientInstructor = "instructor"
)

// MessageModel stores admin messages to students or instructors. Delivery
// (SMS/email) is out of scope; this is the record the console lists.
type MessageModel struct {
	MessageID            uuid.UUID `gorm:"column:message_id;primaryKey;type:uuid" json:"message_id"`
	MessageAcademyID     uuid.UUID `gorm:"column:message_academy_id;type:uuid;not null;index" json:"message_academy_id"`
	MessageRecipientType string    `gorm:"column:message_recipient_type;type:varchar(20);not null" json:"message_recipient_type"`
	MessageRecipientID   uuid.UUID `gorm:"column:message_recipient_id;type:uuid;not null;index" json:"message_recipient_id"`
	MessageSubject       string    `gorm:"column:message_subject;type:varchar(255);not null" json:"message_subject"`
	MessageBody          string    `gorm:"column:message_body;type:text;not null" json:"message_body"`

	// Attachment metadata only (name/url/mime), no upload handling.
	MessageAttachments datatypes.JSON `gorm:"column:message_attachments;type:jsonb" json:"message_attachments,omitempty"`

	MessageIsRead    bool       `gorm:"column:message_is_read;default:false" json:"message_is_read"`
	MessageIsActive  bool       `gorm:"column:message_is_active;default:true" json:"message_is_active"`
	MessageCreatedAt time.Time  `gorm:"column:message_created_at;autoCreateTime" json:"message_created_at"`
	MessageUpdatedAt *time.Time `gorm:"column:message_updated_at;autoUpdateTime" json:"message_updated_at,omitempty"`
}

func (MessageModel) TableName() string {
	return "messages"
}

func (m *MessageModel) BeforeCreate(tx *gorm.DB) error {
	if m.MessageID == uuid.Nil {
		m.MessageID = uuid.New()
	}
	return nil
}
