package dto

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"akademiku_backend/internals/features/messages/model"
)

// Attachment metadata carried alongside a message; no bytes, no upload.
type Attachment struct {
	Name string `json:"name" validate:"required,max=255"`
	URL  string `json:"url" validate:"required,url"`
	Mime string `json:"mime" validate:"omitempty,max=100"`
}

type MessageRequest struct {
	RecipientType string       `json:"recipient_type" validate:"required,oneof=student instructor"`
	RecipientID   uuid.UUID    `json:"recipient_id" validate:"required"`
	Subject       string       `json:"subject" validate:"required,min=1,max=255"`
	Body          string       `json:"body" validate:"required"`
	Attachments   []Attachment `json:"attachments" validate:"omitempty,dive"`
}

type MessageResponse struct {
	MessageID     uuid.UUID    `json:"message_id"`
	RecipientType string       `json:"recipient_type"`
	RecipientID   uuid.UUID    `json:"recipient_id"`
	Subject       string       `json:"subject"`
	Body          string       `json:"body"`
	Attachments   []Attachment `json:"attachments"`
	IsRead        bool         `json:"is_read"`
	CreatedAt     string       `json:"created_at"`
}

func (r *MessageRequest) ToModel(academyID uuid.UUID) *model.MessageModel {
	var attachments datatypes.JSON
	if len(r.Attachments) > 0 {
		raw, _ := json.Marshal(r.Attachments)
		attachments = datatypes.JSON(raw)
	}
	return &model.MessageModel{
		MessageAcademyID:     academyID,
		MessageRecipientType: r.RecipientType,
		MessageRecipientID:   r.RecipientID,
		MessageSubject:       r.Subject,
		MessageBody:          r.Body,
		MessageAttachments:   attachments,
	}
}

func ToMessageResponse(m *model.MessageModel) *MessageResponse {
	var attachments []Attachment
	if m.MessageAttachments != nil {
		_ = json.Unmarshal(m.MessageAttachments, &attachments)
	}
	if attachments == nil {
		attachments = []Attachment{}
	}
	return &MessageResponse{
		MessageID:     m.MessageID,
		RecipientType: m.MessageRecipientType,
		RecipientID:   m.MessageRecipientID,
		Subject:       m.MessageSubject,
		Body:          m.MessageBody,
		Attachments:   attachments,
		IsRead:        m.MessageIsRead,
		CreatedAt:     m.MessageCreatedAt.Format("2006-01-02 15:04:05"),
	}
}
