package dto

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"akademiku_backend/internals/features/files/model"
)

type FileRequest struct {
	OwnerType string    `json:"owner_type" validate:"required,oneof=academy student instructor lecture"`
	OwnerID   uuid.UUID `json:"owner_id" validate:"required"`
	Name      string    `json:"name" validate:"required,min=1,max=255"`
	URL       string    `json:"url" validate:"required,url"`
	MimeType  *string   `json:"mime_type" validate:"omitempty,max=100"`
	SizeBytes *int64    `json:"size_bytes" validate:"omitempty,min=0"`
	Tags      []string  `json:"tags"`
}

type FileResponse struct {
	FileID    uuid.UUID `json:"file_id"`
	OwnerType string    `json:"owner_type"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	MimeType  *string   `json:"mime_type,omitempty"`
	SizeBytes *int64    `json:"size_bytes,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt string    `json:"created_at"`
}

func (r *FileRequest) ToModel(academyID uuid.UUID) *model.FileModel {
	var tags datatypes.JSON
	if len(r.Tags) > 0 {
		raw, _ := json.Marshal(r.Tags)
		tags = datatypes.JSON(raw)
	}
	return &model.FileModel{
		FileAcademyID: academyID,
		FileOwnerType: r.OwnerType,
		FileOwnerID:   r.OwnerID,
		FileName:      r.Name,
		FileURL:       r.URL,
		FileMimeType:  r.MimeType,
		FileSizeBytes: r.SizeBytes,
		FileTags:      tags,
	}
}

func ToFileResponse(m *model.FileModel) *FileResponse {
	var tags []string
	if m.FileTags != nil {
		_ = json.Unmarshal(m.FileTags, &tags)
	}
	if tags == nil {
		tags = []string{}
	}
	return &FileResponse{
		FileID:    m.FileID,
		OwnerType: m.FileOwnerType,
		OwnerID:   m.FileOwnerID,
		Name:      m.FileName,
		URL:       m.FileURL,
		MimeType:  m.FileMimeType,
		SizeBytes: m.FileSizeBytes,
		Tags:      tags,
		CreatedAt: m.FileCreatedAt.Format("2006-01-02 15:04:05"),
	}
}
