package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	FileOwnerAcademy    = "academy"
	FileOwnerStudent    = "student"
	FileOwnerInstructor = "instructor"
	FileOwnerLecture    = "lecture"
)

// FileModel is metadata for a stored object. The bytes live in external
// storage; upload handling is out of scope for this service.
type FileModel struct {
	FileID        uuid.UUID `gorm:"column:file_id;primaryKey;type:uuid" json:"file_id"`
	FileAcademyID uuid.UUID `gorm:"column:file_academy_id;type:uuid;not null;index" json:"file_academy_id"`
	FileOwnerType string    `gorm:"column:file_owner_type;type:varchar(20);not null" json:"file_owner_type"`
	FileOwnerID   uuid.UUID `gorm:"column:file_owner_id;type:uuid;not null;index" json:"file_owner_id"`
	FileName      string    `gorm:"column:file_name;type:varchar(255);not null" json:"file_name"`
	FileURL       string    `gorm:"column:file_url;type:text;not null" json:"file_url"`
	FileMimeType  *string   `gorm:"column:file_mime_type;type:varchar(100)" json:"file_mime_type,omitempty"`
	FileSizeBytes *int64    `gorm:"column:file_size_bytes" json:"file_size_bytes,omitempty"`

	FileTags datatypes.JSON `gorm:"column:file_tags;type:jsonb" json:"file_tags,omitempty"`

	FileIsActive  bool       `gorm:"column:file_is_active;default:true" json:"file_is_active"`
	FileCreatedAt time.Time  `gorm:"column:file_created_at;autoCreateTime" json:"file_created_at"`
	FileUpdatedAt *time.Time `gorm:"column:file_updated_at;autoUpdateTime" json:"file_updated_at,omitempty"`
}

func (FileModel) TableName() string {
	return "files"
}

func (m *FileModel) BeforeCreate(tx *gorm.DB) error {
	if m.FileID == uuid.Nil {
		m.FileID = uuid.New()
	}
	return nil
}
