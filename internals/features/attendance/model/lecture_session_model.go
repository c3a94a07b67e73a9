package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LectureSessionModel struct {
	LectureSessionID        uuid.UUID `gorm:"column:lecture_session_id;primaryKey;type:uuid" json:"lecture_session_id"`
	LectureSessionAcademyID uuid.UUID `gorm:"column:lecture_session_academy_id;type:uuid;not null;index" json:"lecture_session_academy_id"`
	LectureSessionLectureID uuid.UUID `gorm:"column:lecture_session_lecture_id;type:uuid;not null;index" json:"lecture_session_lecture_id"`
	LectureSessionDate      time.Time `gorm:"column:lecture_session_date;not null" json:"lecture_session_date"`
	LectureSessionTopic     *string   `gorm:"column:lecture_session_topic;type:varchar(255)" json:"lecture_session_topic,omitempty"`

	LectureSessionIsActive  bool       `gorm:"column:lecture_session_is_active;default:true" json:"lecture_session_is_active"`
	LectureSessionCreatedAt time.Time  `gorm:"column:lecture_session_created_at;autoCreateTime" json:"lecture_session_created_at"`
	LectureSessionUpdatedAt *time.Time `gorm:"column:lecture_session_updated_at;autoUpdateTime" json:"lecture_session_updated_at,omitempty"`
}

func (LectureSessionModel) TableName() string {
	return "lecture_sessions"
}

func (m *LectureSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.LectureSessionID == uuid.Nil {
		m.LectureSessionID = uuid.New()
	}
	return nil
}
