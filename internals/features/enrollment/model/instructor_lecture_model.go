package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InstructorLectureModel mirrors StudentLectureModel for teaching
// assignments. A lecture has at most one active instructor link at a time;
// that is enforced by the enrollment service, not by a DB constraint.
type InstructorLectureModel struct {
	InstructorLectureID           uuid.UUID `gorm:"column:instructor_lecture_id;primaryKey;type:uuid" json:"instructor_lecture_id"`
	InstructorLectureAcademyID    uuid.UUID `gorm:"column:instructor_lecture_academy_id;type:uuid;not null;index" json:"instructor_lecture_academy_id"`
	InstructorLectureInstructorID uuid.UUID `gorm:"column:instructor_lecture_instructor_id;type:uuid;not null;uniqueIndex:uq_instructor_lectures_pair,priority:1" json:"instructor_lecture_instructor_id"`
	InstructorLectureLectureID    uuid.UUID `gorm:"column:instructor_lecture_lecture_id;type:uuid;not null;uniqueIndex:uq_instructor_lectures_pair,priority:2;index" json:"instructor_lecture_lecture_id"`
	InstructorLectureIsActive     bool      `gorm:"column:instructor_lecture_is_active;default:true;index" json:"instructor_lecture_is_active"`

	InstructorLectureCreatedAt time.Time  `gorm:"column:instructor_lecture_created_at;autoCreateTime" json:"instructor_lecture_created_at"`
	InstructorLectureUpdatedAt *time.Time `gorm:"column:instructor_lecture_updated_at;autoUpdateTime" json:"instructor_lecture_updated_at,omitempty"`
}

func (InstructorLectureModel) TableName() string {
	return "instructor_lectures"
}

func (m *InstructorLectureModel) BeforeCreate(tx *gorm.DB) error {
	if m.InstructorLectureID == uuid.Nil {
		m.InstructorLectureID = uuid.New()
	}
	return nil
}
