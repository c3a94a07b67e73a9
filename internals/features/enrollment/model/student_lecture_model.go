package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentLectureModel is a soft-deleted join row between a student and a
// lecture. Rows are never hard-deleted: unenrolling flips the flag, and a
// re-enrollment reactivates the existing row instead of inserting a new one.
type StudentLectureModel struct {
	StudentLectureID        uuid.UUID `gorm:"column:student_lecture_id;primaryKey;type:uuid" json:"student_lecture_id"`
	StudentLectureAcademyID uuid.UUID `gorm:"column:student_lecture_academy_id;type:uuid;not null;index" json:"student_lecture_academy_id"`
	StudentLectureStudentID uuid.UUID `gorm:"column:student_lecture_student_id;type:uuid;not null;uniqueIndex:uq_student_lectures_pair,priority:1" json:"student_lecture_student_id"`
	StudentLectureLectureID uuid.UUID `gorm:"column:student_lecture_lecture_id;type:uuid;not null;uniqueIndex:uq_student_lectures_pair,priority:2;index" json:"student_lecture_lecture_id"`
	StudentLectureIsActive  bool      `gorm:"column:student_lecture_is_active;default:true;index" json:"student_lecture_is_active"`

	StudentLectureCreatedAt time.Time  `gorm:"column:student_lecture_created_at;autoCreateTime" json:"student_lecture_created_at"`
	StudentLectureUpdatedAt *time.Time `gorm:"column:student_lecture_updated_at;autoUpdateTime" json:"student_lecture_updated_at,omitempty"`
}

func (StudentLectureModel) TableName() string {
	return "student_lectures"
}

func (m *StudentLectureModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentLectureID == uuid.Nil {
		m.StudentLectureID = uuid.New()
	}
	return nil
}
