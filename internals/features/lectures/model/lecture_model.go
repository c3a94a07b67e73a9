package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LectureModel struct {
	LectureID          uuid.UUID `gorm:"column:lecture_id;primaryKey;type:uuid" json:"lecture_id"`
	LectureAcademyID   uuid.UUID `gorm:"column:lecture_academy_id;type:uuid;not null;index" json:"lecture_academy_id"`
	LectureName        string    `gorm:"column:lecture_name;type:varchar(255);not null" json:"lecture_name"`
	LectureDescription *string   `gorm:"column:lecture_description;type:text" json:"lecture_description,omitempty"`

	// Unit tuition price; summed into student_class_fee for enrolled students.
	LectureFee int64 `gorm:"column:lecture_fee;not null;default:0" json:"lecture_fee"`

	// Advisory capacity. Never enforced; occupancy may exceed it.
	LectureMaxStudents *int `gorm:"column:lecture_max_students" json:"lecture_max_students,omitempty"`

	// Derived: count of active student links. Maintained by the enrollment
	// service inside the same transaction as any roster change.
	LectureCurrentStudents int64 `gorm:"column:lecture_current_students;not null;default:0" json:"lecture_current_students"`

	// Denormalized mirror of the single active instructor link.
	LectureInstructorID *uuid.UUID `gorm:"column:lecture_instructor_id;type:uuid" json:"lecture_instructor_id,omitempty"`

	// Weekly schedule entries, e.g. [{"day":"mon","start":"19:00","end":"21:00"}].
	LectureSchedule datatypes.JSON `gorm:"column:lecture_schedule;type:jsonb" json:"lecture_schedule,omitempty"`

	LectureIsActive  bool       `gorm:"column:lecture_is_active;default:true" json:"lecture_is_active"`
	LectureCreatedAt time.Time  `gorm:"column:lecture_created_at;autoCreateTime" json:"lecture_created_at"`
	LectureUpdatedAt *time.Time `gorm:"column:lecture_updated_at;autoUpdateTime" json:"lecture_updated_at,omitempty"`
}

func (LectureModel) TableName() string {
	return "lectures"
}

func (m *LectureModel) BeforeCreate(tx *gorm.DB) error {
	if m.LectureID == uuid.Nil {
		m.LectureID = uuid.New()
	}
	return nil
}
