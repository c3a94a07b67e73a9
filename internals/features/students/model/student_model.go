package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID            uuid.UUID  `gorm:"column:student_id;primaryKey;type:uuid" json:"student_id"`
	StudentAcademyID     uuid.UUID  `gorm:"column:student_academy_id;type:uuid;not null;index;uniqueIndex:uq_students_academy_email,priority:1" json:"student_academy_id"`
	StudentName          string     `gorm:"column:student_name;type:varchar(255);not null" json:"student_name"`
	StudentEmail         *string    `gorm:"column:student_email;type:varchar(255);uniqueIndex:uq_students_academy_email,priority:2" json:"student_email,omitempty"`
	StudentPhone         *string    `gorm:"column:student_phone;type:varchar(50)" json:"student_phone,omitempty"`
	StudentGuardianName  *string    `gorm:"column:student_guardian_name;type:varchar(255)" json:"student_guardian_name,omitempty"`
	StudentGuardianPhone *string    `gorm:"column:student_guardian_phone;type:varchar(50)" json:"student_guardian_phone,omitempty"`
	StudentBirthDate     *time.Time `gorm:"column:student_birth_date" json:"student_birth_date,omitempty"`
	StudentNotes         *string    `gorm:"column:student_notes;type:text" json:"student_notes,omitempty"`

	// Derived: sum of active lecture fees. Maintained by the enrollment
	// service inside the same transaction as any link change.
	StudentClassFee int64 `gorm:"column:student_class_fee;not null;default:0" json:"student_class_fee"`

	StudentIsActive  bool       `gorm:"column:student_is_active;default:true" json:"student_is_active"`
	StudentCreatedAt time.Time  `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt *time.Time `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at,omitempty"`
}

func (StudentModel) TableName() string {
	return "students"
}

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}
