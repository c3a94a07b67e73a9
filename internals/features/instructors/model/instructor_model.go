package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InstructorModel struct {
	InstructorID        uuid.UUID  `gorm:"column:instructor_id;primaryKey;type:uuid" json:"instructor_id"`
	InstructorAcademyID uuid.UUID  `gorm:"column:instructor_academy_id;type:uuid;not null;index;uniqueIndex:uq_instructors_academy_email,priority:1" json:"instructor_academy_id"`
	InstructorName      string     `gorm:"column:instructor_name;type:varchar(255);not null" json:"instructor_name"`
	InstructorEmail     *string    `gorm:"column:instructor_email;type:varchar(255);uniqueIndex:uq_instructors_academy_email,priority:2" json:"instructor_email,omitempty"`
	InstructorPhone     *string    `gorm:"column:instructor_phone;type:varchar(50)" json:"instructor_phone,omitempty"`
	InstructorSpecialty *string    `gorm:"column:instructor_specialty;type:varchar(255)" json:"instructor_specialty,omitempty"`
	InstructorHireDate  *time.Time `gorm:"column:instructor_hire_date" json:"instructor_hire_date,omitempty"`

	InstructorMonthlySalary *int64 `gorm:"column:instructor_monthly_salary" json:"instructor_monthly_salary,omitempty"`

	InstructorIsActive  bool       `gorm:"column:instructor_is_active;default:true" json:"instructor_is_active"`
	InstructorCreatedAt time.Time  `gorm:"column:instructor_created_at;autoCreateTime" json:"instructor_created_at"`
	InstructorUpdatedAt *time.Time `gorm:"column:instructor_updated_at;autoUpdateTime" json:"instructor_updated_at,omitempty"`
}

func (InstructorModel) TableName() string {
	return "instructors"
}

func (m *InstructorModel) BeforeCreate(tx *gorm.DB) error {
	if m.InstructorID == uuid.Nil {
		m.InstructorID = uuid.New()
	}
	return nil
}
