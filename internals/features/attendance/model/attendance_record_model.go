package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLate    = "late"
	AttendanceStatusExcused = "excused"
)

type AttendanceRecordModel struct {
	AttendanceRecordID        uuid.UUID `gorm:"column:attendance_record_id;primaryKey;type:uuid" json:"attendance_record_id"`
	AttendanceRecordAcademyID uuid.UUID `gorm:"column:attendance_record_academy_id;type:uuid;not null;index" json:"attendance_record_academy_id"`
	AttendanceRecordSessionID uuid.UUID `gorm:"column:attendance_record_session_id;type:uuid;not null;uniqueIndex:uq_attendance_session_student,priority:1" json:"attendance_record_session_id"`
	AttendanceRecordStudentID uuid.UUID `gorm:"column:attendance_record_student_id;type:uuid;not null;uniqueIndex:uq_attendance_session_student,priority:2;index" json:"attendance_record_student_id"`
	AttendanceRecordStatus    string    `gorm:"column:attendance_record_status;type:varchar(20);not null" json:"attendance_record_status"`
	AttendanceRecordNote      *string   `gorm:"column:attendance_record_note;type:text" json:"attendance_record_note,omitempty"`

	AttendanceRecordCreatedAt time.Time  `gorm:"column:attendance_record_created_at;autoCreateTime" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt *time.Time `gorm:"column:attendance_record_updated_at;autoUpdateTime" json:"attendance_record_updated_at,omitempty"`
}

func (AttendanceRecordModel) TableName() string {
	return "attendance_records"
}

func (m *AttendanceRecordModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceRecordID == uuid.Nil {
		m.AttendanceRecordID = uuid.New()
	}
	return nil
}
