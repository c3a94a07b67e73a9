package dto

import (
	"time"

	"github.com/google/uuid"

	"akademiku_backend/internals/features/students/model"
)

// Request from the admin console. lecture_ids is the FULL desired set of
// enrolled lectures: on update it replaces the current set (diffed, not
// appended).
type StudentRequest struct {
	StudentName          string     `json:"student_name" validate:"required,min=1,max=255"`
	StudentEmail         *string    `json:"student_email" validate:"omitempty,email,max=255"`
	StudentPhone         *string    `json:"student_phone" validate:"omitempty,max=50"`
	StudentGuardianName  *string    `json:"student_guardian_name" validate:"omitempty,max=255"`
	StudentGuardianPhone *string    `json:"student_guardian_phone" validate:"omitempty,max=50"`
	StudentBirthDate     *time.Time `json:"student_birth_date"`
	StudentNotes         *string    `json:"student_notes"`

	LectureIDs []uuid.UUID `json:"lecture_ids" validate:"omitempty,dive,required"`
}

// Brief lecture info embedded in student responses.
type EnrolledLecture struct {
	LectureID   uuid.UUID `json:"lecture_id"`
	LectureName string    `json:"lecture_name"`
	LectureFee  int64     `json:"lecture_fee"`
}

type StudentResponse struct {
	StudentID            uuid.UUID  `json:"student_id"`
	StudentAcademyID     uuid.UUID  `json:"student_academy_id"`
	StudentName          string     `json:"student_name"`
	StudentEmail         *string    `json:"student_email,omitempty"`
	StudentPhone         *string    `json:"student_phone,omitempty"`
	StudentGuardianName  *string    `json:"student_guardian_name,omitempty"`
	StudentGuardianPhone *string    `json:"student_guardian_phone,omitempty"`
	StudentBirthDate     *time.Time `json:"student_birth_date,omitempty"`
	StudentNotes         *string    `json:"student_notes,omitempty"`
	StudentClassFee      int64      `json:"student_class_fee"`
	StudentIsActive      bool       `json:"student_is_active"`
	StudentCreatedAt     string     `json:"student_created_at"`

	Lectures []EnrolledLecture `json:"lectures"`
}

func (r *StudentRequest) ToModel(academyID uuid.UUID) *model.StudentModel {
	return &model.StudentModel{
		StudentAcademyID:     academyID,
		StudentName:          r.StudentName,
		StudentEmail:         r.StudentEmail,
		StudentPhone:         r.StudentPhone,
		StudentGuardianName:  r.StudentGuardianName,
		StudentGuardianPhone: r.StudentGuardianPhone,
		StudentBirthDate:     r.StudentBirthDate,
		StudentNotes:         r.StudentNotes,
	}
}

func ToStudentResponse(m *model.StudentModel, lectures []EnrolledLecture) *StudentResponse {
	if lectures == nil {
		lectures = []EnrolledLecture{}
	}
	return &StudentResponse{
		StudentID:            m.StudentID,
		StudentAcademyID:     m.StudentAcademyID,
		StudentName:          m.StudentName,
		StudentEmail:         m.StudentEmail,
		StudentPhone:         m.StudentPhone,
		StudentGuardianName:  m.StudentGuardianName,
		StudentGuardianPhone: m.StudentGuardianPhone,
		StudentBirthDate:     m.StudentBirthDate,
		StudentNotes:         m.StudentNotes,
		StudentClassFee:      m.StudentClassFee,
		StudentIsActive:      m.StudentIsActive,
		StudentCreatedAt:     m.StudentCreatedAt.Format("2006-01-02 15:04:05"),
		Lectures:             lectures,
	}
}
