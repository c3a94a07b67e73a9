package dto

import (
	"time"

	"github.com/google/uuid"

	"akademiku_backend/internals/features/instructors/model"
)

// lecture_ids is the FULL desired set of assigned lectures; on update it
// replaces the current assignment set.
type InstructorRequest struct {
	InstructorName      string     `json:"instructor_name" validate:"required,min=1,max=255"`
	InstructorEmail     *string    `json:"instructor_email" validate:"omitempty,email,max=255"`
	InstructorPhone     *string    `json:"instructor_phone" validate:"omitempty,max=50"`
	InstructorSpecialty *string    `json:"instructor_specialty" validate:"omitempty,max=255"`
	InstructorHireDate  *time.Time `json:"instructor_hire_date"`

	InstructorMonthlySalary *int64 `json:"instructor_monthly_salary" validate:"omitempty,min=0"`

	LectureIDs []uuid.UUID `json:"lecture_ids" validate:"omitempty,dive,required"`
}

type AssignedLecture struct {
	LectureID   uuid.UUID `json:"lecture_id"`
	LectureName string    `json:"lecture_name"`
}

type InstructorResponse struct {
	InstructorID        uuid.UUID  `json:"instructor_id"`
	InstructorAcademyID uuid.UUID  `json:"instructor_academy_id"`
	InstructorName      string     `json:"instructor_name"`
	InstructorEmail     *string    `json:"instructor_email,omitempty"`
	InstructorPhone     *string    `json:"instructor_phone,omitempty"`
	InstructorSpecialty *string    `json:"instructor_specialty,omitempty"`
	InstructorHireDate  *time.Time `json:"instructor_hire_date,omitempty"`

	InstructorMonthlySalary *int64 `json:"instructor_monthly_salary,omitempty"`

	InstructorIsActive  bool   `json:"instructor_is_active"`
	InstructorCreatedAt string `json:"instructor_created_at"`

	Lectures []AssignedLecture `json:"lectures"`
}

func (r *InstructorRequest) ToModel(academyID uuid.UUID) *model.InstructorModel {
	return &model.InstructorModel{
		InstructorAcademyID:     academyID,
		InstructorName:          r.InstructorName,
		InstructorEmail:         r.InstructorEmail,
		InstructorPhone:         r.InstructorPhone,
		InstructorSpecialty:     r.InstructorSpecialty,
		InstructorHireDate:      r.InstructorHireDate,
		InstructorMonthlySalary: r.InstructorMonthlySalary,
	}
}

func ToInstructorResponse(m *model.InstructorModel, lectures []AssignedLecture) *InstructorResponse {
	if lectures == nil {
		lectures = []AssignedLecture{}
	}
	return &InstructorResponse{
		InstructorID:            m.InstructorID,
		InstructorAcademyID:     m.InstructorAcademyID,
		InstructorName:          m.InstructorName,
		InstructorEmail:         m.InstructorEmail,
		InstructorPhone:         m.InstructorPhone,
		InstructorSpecialty:     m.InstructorSpecialty,
		InstructorHireDate:      m.InstructorHireDate,
		InstructorMonthlySalary: m.InstructorMonthlySalary,
		InstructorIsActive:      m.InstructorIsActive,
		InstructorCreatedAt:     m.InstructorCreatedAt.Format("2006-01-02 15:04:05"),
		Lectures:                lectures,
	}
}
