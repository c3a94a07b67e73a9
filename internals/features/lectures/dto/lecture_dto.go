package dto

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"akademiku_backend/internals/features/lectures/model"
)

// ScheduleEntry is one weekly slot, stored as jsonb on the lecture row.
type ScheduleEntry struct {
	Day   string `json:"day" validate:"required,oneof=mon tue wed thu fri sat sun"`
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// student_ids is the FULL desired roster; on update it replaces the current
// roster. instructor_id nil means no (or cleared) instructor.
type LectureRequest struct {
	LectureName        string  `json:"lecture_name" validate:"required,min=1,max=255"`
	LectureDescription *string `json:"lecture_description"`
	LectureFee         int64   `json:"lecture_fee" validate:"min=0"`
	LectureMaxStudents *int    `json:"lecture_max_students" validate:"omitempty,min=1"`

	LectureSchedule []ScheduleEntry `json:"lecture_schedule" validate:"omitempty,dive"`

	InstructorID *uuid.UUID  `json:"instructor_id"`
	StudentIDs   []uuid.UUID `json:"student_ids" validate:"omitempty,dive,required"`
}

type LectureInstructorBrief struct {
	InstructorID   uuid.UUID `json:"instructor_id"`
	InstructorName string    `json:"instructor_name"`
}

type EnrolledStudent struct {
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
}

type LectureResponse struct {
	LectureID              uuid.UUID `json:"lecture_id"`
	LectureAcademyID       uuid.UUID `json:"lecture_academy_id"`
	LectureName            string    `json:"lecture_name"`
	LectureDescription     *string   `json:"lecture_description,omitempty"`
	LectureFee             int64     `json:"lecture_fee"`
	LectureMaxStudents     *int      `json:"lecture_max_students,omitempty"`
	LectureCurrentStudents int64     `json:"lecture_current_students"`
	LectureIsActive        bool      `json:"lecture_is_active"`
	LectureCreatedAt       string    `json:"lecture_created_at"`

	LectureSchedule []ScheduleEntry         `json:"lecture_schedule"`
	Instructor      *LectureInstructorBrief `json:"instructor,omitempty"`
	Students        []EnrolledStudent       `json:"students,omitempty"`
}

func (r *LectureRequest) ToModel(academyID uuid.UUID) *model.LectureModel {
	var schedule datatypes.JSON
	if len(r.LectureSchedule) > 0 {
		raw, _ := json.Marshal(r.LectureSchedule)
		schedule = datatypes.JSON(raw)
	}
	return &model.LectureModel{
		LectureAcademyID:   academyID,
		LectureName:        r.LectureName,
		LectureDescription: r.LectureDescription,
		LectureFee:         r.LectureFee,
		LectureMaxStudents: r.LectureMaxStudents,
		LectureSchedule:    schedule,
	}
}

func ToLectureResponse(m *model.LectureModel, instructor *LectureInstructorBrief, students []EnrolledStudent) *LectureResponse {
	var schedule []ScheduleEntry
	if m.LectureSchedule != nil {
		_ = json.Unmarshal(m.LectureSchedule, &schedule)
	}
	if schedule == nil {
		schedule = []ScheduleEntry{}
	}
	return &LectureResponse{
		LectureID:              m.LectureID,
		LectureAcademyID:       m.LectureAcademyID,
		LectureName:            m.LectureName,
		LectureDescription:     m.LectureDescription,
		LectureFee:             m.LectureFee,
		LectureMaxStudents:     m.LectureMaxStudents,
		LectureCurrentStudents: m.LectureCurrentStudents,
		LectureIsActive:        m.LectureIsActive,
		LectureCreatedAt:       m.LectureCreatedAt.Format("2006-01-02 15:04:05"),
		LectureSchedule:        schedule,
		Instructor:             instructor,
		Students:               students,
	}
}

// EnrollmentRequest is the body of the enroll/unenroll helpers.
type EnrollmentRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
}

// AssignRequest is the body of the instructor-assignment helper; a nil
// instructor_id clears the assignment.
type AssignRequest struct {
	InstructorID *uuid.UUID `json:"instructor_id"`
}
