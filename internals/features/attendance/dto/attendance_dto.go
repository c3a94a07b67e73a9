package dto

import (
	"time"

	"github.com/google/uuid"

	"akademiku_backend/internals/features/attendance/model"
)

type SessionRequest struct {
	LectureID uuid.UUID `json:"lecture_id" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	Topic     *string   `json:"topic" validate:"omitempty,max=255"`
}

type SessionResponse struct {
	LectureSessionID uuid.UUID `json:"lecture_session_id"`
	LectureID        uuid.UUID `json:"lecture_id"`
	LectureName      string    `json:"lecture_name,omitempty"`
	Date             time.Time `json:"date"`
	Topic            *string   `json:"topic,omitempty"`
	CreatedAt        string    `json:"created_at"`
}

func ToSessionResponse(m *model.LectureSessionModel, lectureName string) *SessionResponse {
	return &SessionResponse{
		LectureSessionID: m.LectureSessionID,
		LectureID:        m.LectureSessionLectureID,
		LectureName:      lectureName,
		Date:             m.LectureSessionDate,
		Topic:            m.LectureSessionTopic,
		CreatedAt:        m.LectureSessionCreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// MarkEntry is one student's status inside a bulk mark request.
type MarkEntry struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present absent late excused"`
	Note      *string   `json:"note"`
}

type MarkRequest struct {
	Records []MarkEntry `json:"records" validate:"required,min=1,dive"`
}

type RecordResponse struct {
	AttendanceRecordID uuid.UUID `json:"attendance_record_id"`
	SessionID          uuid.UUID `json:"session_id"`
	StudentID          uuid.UUID `json:"student_id"`
	StudentName        string    `json:"student_name,omitempty"`
	Status             string    `json:"status"`
	Note               *string   `json:"note,omitempty"`
}
