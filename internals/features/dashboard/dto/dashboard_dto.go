package dto

import "github.com/google/uuid"

// DashboardResponse is the aggregate snapshot for one academy.
type DashboardResponse struct {
	ActiveStudents    int64 `json:"active_students"`
	ActiveInstructors int64 `json:"active_instructors"`
	ActiveLectures    int64 `json:"active_lectures"`

	// Sum of student_class_fee over active students: the academy's
	// expected monthly intake.
	TotalMonthlyFees int64 `json:"total_monthly_fees"`

	// Filled seats vs declared capacity across lectures that declare one.
	// Nil when no lecture declares a capacity.
	OccupancyRate *float64 `json:"occupancy_rate,omitempty"`

	UnreadMessages    int64              `json:"unread_messages"`
	SessionsThisWeek  int64              `json:"sessions_this_week"`
	RecentEnrollments []RecentEnrollment `json:"recent_enrollments"`
}

type RecentEnrollment struct {
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
	LectureID   uuid.UUID `json:"lecture_id"`
	LectureName string    `json:"lecture_name"`
	EnrolledAt  string    `json:"enrolled_at"`
}
