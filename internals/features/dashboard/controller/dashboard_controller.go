package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/dashboard/dto"

	helper "akademiku_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

const recentEnrollmentLimit = 5

// GET /dashboard — one aggregate snapshot per academy. Every number is
// computed live; the derived columns on students and lectures keep this
// cheap enough to serve without a cache.
func (ctrl *DashboardController) Summary(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())
	resp := dto.DashboardResponse{
		RecentEnrollments: []dto.RecentEnrollment{},
	}

	if err := db.Table("students").
		Where("student_academy_id = ? AND student_is_active = ?", academyID, true).
		Count(&resp.ActiveStudents).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to compute dashboard")
	}
	if err := db.Table("instructors").
		Where("instructor_academy_id = ? AND instructor_is_active = ?", academyID, true).
		Count(&resp.ActiveInstructors).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to compute dashboard")
	}
	if err := db.Table("lectures").
		Where("lecture_academy_id = ? AND lecture_is_active = ?", academyID, true).
		Count(&resp.ActiveLectures).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to compute dashboard")
	}

	if err := db.Table("students").
		Where("student_academy_id = ? AND student_is_active = ?", academyID, true).
		Select("COALESCE(SUM(student_class_fee), 0)").
		Scan(&resp.TotalMonthlyFees).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to compute dashboard")
	}

	occupancy, err := ctrl.occupancyRate(c, academyID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to compute dashboard")
	}
	resp.OccupancyRate = occupancy

	if err := db.Table("messages").
		Where("message_academy_id = ? AND message_is_active = ? AND message_is_read = ?", academyID, true, false).
		Count(&resp.UnreadMessages).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to compute dashboard")
	}

	now := time.Now().UTC()
	weekEnd := now.AddDate(0, 0, 7)
	if err := db.Table("lecture_sessions").
		Where("lecture_session_academy_id = ? AND lecture_session_is_active = ?", academyID, true).
		Where("lecture_session_date >= ? AND lecture_session_date < ?", now, weekEnd).
		Count(&resp.SessionsThisWeek).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to compute dashboard")
	}

	recent, err := ctrl.recentEnrollments(c, academyID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to compute dashboard")
	}
	resp.RecentEnrollments = recent

	return helper.Success(c, resp)
}

// occupancyRate is filled seats over declared capacity, restricted to
// lectures that declare a capacity. Nil when none do.
func (ctrl *DashboardController) occupancyRate(c *fiber.Ctx, academyID uuid.UUID) (*float64, error) {
	var row struct {
		Filled   int64
		Capacity int64
	}
	err := ctrl.DB.WithContext(c.Context()).Table("lectures").
		Where("lecture_academy_id = ? AND lecture_is_active = ?", academyID, true).
		Where("lecture_max_students IS NOT NULL AND lecture_max_students > 0").
		Select("COALESCE(SUM(lecture_current_students), 0) AS filled, COALESCE(SUM(lecture_max_students), 0) AS capacity").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.Capacity == 0 {
		return nil, nil
	}
	rate := float64(row.Filled) / float64(row.Capacity)
	return &rate, nil
}

func (ctrl *DashboardController) recentEnrollments(c *fiber.Ctx, academyID uuid.UUID) ([]dto.RecentEnrollment, error) {
	var rows []struct {
		StudentID   uuid.UUID
		StudentName string
		LectureID   uuid.UUID
		LectureName string
		EnrolledAt  time.Time
	}
	err := ctrl.DB.WithContext(c.Context()).Table("student_lectures").
		Select(`students.student_id AS student_id,
			students.student_name AS student_name,
			lectures.lecture_id AS lecture_id,
			lectures.lecture_name AS lecture_name,
			student_lectures.student_lecture_created_at AS enrolled_at`).
		Joins("JOIN students ON students.student_id = student_lectures.student_lecture_student_id").
		Joins("JOIN lectures ON lectures.lecture_id = student_lectures.student_lecture_lecture_id").
		Where("student_lectures.student_lecture_academy_id = ? AND student_lectures.student_lecture_is_active = ?", academyID, true).
		Order("student_lectures.student_lecture_created_at DESC").
		Limit(recentEnrollmentLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.RecentEnrollment, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.RecentEnrollment{
			StudentID:   r.StudentID,
			StudentName: r.StudentName,
			LectureID:   r.LectureID,
			LectureName: r.LectureName,
			EnrolledAt:  r.EnrolledAt.Format("2006-01-02 15:04:05"),
		})
	}
	return out, nil
}
