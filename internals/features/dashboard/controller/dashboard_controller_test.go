package controller_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "akademiku_backend/internals/databases"
	academyModel "akademiku_backend/internals/features/academies/model"
	attendanceModel "akademiku_backend/internals/features/attendance/model"
	enrollService "akademiku_backend/internals/features/enrollment/service"
	instructorModel "akademiku_backend/internals/features/instructors/model"
	lectureModel "akademiku_backend/internals/features/lectures/model"
	messageModel "akademiku_backend/internals/features/messages/model"
	studentModel "akademiku_backend/internals/features/students/model"
	routes "akademiku_backend/internals/route"
)

type dashboardData struct {
	ActiveStudents    int64    `json:"active_students"`
	ActiveInstructors int64    `json:"active_instructors"`
	ActiveLectures    int64    `json:"active_lectures"`
	TotalMonthlyFees  int64    `json:"total_monthly_fees"`
	OccupancyRate     *float64 `json:"occupancy_rate"`
	UnreadMessages    int64    `json:"unread_messages"`
	SessionsThisWeek  int64    `json:"sessions_this_week"`
	RecentEnrollments []struct {
		StudentID uuid.UUID `json:"student_id"`
		LectureID uuid.UUID `json:"lecture_id"`
	} `json:"recent_enrollments"`
}

func TestDashboardSummary(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// The real migration path; the partial-index statements are
	// postgres-only and skipped here.
	require.NoError(t, database.Migrate(db))

	academy := academyModel.AcademyModel{AcademyName: "Test Academy"}
	require.NoError(t, db.Create(&academy).Error)

	instructor := instructorModel.InstructorModel{InstructorAcademyID: academy.AcademyID, InstructorName: "Budi"}
	require.NoError(t, db.Create(&instructor).Error)

	capTen := 10
	lecture := lectureModel.LectureModel{
		LectureAcademyID:   academy.AcademyID,
		LectureName:        "Math",
		LectureFee:         30000,
		LectureMaxStudents: &capTen,
	}
	require.NoError(t, db.Create(&lecture).Error)

	var students []studentModel.StudentModel
	for _, name := range []string{"Andi", "Dewi"} {
		s := studentModel.StudentModel{StudentAcademyID: academy.AcademyID, StudentName: name}
		require.NoError(t, db.Create(&s).Error)
		students = append(students, s)

		require.NoError(t, enrollService.EnrollStudent(db, academy.AcademyID, lecture.LectureID, s.StudentID))
		_, err := enrollService.RecomputeStudentFee(db, academy.AcademyID, s.StudentID)
		require.NoError(t, err)
	}
	_, err = enrollService.RecomputeLectureOccupancy(db, academy.AcademyID, lecture.LectureID)
	require.NoError(t, err)

	require.NoError(t, db.Create(&messageModel.MessageModel{
		MessageAcademyID:     academy.AcademyID,
		MessageRecipientType: messageModel.MessageRecipientStudent,
		MessageRecipientID:   students[0].StudentID,
		MessageSubject:       "Fee reminder",
		MessageBody:          "Monthly fee is due.",
	}).Error)

	require.NoError(t, db.Create(&attendanceModel.LectureSessionModel{
		LectureSessionAcademyID: academy.AcademyID,
		LectureSessionLectureID: lecture.LectureID,
		LectureSessionDate:      time.Now().UTC().Add(48 * time.Hour),
		LectureSessionIsActive:  true,
	}).Error)

	app := fiber.New()
	routes.SetupRoutes(app, db)

	req := httptest.NewRequest("GET", "/api/dashboard", nil)
	req.Header.Set("X-Academy-ID", academy.AcademyID.String())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var env struct {
		Success bool          `json:"success"`
		Data    dashboardData `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.True(t, env.Success)

	d := env.Data
	assert.Equal(t, int64(2), d.ActiveStudents)
	assert.Equal(t, int64(1), d.ActiveInstructors)
	assert.Equal(t, int64(1), d.ActiveLectures)
	assert.Equal(t, int64(60000), d.TotalMonthlyFees)
	require.NotNil(t, d.OccupancyRate)
	assert.InDelta(t, 0.2, *d.OccupancyRate, 1e-9)
	assert.Equal(t, int64(1), d.UnreadMessages)
	assert.Equal(t, int64(1), d.SessionsThisWeek)
	assert.Len(t, d.RecentEnrollments, 2)
}
