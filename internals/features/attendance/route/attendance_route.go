package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/attendance/controller"
	"akademiku_backend/internals/middlewares"
)

func AttendanceRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewAttendanceController(db, v)
	attendance := api.Group("/attendance")
	attendance.Get("/sessions", ctrl.ListSessions)
	attendance.Post("/sessions", ctrl.CreateSession)
	attendance.Delete("/sessions/:id", ctrl.DeleteSession)
	attendance.Post("/sessions/:id/mark", middlewares.MutationRateLimiter(), ctrl.MarkAttendance)
	attendance.Get("/sessions/:id/records", ctrl.SessionRecords)
	attendance.Get("/students/:id", ctrl.StudentRecords)
}
