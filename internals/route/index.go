package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	AcademyRoutes "akademiku_backend/internals/features/academies/route"
	AttendanceRoutes "akademiku_backend/internals/features/attendance/route"
	DashboardRoutes "akademiku_backend/internals/features/dashboard/route"
	FileRoutes "akademiku_backend/internals/features/files/route"
	InstructorRoutes "akademiku_backend/internals/features/instructors/route"
	LectureRoutes "akademiku_backend/internals/features/lectures/route"
	MessageRoutes "akademiku_backend/internals/features/messages/route"
	StudentRoutes "akademiku_backend/internals/features/students/route"
	"akademiku_backend/internals/middlewares"
)

// SetupRoutes mounts the whole API. Academy management lives outside the
// tenant scope; everything else requires a valid X-Academy-ID header.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	v := validator.New()

	api := app.Group("/api")
	AcademyRoutes.AcademyRoutes(api, db, v)

	scoped := api.Group("/", middlewares.AcademyScope(db))
	StudentRoutes.StudentRoutes(scoped, db, v)
	InstructorRoutes.InstructorRoutes(scoped, db, v)
	LectureRoutes.LectureRoutes(scoped, db, v)
	AttendanceRoutes.AttendanceRoutes(scoped, db, v)
	MessageRoutes.MessageRoutes(scoped, db, v)
	FileRoutes.FileRoutes(scoped, db, v)
	DashboardRoutes.DashboardRoutes(scoped, db)
}
