package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/lectures/controller"
)

func LectureRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewLectureController(db, v)
	lectures := api.Group("/lectures")
	lectures.Get("/", ctrl.List)
	lectures.Get("/:id", ctrl.GetByID)
	lectures.Post("/", ctrl.Create)
	lectures.Put("/:id", ctrl.Update)
	lectures.Delete("/:id", ctrl.Delete)

	// Roster / assignment helpers
	lectures.Post("/:id/enroll", ctrl.Enroll)
	lectures.Post("/:id/unenroll", ctrl.Unenroll)
	lectures.Post("/:id/assign", ctrl.Assign)
}
