package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/students/controller"
)

func StudentRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewStudentController(db, v)
	students := api.Group("/students")
	students.Get("/", ctrl.List)
	students.Get("/:id", ctrl.GetByID)
	students.Post("/", ctrl.Create)
	students.Put("/:id", ctrl.Update)
	students.Delete("/:id", ctrl.Delete)
}
