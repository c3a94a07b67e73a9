package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/instructors/controller"
)

func InstructorRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewInstructorController(db, v)
	instructors := api.Group("/instructors")
	instructors.Get("/", ctrl.List)
	instructors.Get("/:id", ctrl.GetByID)
	instructors.Post("/", ctrl.Create)
	instructors.Put("/:id", ctrl.Update)
	instructors.Delete("/:id", ctrl.Delete)
}
