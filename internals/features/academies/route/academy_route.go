package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/academies/controller"
)

func AcademyRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewAcademyController(db, v)
	academies := api.Group("/academies")
	academies.Get("/", ctrl.List)
	academies.Get("/:id", ctrl.GetByID)
	academies.Post("/", ctrl.Create)
	academies.Put("/:id", ctrl.Update)
	academies.Delete("/:id", ctrl.Delete)
}
