package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/files/controller"
)

func FileRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewFileController(db, v)
	files := api.Group("/files")
	files.Get("/", ctrl.List)
	files.Get("/:id", ctrl.GetByID)
	files.Post("/", ctrl.Create)
	files.Put("/:id", ctrl.Update)
	files.Delete("/:id", ctrl.Delete)
}
