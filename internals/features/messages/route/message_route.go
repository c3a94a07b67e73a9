package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/messages/controller"
)

func MessageRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewMessageController(db, v)
	messages := api.Group("/messages")
	messages.Get("/", ctrl.List)
	messages.Post("/", ctrl.Create)
	messages.Post("/:id/read", ctrl.MarkRead)
	messages.Delete("/:id", ctrl.Delete)
}
