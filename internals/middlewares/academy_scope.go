package middlewares

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "akademiku_backend/internals/helpers"
)

// AcademyScope resolves the tenant from the X-Academy-ID header, verifies the
// academy exists and is active, and stores the id in c.Locals("academy_id").
// Every scoped query downstream filters on this id.
func AcademyScope(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("X-Academy-ID")
		if raw == "" {
			return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "X-Academy-ID header is required")
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "X-Academy-ID must be a UUID")
		}

		var exists bool
		err = db.WithContext(c.Context()).
			Raw("SELECT EXISTS (SELECT 1 FROM academies WHERE academy_id = ? AND academy_is_active = ?)", id, true).
			Scan(&exists).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to resolve academy scope")
		}
		if !exists {
			return helper.Error(c, fiber.StatusNotFound, helper.CodeAcademyNotFound, "Academy not found")
		}

		c.Locals("academy_id", id)
		return c.Next()
	}
}
