package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParseUUIDParam parses a :name path parameter as a UUID.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, BadRequest("invalid " + name)
	}
	return id, nil
}

// GetAcademyID reads the tenant id resolved by the academy scope middleware.
func GetAcademyID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals("academy_id")
	id, ok := raw.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, BadRequest("academy scope missing")
	}
	return id, nil
}
