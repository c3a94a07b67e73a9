package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type Paging struct {
	Page   int
	Limit  int
	Offset int
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// ResolvePaging reads ?page= and ?limit= and enforces the 1–100 contract.
// Explicit out-of-range values are rejected, not silently clamped.
func ResolvePaging(c *fiber.Ctx) (Paging, error) {
	pageStr := strings.TrimSpace(c.Query("page"))
	limitStr := strings.TrimSpace(c.Query("limit"))

	page := DefaultPage
	if pageStr != "" {
		n, err := strconv.Atoi(pageStr)
		if err != nil || n < 1 {
			return Paging{}, BadRequest("page must be a positive integer")
		}
		page = n
	}

	limit := DefaultLimit
	if limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 || n > MaxLimit {
			return Paging{}, BadRequest("limit must be between 1 and 100")
		}
		limit = n
	}

	return Paging{Page: page, Limit: limit, Offset: (page - 1) * limit}, nil
}

func BuildPagination(total int64, p Paging) Pagination {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	if totalPages == 0 {
		totalPages = 1
	}
	return Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
