package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/academies/dto"
	"akademiku_backend/internals/features/academies/model"

	helper "akademiku_backend/internals/helpers"
)

type AcademyController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAcademyController(db *gorm.DB, v *validator.Validate) *AcademyController {
	return &AcademyController{DB: db, Validate: v}
}

// GET /academies?page&limit&search
func (ctrl *AcademyController) List(c *fiber.Ctx) error {
	paging, err := helper.ResolvePaging(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context()).Model(&model.AcademyModel{}).
		Where("academy_is_active = ?", true)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		s := "%" + strings.ToLower(search) + "%"
		db = db.Where("(LOWER(academy_name) LIKE ? OR LOWER(COALESCE(academy_email,'')) LIKE ?)", s, s)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to count academies")
	}

	var rows []model.AcademyModel
	if err := db.Order("academy_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch academies")
	}

	items := make([]*dto.AcademyResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.ToAcademyResponse(&rows[i]))
	}
	return helper.SuccessList(c, items, helper.BuildPagination(total, paging))
}

// GET /academies/:id
func (ctrl *AcademyController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	var academy model.AcademyModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("academy_id = ? AND academy_is_active = ?", id, true).
		First(&academy).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, helper.CodeAcademyNotFound, "Academy not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch academy")
	}
	return helper.Success(c, dto.ToAcademyResponse(&academy))
}

// POST /academies
func (ctrl *AcademyController) Create(c *fiber.Ctx) error {
	var req dto.AcademyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	academy := req.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(academy).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, helper.CodeDuplicateEntry, "An academy with this name already exists")
		}
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to create academy")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, dto.ToAcademyResponse(academy))
}

// PUT /academies/:id
func (ctrl *AcademyController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.AcademyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var academy model.AcademyModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("academy_id = ? AND academy_is_active = ?", id, true).
		First(&academy).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, helper.CodeAcademyNotFound, "Academy not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch academy")
	}

	academy.AcademyName = req.AcademyName
	academy.AcademyEmail = req.AcademyEmail
	academy.AcademyPhone = req.AcademyPhone
	academy.AcademyAddress = req.AcademyAddress
	if err := ctrl.DB.WithContext(c.Context()).Save(&academy).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to update academy")
	}
	return helper.Success(c, dto.ToAcademyResponse(&academy))
}

// DELETE /academies/:id — soft delete; scoped routes stop resolving it.
func (ctrl *AcademyController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&model.AcademyModel{}).
		Where("academy_id = ? AND academy_is_active = ?", id, true).
		Update("academy_is_active", false)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to delete academy")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, helper.CodeAcademyNotFound, "Academy not found")
	}
	return helper.Success(c, fiber.Map{"academy_id": id})
}
