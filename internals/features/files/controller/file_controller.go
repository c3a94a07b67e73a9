package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/files/dto"
	"akademiku_backend/internals/features/files/model"

	helper "akademiku_backend/internals/helpers"
)

type FileController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewFileController(db *gorm.DB, v *validator.Validate) *FileController {
	return &FileController{DB: db, Validate: v}
}

// GET /files?page&limit&owner_type&owner_id&search
func (ctrl *FileController) List(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	paging, err := helper.ResolvePaging(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context()).Model(&model.FileModel{}).
		Where("file_academy_id = ? AND file_is_active = ?", academyID, true)

	if ot := strings.TrimSpace(c.Query("owner_type")); ot != "" {
		db = db.Where("file_owner_type = ?", ot)
	}
	if raw := strings.TrimSpace(c.Query("owner_id")); raw != "" {
		ownerID, perr := uuid.Parse(raw)
		if perr != nil {
			return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "owner_id must be a UUID")
		}
		db = db.Where("file_owner_id = ?", ownerID)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		s := "%" + strings.ToLower(search) + "%"
		db = db.Where("LOWER(file_name) LIKE ?", s)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to count files")
	}

	var rows []model.FileModel
	if err := db.Order("file_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch files")
	}

	items := make([]*dto.FileResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.ToFileResponse(&rows[i]))
	}
	return helper.SuccessList(c, items, helper.BuildPagination(total, paging))
}

// GET /files/:id
func (ctrl *FileController) GetByID(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	var file model.FileModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("file_academy_id = ? AND file_id = ? AND file_is_active = ?", academyID, id, true).
		First(&file).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, helper.CodeFileNotFound, "File not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch file")
	}
	return helper.Success(c, dto.ToFileResponse(&file))
}

// POST /files — register metadata for an object stored elsewhere.
func (ctrl *FileController) Create(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.FileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.checkOwner(c, academyID, req.OwnerType, req.OwnerID); err != nil {
		return helper.FromError(c, err)
	}

	file := req.ToModel(academyID)
	if err := ctrl.DB.WithContext(c.Context()).Create(file).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to register file")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, dto.ToFileResponse(file))
}

// PUT /files/:id — full metadata update; the owner reference can be
// repointed, the stored object itself is untouched.
func (ctrl *FileController) Update(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.FileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.checkOwner(c, academyID, req.OwnerType, req.OwnerID); err != nil {
		return helper.FromError(c, err)
	}

	var file model.FileModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("file_academy_id = ? AND file_id = ? AND file_is_active = ?", academyID, id, true).
		First(&file).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, helper.CodeFileNotFound, "File not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch file")
	}

	updated := req.ToModel(academyID)
	file.FileOwnerType = updated.FileOwnerType
	file.FileOwnerID = updated.FileOwnerID
	file.FileName = updated.FileName
	file.FileURL = updated.FileURL
	file.FileMimeType = updated.FileMimeType
	file.FileSizeBytes = updated.FileSizeBytes
	file.FileTags = updated.FileTags
	if err := ctrl.DB.WithContext(c.Context()).Save(&file).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to update file")
	}
	return helper.Success(c, dto.ToFileResponse(&file))
}

// DELETE /files/:id — soft delete of the metadata record.
func (ctrl *FileController) Delete(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&model.FileModel{}).
		Where("file_academy_id = ? AND file_id = ? AND file_is_active = ?", academyID, id, true).
		Update("file_is_active", false)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to delete file")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, helper.CodeFileNotFound, "File not found")
	}
	return helper.Success(c, fiber.Map{"file_id": id})
}

func (ctrl *FileController) checkOwner(c *fiber.Ctx, academyID uuid.UUID, ownerType string, ownerID uuid.UUID) error {
	var (
		cnt int64
		err error
	)
	db := ctrl.DB.WithContext(c.Context())
	switch ownerType {
	case model.FileOwnerAcademy:
		err = db.Table("academies").
			Where("academy_id = ? AND academy_is_active = ?", ownerID, true).
			Count(&cnt).Error
		if err == nil && cnt == 0 {
			return helper.NotFound(helper.CodeAcademyNotFound, "Academy not found")
		}
	case model.FileOwnerStudent:
		err = db.Table("students").
			Where("student_academy_id = ? AND student_id = ? AND student_is_active = ?", academyID, ownerID, true).
			Count(&cnt).Error
		if err == nil && cnt == 0 {
			return helper.NotFound(helper.CodeStudentNotFound, "Student not found")
		}
	case model.FileOwnerInstructor:
		err = db.Table("instructors").
			Where("instructor_academy_id = ? AND instructor_id = ? AND instructor_is_active = ?", academyID, ownerID, true).
			Count(&cnt).Error
		if err == nil && cnt == 0 {
			return helper.NotFound(helper.CodeInstructorNotFound, "Instructor not found")
		}
	case model.FileOwnerLecture:
		err = db.Table("lectures").
			Where("lecture_academy_id = ? AND lecture_id = ? AND lecture_is_active = ?", academyID, ownerID, true).
			Count(&cnt).Error
		if err == nil && cnt == 0 {
			return helper.NotFound(helper.CodeLectureNotFound, "Lecture not found")
		}
	}
	return err
}
