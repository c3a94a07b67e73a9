package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/messages/dto"
	"akademiku_backend/internals/features/messages/model"

	helper "akademiku_backend/internals/helpers"
)

type MessageController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewMessageController(db *gorm.DB, v *validator.Validate) *MessageController {
	return &MessageController{DB: db, Validate: v}
}

// GET /messages?page&limit&recipient_type&recipient_id&search
func (ctrl *MessageController) List(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	paging, err := helper.ResolvePaging(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context()).Model(&model.MessageModel{}).
		Where("message_academy_id = ? AND message_is_active = ?", academyID, true)

	if rt := strings.TrimSpace(c.Query("recipient_type")); rt != "" {
		if rt != model.MessageRecipientStudent && rt != model.MessageRecipientInstructor {
			return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "recipient_type must be student or instructor")
		}
		db = db.Where("message_recipient_type = ?", rt)
	}
	if raw := strings.TrimSpace(c.Query("recipient_id")); raw != "" {
		recipientID, perr := uuid.Parse(raw)
		if perr != nil {
			return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "recipient_id must be a UUID")
		}
		db = db.Where("message_recipient_id = ?", recipientID)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		s := "%" + strings.ToLower(search) + "%"
		db = db.Where("(LOWER(message_subject) LIKE ? OR LOWER(message_body) LIKE ?)", s, s)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to count messages")
	}

	var rows []model.MessageModel
	if err := db.Order("message_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch messages")
	}

	items := make([]*dto.MessageResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.ToMessageResponse(&rows[i]))
	}
	return helper.SuccessList(c, items, helper.BuildPagination(total, paging))
}

// POST /messages — store a message for a student or instructor. Delivery is
// out of scope; the console reads these back.
func (ctrl *MessageController) Create(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.checkRecipient(c, academyID, req.RecipientType, req.RecipientID); err != nil {
		return helper.FromError(c, err)
	}

	msg := req.ToModel(academyID)
	if err := ctrl.DB.WithContext(c.Context()).Create(msg).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to store message")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, dto.ToMessageResponse(msg))
}

// POST /messages/:id/read
func (ctrl *MessageController) MarkRead(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&model.MessageModel{}).
		Where("message_academy_id = ? AND message_id = ? AND message_is_active = ?", academyID, id, true).
		Update("message_is_read", true)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to update message")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, helper.CodeMessageNotFound, "Message not found")
	}
	return helper.Success(c, fiber.Map{"message_id": id})
}

// DELETE /messages/:id — soft delete.
func (ctrl *MessageController) Delete(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&model.MessageModel{}).
		Where("message_academy_id = ? AND message_id = ? AND message_is_active = ?", academyID, id, true).
		Update("message_is_active", false)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to delete message")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, helper.CodeMessageNotFound, "Message not found")
	}
	return helper.Success(c, fiber.Map{"message_id": id})
}

func (ctrl *MessageController) checkRecipient(c *fiber.Ctx, academyID uuid.UUID, recipientType string, recipientID uuid.UUID) error {
	var (
		cnt int64
		err error
	)
	switch recipientType {
	case model.MessageRecipientStudent:
		err = ctrl.DB.WithContext(c.Context()).Table("students").
			Where("student_academy_id = ? AND student_id = ? AND student_is_active = ?", academyID, recipientID, true).
			Count(&cnt).Error
		if err == nil && cnt == 0 {
			return helper.NotFound(helper.CodeStudentNotFound, "Student not found")
		}
	case model.MessageRecipientInstructor:
		err = ctrl.DB.WithContext(c.Context()).Table("instructors").
			Where("instructor_academy_id = ? AND instructor_id = ? AND instructor_is_active = ?", academyID, recipientID, true).
			Count(&cnt).Error
		if err == nil && cnt == 0 {
			return helper.NotFound(helper.CodeInstructorNotFound, "Instructor not found")
		}
	}
	return err
}
