package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/instructors/dto"
	"akademiku_backend/internals/features/instructors/model"

	enrollService "akademiku_backend/internals/features/enrollment/service"
	helper "akademiku_backend/internals/helpers"
)

type InstructorController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewInstructorController(db *gorm.DB, v *validator.Validate) *InstructorController {
	return &InstructorController{DB: db, Validate: v}
}

// GET /instructors?page&limit&search
func (ctrl *InstructorController) List(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	paging, err := helper.ResolvePaging(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context()).Model(&model.InstructorModel{}).
		Where("instructor_academy_id = ? AND instructor_is_active = ?", academyID, true)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		s := "%" + strings.ToLower(search) + "%"
		db = db.Where(`(LOWER(instructor_name) LIKE ?
			OR LOWER(COALESCE(instructor_email,'')) LIKE ?
			OR LOWER(COALESCE(instructor_phone,'')) LIKE ?
			OR LOWER(COALESCE(instructor_specialty,'')) LIKE ?)`, s, s, s, s)
	}

	if raw := strings.TrimSpace(c.Query("lecture_id")); raw != "" {
		lectureID, perr := uuid.Parse(raw)
		if perr != nil {
			return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "lecture_id must be a UUID")
		}
		db = db.Where(`instructor_id IN (
			SELECT instructor_lecture_instructor_id FROM instructor_lectures
			WHERE instructor_lecture_lecture_id = ? AND instructor_lecture_is_active = ?)`, lectureID, true)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to count instructors")
	}

	var rows []model.InstructorModel
	if err := db.Order("instructor_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch instructors")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.InstructorID)
	}
	lectureMap, err := fetchAssignedLectures(ctrl.DB.WithContext(c.Context()), academyID, ids)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch assignments")
	}

	items := make([]*dto.InstructorResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.ToInstructorResponse(&rows[i], lectureMap[rows[i].InstructorID]))
	}
	return helper.SuccessList(c, items, helper.BuildPagination(total, paging))
}

// GET /instructors/:id
func (ctrl *InstructorController) GetByID(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	return ctrl.respondWithInstructor(c, academyID, id, fiber.StatusOK)
}

// POST /instructors
func (ctrl *InstructorController) Create(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.InstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	instructor := req.ToModel(academyID)

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(instructor).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return helper.Conflict("An instructor with this email already exists")
			}
			return err
		}
		_, err := enrollService.SetInstructorLectures(tx, academyID, instructor.InstructorID, req.LectureIDs)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	return ctrl.respondWithInstructor(c, academyID, instructor.InstructorID, fiber.StatusCreated)
}

// PUT /instructors/:id — full update, replaces the assigned lecture set.
func (ctrl *InstructorController) Update(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.InstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var instructor model.InstructorModel
		if err := tx.
			Where("instructor_academy_id = ? AND instructor_id = ? AND instructor_is_active = ?", academyID, id, true).
			First(&instructor).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return helper.NotFound(helper.CodeInstructorNotFound, "Instructor not found")
			}
			return err
		}

		instructor.InstructorName = req.InstructorName
		instructor.InstructorEmail = req.InstructorEmail
		instructor.InstructorPhone = req.InstructorPhone
		instructor.InstructorSpecialty = req.InstructorSpecialty
		instructor.InstructorHireDate = req.InstructorHireDate
		instructor.InstructorMonthlySalary = req.InstructorMonthlySalary
		if err := tx.Save(&instructor).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return helper.Conflict("An instructor with this email already exists")
			}
			return err
		}

		_, err := enrollService.SetInstructorLectures(tx, academyID, id, req.LectureIDs)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	return ctrl.respondWithInstructor(c, academyID, id, fiber.StatusOK)
}

// DELETE /instructors/:id — soft delete; releases all taught lectures.
func (ctrl *InstructorController) Delete(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.InstructorModel{}).
			Where("instructor_academy_id = ? AND instructor_id = ? AND instructor_is_active = ?", academyID, id, true).
			Update("instructor_is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.NotFound(helper.CodeInstructorNotFound, "Instructor not found")
		}

		_, err := enrollService.DeactivateInstructorLinks(tx, academyID, id)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	return helper.Success(c, fiber.Map{"instructor_id": id})
}

func (ctrl *InstructorController) respondWithInstructor(c *fiber.Ctx, academyID, id uuid.UUID, status int) error {
	var instructor model.InstructorModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("instructor_academy_id = ? AND instructor_id = ? AND instructor_is_active = ?", academyID, id, true).
		First(&instructor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, helper.CodeInstructorNotFound, "Instructor not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch instructor")
	}

	lectureMap, err := fetchAssignedLectures(ctrl.DB.WithContext(c.Context()), academyID, []uuid.UUID{id})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch assignments")
	}
	return helper.SuccessWithCode(c, status, dto.ToInstructorResponse(&instructor, lectureMap[id]))
}

func fetchAssignedLectures(db *gorm.DB, academyID uuid.UUID, instructorIDs []uuid.UUID) (map[uuid.UUID][]dto.AssignedLecture, error) {
	out := make(map[uuid.UUID][]dto.AssignedLecture, len(instructorIDs))
	if len(instructorIDs) == 0 {
		return out, nil
	}

	type row struct {
		InstructorID uuid.UUID `gorm:"column:instructor_lecture_instructor_id"`
		LectureID    uuid.UUID `gorm:"column:lecture_id"`
		LectureName  string    `gorm:"column:lecture_name"`
	}
	var rows []row
	err := db.Table("instructor_lectures").
		Select("instructor_lecture_instructor_id, lectures.lecture_id, lectures.lecture_name").
		Joins("JOIN lectures ON lectures.lecture_id = instructor_lectures.instructor_lecture_lecture_id AND lectures.lecture_is_active = ?", true).
		Where("instructor_lecture_academy_id = ? AND instructor_lecture_instructor_id IN ? AND instructor_lecture_is_active = ?",
			academyID, instructorIDs, true).
		Order("lectures.lecture_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.InstructorID] = append(out[r.InstructorID], dto.AssignedLecture{
			LectureID:   r.LectureID,
			LectureName: r.LectureName,
		})
	}
	return out, nil
}
