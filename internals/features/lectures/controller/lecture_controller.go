package controller

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/lectures/dto"
	"akademiku_backend/internals/features/lectures/model"

	enrollService "akademiku_backend/internals/features/enrollment/service"
	helper "akademiku_backend/internals/helpers"
)

type LectureController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewLectureController(db *gorm.DB, v *validator.Validate) *LectureController {
	return &LectureController{DB: db, Validate: v}
}

// GET /lectures?page&limit&search&instructor_id
func (ctrl *LectureController) List(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	paging, err := helper.ResolvePaging(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context()).Model(&model.LectureModel{}).
		Where("lecture_academy_id = ? AND lecture_is_active = ?", academyID, true)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		s := "%" + strings.ToLower(search) + "%"
		db = db.Where(`(LOWER(lecture_name) LIKE ? OR LOWER(COALESCE(lecture_description,'')) LIKE ?)`, s, s)
	}

	if raw := strings.TrimSpace(c.Query("instructor_id")); raw != "" {
		instructorID, perr := uuid.Parse(raw)
		if perr != nil {
			return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "instructor_id must be a UUID")
		}
		db = db.Where("lecture_instructor_id = ?", instructorID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to count lectures")
	}

	var rows []model.LectureModel
	if err := db.Order("lecture_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch lectures")
	}

	briefs, err := ctrl.instructorBriefs(c, academyID, rows)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch instructors")
	}

	items := make([]*dto.LectureResponse, 0, len(rows))
	for i := range rows {
		var brief *dto.LectureInstructorBrief
		if rows[i].LectureInstructorID != nil {
			brief = briefs[*rows[i].LectureInstructorID]
		}
		items = append(items, dto.ToLectureResponse(&rows[i], brief, nil))
	}
	return helper.SuccessList(c, items, helper.BuildPagination(total, paging))
}

// GET /lectures/:id — detail with instructor and roster.
func (ctrl *LectureController) GetByID(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	return ctrl.respondWithLecture(c, academyID, id, fiber.StatusOK)
}

// POST /lectures
func (ctrl *LectureController) Create(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.LectureRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	lecture := req.ToModel(academyID)

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lecture).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return helper.Conflict("A lecture with this name already exists")
			}
			return err
		}
		if req.InstructorID != nil {
			if err := enrollService.AssignLectureInstructor(tx, academyID, lecture.LectureID, req.InstructorID); err != nil {
				return err
			}
		}
		return applyLectureRoster(tx, academyID, lecture.LectureID, req.StudentIDs)
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	return ctrl.respondWithLecture(c, academyID, lecture.LectureID, fiber.StatusCreated)
}

// PUT /lectures/:id — full update: replaces roster and instructor, and
// cascades fee edits into every enrolled student's cached fee.
func (ctrl *LectureController) Update(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.LectureRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var lecture model.LectureModel
		if err := tx.
			Where("lecture_academy_id = ? AND lecture_id = ? AND lecture_is_active = ?", academyID, id, true).
			First(&lecture).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return helper.NotFound(helper.CodeLectureNotFound, "Lecture not found")
			}
			return err
		}

		lecture.LectureName = req.LectureName
		lecture.LectureDescription = req.LectureDescription
		lecture.LectureFee = req.LectureFee
		lecture.LectureMaxStudents = req.LectureMaxStudents
		if len(req.LectureSchedule) > 0 {
			raw, _ := json.Marshal(req.LectureSchedule)
			lecture.LectureSchedule = datatypes.JSON(raw)
		} else {
			lecture.LectureSchedule = nil
		}
		if err := tx.Save(&lecture).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return helper.Conflict("A lecture with this name already exists")
			}
			return err
		}

		if err := enrollService.AssignLectureInstructor(tx, academyID, id, req.InstructorID); err != nil {
			return err
		}

		// Roster replacement returns old∪new student ids, so recomputing
		// fees for that set also covers a fee edit: every student enrolled
		// before or after the call is in it.
		affected, err := enrollService.ReplaceLectureRoster(tx, academyID, id, req.StudentIDs)
		if err != nil {
			return err
		}
		if _, err := enrollService.RecomputeLectureOccupancy(tx, academyID, id); err != nil {
			return err
		}
		return enrollService.RecomputeStudentFees(tx, academyID, affected)
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	return ctrl.respondWithLecture(c, academyID, id, fiber.StatusOK)
}

// DELETE /lectures/:id — soft delete. Deactivates every student link and
// the instructor link, then recomputes all former members' fees.
func (ctrl *LectureController) Delete(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.LectureModel{}).
			Where("lecture_academy_id = ? AND lecture_id = ? AND lecture_is_active = ?", academyID, id, true).
			Update("lecture_is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.NotFound(helper.CodeLectureNotFound, "Lecture not found")
		}

		studentIDs, err := enrollService.DeactivateLectureStudentLinks(tx, academyID, id)
		if err != nil {
			return err
		}
		if err := enrollService.RecomputeStudentFees(tx, academyID, studentIDs); err != nil {
			return err
		}
		if _, err := enrollService.RecomputeLectureOccupancy(tx, academyID, id); err != nil {
			return err
		}
		return enrollService.AssignLectureInstructor(tx, academyID, id, nil)
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	return helper.Success(c, fiber.Map{"lecture_id": id})
}

// POST /lectures/:id/enroll — add one student to the roster.
func (ctrl *LectureController) Enroll(c *fiber.Ctx) error {
	return ctrl.rosterMutation(c, true)
}

// POST /lectures/:id/unenroll — remove one student from the roster.
func (ctrl *LectureController) Unenroll(c *fiber.Ctx) error {
	return ctrl.rosterMutation(c, false)
}

func (ctrl *LectureController) rosterMutation(c *fiber.Ctx, enroll bool) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.EnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := ensureLectureActive(tx, academyID, id); err != nil {
			return err
		}
		if enroll {
			if err := enrollService.EnrollStudent(tx, academyID, id, req.StudentID); err != nil {
				return err
			}
		} else {
			if err := enrollService.UnenrollStudent(tx, academyID, id, req.StudentID); err != nil {
				return err
			}
		}
		if _, err := enrollService.RecomputeStudentFee(tx, academyID, req.StudentID); err != nil {
			return err
		}
		_, err := enrollService.RecomputeLectureOccupancy(tx, academyID, id)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	return ctrl.respondWithLecture(c, academyID, id, fiber.StatusOK)
}

// POST /lectures/:id/assign — set or clear the lecture's instructor.
func (ctrl *LectureController) Assign(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "Invalid request body")
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := ensureLectureActive(tx, academyID, id); err != nil {
			return err
		}
		return enrollService.AssignLectureInstructor(tx, academyID, id, req.InstructorID)
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	return ctrl.respondWithLecture(c, academyID, id, fiber.StatusOK)
}

func applyLectureRoster(tx *gorm.DB, academyID, lectureID uuid.UUID, studentIDs []uuid.UUID) error {
	affected, err := enrollService.ReplaceLectureRoster(tx, academyID, lectureID, studentIDs)
	if err != nil {
		return err
	}
	if _, err := enrollService.RecomputeLectureOccupancy(tx, academyID, lectureID); err != nil {
		return err
	}
	return enrollService.RecomputeStudentFees(tx, academyID, affected)
}

func ensureLectureActive(tx *gorm.DB, academyID, lectureID uuid.UUID) error {
	var cnt int64
	if err := tx.Model(&model.LectureModel{}).
		Where("lecture_academy_id = ? AND lecture_id = ? AND lecture_is_active = ?", academyID, lectureID, true).
		Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return helper.NotFound(helper.CodeLectureNotFound, "Lecture not found")
	}
	return nil
}

func (ctrl *LectureController) respondWithLecture(c *fiber.Ctx, academyID, id uuid.UUID, status int) error {
	var lecture model.LectureModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("lecture_academy_id = ? AND lecture_id = ? AND lecture_is_active = ?", academyID, id, true).
		First(&lecture).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, helper.CodeLectureNotFound, "Lecture not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch lecture")
	}

	var brief *dto.LectureInstructorBrief
	if lecture.LectureInstructorID != nil {
		var row dto.LectureInstructorBrief
		err := ctrl.DB.WithContext(c.Context()).Table("instructors").
			Select("instructor_id, instructor_name").
			Where("instructor_academy_id = ? AND instructor_id = ?", academyID, *lecture.LectureInstructorID).
			Scan(&row).Error
		if err == nil && row.InstructorID != uuid.Nil {
			brief = &row
		}
	}

	var students []dto.EnrolledStudent
	err := ctrl.DB.WithContext(c.Context()).Table("student_lectures").
		Select("students.student_id, students.student_name").
		Joins("JOIN students ON students.student_id = student_lectures.student_lecture_student_id AND students.student_is_active = ?", true).
		Where("student_lecture_academy_id = ? AND student_lecture_lecture_id = ? AND student_lecture_is_active = ?",
			academyID, id, true).
		Order("students.student_name ASC").
		Scan(&students).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch roster")
	}

	return helper.SuccessWithCode(c, status, dto.ToLectureResponse(&lecture, brief, students))
}

// instructorBriefs batch-loads instructor names for a page of lectures.
func (ctrl *LectureController) instructorBriefs(c *fiber.Ctx, academyID uuid.UUID, rows []model.LectureModel) (map[uuid.UUID]*dto.LectureInstructorBrief, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]struct{}, len(rows))
	for i := range rows {
		if rows[i].LectureInstructorID == nil {
			continue
		}
		id := *rows[i].LectureInstructorID
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	out := make(map[uuid.UUID]*dto.LectureInstructorBrief, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var briefs []dto.LectureInstructorBrief
	err := ctrl.DB.WithContext(c.Context()).Table("instructors").
		Select("instructor_id, instructor_name").
		Where("instructor_academy_id = ? AND instructor_id IN ?", academyID, ids).
		Scan(&briefs).Error
	if err != nil {
		return nil, err
	}
	for i := range briefs {
		out[briefs[i].InstructorID] = &briefs[i]
	}
	return out, nil
}
