package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/students/dto"
	"akademiku_backend/internals/features/students/model"

	enrollService "akademiku_backend/internals/features/enrollment/service"
	helper "akademiku_backend/internals/helpers"
)

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewStudentController(db *gorm.DB, v *validator.Validate) *StudentController {
	return &StudentController{DB: db, Validate: v}
}

// GET /students?page&limit&search&lecture_id
func (ctrl *StudentController) List(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	paging, err := helper.ResolvePaging(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context()).Model(&model.StudentModel{}).
		Where("student_academy_id = ? AND student_is_active = ?", academyID, true)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		s := "%" + strings.ToLower(search) + "%"
		db = db.Where(`(LOWER(student_name) LIKE ?
			OR LOWER(COALESCE(student_email,'')) LIKE ?
			OR LOWER(COALESCE(student_phone,'')) LIKE ?
			OR LOWER(COALESCE(student_guardian_name,'')) LIKE ?)`, s, s, s, s)
	}

	if raw := strings.TrimSpace(c.Query("lecture_id")); raw != "" {
		lectureID, perr := uuid.Parse(raw)
		if perr != nil {
			return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "lecture_id must be a UUID")
		}
		db = db.Where(`student_id IN (
			SELECT student_lecture_student_id FROM student_lectures
			WHERE student_lecture_lecture_id = ? AND student_lecture_is_active = ?)`, lectureID, true)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to count students")
	}

	var rows []model.StudentModel
	if err := db.Order("student_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch students")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.StudentID)
	}
	lectureMap, err := fetchEnrolledLectures(ctrl.DB.WithContext(c.Context()), academyID, ids)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch enrollments")
	}

	items := make([]*dto.StudentResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.ToStudentResponse(&rows[i], lectureMap[rows[i].StudentID]))
	}
	return helper.SuccessList(c, items, helper.BuildPagination(total, paging))
}

// GET /students/:id
func (ctrl *StudentController) GetByID(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	return ctrl.respondWithStudent(c, academyID, id, fiber.StatusOK)
}

// POST /students
func (ctrl *StudentController) Create(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	student := req.ToModel(academyID)

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(student).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return helper.Conflict("A student with this email already exists")
			}
			return err
		}
		return applyStudentLinks(tx, academyID, student.StudentID, req.LectureIDs)
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	return ctrl.respondWithStudent(c, academyID, student.StudentID, fiber.StatusCreated)
}

// PUT /students/:id — full update, replaces the enrolled lecture set.
func (ctrl *StudentController) Update(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var student model.StudentModel
		if err := tx.
			Where("student_academy_id = ? AND student_id = ? AND student_is_active = ?", academyID, id, true).
			First(&student).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return helper.NotFound(helper.CodeStudentNotFound, "Student not found")
			}
			return err
		}

		student.StudentName = req.StudentName
		student.StudentEmail = req.StudentEmail
		student.StudentPhone = req.StudentPhone
		student.StudentGuardianName = req.StudentGuardianName
		student.StudentGuardianPhone = req.StudentGuardianPhone
		student.StudentBirthDate = req.StudentBirthDate
		student.StudentNotes = req.StudentNotes
		if err := tx.Save(&student).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return helper.Conflict("A student with this email already exists")
			}
			return err
		}

		return applyStudentLinks(tx, academyID, student.StudentID, req.LectureIDs)
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	return ctrl.respondWithStudent(c, academyID, id, fiber.StatusOK)
}

// DELETE /students/:id — soft delete; cascades link deactivation and
// occupancy recompute for every lecture the student was enrolled in.
func (ctrl *StudentController) Delete(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.StudentModel{}).
			Where("student_academy_id = ? AND student_id = ? AND student_is_active = ?", academyID, id, true).
			Update("student_is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.NotFound(helper.CodeStudentNotFound, "Student not found")
		}

		lectureIDs, err := enrollService.DeactivateStudentLinks(tx, academyID, id)
		if err != nil {
			return err
		}
		if err := enrollService.RecomputeLectureOccupancies(tx, academyID, lectureIDs); err != nil {
			return err
		}
		_, err = enrollService.RecomputeStudentFee(tx, academyID, id)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	return helper.Success(c, fiber.Map{"student_id": id})
}

// applyStudentLinks runs the link diff + aggregate recompute sequence shared
// by Create and Update. A nil/empty set clears all enrollments.
func applyStudentLinks(tx *gorm.DB, academyID, studentID uuid.UUID, lectureIDs []uuid.UUID) error {
	affected, err := enrollService.SetStudentLectures(tx, academyID, studentID, lectureIDs)
	if err != nil {
		return err
	}
	if _, err := enrollService.RecomputeStudentFee(tx, academyID, studentID); err != nil {
		return err
	}
	return enrollService.RecomputeLectureOccupancies(tx, academyID, affected)
}

// respondWithStudent re-reads the committed row plus enrollments.
func (ctrl *StudentController) respondWithStudent(c *fiber.Ctx, academyID, id uuid.UUID, status int) error {
	var student model.StudentModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("student_academy_id = ? AND student_id = ? AND student_is_active = ?", academyID, id, true).
		First(&student).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, helper.CodeStudentNotFound, "Student not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch student")
	}

	lectureMap, err := fetchEnrolledLectures(ctrl.DB.WithContext(c.Context()), academyID, []uuid.UUID{id})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch enrollments")
	}
	return helper.SuccessWithCode(c, status, dto.ToStudentResponse(&student, lectureMap[id]))
}

// fetchEnrolledLectures loads active-lecture briefs for a batch of students
// in one query.
func fetchEnrolledLectures(db *gorm.DB, academyID uuid.UUID, studentIDs []uuid.UUID) (map[uuid.UUID][]dto.EnrolledLecture, error) {
	out := make(map[uuid.UUID][]dto.EnrolledLecture, len(studentIDs))
	if len(studentIDs) == 0 {
		return out, nil
	}

	type row struct {
		StudentID   uuid.UUID `gorm:"column:student_lecture_student_id"`
		LectureID   uuid.UUID `gorm:"column:lecture_id"`
		LectureName string    `gorm:"column:lecture_name"`
		LectureFee  int64     `gorm:"column:lecture_fee"`
	}
	var rows []row
	err := db.Table("student_lectures").
		Select("student_lecture_student_id, lectures.lecture_id, lectures.lecture_name, lectures.lecture_fee").
		Joins("JOIN lectures ON lectures.lecture_id = student_lectures.student_lecture_lecture_id AND lectures.lecture_is_active = ?", true).
		Where("student_lecture_academy_id = ? AND student_lecture_student_id IN ? AND student_lecture_is_active = ?",
			academyID, studentIDs, true).
		Order("lectures.lecture_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.StudentID] = append(out[r.StudentID], dto.EnrolledLecture{
			LectureID:   r.LectureID,
			LectureName: r.LectureName,
			LectureFee:  r.LectureFee,
		})
	}
	return out, nil
}
