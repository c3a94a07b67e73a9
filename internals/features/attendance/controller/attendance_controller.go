package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/attendance/dto"
	"akademiku_backend/internals/features/attendance/model"

	enrollService "akademiku_backend/internals/features/enrollment/service"
	helper "akademiku_backend/internals/helpers"
)

type AttendanceController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAttendanceController(db *gorm.DB, v *validator.Validate) *AttendanceController {
	return &AttendanceController{DB: db, Validate: v}
}

// GET /attendance/sessions?lecture_id&page&limit
func (ctrl *AttendanceController) ListSessions(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	paging, err := helper.ResolvePaging(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context()).Model(&model.LectureSessionModel{}).
		Where("lecture_session_academy_id = ? AND lecture_session_is_active = ?", academyID, true)

	if raw := strings.TrimSpace(c.Query("lecture_id")); raw != "" {
		lectureID, perr := uuid.Parse(raw)
		if perr != nil {
			return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "lecture_id must be a UUID")
		}
		db = db.Where("lecture_session_lecture_id = ?", lectureID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to count sessions")
	}

	var rows []model.LectureSessionModel
	if err := db.Order("lecture_session_date DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch sessions")
	}

	names, err := ctrl.lectureNames(c, academyID, rows)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch lectures")
	}

	items := make([]*dto.SessionResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.ToSessionResponse(&rows[i], names[rows[i].LectureSessionLectureID]))
	}
	return helper.SuccessList(c, items, helper.BuildPagination(total, paging))
}

// POST /attendance/sessions
func (ctrl *AttendanceController) CreateSession(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var cnt int64
	if err := ctrl.DB.WithContext(c.Context()).Table("lectures").
		Where("lecture_academy_id = ? AND lecture_id = ? AND lecture_is_active = ?", academyID, req.LectureID, true).
		Count(&cnt).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to check lecture")
	}
	if cnt == 0 {
		return helper.Error(c, fiber.StatusNotFound, helper.CodeLectureNotFound, "Lecture not found")
	}

	session := model.LectureSessionModel{
		LectureSessionAcademyID: academyID,
		LectureSessionLectureID: req.LectureID,
		LectureSessionDate:      req.Date,
		LectureSessionTopic:     req.Topic,
		LectureSessionIsActive:  true,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&session).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to create session")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, dto.ToSessionResponse(&session, ""))
}

// DELETE /attendance/sessions/:id — soft delete.
func (ctrl *AttendanceController) DeleteSession(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&model.LectureSessionModel{}).
		Where("lecture_session_academy_id = ? AND lecture_session_id = ? AND lecture_session_is_active = ?", academyID, id, true).
		Update("lecture_session_is_active", false)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to delete session")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, helper.CodeSessionNotFound, "Session not found")
	}
	return helper.Success(c, fiber.Map{"lecture_session_id": id})
}

// POST /attendance/sessions/:id/mark — bulk upsert attendance by
// (session, student) natural key. Only actively-enrolled students of the
// session's lecture can be marked.
func (ctrl *AttendanceController) MarkAttendance(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	sessionID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	var req dto.MarkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.CodeValidationError, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var session model.LectureSessionModel
		if err := tx.
			Where("lecture_session_academy_id = ? AND lecture_session_id = ? AND lecture_session_is_active = ?",
				academyID, sessionID, true).
			First(&session).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return helper.NotFound(helper.CodeSessionNotFound, "Session not found")
			}
			return err
		}

		enrolled, err := enrollService.ActiveStudentIDsOfLecture(tx, academyID, session.LectureSessionLectureID)
		if err != nil {
			return err
		}
		enrolledSet := make(map[uuid.UUID]struct{}, len(enrolled))
		for _, id := range enrolled {
			enrolledSet[id] = struct{}{}
		}

		for _, entry := range req.Records {
			if _, ok := enrolledSet[entry.StudentID]; !ok {
				return helper.NotFound(helper.CodeStudentNotFound, "Student is not enrolled in this lecture")
			}

			var record model.AttendanceRecordModel
			err := tx.
				Where("attendance_record_academy_id = ? AND attendance_record_session_id = ? AND attendance_record_student_id = ?",
					academyID, sessionID, entry.StudentID).
				First(&record).Error
			switch {
			case err == gorm.ErrRecordNotFound:
				record = model.AttendanceRecordModel{
					AttendanceRecordAcademyID: academyID,
					AttendanceRecordSessionID: sessionID,
					AttendanceRecordStudentID: entry.StudentID,
					AttendanceRecordStatus:    entry.Status,
					AttendanceRecordNote:      entry.Note,
				}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				if err := tx.Model(&record).Updates(map[string]interface{}{
					"attendance_record_status": entry.Status,
					"attendance_record_note":   entry.Note,
				}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return helper.FromError(c, err)
	}

	return ctrl.listSessionRecords(c, academyID, sessionID)
}

// GET /attendance/sessions/:id/records
func (ctrl *AttendanceController) SessionRecords(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	sessionID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	return ctrl.listSessionRecords(c, academyID, sessionID)
}

// GET /attendance/students/:id — a student's attendance history.
func (ctrl *AttendanceController) StudentRecords(c *fiber.Ctx) error {
	academyID, err := helper.GetAcademyID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	studentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	paging, err := helper.ResolvePaging(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context()).Model(&model.AttendanceRecordModel{}).
		Where("attendance_record_academy_id = ? AND attendance_record_student_id = ?", academyID, studentID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to count records")
	}

	var rows []model.AttendanceRecordModel
	if err := db.Order("attendance_record_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch records")
	}

	items := make([]dto.RecordResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.RecordResponse{
			AttendanceRecordID: r.AttendanceRecordID,
			SessionID:          r.AttendanceRecordSessionID,
			StudentID:          r.AttendanceRecordStudentID,
			Status:             r.AttendanceRecordStatus,
			Note:               r.AttendanceRecordNote,
		})
	}
	return helper.SuccessList(c, items, helper.BuildPagination(total, paging))
}

func (ctrl *AttendanceController) listSessionRecords(c *fiber.Ctx, academyID, sessionID uuid.UUID) error {
	type row struct {
		AttendanceRecordID uuid.UUID `gorm:"column:attendance_record_id"`
		SessionID          uuid.UUID `gorm:"column:attendance_record_session_id"`
		StudentID          uuid.UUID `gorm:"column:attendance_record_student_id"`
		StudentName        string    `gorm:"column:student_name"`
		Status             string    `gorm:"column:attendance_record_status"`
		Note               *string   `gorm:"column:attendance_record_note"`
	}
	var rows []row
	err := ctrl.DB.WithContext(c.Context()).Table("attendance_records").
		Select(`attendance_record_id, attendance_record_session_id, attendance_record_student_id,
			students.student_name, attendance_record_status, attendance_record_note`).
		Joins("JOIN students ON students.student_id = attendance_records.attendance_record_student_id").
		Where("attendance_record_academy_id = ? AND attendance_record_session_id = ?", academyID, sessionID).
		Order("students.student_name ASC").
		Scan(&rows).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, helper.CodeInternalError, "Failed to fetch records")
	}

	items := make([]dto.RecordResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.RecordResponse{
			AttendanceRecordID: r.AttendanceRecordID,
			SessionID:          r.SessionID,
			StudentID:          r.StudentID,
			StudentName:        r.StudentName,
			Status:             r.Status,
			Note:               r.Note,
		})
	}
	return helper.Success(c, fiber.Map{"items": items})
}

func (ctrl *AttendanceController) lectureNames(c *fiber.Ctx, academyID uuid.UUID, rows []model.LectureSessionModel) (map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]struct{}, len(rows))
	for i := range rows {
		id := rows[i].LectureSessionLectureID
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	type row struct {
		LectureID   uuid.UUID `gorm:"column:lecture_id"`
		LectureName string    `gorm:"column:lecture_name"`
	}
	var names []row
	err := ctrl.DB.WithContext(c.Context()).Table("lectures").
		Select("lecture_id, lecture_name").
		Where("lecture_academy_id = ? AND lecture_id IN ?", academyID, ids).
		Scan(&names).Error
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		out[n.LectureID] = n.LectureName
	}
	return out, nil
}
