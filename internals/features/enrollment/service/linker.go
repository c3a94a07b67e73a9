package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	enrollModel "akademiku_backend/internals/features/enrollment/model"
	helper "akademiku_backend/internals/helpers"
)

// The linker maintains the soft-deleted join tables. Link rows are never
// hard-deleted: a pair that existed before is reactivated, not re-inserted,
// so enrollment history survives any number of roster edits.
//
// Every function here expects an open transaction and returns the union of
// previously-active and newly-desired peer ids so the caller knows whose
// aggregates to recompute.

// SetStudentLectures replaces a student's active lecture set with desired.
// Duplicate ids in desired are treated as a set.
func SetStudentLectures(tx *gorm.DB, academyID, studentID uuid.UUID, desired []uuid.UUID) ([]uuid.UUID, error) {
	desiredSet := toSet(desired)

	if err := ensureLecturesExist(tx, academyID, desiredSet); err != nil {
		return nil, err
	}

	var links []enrollModel.StudentLectureModel
	if err := tx.
		Where("student_lecture_academy_id = ? AND student_lecture_student_id = ?", academyID, studentID).
		Find(&links).Error; err != nil {
		return nil, err
	}

	affected := make(map[uuid.UUID]struct{}, len(desiredSet)+len(links))
	for id := range desiredSet {
		affected[id] = struct{}{}
	}

	existing := make(map[uuid.UUID]*enrollModel.StudentLectureModel, len(links))
	for i := range links {
		l := &links[i]
		existing[l.StudentLectureLectureID] = l
		if l.StudentLectureIsActive {
			affected[l.StudentLectureLectureID] = struct{}{}
		}
	}

	for lectureID := range desiredSet {
		link, ok := existing[lectureID]
		switch {
		case !ok:
			row := enrollModel.StudentLectureModel{
				StudentLectureAcademyID: academyID,
				StudentLectureStudentID: studentID,
				StudentLectureLectureID: lectureID,
				StudentLectureIsActive:  true,
			}
			if err := tx.Create(&row).Error; err != nil {
				return nil, err
			}
		case !link.StudentLectureIsActive:
			if err := tx.Model(link).Update("student_lecture_is_active", true).Error; err != nil {
				return nil, err
			}
		}
	}

	for lectureID, link := range existing {
		if _, keep := desiredSet[lectureID]; keep || !link.StudentLectureIsActive {
			continue
		}
		if err := tx.Model(link).Update("student_lecture_is_active", false).Error; err != nil {
			return nil, err
		}
	}

	return setToSlice(affected), nil
}

// ReplaceLectureRoster is the same diff seen from the lecture side: desired
// is the full set of enrolled student ids.
func ReplaceLectureRoster(tx *gorm.DB, academyID, lectureID uuid.UUID, desired []uuid.UUID) ([]uuid.UUID, error) {
	desiredSet := toSet(desired)

	if err := ensureStudentsExist(tx, academyID, desiredSet); err != nil {
		return nil, err
	}

	var links []enrollModel.StudentLectureModel
	if err := tx.
		Where("student_lecture_academy_id = ? AND student_lecture_lecture_id = ?", academyID, lectureID).
		Find(&links).Error; err != nil {
		return nil, err
	}

	affected := make(map[uuid.UUID]struct{}, len(desiredSet)+len(links))
	for id := range desiredSet {
		affected[id] = struct{}{}
	}

	existing := make(map[uuid.UUID]*enrollModel.StudentLectureModel, len(links))
	for i := range links {
		l := &links[i]
		existing[l.StudentLectureStudentID] = l
		if l.StudentLectureIsActive {
			affected[l.StudentLectureStudentID] = struct{}{}
		}
	}

	for studentID := range desiredSet {
		link, ok := existing[studentID]
		switch {
		case !ok:
			row := enrollModel.StudentLectureModel{
				StudentLectureAcademyID: academyID,
				StudentLectureStudentID: studentID,
				StudentLectureLectureID: lectureID,
				StudentLectureIsActive:  true,
			}
			if err := tx.Create(&row).Error; err != nil {
				return nil, err
			}
		case !link.StudentLectureIsActive:
			if err := tx.Model(link).Update("student_lecture_is_active", true).Error; err != nil {
				return nil, err
			}
		}
	}

	for studentID, link := range existing {
		if _, keep := desiredSet[studentID]; keep || !link.StudentLectureIsActive {
			continue
		}
		if err := tx.Model(link).Update("student_lecture_is_active", false).Error; err != nil {
			return nil, err
		}
	}

	return setToSlice(affected), nil
}

// EnrollStudent activates a single student↔lecture link (reactivate or
// insert). Active links are left untouched, so re-enrolling is idempotent.
func EnrollStudent(tx *gorm.DB, academyID, lectureID, studentID uuid.UUID) error {
	if err := ensureStudentsExist(tx, academyID, toSet([]uuid.UUID{studentID})); err != nil {
		return err
	}

	var link enrollModel.StudentLectureModel
	err := tx.
		Where("student_lecture_academy_id = ? AND student_lecture_student_id = ? AND student_lecture_lecture_id = ?",
			academyID, studentID, lectureID).
		First(&link).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		row := enrollModel.StudentLectureModel{
			StudentLectureAcademyID: academyID,
			StudentLectureStudentID: studentID,
			StudentLectureLectureID: lectureID,
			StudentLectureIsActive:  true,
		}
		return tx.Create(&row).Error
	case err != nil:
		return err
	case link.StudentLectureIsActive:
		return nil
	default:
		return tx.Model(&link).Update("student_lecture_is_active", true).Error
	}
}

// UnenrollStudent deactivates a single link. Missing or already-inactive
// links are a no-op.
func UnenrollStudent(tx *gorm.DB, academyID, lectureID, studentID uuid.UUID) error {
	return tx.Model(&enrollModel.StudentLectureModel{}).
		Where("student_lecture_academy_id = ? AND student_lecture_student_id = ? AND student_lecture_lecture_id = ? AND student_lecture_is_active = ?",
			academyID, studentID, lectureID, true).
		Update("student_lecture_is_active", false).Error
}

// ActiveLectureIDsOfStudent lists lecture ids the student is actively
// linked to (the lecture itself may be active or not).
func ActiveLectureIDsOfStudent(tx *gorm.DB, academyID, studentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := tx.Model(&enrollModel.StudentLectureModel{}).
		Where("student_lecture_academy_id = ? AND student_lecture_student_id = ? AND student_lecture_is_active = ?",
			academyID, studentID, true).
		Pluck("student_lecture_lecture_id", &ids).Error
	return ids, err
}

// ActiveStudentIDsOfLecture lists student ids actively linked to a lecture.
func ActiveStudentIDsOfLecture(tx *gorm.DB, academyID, lectureID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := tx.Model(&enrollModel.StudentLectureModel{}).
		Where("student_lecture_academy_id = ? AND student_lecture_lecture_id = ? AND student_lecture_is_active = ?",
			academyID, lectureID, true).
		Pluck("student_lecture_student_id", &ids).Error
	return ids, err
}

// DeactivateStudentLinks flips every active link of a student off (student
// soft delete) and returns the lecture ids that lost a member.
func DeactivateStudentLinks(tx *gorm.DB, academyID, studentID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := ActiveLectureIDsOfStudent(tx, academyID, studentID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return ids, nil
	}
	err = tx.Model(&enrollModel.StudentLectureModel{}).
		Where("student_lecture_academy_id = ? AND student_lecture_student_id = ? AND student_lecture_is_active = ?",
			academyID, studentID, true).
		Update("student_lecture_is_active", false).Error
	return ids, err
}

// DeactivateLectureStudentLinks flips every active student link of a lecture
// off (lecture soft delete) and returns the affected student ids.
func DeactivateLectureStudentLinks(tx *gorm.DB, academyID, lectureID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := ActiveStudentIDsOfLecture(tx, academyID, lectureID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return ids, nil
	}
	err = tx.Model(&enrollModel.StudentLectureModel{}).
		Where("student_lecture_academy_id = ? AND student_lecture_lecture_id = ? AND student_lecture_is_active = ?",
			academyID, lectureID, true).
		Update("student_lecture_is_active", false).Error
	return ids, err
}

/* =======================================================
   Instructor side
   ======================================================= */

// SetInstructorLectures replaces an instructor's assigned lecture set.
// Assigning a lecture displaces any other instructor's active link on it
// (one active instructor per lecture) and keeps the denormalized
// lecture_instructor_id column in sync.
func SetInstructorLectures(tx *gorm.DB, academyID, instructorID uuid.UUID, desired []uuid.UUID) ([]uuid.UUID, error) {
	desiredSet := toSet(desired)

	if err := ensureLecturesExist(tx, academyID, desiredSet); err != nil {
		return nil, err
	}

	var links []enrollModel.InstructorLectureModel
	if err := tx.
		Where("instructor_lecture_academy_id = ? AND instructor_lecture_instructor_id = ?", academyID, instructorID).
		Find(&links).Error; err != nil {
		return nil, err
	}

	affected := make(map[uuid.UUID]struct{}, len(desiredSet)+len(links))
	for id := range desiredSet {
		affected[id] = struct{}{}
	}

	existing := make(map[uuid.UUID]*enrollModel.InstructorLectureModel, len(links))
	for i := range links {
		l := &links[i]
		existing[l.InstructorLectureLectureID] = l
		if l.InstructorLectureIsActive {
			affected[l.InstructorLectureLectureID] = struct{}{}
		}
	}

	for lectureID := range desiredSet {
		if link, ok := existing[lectureID]; ok && link.InstructorLectureIsActive {
			continue
		}
		if err := claimLecture(tx, academyID, lectureID, instructorID, existing[lectureID]); err != nil {
			return nil, err
		}
	}

	for lectureID, link := range existing {
		if _, keep := desiredSet[lectureID]; keep || !link.InstructorLectureIsActive {
			continue
		}
		if err := releaseLecture(tx, academyID, lectureID, instructorID, link); err != nil {
			return nil, err
		}
	}

	return setToSlice(affected), nil
}

// AssignLectureInstructor sets (or clears, with nil) the single instructor
// of a lecture from the lecture side.
func AssignLectureInstructor(tx *gorm.DB, academyID, lectureID uuid.UUID, instructorID *uuid.UUID) error {
	if instructorID == nil {
		return clearLectureInstructor(tx, academyID, lectureID)
	}

	var cnt int64
	if err := tx.Table("instructors").
		Where("instructor_academy_id = ? AND instructor_id = ? AND instructor_is_active = ?", academyID, *instructorID, true).
		Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return helper.NotFound(helper.CodeInstructorNotFound, "Instructor not found")
	}

	var link enrollModel.InstructorLectureModel
	err := tx.
		Where("instructor_lecture_academy_id = ? AND instructor_lecture_instructor_id = ? AND instructor_lecture_lecture_id = ?",
			academyID, *instructorID, lectureID).
		First(&link).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		return claimLecture(tx, academyID, lectureID, *instructorID, nil)
	case err != nil:
		return err
	default:
		return claimLecture(tx, academyID, lectureID, *instructorID, &link)
	}
}

// DeactivateInstructorLinks flips every active assignment of an instructor
// off (instructor soft delete) and clears the lectures' instructor column.
func DeactivateInstructorLinks(tx *gorm.DB, academyID, instructorID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := tx.Model(&enrollModel.InstructorLectureModel{}).
		Where("instructor_lecture_academy_id = ? AND instructor_lecture_instructor_id = ? AND instructor_lecture_is_active = ?",
			academyID, instructorID, true).
		Pluck("instructor_lecture_lecture_id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return ids, nil
	}

	if err := tx.Model(&enrollModel.InstructorLectureModel{}).
		Where("instructor_lecture_academy_id = ? AND instructor_lecture_instructor_id = ? AND instructor_lecture_is_active = ?",
			academyID, instructorID, true).
		Update("instructor_lecture_is_active", false).Error; err != nil {
		return nil, err
	}

	err := tx.Table("lectures").
		Where("lecture_academy_id = ? AND lecture_instructor_id = ?", academyID, instructorID).
		Update("lecture_instructor_id", nil).Error
	return ids, err
}

// claimLecture makes instructorID the lecture's single active instructor:
// displaces other active links, reactivates or inserts this pair's row, and
// syncs the lecture column. existing may be nil or an inactive row.
func claimLecture(tx *gorm.DB, academyID, lectureID, instructorID uuid.UUID, existing *enrollModel.InstructorLectureModel) error {
	if err := tx.Model(&enrollModel.InstructorLectureModel{}).
		Where("instructor_lecture_academy_id = ? AND instructor_lecture_lecture_id = ? AND instructor_lecture_instructor_id <> ? AND instructor_lecture_is_active = ?",
			academyID, lectureID, instructorID, true).
		Update("instructor_lecture_is_active", false).Error; err != nil {
		return err
	}

	if existing != nil {
		if !existing.InstructorLectureIsActive {
			if err := tx.Model(existing).Update("instructor_lecture_is_active", true).Error; err != nil {
				return err
			}
		}
	} else {
		row := enrollModel.InstructorLectureModel{
			InstructorLectureAcademyID:    academyID,
			InstructorLectureInstructorID: instructorID,
			InstructorLectureLectureID:    lectureID,
			InstructorLectureIsActive:     true,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	return tx.Table("lectures").
		Where("lecture_academy_id = ? AND lecture_id = ?", academyID, lectureID).
		Update("lecture_instructor_id", instructorID).Error
}

func releaseLecture(tx *gorm.DB, academyID, lectureID, instructorID uuid.UUID, link *enrollModel.InstructorLectureModel) error {
	if err := tx.Model(link).Update("instructor_lecture_is_active", false).Error; err != nil {
		return err
	}
	return tx.Table("lectures").
		Where("lecture_academy_id = ? AND lecture_id = ? AND lecture_instructor_id = ?", academyID, lectureID, instructorID).
		Update("lecture_instructor_id", nil).Error
}

func clearLectureInstructor(tx *gorm.DB, academyID, lectureID uuid.UUID) error {
	if err := tx.Model(&enrollModel.InstructorLectureModel{}).
		Where("instructor_lecture_academy_id = ? AND instructor_lecture_lecture_id = ? AND instructor_lecture_is_active = ?",
			academyID, lectureID, true).
		Update("instructor_lecture_is_active", false).Error; err != nil {
		return err
	}
	return tx.Table("lectures").
		Where("lecture_academy_id = ? AND lecture_id = ?", academyID, lectureID).
		Update("lecture_instructor_id", nil).Error
}

/* =======================================================
   Shared checks
   ======================================================= */

func ensureLecturesExist(tx *gorm.DB, academyID uuid.UUID, ids map[uuid.UUID]struct{}) error {
	if len(ids) == 0 {
		return nil
	}
	var cnt int64
	if err := tx.Table("lectures").
		Where("lecture_academy_id = ? AND lecture_id IN ? AND lecture_is_active = ?", academyID, setToSlice(ids), true).
		Count(&cnt).Error; err != nil {
		return err
	}
	if cnt != int64(len(ids)) {
		return helper.NotFound(helper.CodeLectureNotFound, "One or more lectures not found")
	}
	return nil
}

func ensureStudentsExist(tx *gorm.DB, academyID uuid.UUID, ids map[uuid.UUID]struct{}) error {
	if len(ids) == 0 {
		return nil
	}
	var cnt int64
	if err := tx.Table("students").
		Where("student_academy_id = ? AND student_id IN ? AND student_is_active = ?", academyID, setToSlice(ids), true).
		Count(&cnt).Error; err != nil {
		return err
	}
	if cnt != int64(len(ids)) {
		return helper.NotFound(helper.CodeStudentNotFound, "One or more students not found")
	}
	return nil
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func setToSlice(set map[uuid.UUID]struct{}) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
