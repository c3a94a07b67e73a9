package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	enrollModel "akademiku_backend/internals/features/enrollment/model"
)

// Aggregate recomputation. Both functions must run inside the same
// transaction as the link mutation that made them necessary — the derived
// columns are only guaranteed consistent at commit boundaries.

// RecomputeStudentFee sets student_class_fee to the sum of fees of the
// active lectures the student is actively linked to. No rows means 0.
func RecomputeStudentFee(tx *gorm.DB, academyID, studentID uuid.UUID) (int64, error) {
	var fee int64
	err := tx.Model(&enrollModel.StudentLectureModel{}).
		Select("COALESCE(SUM(lectures.lecture_fee), 0)").
		Joins("JOIN lectures ON lectures.lecture_id = student_lectures.student_lecture_lecture_id AND lectures.lecture_is_active = ?", true).
		Where("student_lecture_academy_id = ? AND student_lecture_student_id = ? AND student_lecture_is_active = ?",
			academyID, studentID, true).
		Scan(&fee).Error
	if err != nil {
		return 0, err
	}

	err = tx.Table("students").
		Where("student_academy_id = ? AND student_id = ?", academyID, studentID).
		Update("student_class_fee", fee).Error
	return fee, err
}

// RecomputeStudentFees runs RecomputeStudentFee for every id.
func RecomputeStudentFees(tx *gorm.DB, academyID uuid.UUID, studentIDs []uuid.UUID) error {
	for _, id := range studentIDs {
		if _, err := RecomputeStudentFee(tx, academyID, id); err != nil {
			return err
		}
	}
	return nil
}

// RecomputeLectureOccupancy sets lecture_current_students to the count of
// active student links. Capacity (lecture_max_students) is advisory and
// never checked here.
func RecomputeLectureOccupancy(tx *gorm.DB, academyID, lectureID uuid.UUID) (int64, error) {
	var count int64
	err := tx.Model(&enrollModel.StudentLectureModel{}).
		Where("student_lecture_academy_id = ? AND student_lecture_lecture_id = ? AND student_lecture_is_active = ?",
			academyID, lectureID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	err = tx.Table("lectures").
		Where("lecture_academy_id = ? AND lecture_id = ?", academyID, lectureID).
		Update("lecture_current_students", count).Error
	return count, err
}

// RecomputeLectureOccupancies runs RecomputeLectureOccupancy for every id.
func RecomputeLectureOccupancies(tx *gorm.DB, academyID uuid.UUID, lectureIDs []uuid.UUID) error {
	for _, id := range lectureIDs {
		if _, err := RecomputeLectureOccupancy(tx, academyID, id); err != nil {
			return err
		}
	}
	return nil
}
