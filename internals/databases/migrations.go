package database

import (
	"log"

	"gorm.io/gorm"

	academyModel "akademiku_backend/internals/features/academies/model"
	attendanceModel "akademiku_backend/internals/features/attendance/model"
	enrollmentModel "akademiku_backend/internals/features/enrollment/model"
	fileModel "akademiku_backend/internals/features/files/model"
	instructorModel "akademiku_backend/internals/features/instructors/model"
	lectureModel "akademiku_backend/internals/features/lectures/model"
	messageModel "akademiku_backend/internals/features/messages/model"
	studentModel "akademiku_backend/internals/features/students/model"
)

// Migrate applies the schema. AutoMigrate covers tables and indexes declared
// on the models; the raw statements below add what tag syntax cannot express.
func Migrate(db *gorm.DB) error {
	log.Println("running database migrations...")

	if err := db.AutoMigrate(
		&academyModel.AcademyModel{},
		&studentModel.StudentModel{},
		&instructorModel.InstructorModel{},
		&lectureModel.LectureModel{},
		&enrollmentModel.StudentLectureModel{},
		&enrollmentModel.InstructorLectureModel{},
		&attendanceModel.LectureSessionModel{},
		&attendanceModel.AttendanceRecordModel{},
		&messageModel.MessageModel{},
		&fileModel.FileModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		// Partial indexes for the hot listing paths (active rows only).
		stmts := []string{
			`CREATE INDEX IF NOT EXISTS idx_students_academy_active
				ON students (student_academy_id) WHERE student_is_active = true`,
			`CREATE INDEX IF NOT EXISTS idx_lectures_academy_active
				ON lectures (lecture_academy_id) WHERE lecture_is_active = true`,
			`CREATE INDEX IF NOT EXISTS idx_student_lectures_lecture_active
				ON student_lectures (student_lecture_lecture_id) WHERE student_lecture_is_active = true`,
			`CREATE INDEX IF NOT EXISTS idx_student_lectures_student_active
				ON student_lectures (student_lecture_student_id) WHERE student_lecture_is_active = true`,
			`CREATE INDEX IF NOT EXISTS idx_instructor_lectures_lecture_active
				ON instructor_lectures (instructor_lecture_lecture_id) WHERE instructor_lecture_is_active = true`,
		}
		for _, s := range stmts {
			if err := db.Exec(s).Error; err != nil {
				return err
			}
		}
	}

	log.Println("database migrations completed")
	return nil
}
