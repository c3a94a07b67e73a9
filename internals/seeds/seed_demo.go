package seeds

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academyModel "akademiku_backend/internals/features/academies/model"
	service "akademiku_backend/internals/features/enrollment/service"
	instructorModel "akademiku_backend/internals/features/instructors/model"
	lectureModel "akademiku_backend/internals/features/lectures/model"
	studentModel "akademiku_backend/internals/features/students/model"
)

const demoAcademyName = "Akademi Harapan"

// SeedDemoAcademy creates one demo academy with a few lectures, instructors
// and enrolled students. Enrollment goes through the linker service so the
// derived fee and occupancy columns come out consistent. Idempotent: skips
// when the demo academy already exists.
func SeedDemoAcademy(db *gorm.DB) error {
	var existing academyModel.AcademyModel
	err := db.Where("academy_name = ?", demoAcademyName).First(&existing).Error
	if err == nil {
		log.Printf("[SEED] demo academy already present, skipping")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		academy := academyModel.AcademyModel{
			AcademyName:  demoAcademyName,
			AcademyEmail: ptr("admin@akademi-harapan.id"),
			AcademyPhone: ptr("+62-811-0000-001"),
		}
		if err := tx.Create(&academy).Error; err != nil {
			return err
		}

		instructors := []instructorModel.InstructorModel{
			{InstructorAcademyID: academy.AcademyID, InstructorName: "Budi Santoso", InstructorEmail: ptr("budi@akademi-harapan.id"), InstructorSpecialty: ptr("Mathematics"), InstructorMonthlySalary: int64Ptr(4500000)},
			{InstructorAcademyID: academy.AcademyID, InstructorName: "Siti Rahma", InstructorEmail: ptr("siti@akademi-harapan.id"), InstructorSpecialty: ptr("English"), InstructorMonthlySalary: int64Ptr(4200000)},
		}
		for i := range instructors {
			if err := tx.Create(&instructors[i]).Error; err != nil {
				return err
			}
		}

		maxTen := 10
		lectures := []lectureModel.LectureModel{
			{LectureAcademyID: academy.AcademyID, LectureName: "Matematika Dasar", LectureFee: 250000, LectureMaxStudents: &maxTen},
			{LectureAcademyID: academy.AcademyID, LectureName: "Bahasa Inggris", LectureFee: 200000, LectureMaxStudents: &maxTen},
			{LectureAcademyID: academy.AcademyID, LectureName: "Fisika", LectureFee: 300000},
		}
		for i := range lectures {
			if err := tx.Create(&lectures[i]).Error; err != nil {
				return err
			}
		}

		if err := service.AssignLectureInstructor(tx, academy.AcademyID, lectures[0].LectureID, &instructors[0].InstructorID); err != nil {
			return err
		}
		if err := service.AssignLectureInstructor(tx, academy.AcademyID, lectures[1].LectureID, &instructors[1].InstructorID); err != nil {
			return err
		}

		birth := time.Date(2010, 3, 14, 0, 0, 0, 0, time.UTC)
		students := []studentModel.StudentModel{
			{StudentAcademyID: academy.AcademyID, StudentName: "Andi Wijaya", StudentEmail: ptr("andi@example.com"), StudentGuardianName: ptr("Hendra Wijaya"), StudentBirthDate: &birth},
			{StudentAcademyID: academy.AcademyID, StudentName: "Dewi Lestari", StudentEmail: ptr("dewi@example.com")},
			{StudentAcademyID: academy.AcademyID, StudentName: "Rizky Pratama", StudentEmail: ptr("rizky@example.com")},
		}
		for i := range students {
			if err := tx.Create(&students[i]).Error; err != nil {
				return err
			}
		}

		rosters := map[int][]uuid.UUID{
			0: {lectures[0].LectureID, lectures[1].LectureID},
			1: {lectures[1].LectureID},
			2: {lectures[0].LectureID, lectures[2].LectureID},
		}
		touched := map[uuid.UUID]struct{}{}
		for idx, lectureIDs := range rosters {
			affected, err := service.SetStudentLectures(tx, academy.AcademyID, students[idx].StudentID, lectureIDs)
			if err != nil {
				return err
			}
			if _, err := service.RecomputeStudentFee(tx, academy.AcademyID, students[idx].StudentID); err != nil {
				return err
			}
			for _, id := range affected {
				touched[id] = struct{}{}
			}
		}
		for id := range touched {
			if _, err := service.RecomputeLectureOccupancy(tx, academy.AcademyID, id); err != nil {
				return err
			}
		}

		log.Printf("[SEED] demo academy created id=%s", academy.AcademyID)
		return nil
	})
}

func ptr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }
