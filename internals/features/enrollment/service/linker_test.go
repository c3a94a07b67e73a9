package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	academyModel "akademiku_backend/internals/features/academies/model"
	enrollModel "akademiku_backend/internals/features/enrollment/model"
	instructorModel "akademiku_backend/internals/features/instructors/model"
	lectureModel "akademiku_backend/internals/features/lectures/model"
	studentModel "akademiku_backend/internals/features/students/model"
	helper "akademiku_backend/internals/helpers"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&academyModel.AcademyModel{},
		&studentModel.StudentModel{},
		&instructorModel.InstructorModel{},
		&lectureModel.LectureModel{},
		&enrollModel.StudentLectureModel{},
		&enrollModel.InstructorLectureModel{},
	))
	return db
}

func seedAcademy(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	a := academyModel.AcademyModel{AcademyName: "Test Academy"}
	require.NoError(t, db.Create(&a).Error)
	return a.AcademyID
}

func seedStudent(t *testing.T, db *gorm.DB, academyID uuid.UUID, name string) uuid.UUID {
	t.Helper()
	s := studentModel.StudentModel{StudentAcademyID: academyID, StudentName: name}
	require.NoError(t, db.Create(&s).Error)
	return s.StudentID
}

func seedInstructor(t *testing.T, db *gorm.DB, academyID uuid.UUID, name string) uuid.UUID {
	t.Helper()
	i := instructorModel.InstructorModel{InstructorAcademyID: academyID, InstructorName: name}
	require.NoError(t, db.Create(&i).Error)
	return i.InstructorID
}

func seedLecture(t *testing.T, db *gorm.DB, academyID uuid.UUID, name string, fee int64) uuid.UUID {
	t.Helper()
	l := lectureModel.LectureModel{LectureAcademyID: academyID, LectureName: name, LectureFee: fee}
	require.NoError(t, db.Create(&l).Error)
	return l.LectureID
}

func studentFee(t *testing.T, db *gorm.DB, studentID uuid.UUID) int64 {
	t.Helper()
	var s studentModel.StudentModel
	require.NoError(t, db.First(&s, "student_id = ?", studentID).Error)
	return s.StudentClassFee
}

func lectureOccupancy(t *testing.T, db *gorm.DB, lectureID uuid.UUID) int64 {
	t.Helper()
	var l lectureModel.LectureModel
	require.NoError(t, db.First(&l, "lecture_id = ?", lectureID).Error)
	return l.LectureCurrentStudents
}

func studentLinkRows(t *testing.T, db *gorm.DB, studentID uuid.UUID) []enrollModel.StudentLectureModel {
	t.Helper()
	var rows []enrollModel.StudentLectureModel
	require.NoError(t, db.Where("student_lecture_student_id = ?", studentID).Find(&rows).Error)
	return rows
}

func TestSetStudentLecturesDiffReusesRows(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	studentID := seedStudent(t, db, academyID, "Andi")
	lecA := seedLecture(t, db, academyID, "A", 100)
	lecB := seedLecture(t, db, academyID, "B", 200)
	lecC := seedLecture(t, db, academyID, "C", 300)

	affected, err := SetStudentLectures(db, academyID, studentID, []uuid.UUID{lecA, lecB})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{lecA, lecB}, affected)

	// [A,B] -> [B,C]: A flips off, B untouched, C inserted. The union of
	// old and new comes back so every touched lecture can be recomputed.
	affected, err = SetStudentLectures(db, academyID, studentID, []uuid.UUID{lecB, lecC})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{lecA, lecB, lecC}, affected)

	rows := studentLinkRows(t, db, studentID)
	require.Len(t, rows, 3)
	active := map[uuid.UUID]bool{}
	for _, r := range rows {
		active[r.StudentLectureLectureID] = r.StudentLectureIsActive
	}
	assert.False(t, active[lecA])
	assert.True(t, active[lecB])
	assert.True(t, active[lecC])

	// Re-adding A reactivates the old row: still 3 rows total.
	_, err = SetStudentLectures(db, academyID, studentID, []uuid.UUID{lecA})
	require.NoError(t, err)
	rows = studentLinkRows(t, db, studentID)
	assert.Len(t, rows, 3)
}

func TestSetStudentLecturesIdempotent(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	studentID := seedStudent(t, db, academyID, "Dewi")
	lecA := seedLecture(t, db, academyID, "A", 100)
	lecB := seedLecture(t, db, academyID, "B", 200)

	for i := 0; i < 3; i++ {
		_, err := SetStudentLectures(db, academyID, studentID, []uuid.UUID{lecA, lecB})
		require.NoError(t, err)
	}

	rows := studentLinkRows(t, db, studentID)
	assert.Len(t, rows, 2)
	for _, r := range rows {
		assert.True(t, r.StudentLectureIsActive)
	}
}

func TestSetStudentLecturesDuplicateIDsTreatedAsSet(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	studentID := seedStudent(t, db, academyID, "Rizky")
	lecA := seedLecture(t, db, academyID, "A", 100)

	_, err := SetStudentLectures(db, academyID, studentID, []uuid.UUID{lecA, lecA, lecA})
	require.NoError(t, err)
	assert.Len(t, studentLinkRows(t, db, studentID), 1)
}

func TestSetStudentLecturesUnknownLecture(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	studentID := seedStudent(t, db, academyID, "Andi")

	_, err := SetStudentLectures(db, academyID, studentID, []uuid.UUID{uuid.New()})
	require.Error(t, err)
	apiErr, ok := err.(*helper.APIError)
	require.True(t, ok)
	assert.Equal(t, helper.CodeLectureNotFound, apiErr.Code)
}

func TestSetStudentLecturesInactiveLectureRejected(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	studentID := seedStudent(t, db, academyID, "Andi")
	lecA := seedLecture(t, db, academyID, "A", 100)

	require.NoError(t, db.Table("lectures").
		Where("lecture_id = ?", lecA).
		Update("lecture_is_active", false).Error)

	_, err := SetStudentLectures(db, academyID, studentID, []uuid.UUID{lecA})
	require.Error(t, err)
	apiErr, ok := err.(*helper.APIError)
	require.True(t, ok)
	assert.Equal(t, helper.CodeLectureNotFound, apiErr.Code)
}

func TestFeeRecompute(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	studentID := seedStudent(t, db, academyID, "Andi")
	lecA := seedLecture(t, db, academyID, "Math", 30000)
	lecB := seedLecture(t, db, academyID, "English", 20000)

	_, err := SetStudentLectures(db, academyID, studentID, []uuid.UUID{lecA, lecB})
	require.NoError(t, err)
	fee, err := RecomputeStudentFee(db, academyID, studentID)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), fee)
	assert.Equal(t, int64(50000), studentFee(t, db, studentID))

	// Dropping one lecture drops its fee.
	_, err = SetStudentLectures(db, academyID, studentID, []uuid.UUID{lecA})
	require.NoError(t, err)
	_, err = RecomputeStudentFee(db, academyID, studentID)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), studentFee(t, db, studentID))

	// Clearing everything goes to zero, not stale.
	_, err = SetStudentLectures(db, academyID, studentID, nil)
	require.NoError(t, err)
	_, err = RecomputeStudentFee(db, academyID, studentID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), studentFee(t, db, studentID))
}

func TestFeeRecomputeIgnoresInactiveLecture(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	studentID := seedStudent(t, db, academyID, "Andi")
	lecA := seedLecture(t, db, academyID, "Math", 30000)
	lecB := seedLecture(t, db, academyID, "English", 20000)

	_, err := SetStudentLectures(db, academyID, studentID, []uuid.UUID{lecA, lecB})
	require.NoError(t, err)

	// Soft-deleted lecture: its link may still be active, but the fee sum
	// only counts active lectures.
	require.NoError(t, db.Table("lectures").
		Where("lecture_id = ?", lecB).
		Update("lecture_is_active", false).Error)

	fee, err := RecomputeStudentFee(db, academyID, studentID)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), fee)
}

func TestFeeEditCascade(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	s1 := seedStudent(t, db, academyID, "Andi")
	s2 := seedStudent(t, db, academyID, "Dewi")
	lec := seedLecture(t, db, academyID, "Math", 30000)

	for _, sid := range []uuid.UUID{s1, s2} {
		_, err := SetStudentLectures(db, academyID, sid, []uuid.UUID{lec})
		require.NoError(t, err)
		_, err = RecomputeStudentFee(db, academyID, sid)
		require.NoError(t, err)
	}

	// Fee edit: recomputing over the roster picks up the new price for
	// every enrolled student.
	require.NoError(t, db.Table("lectures").
		Where("lecture_id = ?", lec).
		Update("lecture_fee", 45000).Error)

	roster, err := ActiveStudentIDsOfLecture(db, academyID, lec)
	require.NoError(t, err)
	require.NoError(t, RecomputeStudentFees(db, academyID, roster))

	assert.Equal(t, int64(45000), studentFee(t, db, s1))
	assert.Equal(t, int64(45000), studentFee(t, db, s2))
}

func TestEnrollUnenrollIdempotent(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	studentID := seedStudent(t, db, academyID, "Andi")
	lec := seedLecture(t, db, academyID, "Math", 30000)

	require.NoError(t, EnrollStudent(db, academyID, lec, studentID))
	require.NoError(t, EnrollStudent(db, academyID, lec, studentID))

	rows := studentLinkRows(t, db, studentID)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].StudentLectureIsActive)

	count, err := RecomputeLectureOccupancy(db, academyID, lec)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, UnenrollStudent(db, academyID, lec, studentID))
	require.NoError(t, UnenrollStudent(db, academyID, lec, studentID))

	rows = studentLinkRows(t, db, studentID)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].StudentLectureIsActive)

	count, err = RecomputeLectureOccupancy(db, academyID, lec)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestReplaceLectureRoster(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	s1 := seedStudent(t, db, academyID, "Andi")
	s2 := seedStudent(t, db, academyID, "Dewi")
	s3 := seedStudent(t, db, academyID, "Rizky")
	lec := seedLecture(t, db, academyID, "Math", 30000)

	affected, err := ReplaceLectureRoster(db, academyID, lec, []uuid.UUID{s1, s2})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{s1, s2}, affected)

	affected, err = ReplaceLectureRoster(db, academyID, lec, []uuid.UUID{s2, s3})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{s1, s2, s3}, affected)

	ids, err := ActiveStudentIDsOfLecture(db, academyID, lec)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{s2, s3}, ids)

	count, err := RecomputeLectureOccupancy(db, academyID, lec)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestDeactivateLectureStudentLinks(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	lec := seedLecture(t, db, academyID, "Math", 30000)
	other := seedLecture(t, db, academyID, "English", 20000)

	var studentIDs []uuid.UUID
	for _, name := range []string{"A", "B", "C"} {
		sid := seedStudent(t, db, academyID, name)
		studentIDs = append(studentIDs, sid)
		_, err := SetStudentLectures(db, academyID, sid, []uuid.UUID{lec, other})
		require.NoError(t, err)
		_, err = RecomputeStudentFee(db, academyID, sid)
		require.NoError(t, err)
		assert.Equal(t, int64(50000), studentFee(t, db, sid))
	}

	// Lecture soft delete: every enrolled student loses the link and the
	// fee falls back to the surviving lecture.
	affected, err := DeactivateLectureStudentLinks(db, academyID, lec)
	require.NoError(t, err)
	assert.ElementsMatch(t, studentIDs, affected)
	require.NoError(t, RecomputeStudentFees(db, academyID, affected))

	for _, sid := range studentIDs {
		assert.Equal(t, int64(20000), studentFee(t, db, sid))
	}

	count, err := RecomputeLectureOccupancy(db, academyID, lec)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	count, err = RecomputeLectureOccupancy(db, academyID, other)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestDeactivateStudentLinks(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	studentID := seedStudent(t, db, academyID, "Andi")
	lecA := seedLecture(t, db, academyID, "A", 100)
	lecB := seedLecture(t, db, academyID, "B", 200)

	_, err := SetStudentLectures(db, academyID, studentID, []uuid.UUID{lecA, lecB})
	require.NoError(t, err)

	affected, err := DeactivateStudentLinks(db, academyID, studentID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{lecA, lecB}, affected)

	ids, err := ActiveLectureIDsOfStudent(db, academyID, studentID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTenancyIsolation(t *testing.T) {
	db := setupTestDB(t)
	academy1 := seedAcademy(t, db)
	academy2 := seedAcademy(t, db)
	studentID := seedStudent(t, db, academy1, "Andi")
	foreignLecture := seedLecture(t, db, academy2, "Other", 99999)

	// Lectures of another academy are invisible to the linker.
	_, err := SetStudentLectures(db, academy1, studentID, []uuid.UUID{foreignLecture})
	require.Error(t, err)
	apiErr, ok := err.(*helper.APIError)
	require.True(t, ok)
	assert.Equal(t, helper.CodeLectureNotFound, apiErr.Code)
}

func TestAssignLectureInstructorDisplaces(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	lec := seedLecture(t, db, academyID, "Math", 30000)
	in1 := seedInstructor(t, db, academyID, "Budi")
	in2 := seedInstructor(t, db, academyID, "Siti")

	require.NoError(t, AssignLectureInstructor(db, academyID, lec, &in1))

	var l lectureModel.LectureModel
	require.NoError(t, db.First(&l, "lecture_id = ?", lec).Error)
	require.NotNil(t, l.LectureInstructorID)
	assert.Equal(t, in1, *l.LectureInstructorID)

	// One active instructor per lecture: assigning another displaces the
	// first link instead of stacking a second active one.
	require.NoError(t, AssignLectureInstructor(db, academyID, lec, &in2))

	var links []enrollModel.InstructorLectureModel
	require.NoError(t, db.Where("instructor_lecture_lecture_id = ?", lec).Find(&links).Error)
	require.Len(t, links, 2)
	activeBy := map[uuid.UUID]bool{}
	for _, link := range links {
		activeBy[link.InstructorLectureInstructorID] = link.InstructorLectureIsActive
	}
	assert.False(t, activeBy[in1])
	assert.True(t, activeBy[in2])

	require.NoError(t, db.First(&l, "lecture_id = ?", lec).Error)
	require.NotNil(t, l.LectureInstructorID)
	assert.Equal(t, in2, *l.LectureInstructorID)

	// Reassigning the first reactivates the old row: still 2 rows.
	require.NoError(t, AssignLectureInstructor(db, academyID, lec, &in1))
	require.NoError(t, db.Where("instructor_lecture_lecture_id = ?", lec).Find(&links).Error)
	assert.Len(t, links, 2)
}

func TestAssignLectureInstructorNilClears(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	lec := seedLecture(t, db, academyID, "Math", 30000)
	in1 := seedInstructor(t, db, academyID, "Budi")

	require.NoError(t, AssignLectureInstructor(db, academyID, lec, &in1))
	require.NoError(t, AssignLectureInstructor(db, academyID, lec, nil))

	var l lectureModel.LectureModel
	require.NoError(t, db.First(&l, "lecture_id = ?", lec).Error)
	assert.Nil(t, l.LectureInstructorID)

	var links []enrollModel.InstructorLectureModel
	require.NoError(t, db.Where("instructor_lecture_lecture_id = ?", lec).Find(&links).Error)
	require.Len(t, links, 1)
	assert.False(t, links[0].InstructorLectureIsActive)
}

func TestAssignUnknownInstructor(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	lec := seedLecture(t, db, academyID, "Math", 30000)
	unknown := uuid.New()

	err := AssignLectureInstructor(db, academyID, lec, &unknown)
	require.Error(t, err)
	apiErr, ok := err.(*helper.APIError)
	require.True(t, ok)
	assert.Equal(t, helper.CodeInstructorNotFound, apiErr.Code)
}

func TestSetInstructorLectures(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	in1 := seedInstructor(t, db, academyID, "Budi")
	lecA := seedLecture(t, db, academyID, "A", 100)
	lecB := seedLecture(t, db, academyID, "B", 200)
	lecC := seedLecture(t, db, academyID, "C", 300)

	affected, err := SetInstructorLectures(db, academyID, in1, []uuid.UUID{lecA, lecB})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{lecA, lecB}, affected)

	affected, err = SetInstructorLectures(db, academyID, in1, []uuid.UUID{lecB, lecC})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{lecA, lecB, lecC}, affected)

	// Released lecture A loses its instructor column, B and C point at in1.
	var l lectureModel.LectureModel
	require.NoError(t, db.First(&l, "lecture_id = ?", lecA).Error)
	assert.Nil(t, l.LectureInstructorID)
	l = lectureModel.LectureModel{}
	require.NoError(t, db.First(&l, "lecture_id = ?", lecB).Error)
	require.NotNil(t, l.LectureInstructorID)
	assert.Equal(t, in1, *l.LectureInstructorID)
	l = lectureModel.LectureModel{}
	require.NoError(t, db.First(&l, "lecture_id = ?", lecC).Error)
	require.NotNil(t, l.LectureInstructorID)
	assert.Equal(t, in1, *l.LectureInstructorID)
}

func TestDeactivateInstructorLinks(t *testing.T) {
	db := setupTestDB(t)
	academyID := seedAcademy(t, db)
	in1 := seedInstructor(t, db, academyID, "Budi")
	lecA := seedLecture(t, db, academyID, "A", 100)
	lecB := seedLecture(t, db, academyID, "B", 200)

	_, err := SetInstructorLectures(db, academyID, in1, []uuid.UUID{lecA, lecB})
	require.NoError(t, err)

	affected, err := DeactivateInstructorLinks(db, academyID, in1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{lecA, lecB}, affected)

	for _, id := range []uuid.UUID{lecA, lecB} {
		var l lectureModel.LectureModel
		require.NoError(t, db.First(&l, "lecture_id = ?", id).Error)
		assert.Nil(t, l.LectureInstructorID)
	}
}
