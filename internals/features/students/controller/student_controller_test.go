package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
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
	routes "akademiku_backend/internals/route"
)

type testEnv struct {
	app       *fiber.App
	db        *gorm.DB
	academyID uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
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

	academy := academyModel.AcademyModel{AcademyName: "Test Academy"}
	require.NoError(t, db.Create(&academy).Error)

	app := fiber.New()
	routes.SetupRoutes(app, db)

	return &testEnv{app: app, db: db, academyID: academy.AcademyID}
}

func (e *testEnv) seedLecture(t *testing.T, name string, fee int64) uuid.UUID {
	t.Helper()
	l := lectureModel.LectureModel{LectureAcademyID: e.academyID, LectureName: name, LectureFee: fee}
	require.NoError(t, e.db.Create(&l).Error)
	return l.LectureID
}

func (e *testEnv) lectureOccupancy(t *testing.T, lectureID uuid.UUID) int64 {
	t.Helper()
	var l lectureModel.LectureModel
	require.NoError(t, e.db.First(&l, "lecture_id = ?", lectureID).Error)
	return l.LectureCurrentStudents
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *testEnv) request(t *testing.T, method, path string, body any, withTenant bool) (int, apiEnvelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if withTenant {
		req.Header.Set("X-Academy-ID", e.academyID.String())
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

type studentPayload struct {
	StudentID       uuid.UUID `json:"student_id"`
	StudentName     string    `json:"student_name"`
	StudentClassFee int64     `json:"student_class_fee"`
	Lectures        []struct {
		LectureID uuid.UUID `json:"lecture_id"`
	} `json:"lectures"`
}

func TestStudentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	lecA := env.seedLecture(t, "Math", 30000)
	lecB := env.seedLecture(t, "English", 20000)
	lecC := env.seedLecture(t, "Physics", 25000)

	status, resp := env.request(t, "POST", "/api/students", fiber.Map{
		"student_name": "Andi Wijaya",
		"lecture_ids":  []uuid.UUID{lecA, lecB},
	}, true)
	require.Equal(t, fiber.StatusCreated, status)
	require.True(t, resp.Success)

	var created studentPayload
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, int64(50000), created.StudentClassFee)
	assert.Len(t, created.Lectures, 2)
	assert.Equal(t, int64(1), env.lectureOccupancy(t, lecA))
	assert.Equal(t, int64(1), env.lectureOccupancy(t, lecB))

	// Full update replaces the enrolled set: [A,B] -> [B,C].
	status, resp = env.request(t, "PUT", "/api/students/"+created.StudentID.String(), fiber.Map{
		"student_name": "Andi Wijaya",
		"lecture_ids":  []uuid.UUID{lecB, lecC},
	}, true)
	require.Equal(t, fiber.StatusOK, status)

	var updated studentPayload
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, int64(45000), updated.StudentClassFee)
	assert.Equal(t, int64(0), env.lectureOccupancy(t, lecA))
	assert.Equal(t, int64(1), env.lectureOccupancy(t, lecB))
	assert.Equal(t, int64(1), env.lectureOccupancy(t, lecC))

	// Link rows are flipped, never re-inserted: three pairs, three rows.
	var linkCount int64
	require.NoError(t, env.db.Model(&enrollModel.StudentLectureModel{}).
		Where("student_lecture_student_id = ?", created.StudentID).
		Count(&linkCount).Error)
	assert.Equal(t, int64(3), linkCount)

	status, _ = env.request(t, "DELETE", "/api/students/"+created.StudentID.String(), nil, true)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, int64(0), env.lectureOccupancy(t, lecB))
	assert.Equal(t, int64(0), env.lectureOccupancy(t, lecC))

	status, resp = env.request(t, "GET", "/api/students/"+created.StudentID.String(), nil, true)
	require.Equal(t, fiber.StatusNotFound, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "STUDENT_NOT_FOUND", resp.Error.Code)
}

func TestStudentCreateUnknownLectureRollsBack(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.request(t, "POST", "/api/students", fiber.Map{
		"student_name": "Andi",
		"lecture_ids":  []uuid.UUID{uuid.New()},
	}, true)
	require.Equal(t, fiber.StatusNotFound, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "LECTURE_NOT_FOUND", resp.Error.Code)

	// The base row must not survive the failed link step.
	var cnt int64
	require.NoError(t, env.db.Model(&studentModel.StudentModel{}).Count(&cnt).Error)
	assert.Equal(t, int64(0), cnt)
}

func TestStudentDuplicateEmailConflict(t *testing.T) {
	env := newTestEnv(t)

	body := fiber.Map{"student_name": "Andi", "student_email": "andi@example.com"}
	status, _ := env.request(t, "POST", "/api/students", body, true)
	require.Equal(t, fiber.StatusCreated, status)

	status, resp := env.request(t, "POST", "/api/students", body, true)
	require.Equal(t, fiber.StatusConflict, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DUPLICATE_ENTRY", resp.Error.Code)
}

func TestStudentValidationError(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.request(t, "POST", "/api/students", fiber.Map{
		"student_email": "not-an-email",
	}, true)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestStudentListPaginationContract(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.request(t, "GET", "/api/students?limit=150", nil, true)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	status, resp = env.request(t, "GET", "/api/students?page=0", nil, true)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	status, _ = env.request(t, "GET", "/api/students?page=1&limit=100", nil, true)
	require.Equal(t, fiber.StatusOK, status)
}

func TestTenantHeaderRequired(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.request(t, "GET", "/api/students", nil, false)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestTenantUnknownAcademy(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest("GET", "/api/students", nil)
	req.Header.Set("X-Academy-ID", uuid.NewString())
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env2 apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env2))
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.NotNil(t, env2.Error)
	assert.Equal(t, "ACADEMY_NOT_FOUND", env2.Error.Code)
}

func TestStudentsOfOtherAcademyInvisible(t *testing.T) {
	env := newTestEnv(t)

	other := academyModel.AcademyModel{AcademyName: "Other Academy"}
	require.NoError(t, env.db.Create(&other).Error)
	foreign := studentModel.StudentModel{StudentAcademyID: other.AcademyID, StudentName: "Ghost"}
	require.NoError(t, env.db.Create(&foreign).Error)

	status, resp := env.request(t, "GET", fmt.Sprintf("/api/students/%s", foreign.StudentID), nil, true)
	require.Equal(t, fiber.StatusNotFound, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "STUDENT_NOT_FOUND", resp.Error.Code)
}
