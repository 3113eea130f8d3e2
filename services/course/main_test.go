package courseService

import (
	"encoding/json"
	"testing"

	"learnhub/database"
	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory sqlite database with the full schema.
// A single connection keeps every query on the same in-memory instance.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

type fixture struct {
	instructor models.User
	student    models.User
	course     courseModels.Course
	lectures   []courseModels.Lecture
}

// seedCourse creates a published course with three lectures of five
// questions each plus a five-question final quiz.
func seedCourse(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	instructor := models.User{Name: "Asha Verma", Email: "asha@example.com", Role: "INSTRUCTOR", Password: "x"}
	require.NoError(t, db.Create(&instructor).Error)

	student := models.User{Name: "Ravi Kumar", Email: "ravi@example.com", Role: "STUDENT", Password: "x"}
	require.NoError(t, db.Create(&student).Error)

	crs := courseModels.Course{
		Title:                        "Backend Engineering with Go",
		InstructorID:                 instructor.ID,
		Price:                        49900,
		RequiredCompletionPercentage: 80,
		Status:                       "ACTIVE",
		IsPublished:                  true,
	}
	require.NoError(t, db.Create(&crs).Error)

	lectures := make([]courseModels.Lecture, 3)
	for i := range lectures {
		lectures[i] = courseModels.Lecture{
			CourseID:               crs.ID,
			Title:                  "Lecture",
			OrderIndex:             i + 1,
			RequiredPassPercentage: 60,
		}
		require.NoError(t, db.Create(&lectures[i]).Error)
		seedMCQs(t, db, &lectures[i].ID, nil, 5)
	}
	seedMCQs(t, db, nil, &crs.ID, 5)

	return fixture{instructor: instructor, student: student, course: crs, lectures: lectures}
}

func seedMCQs(t *testing.T, db *gorm.DB, lectureID, courseID *uint, count int) {
	t.Helper()
	options, err := json.Marshal([]string{"Option A", "Option B", "Option C", "Option D"})
	require.NoError(t, err)
	for i := 0; i < count; i++ {
		mcq := courseModels.MCQ{
			LectureID:     lectureID,
			CourseID:      courseID,
			Question:      "Question",
			Options:       options,
			CorrectOption: i % 4,
		}
		require.NoError(t, db.Create(&mcq).Error)
	}
}

func lectureMCQs(t *testing.T, db *gorm.DB, lectureID uint) []courseModels.MCQ {
	t.Helper()
	var mcqs []courseModels.MCQ
	require.NoError(t, db.Where("lecture_id = ?", lectureID).Order("id asc").Find(&mcqs).Error)
	return mcqs
}

func finalMCQs(t *testing.T, db *gorm.DB, courseID uint) []courseModels.MCQ {
	t.Helper()
	var mcqs []courseModels.MCQ
	require.NoError(t, db.Where("course_id = ?", courseID).Order("id asc").Find(&mcqs).Error)
	return mcqs
}

// answersWith builds a full submission with the first correctCount
// questions answered correctly and the rest answered wrong.
func answersWith(mcqs []courseModels.MCQ, correctCount int) map[uint]int {
	answers := make(map[uint]int, len(mcqs))
	for i, mcq := range mcqs {
		if i < correctCount {
			answers[mcq.ID] = mcq.CorrectOption
		} else {
			answers[mcq.ID] = mcq.CorrectOption + 1
		}
	}
	return answers
}

// completeAllLectures walks the student through every lecture quiz with
// perfect submissions.
func completeAllLectures(t *testing.T, db *gorm.DB, f fixture) {
	t.Helper()
	for _, lecture := range f.lectures {
		mcqs := lectureMCQs(t, db, lecture.ID)
		result, err := SubmitLectureQuiz(db, f.student.ID, f.course.ID, lecture.ID, answersWith(mcqs, len(mcqs)))
		require.NoError(t, err)
		require.True(t, result.IsPassed)
	}
}

func loadProgress(t *testing.T, db *gorm.DB, userID, courseID uint) courseModels.CourseProgress {
	t.Helper()
	var progress courseModels.CourseProgress
	require.NoError(t, db.Preload("LectureProgress", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error)
	return progress
}
