package courseService

import (
	"testing"

	courseModels "learnhub/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitProgress(t *testing.T) {
	db := setupTestDB(t)
	f := seedCourse(t, db)

	progress, err := InitProgress(db, f.student.ID, f.course.ID)
	require.NoError(t, err)

	assert.Equal(t, f.lectures[0].ID, progress.CurrentLectureID)
	assert.Equal(t, FinalQuizAttemptBudget, progress.FinalQuizAttemptLeft)
	assert.False(t, progress.IsFinalQuizPassed)

	stored := loadProgress(t, db, f.student.ID, f.course.ID)
	require.Len(t, stored.LectureProgress, 3)
	for i, entry := range stored.LectureProgress {
		assert.Equal(t, i+1, entry.Position)
		assert.Equal(t, f.lectures[i].ID, entry.LectureID)
		assert.Equal(t, i == 0, entry.IsUnlocked, "only the first lecture starts unlocked")
		assert.False(t, entry.IsCompleted)
	}
}

func TestInitProgressIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	f := seedCourse(t, db)

	first, err := InitProgress(db, f.student.ID, f.course.ID)
	require.NoError(t, err)

	// Advance a bit, then replay the enrollment
	mcqs := lectureMCQs(t, db, f.lectures[0].ID)
	_, err = SubmitLectureQuiz(db, f.student.ID, f.course.ID, f.lectures[0].ID, answersWith(mcqs, len(mcqs)))
	require.NoError(t, err)

	second, err := InitProgress(db, f.student.ID, f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	stored := loadProgress(t, db, f.student.ID, f.course.ID)
	assert.Equal(t, f.lectures[1].ID, stored.CurrentLectureID, "replayed enrollment must not reset progress")
	assert.True(t, stored.LectureProgress[0].IsCompleted)
}

func TestInitProgressRequiresLectures(t *testing.T) {
	db := setupTestDB(t)
	f := seedCourse(t, db)

	empty := courseModels.Course{Title: "Empty", InstructorID: f.instructor.ID, IsPublished: true, Status: "ACTIVE"}
	require.NoError(t, db.Create(&empty).Error)

	_, err := InitProgress(db, f.student.ID, empty.ID)
	assert.ErrorIs(t, err, ErrCourseHasNoLectures)
}

func TestSubmitLectureQuizPassAdvancesCursor(t *testing.T) {
	db := setupTestDB(t)
	f := seedCourse(t, db)
	_, err := InitProgress(db, f.student.ID, f.course.ID)
	require.NoError(t, err)

	// 3 of 5 correct is exactly the 60% threshold
	mcqs := lectureMCQs(t, db, f.lectures[0].ID)
	result, err := SubmitLectureQuiz(db, f.student.ID, f.course.ID, f.lectures[0].ID, answersWith(mcqs, 3))
	require.NoError(t, err)
	assert.True(t, result.IsPassed)
	assert.Equal(t, 60, result.Percentage)

	stored := loadProgress(t, db, f.student.ID, f.course.ID)
	assert.Equal(t, f.lectures[1].ID, stored.CurrentLectureID)
	assert.InDelta(t, 33.33, stored.OverallProgress, 0.01)
	assert.True(t, stored.LectureProgress[0].IsCompleted)
	assert.True(t, stored.LectureProgress[1].IsUnlocked)
	assert.False(t, stored.LectureProgress[2].IsUnlocked)

	var attempts []courseModels.QuizAttempt
	require.NoError(t, db.Where("user_id = ? AND lecture_id = ?", f.student.ID, f.lectures[0].ID).Find(&attempts).Error)
	require.Len(t, attempts, 1)
	assert.True(t, attempts[0].IsPassed)
	assert.Equal(t, 60, attempts[0].PassingScore)
}

func TestSubmitLectureQuizFailChangesNothing(t *testing.T) {
	db := setupTestDB(t)
	f := seedCourse(t, db)
	_, err := InitProgress(db, f.student.ID, f.course.ID)
	require.NoError(t, err)

	mcqs := lectureMCQs(t, db, f.lectures[0].ID)
	result, err := SubmitLectureQuiz(db, f.student.ID, f.course.ID, f.lectures[0].ID, answersWith(mcqs, 2))
	require.NoError(t, err)
	assert.False(t, result.IsPassed)
	assert.Equal(t, 40, result.Percentage)

	stored := loadProgress(t, db, f.student.ID, f.course.ID)
	assert.Equal(t, f.lectures[0].ID, stored.CurrentLectureID, "failed attempt must not advance the cursor")
	assert.Zero(t, stored.OverallProgress)
	assert.False(t, stored.LectureProgress[0].IsCompleted)
	assert.False(t, stored.LectureProgress[1].IsUnlocked)

	// The attempt is still recorded
	var count int64
	db.Model(&courseModels.QuizAttempt{}).Where("user_id = ? AND lecture_id = ?", f.student.ID, f.lectures[0].ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSubmitLectureQuizRejectsNonCursorLecture(t *testing.T) {
	db := setupTestDB(t)
	f := seedCourse(t, db)
	_, err := InitProgress(db, f.student.ID, f.course.ID)
	require.NoError(t, err)

	mcqs := lectureMCQs(t, db, f.lectures[1].ID)
	_, err = SubmitLectureQuiz(db, f.student.ID, f.course.ID, f.lectures[1].ID, answersWith(mcqs, len(mcqs)))
	assert.ErrorIs(t, err, ErrNotActiveLecture)

	mcqs = lectureMCQs(t, db, f.lectures[2].ID)
	_, err = SubmitLectureQuiz(db, f.student.ID, f.course.ID, f.lectures[2].ID, answersWith(mcqs, len(mcqs)))
	assert.ErrorIs(t, err, ErrNotActiveLecture)
}

func TestSubmitLectureQuizRequiresEnrollment(t *testing.T) {
	db := setupTestDB(t)
	f := seedCourse(t, db)

	mcqs := lectureMCQs(t, db, f.lectures[0].ID)
	_, err := SubmitLectureQuiz(db, f.student.ID, f.course.ID, f.lectures[0].ID, answersWith(mcqs, len(mcqs)))
	assert.ErrorIs(t, err, ErrProgressNotFound)
}

func TestCompletingAllLecturesReachesFullProgress(t *testing.T) {
	db := setupTestDB(t)
	f := seedCourse(t, db)
	_, err := InitProgress(db, f.student.ID, f.course.ID)
	require.NoError(t, err)

	completeAllLectures(t, db, f)

	stored := loadProgress(t, db, f.student.ID, f.course.ID)
	assert.EqualValues(t, 100, stored.OverallProgress)
	assert.Equal(t, f.lectures[2].ID, stored.CurrentLectureID, "cursor stays on the last lecture once all are complete")
	for _, entry := range stored.LectureProgress {
		assert.True(t, entry.IsCompleted)
	}

	// Re-submitting the last lecture is rejected, not double counted
	mcqs := lectureMCQs(t, db, f.lectures[2].ID)
	_, err = SubmitLectureQuiz(db, f.student.ID, f.course.ID, f.lectures[2].ID, answersWith(mcqs, len(mcqs)))
	assert.ErrorIs(t, err, ErrLectureCompleted)
}

func TestLecturePassRejectsStaleSnapshot(t *testing.T) {
	db := setupTestDB(t)
	f := seedCourse(t, db)
	_, err := InitProgress(db, f.student.ID, f.course.ID)
	require.NoError(t, err)

	// Two submissions read the same state; the first one wins
	snapshot := loadProgress(t, db, f.student.ID, f.course.ID)
	entry := snapshot.LectureProgress[0]
	next := &snapshot.LectureProgress[1]

	mcqs := lectureMCQs(t, db, f.lectures[0].ID)
	_, err = SubmitLectureQuiz(db, f.student.ID, f.course.ID, f.lectures[0].ID, answersWith(mcqs, len(mcqs)))
	require.NoError(t, err)

	// The loser writes against its now-stale snapshot
	attempt := courseModels.QuizAttempt{UserID: f.student.ID, LectureID: &f.lectures[0].ID, Score: 100, TotalQuestions: 5, IsPassed: true}
	err = applyLecturePass(db, &snapshot, entry, next, 33.33, attempt)
	assert.ErrorIs(t, err, ErrStaleProgress)

	// Nothing double counted
	stored := loadProgress(t, db, f.student.ID, f.course.ID)
	assert.Equal(t, f.lectures[1].ID, stored.CurrentLectureID)
	assert.InDelta(t, 33.33, stored.OverallProgress, 0.01)

	var count int64
	db.Model(&courseModels.QuizAttempt{}).Where("lecture_id = ?", f.lectures[0].ID).Count(&count)
	assert.EqualValues(t, 1, count, "the losing attempt record rolls back with its transaction")
}

func TestLecturePassRollsBackOnStaleCursor(t *testing.T) {
	db := setupTestDB(t)
	f := seedCourse(t, db)
	_, err := InitProgress(db, f.student.ID, f.course.ID)
	require.NoError(t, err)

	snapshot := loadProgress(t, db, f.student.ID, f.course.ID)
	entry := snapshot.LectureProgress[0]
	next := &snapshot.LectureProgress[1]

	// The cursor moves underneath the submission while the entry itself
	// is still open, so the completion write succeeds and the cursor
	// compare-and-swap is what aborts the transaction
	require.NoError(t, db.Model(&courseModels.CourseProgress{}).
		Where("id = ?", snapshot.ID).
		Update("current_lecture_id", f.lectures[1].ID).Error)

	attempt := courseModels.QuizAttempt{UserID: f.student.ID, LectureID: &f.lectures[0].ID, Score: 100, TotalQuestions: 5, IsPassed: true}
	err = applyLecturePass(db, &snapshot, entry, next, 33.33, attempt)
	assert.ErrorIs(t, err, ErrStaleProgress)

	// The completion write from the same transaction rolled back too
	stored := loadProgress(t, db, f.student.ID, f.course.ID)
	assert.False(t, stored.LectureProgress[0].IsCompleted)
	assert.Zero(t, stored.OverallProgress)

	var count int64
	db.Model(&courseModels.QuizAttempt{}).Where("user_id = ?", f.student.ID).Count(&count)
	assert.Zero(t, count)
}

func TestSubmitLectureQuizMissingAnswers(t *testing.T) {
	db := setupTestDB(t)
	f := seedCourse(t, db)
	_, err := InitProgress(db, f.student.ID, f.course.ID)
	require.NoError(t, err)

	mcqs := lectureMCQs(t, db, f.lectures[0].ID)
	partial := answersWith(mcqs, len(mcqs))
	delete(partial, mcqs[0].ID)

	_, err = SubmitLectureQuiz(db, f.student.ID, f.course.ID, f.lectures[0].ID, partial)
	assert.ErrorIs(t, err, ErrMissingAnswers)

	var count int64
	db.Model(&courseModels.QuizAttempt{}).Where("user_id = ?", f.student.ID).Count(&count)
	assert.Zero(t, count, "rejected submissions are not recorded as attempts")
}
