package courseService

import (
	"learnhub/models"
	courseModels "learnhub/models/course"

	"gorm.io/gorm"
)

// FinalExamResult is the outcome of one final quiz submission. Certificate
// is set when this submission passed; CertificateCreated reports whether it
// was freshly issued or an existing one was returned.
type FinalExamResult struct {
	QuizResult
	AttemptsLeft       int
	Certificate        *courseModels.Certificate
	CertificateCreated bool
}

// SubmitFinalExam runs the course final quiz for a student. Preconditions,
// checked in order: attempts must remain, then all lectures must be
// completed. One attempt is consumed whether the submission passes or
// fails. On a pass the attempt record, the attempt decrement, the one-way
// passed flag and certificate issuance commit as a single transaction, so
// an attempt can never be consumed without a durable outcome and no
// half-issued certificate can be observed.
func SubmitFinalExam(db *gorm.DB, student models.User, courseID uint, answers map[uint]int) (*FinalExamResult, error) {
	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		First(&crs).Error; err != nil {
		return nil, ErrCourseNotFound
	}

	var progress courseModels.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", student.ID, courseID).First(&progress).Error; err != nil {
		return nil, ErrProgressNotFound
	}

	if progress.FinalQuizAttemptLeft <= 0 {
		return nil, ErrAttemptsExhausted
	}
	if progress.OverallProgress != 100 {
		return nil, ErrLecturesIncomplete
	}

	var mcqs []courseModels.MCQ
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("id asc").Find(&mcqs).Error; err != nil {
		return nil, err
	}
	if len(mcqs) == 0 {
		return nil, ErrQuizNotFound
	}

	result, err := GradeQuiz(mcqs, answers, crs.RequiredCompletionPercentage)
	if err != nil {
		return nil, err
	}

	attempt, err := buildAttempt(student.ID, result)
	if err != nil {
		return nil, err
	}
	attempt.CourseID = &crs.ID
	attempt.PassingScore = crs.RequiredCompletionPercentage

	instructorName := "Unknown Instructor"
	var instructor models.User
	if err := db.Where("id = ?", crs.InstructorID).First(&instructor).Error; err == nil {
		instructorName = instructor.Name
	}

	final := FinalExamResult{
		QuizResult:   result,
		AttemptsLeft: progress.FinalQuizAttemptLeft - 1,
	}

	created, cert, err := applyFinalAttempt(db, student, crs, &progress, instructorName, attempt, result.IsPassed)
	if err != nil {
		return nil, err
	}
	final.Certificate = cert
	final.CertificateCreated = created
	return &final, nil
}

// applyFinalAttempt commits one consumed attempt against the progress
// snapshot the caller graded with. The counter condition is the
// compare-and-swap guard: a concurrent submission that already consumed
// this attempt makes the update match zero rows and everything rolls
// back with ErrStaleProgress, so the same budget slot is never spent
// twice. Attempts are consumed on failure too.
func applyFinalAttempt(db *gorm.DB, student models.User, crs courseModels.Course, progress *courseModels.CourseProgress, instructorName string, attempt courseModels.QuizAttempt, passed bool) (bool, *courseModels.Certificate, error) {
	var created bool
	var cert *courseModels.Certificate

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		res := tx.Model(&courseModels.CourseProgress{}).
			Where("id = ? AND final_quiz_attempt_left = ?", progress.ID, progress.FinalQuizAttemptLeft).
			Update("final_quiz_attempt_left", progress.FinalQuizAttemptLeft-1)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleProgress
		}

		if !passed {
			return nil
		}

		// One-way: only ever set to true, never reverted.
		if err := tx.Model(&courseModels.CourseProgress{}).
			Where("id = ?", progress.ID).
			Update("is_final_quiz_passed", true).Error; err != nil {
			return err
		}

		var err error
		created, cert, err = IssueCertificate(tx, student, crs, instructorName, attempt)
		return err
	})
	if err != nil {
		return false, nil, err
	}
	return created, cert, nil
}
