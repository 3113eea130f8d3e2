package courseService

import "errors"

// Sentinel errors returned by the progress engine. Controllers map these
// onto HTTP statuses; the messages double as user-facing text.
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrLectureNotFound     = errors.New("lecture not found")
	ErrProgressNotFound    = errors.New("user not enrolled in this course")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrCourseHasNoLectures = errors.New("course has no lectures")
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrPaymentNotFound     = errors.New("payment order not found")

	ErrPaymentNotPayable = errors.New("payment order is no longer payable")

	ErrNotActiveLecture   = errors.New("you can only attempt the current lecture")
	ErrLectureCompleted   = errors.New("lecture already completed")
	ErrLecturesIncomplete = errors.New("you need to complete all lectures first")
	ErrAttemptsExhausted  = errors.New("you have exhausted all attempts for the final quiz")

	ErrMissingAnswers = errors.New("please make sure you have answered all questions")

	// Returned when a concurrent submission already advanced the same
	// enrollment; the write is aborted and nothing is double-counted.
	ErrStaleProgress = errors.New("progress was updated by another request, please retry")
)
