package courseService

import (
	"encoding/json"
	"log"

	courseModels "learnhub/models/course"

	"gorm.io/gorm"
)

// FinalQuizAttemptBudget is the number of final quiz attempts granted at
// enrollment. Attempts are consumed on failing submissions too.
const FinalQuizAttemptBudget = 3

// InitProgress creates the CourseProgress record for a fresh purchase:
// one LectureProgress entry per lecture in course order, first lecture
// unlocked and set as the cursor. Calling it again for the same
// (user, course) pair returns the existing record untouched, so a
// payment confirmation that is retried does not reset anyone's progress.
func InitProgress(db *gorm.DB, userID, courseID uint) (*courseModels.CourseProgress, error) {
	var existing courseModels.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err == nil {
		return &existing, nil
	}

	var lectures []courseModels.Lecture
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&lectures).Error; err != nil {
		return nil, err
	}
	if len(lectures) == 0 {
		return nil, ErrCourseHasNoLectures
	}

	progress := courseModels.CourseProgress{
		UserID:               userID,
		CourseID:             courseID,
		CurrentLectureID:     lectures[0].ID,
		FinalQuizAttemptLeft: FinalQuizAttemptBudget,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&progress).Error; err != nil {
			return err
		}
		entries := make([]courseModels.LectureProgress, len(lectures))
		for i, lecture := range lectures {
			entries[i] = courseModels.LectureProgress{
				CourseProgressID: progress.ID,
				LectureID:        lecture.ID,
				Position:         i + 1,
				IsUnlocked:       i == 0,
			}
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// SubmitLectureQuiz grades a submission for the lecture currently at the
// cursor and, on a pass, completes it, unlocks the next lecture and
// recomputes the overall percentage in one transaction. Every transition
// write is conditional on the state it read, so two concurrent passing
// submissions cannot advance the cursor twice: the loser gets
// ErrStaleProgress. Failing submissions record an attempt but change no
// progress state.
func SubmitLectureQuiz(db *gorm.DB, userID, courseID, lectureID uint, answers map[uint]int) (*QuizResult, error) {
	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		First(&crs).Error; err != nil {
		return nil, ErrCourseNotFound
	}

	var progress courseModels.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
		return nil, ErrProgressNotFound
	}

	var lecture courseModels.Lecture
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lectureID, courseID, false).
		First(&lecture).Error; err != nil {
		return nil, ErrLectureNotFound
	}

	if progress.CurrentLectureID != lecture.ID {
		return nil, ErrNotActiveLecture
	}

	var entry courseModels.LectureProgress
	if err := db.Where("course_progress_id = ? AND lecture_id = ?", progress.ID, lecture.ID).
		First(&entry).Error; err != nil {
		return nil, ErrLectureNotFound
	}
	if entry.IsCompleted {
		return nil, ErrLectureCompleted
	}

	var mcqs []courseModels.MCQ
	if err := db.Where("lecture_id = ? AND is_deleted = ?", lecture.ID, false).
		Order("id asc").Find(&mcqs).Error; err != nil {
		return nil, err
	}

	result, err := GradeQuiz(mcqs, answers, lecture.RequiredPassPercentage)
	if err != nil {
		return nil, err
	}

	attempt, err := buildAttempt(userID, result)
	if err != nil {
		return nil, err
	}
	attempt.LectureID = &lecture.ID
	attempt.PassingScore = lecture.RequiredPassPercentage

	if !result.IsPassed {
		// Failed attempts are kept for analytics; the lecture stays unlocked.
		if err := db.Create(&attempt).Error; err != nil {
			return nil, err
		}
		return &result, nil
	}

	var entries []courseModels.LectureProgress
	if err := db.Where("course_progress_id = ?", progress.ID).
		Order("position asc").Find(&entries).Error; err != nil {
		return nil, err
	}

	completed := 0
	var next *courseModels.LectureProgress
	for i := range entries {
		if entries[i].IsCompleted {
			completed++
		}
		if entries[i].Position == entry.Position+1 {
			next = &entries[i]
		}
	}
	overall := float64(completed+1) / float64(len(entries)) * 100

	if err := applyLecturePass(db, &progress, entry, next, overall, attempt); err != nil {
		return nil, err
	}

	if next == nil {
		log.Printf("course %d completed by user %d", courseID, userID)
	}
	return &result, nil
}

// applyLecturePass commits a passing submission against the snapshot the
// caller graded with. Every write is conditional on that snapshot still
// being current, so the second of two racing submissions rolls back with
// ErrStaleProgress instead of double-advancing the enrollment.
func applyLecturePass(db *gorm.DB, progress *courseModels.CourseProgress, entry courseModels.LectureProgress, next *courseModels.LectureProgress, overall float64, attempt courseModels.QuizAttempt) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		res := tx.Model(&courseModels.LectureProgress{}).
			Where("id = ? AND is_completed = ?", entry.ID, false).
			Update("is_completed", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleProgress
		}

		cursor := progress.CurrentLectureID
		updates := map[string]interface{}{"overall_progress": overall}
		if next != nil {
			updates["current_lecture_id"] = next.LectureID
		}
		// The cursor condition is the compare-and-swap: a concurrent
		// submission that already advanced this enrollment makes the
		// update match zero rows and the transaction rolls back.
		res = tx.Model(&courseModels.CourseProgress{}).
			Where("id = ? AND current_lecture_id = ?", progress.ID, cursor).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleProgress
		}

		if next != nil {
			if err := tx.Model(&courseModels.LectureProgress{}).
				Where("id = ?", next.ID).
				Update("is_unlocked", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func buildAttempt(userID uint, result QuizResult) (courseModels.QuizAttempt, error) {
	responses, err := json.Marshal(result.Responses)
	if err != nil {
		return courseModels.QuizAttempt{}, err
	}
	return courseModels.QuizAttempt{
		UserID:         userID,
		MCQResponses:   responses,
		Score:          result.Percentage,
		TotalQuestions: result.TotalQuestions,
		IsPassed:       result.IsPassed,
	}, nil
}
