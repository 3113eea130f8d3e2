package courseService

import (
	"encoding/json"
	"testing"

	courseModels "learnhub/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeMCQs(t *testing.T, correctOptions []int) []courseModels.MCQ {
	t.Helper()
	options, err := json.Marshal([]string{"A", "B", "C", "D"})
	require.NoError(t, err)

	mcqs := make([]courseModels.MCQ, len(correctOptions))
	for i, correct := range correctOptions {
		mcqs[i] = courseModels.MCQ{Question: "q", Options: options, CorrectOption: correct}
		mcqs[i].ID = uint(i + 1)
	}
	return mcqs
}

func TestGradeQuizScoring(t *testing.T) {
	mcqs := makeMCQs(t, []int{0, 1, 2, 3, 0})

	result, err := GradeQuiz(mcqs, map[uint]int{1: 0, 2: 1, 3: 2, 4: 0, 5: 1}, 60)
	require.NoError(t, err)

	assert.Equal(t, 3, result.CorrectAnswers)
	assert.Equal(t, 5, result.TotalQuestions)
	assert.Equal(t, 60, result.Percentage)
	assert.True(t, result.IsPassed, "hitting the threshold exactly is a pass")
}

func TestGradeQuizBelowThreshold(t *testing.T) {
	mcqs := makeMCQs(t, []int{0, 0, 0, 0, 0})

	result, err := GradeQuiz(mcqs, map[uint]int{1: 0, 2: 0, 3: 1, 4: 1, 5: 1}, 60)
	require.NoError(t, err)

	assert.Equal(t, 40, result.Percentage)
	assert.False(t, result.IsPassed)
}

func TestGradeQuizRoundsHalfUp(t *testing.T) {
	// 1 of 8 correct is 12.5%, which rounds to 13
	mcqs := makeMCQs(t, []int{0, 0, 0, 0, 0, 0, 0, 0})
	answers := map[uint]int{1: 0, 2: 1, 3: 1, 4: 1, 5: 1, 6: 1, 7: 1, 8: 1}

	result, err := GradeQuiz(mcqs, answers, 60)
	require.NoError(t, err)
	assert.Equal(t, 13, result.Percentage)

	// 2 of 3 correct is 66.67%, which rounds to 67
	mcqs = makeMCQs(t, []int{0, 0, 0})
	result, err = GradeQuiz(mcqs, map[uint]int{1: 0, 2: 0, 3: 1}, 67)
	require.NoError(t, err)
	assert.Equal(t, 67, result.Percentage)
	assert.True(t, result.IsPassed)
}

func TestGradeQuizMissingAnswers(t *testing.T) {
	mcqs := makeMCQs(t, []int{0, 1, 2})

	_, err := GradeQuiz(mcqs, map[uint]int{1: 0, 2: 1}, 60)
	assert.ErrorIs(t, err, ErrMissingAnswers)

	_, err = GradeQuiz(mcqs, nil, 60)
	assert.ErrorIs(t, err, ErrMissingAnswers)
}

func TestGradeQuizEmptyQuestionSet(t *testing.T) {
	_, err := GradeQuiz(nil, map[uint]int{1: 0}, 60)
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestGradeQuizIgnoresUnknownAnswers(t *testing.T) {
	mcqs := makeMCQs(t, []int{0, 1})

	result, err := GradeQuiz(mcqs, map[uint]int{1: 0, 2: 1, 99: 3}, 60)
	require.NoError(t, err)
	assert.Equal(t, 2, result.CorrectAnswers)
	assert.Equal(t, 100, result.Percentage)
}

func TestGradeQuizFreezesResponses(t *testing.T) {
	mcqs := makeMCQs(t, []int{2, 3})

	result, err := GradeQuiz(mcqs, map[uint]int{1: 2, 2: 0}, 60)
	require.NoError(t, err)

	require.Len(t, result.Responses, 2)
	assert.Equal(t, courseModels.MCQResponse{MCQID: 1, SelectedOption: 2, IsCorrect: true}, result.Responses[0])
	assert.Equal(t, courseModels.MCQResponse{MCQID: 2, SelectedOption: 0, IsCorrect: false}, result.Responses[1])
}
