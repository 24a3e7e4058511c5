package service

import (
	"testing"

	"wealth_builder_backend/internal/model"
	"wealth_builder_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourQuestions() []model.QuizQuestion {
	return []model.QuizQuestion{
		{Question: "q1", Options: []string{"A", "Z"}, CorrectAnswer: "A"},
		{Question: "q2", Options: []string{"B", "Z"}, CorrectAnswer: "B"},
		{Question: "q3", Options: []string{"C", "Z"}, CorrectAnswer: "C"},
		{Question: "q4", Options: []string{"D", "Z"}, CorrectAnswer: "D"},
	}
}

func TestGradeQuiz(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		correct int
		score   int
		passed  bool
	}{
		{"all correct", []string{"A", "B", "C", "D"}, 4, 100, true},
		{"one wrong", []string{"A", "B", "X", "D"}, 3, 75, false},
		{"missing answers are misses", []string{"A", "B"}, 2, 50, false},
		{"extra answers ignored", []string{"A", "B", "C", "D", "E"}, 4, 100, true},
		{"no answers", []string{}, 0, 0, false},
		{"exact match only", []string{"a", " B", "C ", "D"}, 1, 25, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grade, err := GradeQuiz(fourQuestions(), tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.correct, grade.CorrectCount)
			assert.Equal(t, 4, grade.TotalQuestions)
			assert.Equal(t, tt.score, grade.Score)
			assert.Equal(t, tt.passed, grade.Passed)
		})
	}
}

func TestGradeQuizRounding(t *testing.T) {
	questions := make([]model.QuizQuestion, 3)
	for i := range questions {
		questions[i] = model.QuizQuestion{Question: "q", Options: []string{"Y", "N"}, CorrectAnswer: "Y"}
	}

	grade, err := GradeQuiz(questions, []string{"Y", "N", "N"})
	require.NoError(t, err)
	assert.Equal(t, 33, grade.Score)

	grade, err = GradeQuiz(questions, []string{"Y", "Y", "N"})
	require.NoError(t, err)
	assert.Equal(t, 67, grade.Score)

	// 0.5 向上取整：1/8 = 12.5 -> 13
	eight := make([]model.QuizQuestion, 8)
	for i := range eight {
		eight[i] = questions[0]
	}
	grade, err = GradeQuiz(eight, []string{"Y"})
	require.NoError(t, err)
	assert.Equal(t, 13, grade.Score)
}

func TestGradeQuizPassBoundary(t *testing.T) {
	five := make([]model.QuizQuestion, 5)
	for i := range five {
		five[i] = model.QuizQuestion{Question: "q", Options: []string{"Y", "N"}, CorrectAnswer: "Y"}
	}

	grade, err := GradeQuiz(five, []string{"Y", "Y", "Y", "Y", "N"})
	require.NoError(t, err)
	assert.Equal(t, PassThreshold, grade.Score)
	assert.True(t, grade.Passed)
}

func TestGradeQuizEmpty(t *testing.T) {
	_, err := GradeQuiz(nil, []string{"A"})
	assert.ErrorIs(t, err, util.ErrEmptyQuiz)
}
