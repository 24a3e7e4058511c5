package service

import (
	"wealth_builder_backend/internal/model"
	"wealth_builder_backend/internal/util"
)

// PassThreshold 测验及格线（百分制）
const PassThreshold = 80

type QuizGrade struct {
	CorrectCount   int  `json:"correctAnswers"`
	TotalQuestions int  `json:"totalQuestions"`
	Score          int  `json:"score"`
	Passed         bool `json:"passed"`
}

// GradeQuiz 按位置逐题比对答案（严格字符串相等）。缺少的答案记为答错，多余的答案忽略。
func GradeQuiz(questions []model.QuizQuestion, answers []string) (QuizGrade, error) {
	total := len(questions)
	if total == 0 {
		return QuizGrade{}, util.ErrEmptyQuiz
	}

	correct := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}

	score := roundRatio(100*correct, total)
	return QuizGrade{
		CorrectCount:   correct,
		TotalQuestions: total,
		Score:          score,
		Passed:         score >= PassThreshold,
	}, nil
}

// roundRatio 计算 num/den 并四舍五入（0.5 向上），要求 num >= 0, den > 0
func roundRatio(num, den int) int {
	return (2*num + den) / (2 * den)
}
