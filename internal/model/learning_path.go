package model

import (
	"errors"
	"fmt"

	"gorm.io/datatypes"
)

// swagger:model LearningPath
type LearningPath struct {
	UUIDBase
	Title       string        `gorm:"size:255;not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Level       LiteracyLevel `gorm:"size:20;not null;index" json:"level"`
	Modules     []Module      `gorm:"foreignKey:PathID" json:"modules,omitempty"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

// Module 学习模块，测验题目以 JSON 列内嵌存储
// swagger:model Module
type Module struct {
	UUIDBase
	PathID        string                            `gorm:"type:varchar(36);not null;uniqueIndex:idx_path_order" json:"pathId"`
	Title         string                            `gorm:"size:255;not null" json:"title"`
	Content       string                            `gorm:"type:text" json:"content,omitempty"`
	Order         int                               `gorm:"column:sort_order;not null;uniqueIndex:idx_path_order" json:"order"`
	VideoURL      *string                           `gorm:"size:512" json:"videoUrl,omitempty"`
	QuizQuestions datatypes.JSONSlice[QuizQuestion] `json:"quizQuestions,omitempty"`
	Path          *LearningPath                     `gorm:"foreignKey:PathID" json:"path,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}

// Validate 写入前校验模块内嵌题目
func (m *Module) Validate() error {
	if m.PathID == "" {
		return errors.New("module must belong to a learning path")
	}
	for i, q := range m.QuizQuestions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("quiz question %d: %w", i, err)
		}
	}
	return nil
}

// QuizQuestion 内嵌测验题，正确答案必须是选项之一（区分大小写）
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

var (
	ErrEmptyQuestion      = errors.New("question text is empty")
	ErrNoOptions          = errors.New("question has no options")
	ErrAnswerNotInOptions = errors.New("correct answer is not one of the options")
)

func (q QuizQuestion) Validate() error {
	if q.Question == "" {
		return ErrEmptyQuestion
	}
	if len(q.Options) == 0 {
		return ErrNoOptions
	}
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return nil
		}
	}
	return ErrAnswerNotInOptions
}

// ModuleSummary 学习路径列表中的模块摘要
type ModuleSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
}

// LearningPathSummary 学习路径列表项
type LearningPathSummary struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Level       LiteracyLevel   `json:"level"`
	Modules     []ModuleSummary `json:"modules"`
}
