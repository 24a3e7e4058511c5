package service

import (
	"context"

	"wealth_builder_backend/internal/model"
)

// ContentStore 学习内容的只读访问
type ContentStore interface {
	ListWithModules(ctx context.Context) ([]model.LearningPath, error)
	FindModuleByID(ctx context.Context, id string) (*model.Module, error)
	CountModules(ctx context.Context) (int64, error)
}

// ProgressStore 学习进度账本
type ProgressStore interface {
	UpsertProgress(ctx context.Context, userID, moduleID string, completed bool, quizScore *int) (*model.UserProgress, error)
	RecordQuizAttempt(ctx context.Context, response *model.QuizResponse, passed bool) (*model.UserProgress, error)
	FindProgressByUser(ctx context.Context, userID string) ([]model.UserProgress, error)
	FindResponsesByUser(ctx context.Context, userID string) ([]model.QuizResponse, error)
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
}

type InvestmentStore interface {
	FindAll(ctx context.Context) ([]model.Investment, error)
	FindByID(ctx context.Context, id string) (*model.Investment, error)
}
