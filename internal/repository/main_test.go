package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"wealth_builder_backend/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// newTestDB 为每个测试创建独立的内存 sqlite 数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.LearningPath{},
		&model.Module{},
		&model.UserProgress{},
		&model.QuizResponse{},
	))
	return db
}

func seedPath(t *testing.T, db *gorm.DB, title string, moduleCount int) (*model.LearningPath, []model.Module) {
	t.Helper()

	path := &model.LearningPath{Title: title, Level: model.Beginner}
	modules := make([]model.Module, 0, moduleCount)
	for i := moduleCount; i >= 1; i-- {
		modules = append(modules, model.Module{
			Title: fmt.Sprintf("%s module %d", title, i),
			Order: i,
			QuizQuestions: []model.QuizQuestion{
				{Question: "q", Options: []string{"A", "B"}, CorrectAnswer: "A"},
			},
		})
	}

	repo := NewLearningPathRepository(db)
	require.NoError(t, repo.CreatePathWithModules(context.Background(), path, modules))
	return path, modules
}
