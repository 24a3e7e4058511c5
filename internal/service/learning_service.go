package service

import (
	"context"
	"strings"
	"time"

	"wealth_builder_backend/internal/model"
	"wealth_builder_backend/internal/util"
	"wealth_builder_backend/pkg/logger"
	"wealth_builder_backend/pkg/monitoring"
	"wealth_builder_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type LearningService struct {
	Content  ContentStore
	Progress ProgressStore
	Storage  *StorageService
	Now      func() time.Time
}

func NewLearningService(content ContentStore, progress ProgressStore, storage *StorageService) *LearningService {
	return &LearningService{
		Content:  content,
		Progress: progress,
		Storage:  storage,
		Now:      time.Now,
	}
}

// QuizResult 测验提交结果
type QuizResult struct {
	QuizGrade
	QuizResponseID string `json:"quizResponseId"`
}

// ListPaths 返回所有学习路径及其模块摘要
func (s *LearningService) ListPaths(ctx context.Context) ([]model.LearningPathSummary, error) {
	paths, err := s.Content.ListWithModules(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.LearningPathSummary, 0, len(paths))
	for _, p := range paths {
		summary := model.LearningPathSummary{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Level:       p.Level,
			Modules:     make([]model.ModuleSummary, 0, len(p.Modules)),
		}
		for _, m := range p.Modules {
			summary.Modules = append(summary.Modules, model.ModuleSummary{ID: m.ID, Title: m.Title, Order: m.Order})
		}
		out = append(out, summary)
	}
	return out, nil
}

// GetModule 返回模块详情，视频地址通过存储后端解析
func (s *LearningService) GetModule(ctx context.Context, id string) (*model.Module, error) {
	module, err := s.Content.FindModuleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if module.VideoURL != nil && s.Storage != nil {
		resolved, err := s.Storage.ResolveURL(ctx, *module.VideoURL)
		if err != nil {
			// 视频链接不可用不影响模块内容返回
			logger.Log.Warn("Resolve module video failed", zap.String("moduleId", id), zap.Error(err))
			module.VideoURL = nil
		} else {
			module.VideoURL = &resolved
		}
	}
	return module, nil
}

// SubmitQuiz 评分并在同一事务中写入测验记录和进度，只有通过时才标记模块完成
func (s *LearningService) SubmitQuiz(ctx context.Context, userID, moduleID string, answers []string) (result *QuizResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "LearningService.SubmitQuiz",
		attribute.String("user.id", userID),
		attribute.String("module.id", moduleID),
	)
	defer func() { tracing.EndSpan(span, err) }()

	if userID == "" {
		return nil, util.ErrUnauthorized
	}
	if strings.TrimSpace(moduleID) == "" {
		return nil, util.NewValidationError("moduleId", "Module ID is required")
	}
	if answers == nil {
		return nil, util.NewValidationError("answers", "Answers are required")
	}

	module, err := s.Content.FindModuleByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if len(module.QuizQuestions) == 0 {
		return nil, util.ErrEmptyQuiz
	}

	grade, err := GradeQuiz(module.QuizQuestions, answers)
	if err != nil {
		return nil, err
	}

	response := &model.QuizResponse{
		UserID:      userID,
		ModuleID:    moduleID,
		Answers:     answers,
		Score:       grade.Score,
		SubmittedAt: s.Now(),
	}
	if _, err := s.Progress.RecordQuizAttempt(ctx, response, grade.Passed); err != nil {
		return nil, err
	}

	monitoring.ObserveQuiz(grade.Score, grade.Passed)
	span.SetAttributes(attribute.Int("quiz.score", grade.Score), attribute.Bool("quiz.passed", grade.Passed))

	return &QuizResult{QuizGrade: grade, QuizResponseID: response.ID}, nil
}

// SubmitProgress 手动更新模块完成状态
func (s *LearningService) SubmitProgress(ctx context.Context, userID, moduleID string, completed bool) (*model.UserProgress, error) {
	if userID == "" {
		return nil, util.ErrUnauthorized
	}
	if strings.TrimSpace(moduleID) == "" {
		return nil, util.NewValidationError("moduleId", "Module ID is required")
	}

	if _, err := s.Content.FindModuleByID(ctx, moduleID); err != nil {
		return nil, err
	}

	progress, err := s.Progress.UpsertProgress(ctx, userID, moduleID, completed, nil)
	if err != nil {
		return nil, err
	}

	monitoring.ObserveProgress(completed)
	return progress, nil
}
