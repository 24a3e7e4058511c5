package service

import (
	"context"
	"fmt"

	"wealth_builder_backend/internal/model"
	"wealth_builder_backend/internal/util"
	"wealth_builder_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

type ProgressService struct {
	Progress   ProgressStore
	Content    ContentStore
	Aggregator *ProgressAggregator
}

func NewProgressService(progress ProgressStore, content ContentStore, aggregator *ProgressAggregator) *ProgressService {
	return &ProgressService{
		Progress:   progress,
		Content:    content,
		Aggregator: aggregator,
	}
}

// GetUserProgress 并发读取用户进度、测验记录和模块总数并计算统计。
// 任一数据源失败都会使整个请求失败，不返回默认值。
func (s *ProgressService) GetUserProgress(ctx context.Context, userID string) (overview *model.UserProgressOverview, err error) {
	ctx, span := tracing.StartSpan(ctx, "ProgressService.GetUserProgress", attribute.String("user.id", userID))
	defer func() { tracing.EndSpan(span, err) }()

	var (
		progress     []model.UserProgress
		responses    []model.QuizResponse
		totalModules int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if progress, err = s.Progress.FindProgressByUser(gctx, userID); err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if responses, err = s.Progress.FindResponsesByUser(gctx, userID); err != nil {
			return fmt.Errorf("load quiz responses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if totalModules, err = s.Content.CountModules(gctx); err != nil {
			return fmt.Errorf("count modules: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", util.ErrDependencyUnavailable, err)
	}

	if progress == nil {
		progress = []model.UserProgress{}
	}
	if responses == nil {
		responses = []model.QuizResponse{}
	}

	return &model.UserProgressOverview{
		Progress:      progress,
		QuizResponses: responses,
		ProgressStats: s.Aggregator.Compute(progress, responses, totalModules),
	}, nil
}
