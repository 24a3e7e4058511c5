package repository

import (
	"context"
	"fmt"
	"time"

	"wealth_builder_backend/internal/model"
	"wealth_builder_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository 学习进度账本：进度按 (user, module) 唯一 upsert，测验记录只追加
type ProgressRepository struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db, Now: time.Now}
}

// UpsertProgress 创建或更新用户模块进度。quizScore 为 nil 时保留原分数；
// completed=false 不会清除之前记录的 completedAt。
func (r *ProgressRepository) UpsertProgress(ctx context.Context, userID, moduleID string, completed bool, quizScore *int) (*model.UserProgress, error) {
	var progress *model.UserProgress
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		progress, err = r.upsert(tx, userID, moduleID, completed, quizScore, r.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// AppendQuizResponse 追加一条测验提交记录
func (r *ProgressRepository) AppendQuizResponse(ctx context.Context, response *model.QuizResponse) error {
	return r.DB.WithContext(ctx).Create(response).Error
}

// RecordQuizAttempt 在同一事务中写入测验记录并更新进度，只有通过时才标记完成
func (r *ProgressRepository) RecordQuizAttempt(ctx context.Context, response *model.QuizResponse, passed bool) (*model.UserProgress, error) {
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = r.Now()
	}

	var progress *model.UserProgress
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(response).Error; err != nil {
			return fmt.Errorf("append quiz response: %w", err)
		}

		score := response.Score
		var err error
		progress, err = r.upsert(tx, response.UserID, response.ModuleID, passed, &score, response.SubmittedAt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *ProgressRepository) upsert(tx *gorm.DB, userID, moduleID string, completed bool, quizScore *int, now time.Time) (*model.UserProgress, error) {
	// 统一截断到毫秒，避免各数据库时间精度不同导致 updated_at 比较失真
	now = now.Truncate(time.Millisecond)

	row := &model.UserProgress{UserID: userID, ModuleID: moduleID}
	row.CreatedAt = now
	row.UpdatedAt = now
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
		return nil, fmt.Errorf("insert progress: %w", err)
	}

	// 单条 UPDATE 保证并发提交不会丢失更新。MySQL 按从左到右的顺序求值 SET，
	// completed_at 必须排在 completed 之前，才能读到旧的完成状态。
	// updated_at 条件保证较早的提交晚于较新的提交落库时不会覆盖其结果。
	res := tx.Exec(
		"UPDATE "+model.UserProgress{}.TableName()+" SET "+
			"completed_at = CASE WHEN ? AND (completed = ? OR completed_at IS NULL) THEN ? ELSE completed_at END, "+
			"completed = ?, "+
			"quiz_score = COALESCE(?, quiz_score), "+
			"updated_at = ? "+
			"WHERE user_id = ? AND module_id = ? AND deleted_at IS NULL "+
			"AND (updated_at IS NULL OR updated_at <= ?)",
		completed, false, now,
		completed,
		quizScore,
		now,
		userID, moduleID,
		now,
	)
	if res.Error != nil {
		return nil, fmt.Errorf("update progress: %w", res.Error)
	}

	var progress model.UserProgress
	if err := tx.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&progress).Error; err != nil {
		return nil, fmt.Errorf("reload progress: %w", err)
	}
	if res.RowsAffected == 0 {
		logger.Log.Debug("Stale progress update skipped",
			zap.String("user_id", userID),
			zap.String("module_id", moduleID),
			zap.Time("at", now))
	}
	return &progress, nil
}

// FindProgressByUser 返回用户全部进度记录，附带模块摘要
func (r *ProgressRepository) FindProgressByUser(ctx context.Context, userID string) ([]model.UserProgress, error) {
	var progress []model.UserProgress
	err := r.DB.WithContext(ctx).
		Preload("Module", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "path_id", "title", "sort_order", "created_at", "updated_at")
		}).
		Where("user_id = ?", userID).
		Order("completed_at IS NULL, completed_at DESC").
		Find(&progress).Error
	return progress, err
}

// FindResponsesByUser 返回用户全部测验记录，最新的在前
func (r *ProgressRepository) FindResponsesByUser(ctx context.Context, userID string) ([]model.QuizResponse, error) {
	var responses []model.QuizResponse
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&responses).Error
	return responses, err
}
