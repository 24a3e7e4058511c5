package repository

import (
	"context"
	"errors"

	"wealth_builder_backend/internal/model"
	"wealth_builder_backend/internal/util"

	"gorm.io/gorm"
)

// LearningPathRepository 学习内容（路径、模块）的只读查询与初始化写入
type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

// ListWithModules 返回所有学习路径及其模块摘要，模块按 order 排序
func (r *LearningPathRepository) ListWithModules(ctx context.Context) ([]model.LearningPath, error) {
	var paths []model.LearningPath
	err := r.DB.WithContext(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "path_id", "title", "sort_order", "created_at", "updated_at").
				Order("sort_order ASC").
				Order("created_at ASC")
		}).
		Order("created_at ASC").
		Find(&paths).Error
	return paths, err
}

func (r *LearningPathRepository) FindModuleByID(ctx context.Context, id string) (*model.Module, error) {
	var module model.Module
	err := r.DB.WithContext(ctx).Preload("Path").Where("id = ?", id).First(&module).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModuleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *LearningPathRepository) CountModules(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Module{}).Count(&count).Error
	return count, err
}

// CreatePathWithModules 写入学习路径及其模块，写入前校验测验题目
func (r *LearningPathRepository) CreatePathWithModules(ctx context.Context, path *model.LearningPath, modules []model.Module) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Modules").Create(path).Error; err != nil {
			return err
		}
		for i := range modules {
			modules[i].PathID = path.ID
			if err := modules[i].Validate(); err != nil {
				return err
			}
			if err := tx.Omit("Path").Create(&modules[i]).Error; err != nil {
				return err
			}
		}
		path.Modules = modules
		return nil
	})
}

// DeleteAllContent 清空学习内容及相关进度（重新导入种子数据时使用）
func (r *LearningPathRepository) DeleteAllContent(ctx context.Context) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&model.QuizResponse{}, &model.UserProgress{}, &model.Module{}, &model.LearningPath{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
