package database

import (
	"context"
	"fmt"

	"wealth_builder_backend/internal/config"
	"wealth_builder_backend/internal/model"
	"wealth_builder_backend/internal/repository"
	"wealth_builder_backend/internal/util"
	"wealth_builder_backend/pkg/database/seeddata"
	"wealth_builder_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Dialector 根据配置选择数据库驱动
func Dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", util.DriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=UTC",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		return mysql.Open(dsn), nil
	case util.DriverPostgres:
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslMode)
		return postgres.Open(dsn), nil
	case util.DriverSQLite:
		return sqlite.Open(cfg.DBName), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func InitDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	level := gormLogger.Warn
	if debug {
		level = gormLogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established", zap.String("driver", cfg.Driver))
	return db, nil
}

// Migrate 建表并在内容为空时写入默认学习内容
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&model.User{},
		&model.LearningPath{},
		&model.Module{},
		&model.UserProgress{},
		&model.QuizResponse{},
	)
	if err != nil {
		return err
	}
	logger.Log.Info("Database migration completed")

	var count int64
	if err := db.WithContext(ctx).Model(&model.LearningPath{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return SeedContent(ctx, db, false)
	}
	return nil
}

// SeedContent 写入内置学习内容；reset 为 true 时先清空已有内容和进度
func SeedContent(ctx context.Context, db *gorm.DB, reset bool) error {
	file, err := seeddata.Load()
	if err != nil {
		return err
	}
	return SeedFile(ctx, db, file, reset)
}

// SeedFile 按给定内容文件写入学习路径和模块
func SeedFile(ctx context.Context, db *gorm.DB, file *seeddata.File, reset bool) error {
	repo := repository.NewLearningPathRepository(db)
	if reset {
		if err := repo.DeleteAllContent(ctx); err != nil {
			return fmt.Errorf("clear content: %w", err)
		}
		logger.Log.Info("Cleared existing learning content")
	}

	for _, p := range file.Paths {
		path, modules := p.ToModels()
		if err := repo.CreatePathWithModules(ctx, path, modules); err != nil {
			return fmt.Errorf("seed path %q: %w", p.Title, err)
		}
		logger.Log.Info("Seeded learning path", zap.String("title", path.Title), zap.Int("modules", len(modules)))
	}
	return nil
}
