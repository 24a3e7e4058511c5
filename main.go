// @title Wealth Builder 后端 API
// @version 1.0
// @description 理财素养学习平台的后端服务器：学习路径、测验评分、学习进度与连续学习统计。
// @termsOfService http://swagger.io/terms/

// @contact.name API支持
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"wealth_builder_backend/internal/app"
	"wealth_builder_backend/internal/config"
	"wealth_builder_backend/pkg/configwatcher"
	"wealth_builder_backend/pkg/logger"

	"github.com/common-nighthawk/go-figure"
	"go.uber.org/zap"
)

const configDir = "configs"

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	seed := flag.Bool("seed", false, "启动前清空并重新写入内置学习内容")
	flag.Parse()

	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置迁移标志
	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	printStartUpBanner(cfg)

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer logger.Log.Sync()

	if *seed {
		if err := application.Reseed(context.Background()); err != nil {
			logger.Log.Fatal("Failed to seed content", zap.Error(err))
		}
		logger.Log.Info("Learning content reseeded")
	}

	// 迁移完成后直接退出
	if *migrateOnly {
		logger.Log.Info("Database migration finished, exiting")
		application.Close(context.Background())
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watcher, err := configwatcher.New(filepath.Join(configDir, "config.yaml"), application.ApplyConfig)
	if err != nil {
		logger.Log.Warn("Config hot reload disabled", zap.Error(err))
	} else {
		go watcher.Run(ctx)
	}

	application.Run()
}

func printStartUpBanner(cfg *config.Config) {
	figure.NewFigure("WEALTH BUILDER", "", true).Print()
	fmt.Println("======================================================")
	fmt.Printf("Wealth Builder API (mode=%s, port=%s)\n\n", cfg.Server.Mode, cfg.Server.Port)
}
