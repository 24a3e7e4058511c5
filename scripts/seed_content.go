// 手动重建学习内容脚本
//
// 启动参数 -seed 也会执行同样的操作。此脚本用于在不启动服务的情况下
// 导入内置内容或外部 YAML 内容文件，并清除内容缓存。
//
// 用法: go run scripts/seed_content.go [-file content.yaml] [-keep]

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"wealth_builder_backend/internal/config"
	"wealth_builder_backend/internal/repository"
	"wealth_builder_backend/internal/service"
	"wealth_builder_backend/pkg/database"
	"wealth_builder_backend/pkg/database/seeddata"
	"wealth_builder_backend/pkg/logger"
)

func main() {
	file := flag.String("file", "", "外部内容 YAML 文件，留空使用内置内容")
	keep := flag.Bool("keep", false, "保留已有内容，只追加")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	content, err := loadContent(*file)
	if err != nil {
		log.Fatalf("解析内容文件失败: %v", err)
	}

	log.Printf("写入 %d 条学习路径...", len(content.Paths))
	if err := database.SeedFile(ctx, db, content, !*keep); err != nil {
		log.Fatalf("写入内容失败: %v", err)
	}

	// redis 不可用时无需清缓存
	if rdb, err := database.InitRedis(&cfg.Redis); err == nil {
		defer rdb.Close()
		contentSvc := service.NewContentService(repository.NewLearningPathRepository(db), rdb, 0)
		if err := contentSvc.Invalidate(ctx); err != nil {
			log.Printf("清除内容缓存失败: %v", err)
		}
	}

	log.Println("完成！")
}

func loadContent(path string) (*seeddata.File, error) {
	if path == "" {
		return seeddata.Load()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seeddata.Parse(data)
}
