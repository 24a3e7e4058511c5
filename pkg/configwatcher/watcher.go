package configwatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"wealth_builder_backend/internal/config"
	"wealth_builder_backend/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

type ConfigReloader func(cfg *config.Config)

// Loader 读取配置目录，测试中可替换
type Loader func(dir string) (*config.Config, error)

type Watcher struct {
	path     string
	debounce time.Duration
	load     Loader
	reload   ConfigReloader
	fs       *fsnotify.Watcher
}

// New 监听配置文件所在目录，编辑器以重命名方式保存时也能收到事件
func New(configFile string, reload ConfigReloader) (*Watcher, error) {
	absPath, err := filepath.Abs(configFile)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch config dir: %w", err)
	}

	return &Watcher{
		path:     absPath,
		debounce: time.Second,
		load:     config.LoadConfig,
		reload:   reload,
		fs:       fsw,
	}, nil
}

// Run 阻塞直到 ctx 结束，多次写入在 debounce 窗口内合并为一次重载
func (w *Watcher) Run(ctx context.Context) {
	defer w.fs.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// 防抖处理
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			newCfg, err := w.load(filepath.Dir(w.path))
			if err != nil {
				logger.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			logger.Log.Info("Config reloaded", zap.String("path", w.path))
			w.reload(newCfg)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}
