// Package seeddata 内置的学习内容种子数据
package seeddata

import (
	_ "embed"
	"fmt"

	"wealth_builder_backend/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var contentYAML []byte

type File struct {
	Paths []Path `yaml:"paths"`
}

type Path struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Level       string   `yaml:"level"`
	Modules     []Module `yaml:"modules"`
}

type Module struct {
	Title         string     `yaml:"title"`
	Order         int        `yaml:"order"`
	Content       string     `yaml:"content"`
	VideoURL      string     `yaml:"videoUrl"`
	QuizQuestions []Question `yaml:"quizQuestions"`
}

type Question struct {
	Question      string   `yaml:"question"`
	Options       []string `yaml:"options"`
	CorrectAnswer string   `yaml:"correctAnswer"`
}

// Load 解析内置种子数据
func Load() (*File, error) {
	return Parse(contentYAML)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed content: %w", err)
	}
	for _, p := range f.Paths {
		if !model.LiteracyLevel(p.Level).Valid() {
			return nil, fmt.Errorf("path %q: invalid level %q", p.Title, p.Level)
		}
	}
	return &f, nil
}

// ToModels 转换为待写入的学习路径和模块
func (p Path) ToModels() (*model.LearningPath, []model.Module) {
	path := &model.LearningPath{
		Title:       p.Title,
		Description: p.Description,
		Level:       model.LiteracyLevel(p.Level),
	}

	modules := make([]model.Module, 0, len(p.Modules))
	for _, m := range p.Modules {
		mod := model.Module{
			Title:   m.Title,
			Content: m.Content,
			Order:   m.Order,
		}
		if m.VideoURL != "" {
			video := m.VideoURL
			mod.VideoURL = &video
		}
		for _, q := range m.QuizQuestions {
			mod.QuizQuestions = append(mod.QuizQuestions, model.QuizQuestion{
				Question:      q.Question,
				Options:       q.Options,
				CorrectAnswer: q.CorrectAnswer,
			})
		}
		modules = append(modules, mod)
	}
	return path, modules
}
