package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserProgress 每个用户在每个模块上的完成情况，(user_id, module_id) 唯一
// swagger:model UserProgress
type UserProgress struct {
	UUIDBase
	UserID      string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_module" json:"userId"`
	ModuleID    string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_module" json:"moduleId"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	QuizScore   *int       `json:"quizScore"`
	CompletedAt *time.Time `json:"completedAt"`
	Module      *Module    `gorm:"foreignKey:ModuleID" json:"module,omitempty"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// QuizResponse 一次测验提交记录，只追加不修改
// swagger:model QuizResponse
type QuizResponse struct {
	ID          string                      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string                      `gorm:"type:varchar(36);not null;index" json:"userId"`
	ModuleID    string                      `gorm:"type:varchar(36);not null;index" json:"moduleId"`
	Answers     datatypes.JSONSlice[string] `json:"answers"`
	Score       int                         `gorm:"not null" json:"score"`
	SubmittedAt time.Time                   `gorm:"not null;index" json:"submittedAt"`
}

func (QuizResponse) TableName() string {
	return "quiz_responses"
}

func (r *QuizResponse) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = GenerateUUID()
	}
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = time.Now()
	}
	return
}

// ProgressStats 用户学习统计
type ProgressStats struct {
	CompletedModules  int `json:"completedModules"`
	TotalQuizzesTaken int `json:"totalQuizzesTaken"`
	AverageScore      int `json:"averageScore"`
	StreakDays        int `json:"streakDays"`
	OverallProgress   int `json:"overallProgress"`
}

// UserProgressOverview GET /api/user/progress 的返回结构
type UserProgressOverview struct {
	Progress      []UserProgress `json:"progress"`
	QuizResponses []QuizResponse `json:"quizResponses"`
	ProgressStats
}
