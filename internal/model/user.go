package model

import "time"

// LiteracyLevel 用户的理财知识水平，同时用于学习路径的分级
type LiteracyLevel string

const (
	Beginner     LiteracyLevel = "beginner"
	Intermediate LiteracyLevel = "intermediate"
	Advanced     LiteracyLevel = "advanced"
)

func (l LiteracyLevel) Valid() bool {
	switch l {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

type PrimaryGoal string

const (
	GoalStartBusiness   PrimaryGoal = "start_business"
	GoalInvestStocks    PrimaryGoal = "invest_stocks"
	GoalP2PLending      PrimaryGoal = "p2p_lending"
	GoalGeneralLiteracy PrimaryGoal = "general_literacy"
)

func (g PrimaryGoal) Valid() bool {
	switch g {
	case GoalStartBusiness, GoalInvestStocks, GoalP2PLending, GoalGeneralLiteracy:
		return true
	}
	return false
}

// swagger:model User
type User struct {
	UUIDBase
	Email         string        `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Password      string        `gorm:"size:100;not null" json:"-"`
	LiteracyLevel LiteracyLevel `gorm:"size:20;not null" json:"literacyLevel"`
	PrimaryGoal   PrimaryGoal   `gorm:"size:30;not null" json:"primaryGoal"`
}

func (User) TableName() string {
	return "users"
}

// UserProfile 对外暴露的用户资料
type UserProfile struct {
	ID            string        `json:"id"`
	Email         string        `json:"email"`
	LiteracyLevel LiteracyLevel `json:"literacyLevel"`
	PrimaryGoal   PrimaryGoal   `json:"primaryGoal"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:            u.ID,
		Email:         u.Email,
		LiteracyLevel: u.LiteracyLevel,
		PrimaryGoal:   u.PrimaryGoal,
		CreatedAt:     u.CreatedAt,
	}
}
