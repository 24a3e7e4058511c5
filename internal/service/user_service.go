package service

import (
	"context"

	"wealth_builder_backend/internal/model"
	"wealth_builder_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// UserService 处理用户资料相关的业务逻辑
type UserService struct {
	Users      UserStore
	BcryptCost int
}

func NewUserService(users UserStore) *UserService {
	return &UserService{
		Users:      users,
		BcryptCost: bcrypt.DefaultCost,
	}
}

// ProfileUpdate 资料更新参数，nil 字段表示不修改
type ProfileUpdate struct {
	LiteracyLevel   *model.LiteracyLevel
	PrimaryGoal     *model.PrimaryGoal
	CurrentPassword string
	NewPassword     string
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	if userID == "" {
		return nil, util.ErrUnauthorized
	}
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// UpdateProfile 更新知识水平和目标；修改密码时必须提供正确的当前密码
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*model.UserProfile, error) {
	if userID == "" {
		return nil, util.ErrUnauthorized
	}

	verr := &util.ValidationError{}
	if in.LiteracyLevel != nil && !in.LiteracyLevel.Valid() {
		verr.Add("literacyLevel", "Invalid literacy level")
	}
	if in.PrimaryGoal != nil && !in.PrimaryGoal.Valid() {
		verr.Add("primaryGoal", "Invalid primary goal")
	}
	if in.NewPassword != "" {
		if len(in.NewPassword) < 6 {
			verr.Add("newPassword", "New password must be at least 6 characters")
		}
		if in.CurrentPassword == "" {
			verr.Add("currentPassword", "Current password is required to change password")
		}
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if in.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
			return nil, util.ErrIncorrectPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), s.BcryptCost)
		if err != nil {
			return nil, err
		}
		fields["password"] = string(hashed)
	}
	if in.LiteracyLevel != nil {
		fields["literacy_level"] = *in.LiteracyLevel
		user.LiteracyLevel = *in.LiteracyLevel
	}
	if in.PrimaryGoal != nil {
		fields["primary_goal"] = *in.PrimaryGoal
		user.PrimaryGoal = *in.PrimaryGoal
	}

	if err := s.Users.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	profile := user.Profile()
	return &profile, nil
}
