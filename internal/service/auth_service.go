package service

import (
	"context"
	"errors"
	"strings"

	"wealth_builder_backend/internal/config"
	"wealth_builder_backend/internal/model"
	"wealth_builder_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users      UserStore
	Cfg        *config.Config
	BcryptCost int
}

func NewAuthService(users UserStore, cfg *config.Config) *AuthService {
	return &AuthService{
		Users:      users,
		Cfg:        cfg,
		BcryptCost: bcrypt.DefaultCost,
	}
}

// RegisterInput 注册参数
type RegisterInput struct {
	Email         string
	Password      string
	LiteracyLevel model.LiteracyLevel
	PrimaryGoal   model.PrimaryGoal
}

// AuthResult 登录/注册成功后返回的令牌与用户资料
type AuthResult struct {
	Token string            `json:"token"`
	User  model.UserProfile `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := NormalizeEmail(in.Email)

	verr := &util.ValidationError{}
	if email == "" {
		verr.Add("email", "Please provide a valid email")
	}
	if len(in.Password) < 6 {
		verr.Add("password", "Password must be at least 6 characters")
	}
	if !in.LiteracyLevel.Valid() {
		verr.Add("literacyLevel", "Invalid literacy level")
	}
	if !in.PrimaryGoal.Valid() {
		verr.Add("primaryGoal", "Invalid primary goal")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	_, err := s.Users.FindByEmail(ctx, email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, util.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:         email,
		Password:      string(hashed),
		LiteracyLevel: in.LiteracyLevel,
		PrimaryGoal:   in.PrimaryGoal,
	}
	// 并发注册同一邮箱时由唯一索引兜底
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.Users.FindByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, util.ErrUserNotFound) {
		return nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.Profile()}, nil
}

// NormalizeEmail 去除首尾空白并转为小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
