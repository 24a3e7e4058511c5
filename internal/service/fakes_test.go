package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wealth_builder_backend/internal/model"
	"wealth_builder_backend/internal/util"
)

type fakeContent struct {
	paths    []model.LearningPath
	modules  map[string]*model.Module
	count    int64
	countErr error
	listErr  error
	calls    int
}

func (f *fakeContent) ListWithModules(ctx context.Context) ([]model.LearningPath, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.paths, nil
}

func (f *fakeContent) FindModuleByID(ctx context.Context, id string) (*model.Module, error) {
	m, ok := f.modules[id]
	if !ok {
		return nil, util.ErrModuleNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeContent) CountModules(ctx context.Context) (int64, error) {
	f.calls++
	return f.count, f.countErr
}

// fakeProgress 内存版进度账本，语义与数据库实现一致
type fakeProgress struct {
	mu          sync.Mutex
	rows        map[string]*model.UserProgress
	responses   []model.QuizResponse
	now         func() time.Time
	progressErr error
	responseErr error
	seq         int
}

func newFakeProgress(now func() time.Time) *fakeProgress {
	return &fakeProgress{rows: make(map[string]*model.UserProgress), now: now}
}

func (f *fakeProgress) UpsertProgress(ctx context.Context, userID, moduleID string, completed bool, quizScore *int) (*model.UserProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upsert(userID, moduleID, completed, quizScore, f.now()), nil
}

func (f *fakeProgress) upsert(userID, moduleID string, completed bool, quizScore *int, at time.Time) *model.UserProgress {
	key := userID + "/" + moduleID
	row, ok := f.rows[key]
	if !ok {
		f.seq++
		row = &model.UserProgress{UserID: userID, ModuleID: moduleID}
		row.ID = fmt.Sprintf("progress-%d", f.seq)
		row.UpdatedAt = at
		f.rows[key] = row
	}
	if row.UpdatedAt.After(at) {
		cp := *row
		return &cp
	}
	row.UpdatedAt = at
	if completed && (!row.Completed || row.CompletedAt == nil) {
		t := at
		row.CompletedAt = &t
	}
	row.Completed = completed
	if quizScore != nil {
		s := *quizScore
		row.QuizScore = &s
	}
	cp := *row
	return &cp
}

func (f *fakeProgress) RecordQuizAttempt(ctx context.Context, response *model.QuizResponse, passed bool) (*model.UserProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	response.ID = fmt.Sprintf("response-%d", f.seq)
	f.responses = append(f.responses, *response)
	score := response.Score
	return f.upsert(response.UserID, response.ModuleID, passed, &score, response.SubmittedAt), nil
}

func (f *fakeProgress) FindProgressByUser(ctx context.Context, userID string) ([]model.UserProgress, error) {
	if f.progressErr != nil {
		return nil, f.progressErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.UserProgress
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeProgress) FindResponsesByUser(ctx context.Context, userID string) ([]model.QuizResponse, error) {
	if f.responseErr != nil {
		return nil, f.responseErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.QuizResponse
	for _, r := range f.responses {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeUsers struct {
	byID map[string]*model.User
	seq  int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[string]*model.User)}
}

func (f *fakeUsers) Create(ctx context.Context, user *model.User) error {
	for _, u := range f.byID {
		if u.Email == user.Email {
			return util.ErrEmailRegistered
		}
	}
	f.seq++
	user.ID = fmt.Sprintf("user-%d", f.seq)
	user.CreatedAt = time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	cp := *user
	f.byID[user.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (f *fakeUsers) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	u, ok := f.byID[id]
	if !ok {
		return util.ErrUserNotFound
	}
	for k, v := range fields {
		switch k {
		case "password":
			u.Password = v.(string)
		case "literacy_level":
			u.LiteracyLevel = v.(model.LiteracyLevel)
		case "primary_goal":
			u.PrimaryGoal = v.(model.PrimaryGoal)
		}
	}
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
