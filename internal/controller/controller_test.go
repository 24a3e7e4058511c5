package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wealth_builder_backend/internal/config"
	"wealth_builder_backend/internal/middleware"
	"wealth_builder_backend/internal/model"
	"wealth_builder_backend/internal/repository"
	"wealth_builder_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type testEnv struct {
	router   *gin.Engine
	moduleID string
	emptyID  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.LearningPath{}, &model.Module{}, &model.UserProgress{}, &model.QuizResponse{}))

	pathRepo := repository.NewLearningPathRepository(db)
	modules := []model.Module{
		{Title: "Budgeting 101", Order: 1, QuizQuestions: []model.QuizQuestion{
			{Question: "q1", Options: []string{"A", "B"}, CorrectAnswer: "A"},
			{Question: "q2", Options: []string{"A", "B"}, CorrectAnswer: "B"},
			{Question: "q3", Options: []string{"A", "C"}, CorrectAnswer: "C"},
			{Question: "q4", Options: []string{"A", "D"}, CorrectAnswer: "D"},
		}},
		{Title: "Reading only", Order: 2},
	}
	require.NoError(t, pathRepo.CreatePathWithModules(context.Background(), &model.LearningPath{Title: "Basics", Level: model.Beginner}, modules))

	cfg := &config.Config{JWT: config.JWTConfig{Secret: "controller-test-secret-0123456789abcd", ExpireTime: time.Hour}}

	content := service.NewContentService(pathRepo, nil, time.Minute)
	progressRepo := repository.NewProgressRepository(db)
	userRepo := repository.NewUserRepository(db)

	authService := service.NewAuthService(userRepo, cfg)
	authService.BcryptCost = bcrypt.MinCost
	userService := service.NewUserService(userRepo)
	userService.BcryptCost = bcrypt.MinCost
	learningService := service.NewLearningService(content, progressRepo, service.NewStorageService(cfg))
	progressService := service.NewProgressService(progressRepo, content, service.NewProgressAggregator(time.UTC))

	authCtrl := NewAuthController(authService)
	learningCtrl := NewLearningController(learningService)
	userCtrl := NewUserController(userService, progressService)
	investmentCtrl := NewInvestmentController(service.NewInvestmentService(repository.NewInvestmentRepository()))

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)
	api.GET("/learning/paths", learningCtrl.GetPaths)
	api.GET("/learning/modules/:id", learningCtrl.GetModule)
	api.GET("/investments/:id", investmentCtrl.Get)

	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(cfg))
	auth.POST("/learning/quiz", learningCtrl.SubmitQuiz)
	auth.POST("/learning/progress", learningCtrl.SubmitProgress)
	auth.GET("/user/profile", userCtrl.GetProfile)
	auth.PUT("/user/profile", userCtrl.UpdateProfile)
	auth.GET("/user/progress", userCtrl.GetProgress)

	return &testEnv{router: r, moduleID: modules[0].ID, emptyID: modules[1].ID}
}

type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()
	code, env := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":         email,
		"password":      "secret1",
		"literacyLevel": "beginner",
		"primaryGoal":   "start_business",
	})
	require.Equal(t, http.StatusCreated, code)

	var res service.AuthResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	return res.Token
}

func TestRegisterLoginFlow(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "wanjiku@example.com")

	code, resp := env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "wanjiku@example.com", "password": "secret1", "literacyLevel": "beginner", "primaryGoal": "start_business",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "User already exists", resp.Message)

	code, _ = env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "wanjiku@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusOK, code)

	code, resp = env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "wanjiku@example.com", "password": "nope"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid credentials", resp.Message)
}

func TestRegisterValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	code, resp := env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "not-an-email", "password": "123", "literacyLevel": "guru",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, resp.Errors, "email")
	assert.Contains(t, resp.Errors, "password")
	assert.Contains(t, resp.Errors, "literacyLevel")
	assert.Contains(t, resp.Errors, "primaryGoal")
}

func TestQuizAndProgressFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "musa@example.com")

	code, _ := env.do(t, http.MethodPost, "/api/learning/quiz", "", gin.H{"moduleId": env.moduleID, "answers": []string{"A"}})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, resp := env.do(t, http.MethodPost, "/api/learning/quiz", token, gin.H{"moduleId": env.moduleID, "answers": []string{"A", "B", "X", "D"}})
	require.Equal(t, http.StatusOK, code)
	var result service.QuizResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, 75, result.Score)
	assert.Equal(t, 3, result.CorrectCount)
	assert.False(t, result.Passed)
	assert.NotEmpty(t, result.QuizResponseID)

	code, resp = env.do(t, http.MethodPost, "/api/learning/quiz", token, gin.H{"moduleId": env.moduleID, "answers": []string{"A", "B", "C", "D"}})
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.True(t, result.Passed)

	code, _ = env.do(t, http.MethodPost, "/api/learning/quiz", token, gin.H{"moduleId": env.emptyID, "answers": []string{"A"}})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = env.do(t, http.MethodPost, "/api/learning/quiz", token, gin.H{"moduleId": "missing", "answers": []string{"A"}})
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = env.do(t, http.MethodPost, "/api/learning/quiz", token, gin.H{"moduleId": env.moduleID})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, resp.Errors, "answers")

	code, _ = env.do(t, http.MethodPost, "/api/learning/progress", token, gin.H{"moduleId": env.emptyID})
	require.Equal(t, http.StatusOK, code)

	code, resp = env.do(t, http.MethodGet, "/api/user/progress", token, nil)
	require.Equal(t, http.StatusOK, code)
	var overview model.UserProgressOverview
	require.NoError(t, json.Unmarshal(resp.Data, &overview))
	assert.Len(t, overview.Progress, 2)
	assert.Len(t, overview.QuizResponses, 2)
	assert.Equal(t, 1, overview.CompletedModules)
	assert.Equal(t, 2, overview.TotalQuizzesTaken)
	assert.Equal(t, 88, overview.AverageScore)
	assert.Equal(t, 50, overview.OverallProgress)
	assert.Equal(t, 1, overview.StreakDays)
}

func TestProfileEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "amina@example.com")

	code, resp := env.do(t, http.MethodPut, "/api/user/profile", token, gin.H{"primaryGoal": "invest_stocks", "newPassword": "brandnew"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, resp.Errors, "currentPassword")

	code, resp = env.do(t, http.MethodPut, "/api/user/profile", token, gin.H{"primaryGoal": "invest_stocks", "currentPassword": "secret1", "newPassword": "brandnew"})
	require.Equal(t, http.StatusOK, code)
	var profile model.UserProfile
	require.NoError(t, json.Unmarshal(resp.Data, &profile))
	assert.Equal(t, model.GoalInvestStocks, profile.PrimaryGoal)

	code, _ = env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "amina@example.com", "password": "brandnew"})
	assert.Equal(t, http.StatusOK, code)

	code, resp = env.do(t, http.MethodGet, "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &profile))
	assert.Equal(t, "amina@example.com", profile.Email)
}

func TestPublicContentEndpoints(t *testing.T) {
	env := newTestEnv(t)

	code, resp := env.do(t, http.MethodGet, "/api/learning/paths", "", nil)
	require.Equal(t, http.StatusOK, code)
	var paths []model.LearningPathSummary
	require.NoError(t, json.Unmarshal(resp.Data, &paths))
	require.Len(t, paths, 1)
	assert.Len(t, paths[0].Modules, 2)

	code, _ = env.do(t, http.MethodGet, "/api/learning/modules/"+env.moduleID, "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, resp = env.do(t, http.MethodGet, "/api/learning/modules/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Module not found", resp.Message)

	code, _ = env.do(t, http.MethodGet, "/api/investments/1", "", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = env.do(t, http.MethodGet, "/api/investments/404", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	r := gin.New()
	r.GET("/api/health", NewHealthController(db, nil).HealthCheck)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Components map[string]string `json:"components"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "up", body.Data.Components["database"])
	assert.Equal(t, "disabled", body.Data.Components["cache"])

	require.NoError(t, sqlDB.Close())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSubmitQuizEmptyAnswersScoresZero(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "amina@example.com")

	code, resp := env.do(t, http.MethodPost, "/api/learning/quiz", token, gin.H{"moduleId": env.moduleID, "answers": []string{}})
	require.Equal(t, http.StatusOK, code)
	var result service.QuizResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.CorrectCount)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.False(t, result.Passed)

	code, resp = env.do(t, http.MethodPost, "/api/learning/quiz", token, gin.H{"moduleId": env.moduleID, "answers": nil})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, resp.Errors, "answers")
}
