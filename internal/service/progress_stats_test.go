package service

import (
	"testing"
	"time"

	"wealth_builder_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var statsNow = time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

func newTestAggregator(loc *time.Location) *ProgressAggregator {
	a := NewProgressAggregator(loc)
	a.Now = fixedClock(statsNow)
	return a
}

func daysAgo(n int) time.Time {
	return statsNow.AddDate(0, 0, -n)
}

func completedAt(t time.Time) model.UserProgress {
	return model.UserProgress{Completed: true, CompletedAt: &t}
}

func submittedAt(t time.Time, score int) model.QuizResponse {
	return model.QuizResponse{SubmittedAt: t, Score: score}
}

func TestComputeNoActivity(t *testing.T) {
	stats := newTestAggregator(nil).Compute(nil, nil, 12)
	assert.Equal(t, model.ProgressStats{}, stats)
}

func TestComputeCounts(t *testing.T) {
	progress := []model.UserProgress{
		completedAt(daysAgo(0)),
		completedAt(daysAgo(1)),
		completedAt(daysAgo(2)),
		{Completed: false},
	}
	responses := []model.QuizResponse{
		submittedAt(daysAgo(0), 100),
		submittedAt(daysAgo(0), 75),
		submittedAt(daysAgo(1), 80),
	}

	stats := newTestAggregator(nil).Compute(progress, responses, 12)
	assert.Equal(t, 3, stats.CompletedModules)
	assert.Equal(t, 25, stats.OverallProgress)
	assert.Equal(t, 3, stats.TotalQuizzesTaken)
	// (100+75+80)/3 = 85
	assert.Equal(t, 85, stats.AverageScore)
	assert.Equal(t, 3, stats.StreakDays)
}

func TestComputeZeroModules(t *testing.T) {
	stats := newTestAggregator(nil).Compute([]model.UserProgress{completedAt(daysAgo(0))}, nil, 0)
	assert.Equal(t, 0, stats.OverallProgress)
	assert.Equal(t, 1, stats.CompletedModules)
}

func TestComputeAverageRoundsHalfUp(t *testing.T) {
	responses := []model.QuizResponse{submittedAt(daysAgo(0), 75), submittedAt(daysAgo(0), 80)}
	stats := newTestAggregator(nil).Compute(nil, responses, 1)
	assert.Equal(t, 78, stats.AverageScore)
}

func TestStreakDays(t *testing.T) {
	tests := []struct {
		name      string
		progress  []model.UserProgress
		responses []model.QuizResponse
		want      int
	}{
		{
			name:      "today only",
			responses: []model.QuizResponse{submittedAt(daysAgo(0), 50)},
			want:      1,
		},
		{
			name:      "three consecutive days ending today",
			responses: []model.QuizResponse{submittedAt(daysAgo(0), 50), submittedAt(daysAgo(1), 50), submittedAt(daysAgo(2), 50)},
			want:      3,
		},
		{
			name:      "gap breaks the run",
			responses: []model.QuizResponse{submittedAt(daysAgo(0), 50), submittedAt(daysAgo(2), 50), submittedAt(daysAgo(3), 50)},
			want:      1,
		},
		{
			name:      "run ending yesterday still counts",
			responses: []model.QuizResponse{submittedAt(daysAgo(1), 50), submittedAt(daysAgo(2), 50)},
			want:      2,
		},
		{
			name:      "inactive today and yesterday",
			responses: []model.QuizResponse{submittedAt(daysAgo(2), 50), submittedAt(daysAgo(3), 50)},
			want:      0,
		},
		{
			name:      "many events on one day count once",
			responses: []model.QuizResponse{submittedAt(daysAgo(0), 50), submittedAt(daysAgo(0).Add(-time.Hour), 50), submittedAt(daysAgo(0).Add(-2*time.Hour), 50)},
			want:      1,
		},
		{
			name:      "progress and responses merge",
			progress:  []model.UserProgress{completedAt(daysAgo(1)), completedAt(daysAgo(0))},
			responses: []model.QuizResponse{submittedAt(daysAgo(1), 50), submittedAt(daysAgo(2), 50)},
			want:      3,
		},
		{
			name:     "incomplete progress is not activity",
			progress: []model.UserProgress{{Completed: false, CompletedAt: ptrTime(daysAgo(1))}, completedAt(daysAgo(0))},
			want:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := newTestAggregator(nil).Compute(tt.progress, tt.responses, 10)
			assert.Equal(t, tt.want, stats.StreakDays)
		})
	}
}

func TestStreakUsesConfiguredZone(t *testing.T) {
	nairobi, err := time.LoadLocation("Africa/Nairobi")
	require.NoError(t, err)

	// 当前为内罗毕 10-19 18:00；10-18 22:30 UTC 在内罗毕已是 10-19 01:30
	a := newTestAggregator(nairobi)
	responses := []model.QuizResponse{
		submittedAt(time.Date(2026, 10, 18, 22, 30, 0, 0, time.UTC), 90),
		submittedAt(time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC), 90),
	}
	assert.Equal(t, 2, a.Compute(nil, responses, 1).StreakDays)

	// 同一组数据按 UTC 计算落在同一天
	assert.Equal(t, 1, newTestAggregator(time.UTC).Compute(nil, responses, 1).StreakDays)
}

func TestStreakAcrossDSTTransition(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 2026-10-25 凌晨夏令时结束，这一天有 25 小时
	a := NewProgressAggregator(berlin)
	a.Now = fixedClock(time.Date(2026, 10, 26, 9, 0, 0, 0, berlin))
	responses := []model.QuizResponse{
		submittedAt(time.Date(2026, 10, 26, 8, 0, 0, 0, berlin), 80),
		submittedAt(time.Date(2026, 10, 25, 23, 30, 0, 0, berlin), 80),
		submittedAt(time.Date(2026, 10, 24, 0, 30, 0, 0, berlin), 80),
	}
	assert.Equal(t, 3, a.Compute(nil, responses, 1).StreakDays)
}

func ptrTime(t time.Time) *time.Time { return &t }
