package service

import (
	"sort"
	"time"

	"wealth_builder_backend/internal/model"
)

// ProgressAggregator 根据进度账本计算学习统计与连续学习天数
type ProgressAggregator struct {
	Location *time.Location
	Now      func() time.Time
}

func NewProgressAggregator(loc *time.Location) *ProgressAggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &ProgressAggregator{Location: loc, Now: time.Now}
}

func (a *ProgressAggregator) Compute(progress []model.UserProgress, responses []model.QuizResponse, totalModules int64) model.ProgressStats {
	stats := model.ProgressStats{TotalQuizzesTaken: len(responses)}

	for _, p := range progress {
		if p.Completed {
			stats.CompletedModules++
		}
	}

	if totalModules > 0 {
		stats.OverallProgress = roundRatio(100*stats.CompletedModules, int(totalModules))
	}

	if len(responses) > 0 {
		sum := 0
		for _, r := range responses {
			sum += r.Score
		}
		stats.AverageScore = roundRatio(sum, len(responses))
	}

	stats.StreakDays = a.streakDays(progress, responses)
	return stats
}

// streakDays 统计截至今天或昨天的连续活跃自然日数
func (a *ProgressAggregator) streakDays(progress []model.UserProgress, responses []model.QuizResponse) int {
	seen := make(map[int64]struct{}, len(progress)+len(responses))
	for _, p := range progress {
		if p.Completed && p.CompletedAt != nil {
			seen[a.dayKey(*p.CompletedAt)] = struct{}{}
		}
	}
	for _, r := range responses {
		seen[a.dayKey(r.SubmittedAt)] = struct{}{}
	}
	if len(seen) == 0 {
		return 0
	}

	days := make([]int64, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })

	today := a.dayKey(a.now())
	if today-days[0] > 1 {
		return 0
	}

	streak := 1
	cursor := days[0]
	for _, d := range days[1:] {
		if d != cursor-1 {
			break
		}
		streak++
		cursor = d
	}
	return streak
}

// dayKey 将时间映射为所在时区的自然日序号。用日历日期换算，夏令时切换不影响相邻日期的差值。
func (a *ProgressAggregator) dayKey(t time.Time) int64 {
	y, m, d := t.In(a.location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

func (a *ProgressAggregator) location() *time.Location {
	if a.Location == nil {
		return time.UTC
	}
	return a.Location
}

func (a *ProgressAggregator) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
