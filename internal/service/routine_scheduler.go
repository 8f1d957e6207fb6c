package service

import (
	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/internal/util"
	"time"
)

// RoutineScheduler 在循环的天模式上计算下一次训练及其截止日期。
// 纯计算, 不依赖连续打卡状态机。
type RoutineScheduler struct{}

func NewRoutineScheduler() *RoutineScheduler {
	return &RoutineScheduler{}
}

// NextWorkout 返回 fromDate 之后第一个训练日的 workoutID 和截止日期。
// 模式为空、长度为零或整个循环都没有训练日时, 返回 (nil, fromDate+1天)
// 的宽松默认值, 保证进度永远不会被卡住。截止日期永远不早于 fromDate+1天,
// 且扫描在一个完整循环内终止。
func (s *RoutineScheduler) NextWorkout(routine *model.Routine, fromDate time.Time) (*uint, time.Time) {
	from := util.DateOnly(fromDate)
	fallback := from.AddDate(0, 0, 1)

	if routine == nil || len(routine.Pattern) == 0 {
		return nil, fallback
	}

	length := 0
	for _, day := range routine.Pattern {
		if day.DayIndex+1 > length {
			length = day.DayIndex + 1
		}
	}
	if length == 0 {
		return nil, fallback
	}

	// DayIndex 的缺口是隐式休息日, 按下标建表后缺口自然为 nil
	byIndex := make(map[int]*model.RoutineDay, len(routine.Pattern))
	for i := range routine.Pattern {
		day := &routine.Pattern[i]
		if _, ok := byIndex[day.DayIndex]; !ok {
			byIndex[day.DayIndex] = day
		}
	}

	daysSinceAnchor := util.DaysBetween(routine.AnchorDate(), from)
	currentIndex := util.FloorMod(daysSinceAnchor, length)

	for i := 1; i <= length; i++ {
		candidate := util.FloorMod(currentIndex+i, length)
		day, ok := byIndex[candidate]
		if !ok || day.DayType != model.DayWorkout || day.WorkoutID == nil {
			continue
		}
		return day.WorkoutID, from.AddDate(0, 0, i)
	}

	return nil, fallback
}
