package util

import "time"

// DateOnly 截断到当天零点, 保留时区
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween 两个日期之间相差的自然天数 (只看日期部分), to 在 from 之前时为负
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// FloorMod 向下取整的取模, 结果总在 [0, m)
func FloorMod(a, m int) int {
	if m <= 0 {
		return 0
	}
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// SameDay 是否同一个自然日
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
