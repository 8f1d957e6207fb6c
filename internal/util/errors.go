package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrRoutineNotFound    = errors.New("routine not found")
	ErrRoutineNameTaken   = errors.New("routine name already taken")
	ErrWorkoutNotFound    = errors.New("workout not found")
	ErrExerciseNotFound   = errors.New("exercise not found")
	ErrRecordNotFound     = errors.New("exercise record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
)
