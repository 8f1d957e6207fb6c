package service

import "sync"

// keyedMutex 按 userID 串行化同一用户的状态转换。
// 连续打卡和 PR 评估都是对单用户状态的读-改-写, 进程内用锁把同一用户的
// 并发请求排队, 跨进程的竞争仍是最后写入生效 (见 DESIGN.md)。
type keyedMutex struct {
	locks sync.Map // uint -> *sync.Mutex
}

func (m *keyedMutex) Lock(key uint) func() {
	value, _ := m.locks.LoadOrStore(key, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
