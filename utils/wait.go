package utils

import (
	"time"
)

// PollUntil 以固定间隔轮询条件，满足返回true，超出时限返回false。
// 首次检查在任何等待之前执行。
func PollUntil(ceiling, interval time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(ceiling)
	for {
		if cond() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(interval)
	}
}
