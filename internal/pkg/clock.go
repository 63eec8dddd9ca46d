package pkg

import "time"

// Clock 注入时间来源，测试时可替换为固定时钟
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
