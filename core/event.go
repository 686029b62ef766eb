package core

import (
	"sync"

	"wsproxy/iface"
)

//一次性事件
type Event struct {
	once sync.Once
	c    chan struct{}
}

func NewEvent() iface.IEvent {
	return &Event{c: make(chan struct{})}
}

// Fire 只有第一次调用返回true
func (e *Event) Fire() bool {
	fired := false
	e.once.Do(func() {
		close(e.c)
		fired = true
	})
	return fired
}

func (e *Event) Done() <-chan struct{} {
	return e.c
}

func (e *Event) HasFired() bool {
	select {
	case <-e.c:
		return true
	default:
		return false
	}
}
