package io

import (
	"sync"
	"time"

	"github.com/regdesk/regdesk/memdb"
)

// Clock issues strictly increasing unix-nano timestamps: two calls never
// return the same value, even within one nanosecond tick and even if the wall
// clock steps backwards.
type Clock struct {
	mu   sync.Mutex
	last memdb.UnixTime
}

func NewClock() *Clock {
	return &Clock{}
}

func (c *Clock) Now() memdb.UnixTime {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixNano()
	if now <= c.last {
		now = c.last + 1
	}
	c.last = now
	return now
}
