package planner

import (
	"sync"
	"time"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is a transient message shown to the user.
type Notice struct {
	ID      int
	Level   Level
	Message string
	At      time.Time
}

// Notices is a bounded board of recent messages, oldest first.
type Notices struct {
	mu     sync.Mutex
	now    func() time.Time
	limit  int
	nextID int
	items  []Notice
}

func NewNotices(limit int, now func() time.Time) *Notices {
	if limit <= 0 {
		limit = 20
	}
	if now == nil {
		now = time.Now
	}
	return &Notices{limit: limit, now: now}
}

func (n *Notices) Info(msg string) Notice { return n.push(LevelInfo, msg) }

func (n *Notices) Error(err error) Notice { return n.push(LevelError, err.Error()) }

func (n *Notices) push(level Level, msg string) Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	notice := Notice{ID: n.nextID, Level: level, Message: msg, At: n.now()}
	n.items = append(n.items, notice)
	if len(n.items) > n.limit {
		n.items = n.items[len(n.items)-n.limit:]
	}
	return notice
}

func (n *Notices) List() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notice, len(n.items))
	copy(out, n.items)
	return out
}

// Dismiss removes a notice by id.
func (n *Notices) Dismiss(id int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return true
		}
	}
	return false
}

// Drain returns every notice and clears the board.
func (n *Notices) Drain() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.items
	n.items = nil
	return out
}
