package main

import (
	"sync"
	"time"

	"github.com/apibillme/cache"
	"github.com/google/uuid"
)

type NoticeLevel string

const (
	NoticeWarning NoticeLevel = "warning"
	NoticeFailure NoticeLevel = "failure"
)

// Notice is a transient, non-blocking message shown to the user.
type Notice struct {
	ID      string      `json:"id"`
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
	Posted  time.Time   `json:"posted"`
}

const maxNotices = 64

// NoticeBoard keeps the notices posted within the last ttl, oldest first.
type NoticeBoard struct {
	mu    sync.Mutex
	items cache.Cache
	order []string
	ttl   time.Duration
	now   func() time.Time
}

func NewNoticeBoard(ttl time.Duration) *NoticeBoard {
	return &NoticeBoard{
		items: cache.New(maxNotices, cache.WithTTL(ttl)),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (b *NoticeBoard) Post(level NoticeLevel, message string) Notice {
	n := Notice{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		Posted:  b.now(),
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items.Set(n.ID, n)
	b.order = append(b.order, n.ID)
	if len(b.order) > maxNotices {
		b.order = b.order[len(b.order)-maxNotices:]
	}
	return n
}

// Active returns unexpired notices and forgets the expired ones.
func (b *NoticeBoard) Active() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	var out []Notice
	kept := b.order[:0]
	for _, id := range b.order {
		v, ok := b.items.Get(id)
		if !ok {
			continue
		}
		n := v.(Notice)
		if now.Sub(n.Posted) >= b.ttl {
			continue
		}
		kept = append(kept, id)
		out = append(out, n)
	}
	b.order = kept
	return out
}
