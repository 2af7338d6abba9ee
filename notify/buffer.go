package notify

import (
	"sync"
	"time"

	"github.com/mediavault/mediavault/types"
)

// Broadcaster fans a notification out to connected consumers. The websocket
// hub implements it; a nil broadcaster is valid and drops messages.
type Broadcaster interface {
	Broadcast(notification *types.Notification)
}

// Buffer holds the current transient status message. Each posted message
// owns its own expiry timer; the last message wins visually, and a stale
// timer firing later never clears a newer message.
type Buffer struct {
	mu          sync.Mutex
	seq         uint64
	current     *types.Notification
	broadcaster Broadcaster
}

func NewBuffer(b Broadcaster) *Buffer {
	return &Buffer{broadcaster: b}
}

// Post displays a transient message that auto-clears after duration.
// Posting never blocks on consumers.
func (b *Buffer) Post(notificationType, message string, duration time.Duration) {
	n := &types.Notification{Type: notificationType, Message: message}

	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.current = n
	broadcaster := b.broadcaster
	b.mu.Unlock()

	if broadcaster != nil {
		broadcaster.Broadcast(n)
	}

	time.AfterFunc(duration, func() {
		b.mu.Lock()
		// Only the timer belonging to the latest message may clear it.
		if b.seq == seq {
			b.current = nil
		}
		b.mu.Unlock()
	})
}

// Current returns the visible message, or nil after expiry.
func (b *Buffer) Current() *types.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}
