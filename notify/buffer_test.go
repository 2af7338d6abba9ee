package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediavault/mediavault/types"
)

type recordingBroadcaster struct {
	mu   sync.Mutex
	sent []*types.Notification
}

func (r *recordingBroadcaster) Broadcast(n *types.Notification) {
	r.mu.Lock()
	r.sent = append(r.sent, n)
	r.mu.Unlock()
}

func (r *recordingBroadcaster) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func TestPostSetsAndExpires(t *testing.T) {
	rec := &recordingBroadcaster{}
	buf := NewBuffer(rec)

	buf.Post("upload_complete", "3 files uploaded", 30*time.Millisecond)

	current := buf.Current()
	require.NotNil(t, current)
	assert.Equal(t, "upload_complete", current.Type)
	assert.Equal(t, "3 files uploaded", current.Message)
	assert.Equal(t, 1, rec.count())

	assert.Eventually(t, func() bool { return buf.Current() == nil },
		time.Second, 5*time.Millisecond)
}

func TestStaleTimerNeverClearsNewerMessage(t *testing.T) {
	buf := NewBuffer(nil)

	buf.Post("upload_complete", "first", 20*time.Millisecond)
	buf.Post("upload_complete", "second", 500*time.Millisecond)

	// Let the first message's timer fire while the second is still live.
	time.Sleep(100 * time.Millisecond)

	current := buf.Current()
	require.NotNil(t, current, "first message's timer must not clear the second")
	assert.Equal(t, "second", current.Message)
}

func TestPostWithoutBroadcaster(t *testing.T) {
	buf := NewBuffer(nil)
	buf.Post("info", "no consumers", 10*time.Millisecond)
	require.NotNil(t, buf.Current())
}
