package transfer

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/mediavault/mediavault/tool"
	"github.com/mediavault/mediavault/types"
)

const (
	// DefaultWaveSize bounds how many transfers run at once. A hard
	// resource-sharing rule protecting the socket budget on both ends.
	DefaultWaveSize = 5
	// DefaultEvictionGrace is how long a terminal transfer stays in the
	// visible queue so the user can observe its final status.
	DefaultEvictionGrace = 3 * time.Second
)

// UploadFunc performs one transfer and reports progress (0-100) through the
// callback. Returning an error marks the transfer Error; there is no
// automatic retry.
type UploadFunc func(ctx context.Context, transfer *types.PendingTransfer, progress func(percent int)) error

type batchState struct {
	folder    string
	remaining int
}

type queueEntry struct {
	transfer *types.PendingTransfer
	batch    *batchState
}

// Scheduler owns the live queue of pending transfers and drives them in
// waves of at most waveSize concurrent uploads. Wave k+1 never starts before
// every transfer of wave k reaches a terminal state; a stalled transfer
// stalls its wave indefinitely (no timeout policy exists, deliberately).
// Consumers observe the queue through Subscribe and Snapshot; all transfer
// state is owned and mutated exclusively here.
type Scheduler struct {
	mu        sync.Mutex
	cond      *sync.Cond
	upload    UploadFunc
	waveSize  int
	grace     time.Duration
	onRefresh func(folder string)
	listeners []func()
	queue     []*queueEntry
	draining  bool
	inFlight  int
}

func NewScheduler(upload UploadFunc) *Scheduler {
	s := &Scheduler{
		upload:   upload,
		waveSize: DefaultWaveSize,
		grace:    DefaultEvictionGrace,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// SetWaveSize overrides the concurrency bound. Values below 1 are ignored.
func (s *Scheduler) SetWaveSize(n int) {
	if n < 1 {
		return
	}
	s.mu.Lock()
	s.waveSize = n
	s.mu.Unlock()
}

// SetEvictionGrace overrides the terminal-state grace period.
func (s *Scheduler) SetEvictionGrace(d time.Duration) {
	s.mu.Lock()
	s.grace = d
	s.mu.Unlock()
}

// SetRefreshFunc registers the folder-listing refresh hook, invoked exactly
// once per batch after all of the batch's transfers are terminal.
func (s *Scheduler) SetRefreshFunc(fn func(folder string)) {
	s.mu.Lock()
	s.onRefresh = fn
	s.mu.Unlock()
}

// Subscribe registers a listener notified whenever the queue changes.
// Listeners read the queue via Snapshot; they must not block for long.
func (s *Scheduler) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Submit enqueues one batch of local files destined for destinationFolder
// and returns immediately with the fresh transfer ids. Re-submitting a file
// always creates a new transfer; terminal transfers are never reused.
func (s *Scheduler) Submit(localPaths []string, destinationFolder string) []string {
	if len(localPaths) == 0 {
		return nil
	}

	b := &batchState{folder: destinationFolder, remaining: len(localPaths)}
	ids := make([]string, 0, len(localPaths))

	s.mu.Lock()
	for _, p := range localPaths {
		t := &types.PendingTransfer{
			ID:                tool.GenerateRandomUUID(),
			LocalPath:         p,
			DisplayName:       filepath.Base(p),
			DestinationFolder: destinationFolder,
			State:             types.TransferPending,
		}
		ids = append(ids, t.ID)
		s.queue = append(s.queue, &queueEntry{transfer: t, batch: b})
	}
	startDrain := !s.draining
	if startDrain {
		s.draining = true
	}
	s.mu.Unlock()

	s.notifyListeners()
	if startDrain {
		go s.drain()
	}
	return ids
}

// drain runs waves until no pending transfers remain. Only one drain loop
// runs at a time, which is what enforces the concurrency invariant across
// overlapping batches.
func (s *Scheduler) drain() {
	for {
		s.mu.Lock()
		wave := make([]*queueEntry, 0, s.waveSize)
		for _, e := range s.queue {
			if e.transfer.State == types.TransferPending {
				wave = append(wave, e)
				if len(wave) == s.waveSize {
					break
				}
			}
		}
		if len(wave) == 0 {
			s.draining = false
			s.cond.Broadcast()
			s.mu.Unlock()
			return
		}
		for _, e := range wave {
			e.transfer.State = types.TransferUploading
			s.inFlight++
		}
		s.mu.Unlock()
		s.notifyListeners()

		var wg sync.WaitGroup
		for _, e := range wave {
			wg.Add(1)
			go func(e *queueEntry) {
				defer wg.Done()
				s.runTransfer(e)
			}(e)
		}
		wg.Wait()
	}
}

func (s *Scheduler) runTransfer(e *queueEntry) {
	err := s.upload(context.Background(), e.transfer, func(percent int) {
		s.setProgress(e, percent)
	})

	s.mu.Lock()
	s.inFlight--
	if err != nil {
		e.transfer.State = types.TransferError
		e.transfer.Error = err.Error()
	} else {
		e.transfer.State = types.TransferCompleted
		e.transfer.ProgressPercent = 100
	}
	e.batch.remaining--
	batchDone := e.batch.remaining == 0
	refresh := s.onRefresh
	grace := s.grace
	s.mu.Unlock()

	if err != nil {
		tool.DefaultLogger.Warnf("[Transfer] %s failed: %v", e.transfer.DisplayName, err)
	}
	s.notifyListeners()

	if batchDone {
		if refresh != nil {
			refresh(e.batch.folder)
		}
		b := e.batch
		time.AfterFunc(grace, func() { s.evictBatch(b) })
	}
}

// setProgress updates a transfer's progress, clamped to 0-100 and monotonic
// non-decreasing regardless of what the transport reports.
func (s *Scheduler) setProgress(e *queueEntry, percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	s.mu.Lock()
	if e.transfer.State != types.TransferUploading || percent <= e.transfer.ProgressPercent {
		s.mu.Unlock()
		return
	}
	e.transfer.ProgressPercent = percent
	s.mu.Unlock()
	s.notifyListeners()
}

// evictBatch drops a batch's terminal transfers from the visible queue.
func (s *Scheduler) evictBatch(b *batchState) {
	s.mu.Lock()
	kept := s.queue[:0]
	for _, e := range s.queue {
		if e.batch == b && e.transfer.State.Terminal() {
			continue
		}
		kept = append(kept, e)
	}
	s.queue = kept
	s.mu.Unlock()
	s.notifyListeners()
}

// Snapshot returns a copy of the visible queue in submission order.
func (s *Scheduler) Snapshot() []types.PendingTransfer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.PendingTransfer, 0, len(s.queue))
	for _, e := range s.queue {
		out = append(out, *e.transfer)
	}
	return out
}

// InFlight returns how many transfers are currently uploading.
func (s *Scheduler) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// WaitIdle blocks until every submitted transfer has reached a terminal
// state. Eviction timers may still be outstanding afterwards.
func (s *Scheduler) WaitIdle() {
	s.mu.Lock()
	for s.draining {
		s.cond.Wait()
	}
	s.mu.Unlock()
}

func (s *Scheduler) notifyListeners() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}
