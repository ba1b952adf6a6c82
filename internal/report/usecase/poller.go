package usecase

import (
	"context"
	"time"

	"reportctl/internal/model"
)

// Start refreshes now and then every PollInterval. Only one poller runs at
// a time; calling Start while polling is a no-op.
func (uc *implUseCase) Start() {
	uc.mu.Lock()
	if uc.stop != nil {
		uc.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	uc.stop = stop
	epoch := uc.epoch
	uc.mu.Unlock()

	go uc.poll(epoch, stop)
}

// Stop ends polling, cancels pending follow-ups and clears the list.
// Results of requests still in flight are discarded when they arrive.
func (uc *implUseCase) Stop() {
	uc.mu.Lock()
	if uc.stop != nil {
		close(uc.stop)
		uc.stop = nil
	}
	uc.epoch++
	for token, t := range uc.timers {
		t.Stop()
		delete(uc.timers, token)
	}

	changed := len(uc.entries) > 0
	uc.entries = nil
	uc.lastErr = nil
	if !changed {
		uc.mu.Unlock()
		return
	}
	uc.publishLocked()
}

// OnSessionChange couples polling to the session: it runs exactly while the
// session is authenticated, and restarts with an empty list when a new login
// replaces the session.
func (uc *implUseCase) OnSessionChange(s model.Session) {
	if !s.Authenticated() {
		uc.Stop()
		return
	}

	uc.mu.Lock()
	running := uc.stop != nil
	replaced := uc.pollGen != s.Generation
	uc.pollGen = s.Generation
	uc.mu.Unlock()

	if running && replaced {
		uc.Stop()
	}
	uc.Start()
}

func (uc *implUseCase) poll(epoch uint64, stop <-chan struct{}) {
	ticker := time.NewTicker(uc.cfg.PollInterval)
	defer ticker.Stop()

	uc.tick(epoch)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}
			uc.tick(epoch)
		}
	}
}

// tick runs one refresh in its own goroutine so a hung request never delays
// the next tick.
func (uc *implUseCase) tick(epoch uint64) {
	go func() {
		_ = uc.refresh(context.Background(), epoch, 0)
	}()
}
