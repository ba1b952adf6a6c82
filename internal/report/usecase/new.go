package usecase

import (
	"sync"
	"time"

	"reportctl/internal/gateway"
	"reportctl/internal/model"
	"reportctl/internal/report"
	"reportctl/internal/report/repository"
	"reportctl/pkg/log"
)

const (
	defaultPollInterval   = 30 * time.Second
	defaultReconcileDelay = 5 * time.Second
)

// Config holds the synchronizer timings.
type Config struct {
	PollInterval   time.Duration
	ReconcileDelay time.Duration
}

// entry is one record of the local list. Optimistic entries were inserted
// by Submit and are retired by the follow-up refresh carrying their token.
// A zero followUp on an optimistic entry means its follow-up already ran
// and failed; the next snapshot drops it.
type entry struct {
	report     model.Report
	optimistic bool
	followUp   uint64
}

type implUseCase struct {
	l         log.Logger
	gw        gateway.Doer
	artifacts repository.ArtifactRepository
	mirror    repository.ArtifactRepository
	cfg       Config
	now       func() time.Time

	mu      sync.Mutex
	epoch   uint64
	entries []entry
	lastErr error
	seq     uint64
	stop    chan struct{}
	timers  map[uint64]*time.Timer
	pollGen uint64

	// publishMu keeps subscriber delivery in mutation order.
	publishMu sync.Mutex
	subsMu    sync.Mutex
	subs      map[int]func([]model.Report)
	nextSub   int
}

// New creates the report synchronizer. mirror may be nil.
func New(
	l log.Logger,
	gw gateway.Doer,
	artifacts repository.ArtifactRepository,
	mirror repository.ArtifactRepository,
	cfg Config,
) report.UseCase {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.ReconcileDelay < 0 {
		cfg.ReconcileDelay = defaultReconcileDelay
	}

	return &implUseCase{
		l:         l,
		gw:        gw,
		artifacts: artifacts,
		mirror:    mirror,
		cfg:       cfg,
		now:       time.Now,
		timers:    make(map[uint64]*time.Timer),
		subs:      make(map[int]func([]model.Report)),
	}
}
