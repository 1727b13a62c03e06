// Package simulator drives one tomasulo.Engine to completion: a plain,
// single-threaded cycle loop bounded by the configured watchdog, with
// statistics and a shutdown signal modeled on the run-loop lifecycle this
// project's sibling packages use elsewhere.
package simulator

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jasonKoogler/tomasulo-sim/internal/config"
	"github.com/jasonKoogler/tomasulo-sim/internal/diag"
	"github.com/jasonKoogler/tomasulo-sim/internal/tomasulo"
)

// Statistics summarizes one completed (or watchdog-aborted) run.
type Statistics struct {
	TotalCycles           int64
	InstructionsCommitted int64
	IPC                    float64
	WatchdogTriggered      bool
}

// CycleHook is called once per tick with that cycle's narration events and
// the resulting state snapshot. A nil hook means no per-cycle reporting.
type CycleHook func(events []string, snap tomasulo.Snapshot)

// Simulator owns one engine for the lifetime of one program run. Unlike a
// long-lived multi-core simulator, a Tomasulo+ROB run is inherently
// one-shot: once the instruction queue drains there is nothing left to
// reset into, so this type has no Reset.
type Simulator struct {
	cfg    *config.Config
	log    *diag.Logger
	engine *tomasulo.Engine

	running  atomic.Bool
	stopChan chan struct{}
	stopOnce sync.Once

	statsMutex sync.RWMutex
	stats      Statistics

	onCycle CycleHook
}

// New builds a Simulator for program, ready to Run.
func New(cfg *config.Config, logger *diag.Logger, program []tomasulo.Instruction) (*Simulator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil configuration provided")
	}
	if logger == nil {
		logger = diag.Default()
	}

	return &Simulator{
		cfg:      cfg,
		log:      logger,
		engine:   tomasulo.New(cfg, logger, program),
		stopChan: make(chan struct{}),
	}, nil
}

// SetCycleHook installs fn to be called after every tick. Passing nil
// disables reporting.
func (s *Simulator) SetCycleHook(fn CycleHook) {
	s.onCycle = fn
}

// Run ticks the engine until it reports completion or the configured cycle
// watchdog is hit, whichever comes first. It returns an error only if the
// simulator is already running.
func (s *Simulator) Run() error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("simulation is already running")
	}
	defer s.running.Store(false)

	limit := s.cfg.CycleLimit
	var cycles int64
	for cycles = 0; cycles < limit; cycles++ {
		select {
		case <-s.stopChan:
			s.log.Warnf("simulation shut down early at cycle %d", s.engine.Clock)
			s.finalize(cycles, false)
			return nil
		default:
		}

		if s.engine.IsDone() {
			break
		}

		events := s.engine.Tick()
		if s.onCycle != nil {
			s.onCycle(events, s.engine.Snapshot())
		}
	}

	watchdog := cycles >= limit && !s.engine.IsDone()
	if watchdog {
		s.log.Warnf("watchdog triggered: simulation did not complete within %d cycles", limit)
	}
	s.finalize(cycles, watchdog)
	return nil
}

func (s *Simulator) finalize(cycles int64, watchdog bool) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	var committed int64
	for _, instr := range s.engine.Instrs {
		if instr.CommitCycle != 0 {
			committed++
		}
	}

	s.stats = Statistics{
		TotalCycles:           cycles,
		InstructionsCommitted: committed,
		WatchdogTriggered:      watchdog,
	}
	if cycles > 0 {
		s.stats.IPC = float64(committed) / float64(cycles)
	}
}

// GetStatistics returns a copy of the most recently finalized run statistics.
func (s *Simulator) GetStatistics() Statistics {
	s.statsMutex.RLock()
	defer s.statsMutex.RUnlock()
	return s.stats
}

// Engine exposes the underlying engine, for callers (the reporter, tests)
// that need direct read access beyond what Statistics summarizes.
func (s *Simulator) Engine() *tomasulo.Engine {
	return s.engine
}

// Shutdown signals Run to stop before the next tick. Safe to call more than
// once and safe to call from a different goroutine than Run.
func (s *Simulator) Shutdown() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}
