package orchestrator

import (
	"sync"

	"github.com/fenilsonani/smartcare/internal/scan"
)

// EmitFunc receives progress updates during a run
type EmitFunc func(scan.ProgressUpdate)

// Emitter aggregates per-domain local progress into one overall
// percentage and merges live counters from concurrent producers.
// Multiple scan jobs call Emit concurrently, so every read-modify-write
// of the progress map and counters is serialized behind the mutex.
type Emitter struct {
	mu          sync.Mutex
	emit        EmitFunc
	local       map[scan.Domain]float64
	counters    scan.LiveCounters
	lastOverall float64
}

// NewEmitter creates an Emitter delivering updates to emit. A nil emit
// is allowed and discards updates.
func NewEmitter(emit EmitFunc) *Emitter {
	return &Emitter{
		emit:  emit,
		local: make(map[scan.Domain]float64),
	}
}

// Emit records localProgress for domain (last write wins per domain),
// max-merges counters, and delivers an update whose overall value is
// the weighted sum of current domain progress. Overall never regresses.
func (e *Emitter) Emit(domain scan.Domain, localProgress float64, counters scan.LiveCounters, title, detail, currentItem string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.local[domain] = localProgress
	e.counters.Merge(counters)

	overall := 0.0
	for _, d := range scan.Domains() {
		overall += d.Weight() * e.local[d]
	}
	if overall < 0 {
		overall = 0
	}
	if overall > 1 {
		overall = 1
	}
	// Guard against a producer reporting a lower local value
	if overall < e.lastOverall {
		overall = e.lastOverall
	}
	e.lastOverall = overall

	e.deliverLocked(scan.ProgressUpdate{
		Domain:      domain,
		Title:       title,
		Detail:      detail,
		Overall:     overall,
		CurrentItem: currentItem,
		Stage:       stageFor(domain),
		StageCount:  len(scan.Domains()),
		Counters:    e.counters,
	})
}

// Finish delivers the single final update with overall = 1.0
func (e *Emitter) Finish() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastOverall = 1.0
	e.deliverLocked(scan.ProgressUpdate{
		Domain:     scan.DomainApplications,
		Title:      "Scan complete",
		Overall:    1.0,
		Stage:      len(scan.Domains()),
		StageCount: len(scan.Domains()),
		Counters:   e.counters,
	})
}

// Counters returns a snapshot of the merged counters
func (e *Emitter) Counters() scan.LiveCounters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.counters
}

func (e *Emitter) deliverLocked(update scan.ProgressUpdate) {
	if e.emit != nil {
		e.emit(update)
	}
}

func stageFor(domain scan.Domain) int {
	for i, d := range scan.Domains() {
		if d == domain {
			return i + 1
		}
	}
	return 0
}
