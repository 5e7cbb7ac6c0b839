// Package update implements the process-wide queue of pending update requests.
//
// Mutations post (target, kind) requests; the host interaction loop calls
// Drain once per iteration. Requests for the same target are merged, never
// executed twice in one pass. Each pass processes deletions first, then
// layout and paint requests parents-first. Requests posted while a pass runs
// are picked up by the next pass, so a mutation never re-enters the layout of
// the subtree currently being resolved.
package update

import (
	"fmt"
	"slices"

	"github.com/go-drift/scene/pkg/errors"
)

// DefaultMaxPasses bounds the number of passes of one Drain.
const DefaultMaxPasses = 8

// Target is an object that can be laid out and painted.
type Target interface {
	// Update performs the requested work.
	Update(kind Kind)
	// Depth is the distance from the nearest root; parents update first.
	Depth() int
	// Hidden reports whether the target is currently not shown.
	Hidden() bool
	// Destroyed reports whether the target must no longer be touched.
	Destroyed() bool
}

// Disposer releases an object whose destruction was deferred to the scheduler.
type Disposer interface {
	Dispose()
}

// State is the scheduler lifecycle state.
type State uint8

const (
	// StateIdle means nothing is pending.
	StateIdle State = iota
	// StateRequested means work is pending for the next Drain.
	StateRequested
	// StateProcessing means a Drain is running.
	StateProcessing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequested:
		return "requested"
	case StateProcessing:
		return "processing"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Stats summarizes one Drain.
type Stats struct {
	Passes    int
	Updates   int
	Deletions int
	Callbacks int
	Skipped   int
	Deferred  int
}

// Scheduler tracks targets that need layout or paint.
//
// It is not safe for concurrent use; all calls happen on the thread that
// drives the interaction loop.
type Scheduler struct {
	// MaxPasses bounds the passes per Drain. Zero means DefaultMaxPasses.
	MaxPasses int

	// OnRequested is called when the scheduler leaves the idle state,
	// signalling the host loop that a Drain is needed.
	OnRequested func()

	pending   map[Target]Kind
	order     []Target
	deletions []Disposer
	funcs     []func()
	state     State
}

// NewScheduler returns an idle scheduler.
func NewScheduler(maxPasses int) *Scheduler {
	return &Scheduler{MaxPasses: maxPasses}
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	return s.state
}

// Post enqueues a request, merging it with any pending request for the
// same target. Destroyed targets are ignored.
func (s *Scheduler) Post(target Target, kind Kind) {
	if target == nil || target.Destroyed() {
		return
	}
	kind = kind.normalize()
	if kind == 0 {
		return
	}
	if s.pending == nil {
		s.pending = make(map[Target]Kind)
	}
	if existing, ok := s.pending[target]; ok {
		s.pending[target] = existing.Merge(kind)
		return
	}
	s.pending[target] = kind
	s.order = append(s.order, target)
	s.requested()
}

// PostDelete defers the disposal of d to the start of the next pass.
func (s *Scheduler) PostDelete(d Disposer) {
	if d == nil {
		return
	}
	s.deletions = append(s.deletions, d)
	s.requested()
}

// PostFunc defers fn to the start of the next Drain. Timer-driven work is
// modelled this way so it never preempts an active pass.
func (s *Scheduler) PostFunc(fn func()) {
	if fn == nil {
		return
	}
	s.funcs = append(s.funcs, fn)
	s.requested()
}

// Cancel drops any pending request for target.
func (s *Scheduler) Cancel(target Target) {
	if _, ok := s.pending[target]; !ok {
		return
	}
	delete(s.pending, target)
	s.order = slices.DeleteFunc(s.order, func(t Target) bool { return t == target })
}

// Pending returns the merged kind pending for target, or 0.
func (s *Scheduler) Pending(target Target) Kind {
	return s.pending[target]
}

// HasWork reports whether anything is pending.
func (s *Scheduler) HasWork() bool {
	return len(s.order) > 0 || len(s.deletions) > 0 || len(s.funcs) > 0
}

func (s *Scheduler) requested() {
	if s.state != StateIdle {
		return
	}
	s.state = StateRequested
	if s.OnRequested != nil {
		s.OnRequested()
	}
}

// Drain processes pending work. Callbacks posted with PostFunc run first,
// then up to MaxPasses passes of deletions followed by layout/paint
// requests in depth order. Work still pending after the last pass is left
// for the next Drain and counted in Stats.Deferred.
func (s *Scheduler) Drain() (Stats, error) {
	var stats Stats
	if s.state == StateProcessing {
		return stats, errors.Report(&errors.SceneError{
			Op:       "update.Scheduler.Drain",
			Kind:     errors.KindSchedule,
			Severity: errors.SeverityError,
			Err:      errors.ErrReentrantDrain,
		})
	}
	s.state = StateProcessing
	defer func() {
		if s.HasWork() {
			s.state = StateRequested
		} else {
			s.state = StateIdle
		}
	}()

	funcs := s.funcs
	s.funcs = nil
	for _, fn := range funcs {
		s.runFunc(fn)
		stats.Callbacks++
	}

	maxPasses := s.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	for pass := 0; pass < maxPasses; pass++ {
		if len(s.order) == 0 && len(s.deletions) == 0 {
			break
		}
		stats.Passes++

		// Deletions first: a paint must never touch an object awaiting deletion.
		for len(s.deletions) > 0 {
			dels := s.deletions
			s.deletions = nil
			for _, d := range dels {
				s.dispose(d)
				stats.Deletions++
			}
		}

		batch := s.order
		kinds := s.pending
		s.order = nil
		s.pending = nil

		slices.SortStableFunc(batch, func(a, b Target) int {
			return a.Depth() - b.Depth()
		})
		for _, target := range batch {
			kind := kinds[target]
			if target.Destroyed() {
				continue
			}
			if target.Hidden() && !kind.Has(Hidden) {
				stats.Skipped++
				continue
			}
			s.update(target, kind)
			stats.Updates++
		}
	}

	if len(s.order) > 0 || len(s.deletions) > 0 {
		stats.Deferred = len(s.order) + len(s.deletions)
		errors.Warn("update.Scheduler.Drain", errors.KindSchedule, nil,
			fmt.Errorf("%d requests deferred after %d passes", stats.Deferred, maxPasses))
	}
	return stats, nil
}

func (s *Scheduler) update(target Target, kind Kind) {
	defer errors.Recover("update.Scheduler.Drain")
	target.Update(kind)
}

func (s *Scheduler) dispose(d Disposer) {
	defer errors.Recover("update.Scheduler.Dispose")
	d.Dispose()
}

func (s *Scheduler) runFunc(fn func()) {
	defer errors.Recover("update.Scheduler.PostFunc")
	fn()
}
