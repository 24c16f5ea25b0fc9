package combat

import "sort"

// TimerID is a handle to a scheduled action. The zero value refers to no timer.
type TimerID uint64

type timerEntry struct {
	id    TimerID
	dueAt int64
	fn    func(nowMs int64)
}

// Scheduler is a deferred-action queue driven by the simulation clock.
// Actions fire during the Advance call in which the clock reaches their due time;
// there is no background goroutine. It is not safe for concurrent use.
//
// Invariant: a cancelled or fired TimerID is never invoked again.
type Scheduler struct {
	next    TimerID
	pending map[TimerID]*timerEntry
}

// NewScheduler creates an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[TimerID]*timerEntry)}
}

// After schedules fn to run once the clock reaches nowMs+delayMs.
// A negative delay is treated as zero.
//
// Precondition: fn must not be nil.
// Postcondition: Returns a non-zero TimerID that is Pending until it fires or is cancelled.
func (s *Scheduler) After(nowMs, delayMs int64, fn func(nowMs int64)) TimerID {
	if delayMs < 0 {
		delayMs = 0
	}
	s.next++
	id := s.next
	s.pending[id] = &timerEntry{id: id, dueAt: nowMs + delayMs, fn: fn}
	return id
}

// Cancel removes a pending action. Safe to call with a zero, fired, or already cancelled handle.
//
// Postcondition: Returns true iff the handle was pending; the action will not run.
func (s *Scheduler) Cancel(id TimerID) bool {
	if id == 0 {
		return false
	}
	if _, ok := s.pending[id]; !ok {
		return false
	}
	delete(s.pending, id)
	return true
}

// Pending reports whether id is scheduled and has not fired or been cancelled.
func (s *Scheduler) Pending(id TimerID) bool {
	_, ok := s.pending[id]
	return ok
}

// DueAt returns the due timestamp of a pending action.
//
// Postcondition: Returns (dueAt, true) if pending, or (0, false) otherwise.
func (s *Scheduler) DueAt(id TimerID) (int64, bool) {
	e, ok := s.pending[id]
	if !ok {
		return 0, false
	}
	return e.dueAt, true
}

// Len returns the number of pending actions.
func (s *Scheduler) Len() int { return len(s.pending) }

// Advance fires every action due at or before nowMs, ordered by due time and
// then by scheduling order. An action cancelled by an earlier action in the same
// pass does not fire. Actions scheduled during the pass wait for the next Advance.
//
// Postcondition: Returns the number of actions fired.
func (s *Scheduler) Advance(nowMs int64) int {
	var due []*timerEntry
	for _, e := range s.pending {
		if e.dueAt <= nowMs {
			due = append(due, e)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].dueAt != due[j].dueAt {
			return due[i].dueAt < due[j].dueAt
		}
		return due[i].id < due[j].id
	})

	fired := 0
	for _, e := range due {
		if _, ok := s.pending[e.id]; !ok {
			continue
		}
		delete(s.pending, e.id)
		e.fn(nowMs)
		fired++
	}
	return fired
}

// Clear cancels every pending action.
func (s *Scheduler) Clear() {
	s.pending = make(map[TimerID]*timerEntry)
}
