package gesture

import (
	"sort"
	"time"
)

// Timer is a handle to deferred work. Stop is idempotent and safe to call
// after the work has already run.
type Timer interface {
	Stop()
}

// Scheduler supplies time and the two kinds of deferred work the dispatcher
// needs: per-frame callbacks (inertia) and one-shot timeouts (trailing hover).
type Scheduler interface {
	Now() time.Time
	RequestFrame(fn func(now time.Time)) Timer
	AfterFunc(d time.Duration, fn func()) Timer
}

type loopTask struct {
	deadline time.Time
	seq      uint64
	frame    func(now time.Time)
	timeout  func()
	stopped  bool
}

func (t *loopTask) Stop() { t.stopped = true }

// Loop is a cooperative, single-goroutine Scheduler. Nothing runs on its own:
// the host calls Advance once per frame (from ebiten's Update, a bubbletea
// tick, or a replay step) and due timeouts and frame callbacks run inside that
// call.
//
// There is no global loop; each surface owns one.
type Loop struct {
	now    time.Time
	seq    uint64
	frames []*loopTask
	timers []*loopTask
}

// NewLoop creates a Loop whose clock starts at start.
func NewLoop(start time.Time) *Loop {
	return &Loop{now: start}
}

// Now returns the time of the most recent Advance.
func (l *Loop) Now() time.Time {
	return l.now
}

// RequestFrame schedules fn to run on the next Advance.
func (l *Loop) RequestFrame(fn func(now time.Time)) Timer {
	l.seq++
	t := &loopTask{seq: l.seq, frame: fn}
	l.frames = append(l.frames, t)
	return t
}

// AfterFunc schedules fn to run on the first Advance at or after Now()+d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	l.seq++
	t := &loopTask{deadline: l.now.Add(d), seq: l.seq, timeout: fn}
	l.timers = append(l.timers, t)
	return t
}

// Pending reports how many frame callbacks and timeouts are still scheduled.
func (l *Loop) Pending() (frames, timers int) {
	for _, t := range l.frames {
		if !t.stopped {
			frames++
		}
	}
	for _, t := range l.timers {
		if !t.stopped {
			timers++
		}
	}
	return frames, timers
}

// Advance moves the clock to now (it never goes backwards), runs every due
// timeout in deadline order, then runs the frame callbacks that were requested
// before this call. Work scheduled from inside a callback waits for the next
// Advance.
func (l *Loop) Advance(now time.Time) {
	if now.After(l.now) {
		l.now = now
	}

	var due []*loopTask
	kept := l.timers[:0]
	for _, t := range l.timers {
		switch {
		case t.stopped:
		case !t.deadline.After(l.now):
			due = append(due, t)
		default:
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(l.timers); i++ {
		l.timers[i] = nil
	}
	l.timers = kept

	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	for _, t := range due {
		if t.stopped {
			continue
		}
		t.stopped = true
		t.timeout()
	}

	frames := l.frames
	l.frames = nil
	for _, t := range frames {
		if t.stopped {
			continue
		}
		t.stopped = true
		t.frame(l.now)
	}
}

// Step advances the clock by d. It is a convenience for fixed-rate drivers.
func (l *Loop) Step(d time.Duration) {
	l.Advance(l.now.Add(d))
}
