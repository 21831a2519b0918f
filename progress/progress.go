package progress

import (
	"context"
	"sync"
	"time"
)

// Delta is an incremental counter change.
type Delta struct {
	Steps          int
	ActionRequests int
	FinishedTasks  int
	Events         int
	Failed         int
}

// Counters is a point-in-time copy of a tracker; it holds no lock and is
// safe to pass by value.
type Counters struct {
	SessionID string
	Workflow  string
	StartedAt time.Time

	Steps          int
	ActionRequests int
	FinishedTasks  int
	Events         int
	Failed         int
}

// Progress aggregates counters of one session. It is safe for concurrent use.
type Progress struct {
	Counters
	mux      sync.Mutex
	onChange func(Counters)
}

// Update applies d and calls the onChange callback, if any, with a copy.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.Steps += d.Steps
	p.ActionRequests += d.ActionRequests
	p.FinishedTasks += d.FinishedTasks
	p.Events += d.Events
	p.Failed += d.Failed
	snapshot := p.Counters
	cb := p.onChange
	p.mux.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the counters.
func (p *Progress) Snapshot() Counters {
	if p == nil {
		return Counters{}
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.Counters
}

// OnChange replaces the callback invoked after every Update.
func (p *Progress) OnChange(cb func(Counters)) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.onChange = cb
	p.mux.Unlock()
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker embeds a new tracker in a derived context.
func WithNewTracker(ctx context.Context, sessionID, workflow string, onChange func(Counters)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		Counters: Counters{SessionID: sessionID, Workflow: workflow, StartedAt: time.Now()},
		onChange: onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext returns the tracker carried by ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// GetSnapshot combines FromContext and Snapshot.
func GetSnapshot(ctx context.Context) (Counters, bool) {
	if tr, ok := FromContext(ctx); ok {
		return tr.Snapshot(), true
	}
	return Counters{}, false
}

// UpdateCtx applies d to the tracker in ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
