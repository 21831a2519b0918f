package state

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// snapshot is the persisted session document.
type snapshot struct {
	Tasks          []*Task          `json:"tasks"`
	WorkUnits      []*WorkUnit      `json:"work_units"`
	ActionRequests []*ActionRequest `json:"action_requests"`
	Started        bool             `json:"started"`
	LastID         int64            `json:"last_id"`
}

func (s *snapshot) clone() snapshot {
	ret := snapshot{
		Tasks:          make([]*Task, len(s.Tasks)),
		WorkUnits:      make([]*WorkUnit, len(s.WorkUnits)),
		ActionRequests: make([]*ActionRequest, len(s.ActionRequests)),
		Started:        s.Started,
		LastID:         s.LastID,
	}
	for i, task := range s.Tasks {
		ret.Tasks[i] = task.Clone()
	}
	for i, unit := range s.WorkUnits {
		ret.WorkUnits[i] = unit.Clone()
	}
	for i, request := range s.ActionRequests {
		ret.ActionRequests[i] = request.Clone()
	}
	return ret
}

// ConsistentState is an immutable session snapshot. Accessors return copies.
type ConsistentState struct {
	data snapshot
}

// NewConsistentState returns an empty, not started snapshot.
func NewConsistentState() *ConsistentState {
	return &ConsistentState{data: snapshot{Tasks: []*Task{}, WorkUnits: []*WorkUnit{}, ActionRequests: []*ActionRequest{}}}
}

// Tasks returns the task stack, bottom first.
func (c *ConsistentState) Tasks() []*Task {
	data := c.data.clone()
	return data.Tasks
}

// WorkUnits returns pending work units in enqueue order.
func (c *ConsistentState) WorkUnits() []*WorkUnit {
	data := c.data.clone()
	return data.WorkUnits
}

// ActionRequests returns pending action requests.
func (c *ConsistentState) ActionRequests() []*ActionRequest {
	data := c.data.clone()
	return data.ActionRequests
}

// ActionRequest returns a copy of the request with the given id.
func (c *ConsistentState) ActionRequest(id ActionRequestID) (*ActionRequest, bool) {
	for _, request := range c.data.ActionRequests {
		if request.ID == id {
			return request.Clone(), true
		}
	}
	return nil, false
}

// CurrentTask returns a copy of the task on top of the stack.
func (c *ConsistentState) CurrentTask() (*Task, bool) {
	if len(c.data.Tasks) == 0 {
		return nil, false
	}
	return c.data.Tasks[len(c.data.Tasks)-1].Clone(), true
}

// Started reports whether a workflow was ever started in this session.
func (c *ConsistentState) Started() bool { return c.data.Started }

// LastID returns the id counter.
func (c *ConsistentState) LastID() int64 { return c.data.LastID }

// Status summarises the snapshot.
func (c *ConsistentState) Status() Status {
	return statusOf(c.data.Started, c.data.Tasks, c.data.WorkUnits, c.data.ActionRequests)
}

// Mutate returns a mutable deep copy.
func (c *ConsistentState) Mutate() *MutableState {
	data := c.data.clone()
	return &MutableState{
		Tasks:          data.Tasks,
		WorkUnits:      data.WorkUnits,
		ActionRequests: data.ActionRequests,
		Started:        data.Started,
		LastID:         data.LastID,
	}
}

// Equal reports whether both snapshots serialise identically.
func (c *ConsistentState) Equal(other *ConsistentState) bool {
	if c == nil || other == nil {
		return c == other
	}
	left, err := c.MarshalJSON()
	if err != nil {
		return false
	}
	right, err := other.MarshalJSON()
	if err != nil {
		return false
	}
	return bytes.Equal(left, right)
}

// MarshalJSON renders the session document.
func (c *ConsistentState) MarshalJSON() ([]byte, error) {
	return json.Marshal(&c.data)
}

// UnmarshalJSON decodes a session document and validates its ids.
func (c *ConsistentState) UnmarshalJSON(data []byte) error {
	var decoded snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if err := decoded.validate(); err != nil {
		return err
	}
	normalized := decoded.clone()
	c.data = normalized
	return nil
}

// Decode parses a session document.
func Decode(data []byte) (*ConsistentState, error) {
	ret := &ConsistentState{}
	if err := json.Unmarshal(data, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Encode renders an indented session document.
func Encode(state *ConsistentState) ([]byte, error) {
	return json.MarshalIndent(&state.data, "", "  ")
}

func (s *snapshot) validate() error {
	check := func(prefix, id string) error {
		actual, n, err := ParseID(id)
		if err != nil {
			return err
		}
		if actual != prefix {
			return fmt.Errorf("%w: %q: expected prefix %v", ErrMalformedID, id, prefix)
		}
		if n > s.LastID {
			return fmt.Errorf("%w: %q: counter above last_id %d", ErrMalformedID, id, s.LastID)
		}
		return nil
	}
	for _, task := range s.Tasks {
		if err := check(TaskPrefix, string(task.ID)); err != nil {
			return err
		}
	}
	for _, unit := range s.WorkUnits {
		if err := check(WorkUnitPrefix, string(unit.ID)); err != nil {
			return err
		}
	}
	for _, request := range s.ActionRequests {
		if err := check(ActionRequestPrefix, string(request.ID)); err != nil {
			return err
		}
	}
	return nil
}
