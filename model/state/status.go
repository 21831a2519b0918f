package state

// Status summarises a session.
type Status string

const (
	StatusNotStarted     Status = "not_started"
	StatusRunning        Status = "running"
	StatusAwaitingAction Status = "awaiting_action"
	// StatusStalled means tasks remain but none has work or a pending request.
	StatusStalled   Status = "stalled"
	StatusCompleted Status = "completed"
)

// IsTerminal reports whether no further step can happen without external input.
func (s Status) IsTerminal() bool {
	return s != StatusRunning
}

func statusOf(started bool, tasks []*Task, workUnits []*WorkUnit, requests []*ActionRequest) Status {
	if !started {
		return StatusNotStarted
	}
	if len(tasks) == 0 && len(requests) == 0 {
		return StatusCompleted
	}
	if len(tasks) > 0 {
		current := tasks[len(tasks)-1].ID
		for _, unit := range workUnits {
			if unit.TaskID == current {
				return StatusRunning
			}
		}
	}
	if len(requests) > 0 {
		return StatusAwaitingAction
	}
	return StatusStalled
}
