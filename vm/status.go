package vm

// Status is the lifecycle state of a Machine.
type Status int

//go:generate go tool stringer -linecomment -type=Status
const (
	STATUS_WAITING = Status(0) // WAITING
	STATUS_READY   = Status(1) // READY
	STATUS_RUNNING = Status(2) // RUNNING
	STATUS_HALTED  = Status(3) // HALTED
	STATUS_ERRORED = Status(4) // ERRORED
)

// event is a caller request that may change the machine status.
type event int

const (
	eventLoad event = iota
	eventRun
	eventStep
	eventReset
)

// transitions lists, for each event, the states in which it is effective.
// Anything else is a no-op that reports the current status.
var transitions = map[event][]Status{
	eventLoad:  {STATUS_WAITING},
	eventRun:   {STATUS_READY},
	eventStep:  {STATUS_READY, STATUS_RUNNING},
	eventReset: {STATUS_WAITING, STATUS_READY, STATUS_RUNNING, STATUS_HALTED, STATUS_ERRORED},
}

// accepts returns true if the event is effective in this status.
func (st Status) accepts(ev event) bool {
	for _, from := range transitions[ev] {
		if st == from {
			return true
		}
	}
	return false
}

// Terminal returns true for HALTED and ERRORED.
func (st Status) Terminal() bool {
	return st == STATUS_HALTED || st == STATUS_ERRORED
}
