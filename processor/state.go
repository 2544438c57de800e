package processor

type State int32

const (
	Idle State = iota
	Dequeuing
	Evaluating
	Applying
	Reporting
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dequeuing:
		return "dequeuing"
	case Evaluating:
		return "evaluating"
	case Applying:
		return "applying"
	case Reporting:
		return "reporting"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}
