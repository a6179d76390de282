package etl

// State is a step of a run. A successful run passes through Loading,
// Transforming, Writing and Closed in that order; a failed one ends in Aborted.
type State int

const (
	Loading State = iota
	Transforming
	Writing
	Closed
	Aborted
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Transforming:
		return "transforming"
	case Writing:
		return "writing"
	case Closed:
		return "closed"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}
