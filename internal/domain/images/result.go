package images

// FetchState is the per-image lifecycle: Pending until the fetch resolves,
// then exactly one terminal state. Terminal states are immutable.
type FetchState int

const (
	StatePending FetchState = iota
	StateSucceeded
	StateFailed
	StateTimedOut
)

func (s FetchState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateTimedOut:
		return "timed_out"
	}
	return "unknown"
}

// FetchResult holds the outcome for one image: bytes when succeeded, an
// error when failed, neither when timed out. Owned by the coordinator for
// one page render and discarded after.
type FetchResult struct {
	State FetchState
	Bytes []byte
	Err   error
}

func Succeeded(b []byte) FetchResult {
	return FetchResult{State: StateSucceeded, Bytes: b}
}

func Failed(err error) FetchResult {
	return FetchResult{State: StateFailed, Err: err}
}

func TimedOut() FetchResult {
	return FetchResult{State: StateTimedOut}
}
