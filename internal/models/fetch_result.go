package models

type FetchStatus int

const (
	FetchFound FetchStatus = iota
	FetchNotFound
	FetchFailed
)

func (s FetchStatus) String() string {
	switch s {
	case FetchFound:
		return "found"
	case FetchNotFound:
		return "not_found"
	default:
		return "failed"
	}
}

// FetchResult is the outcome of asking the war API for the current war.
// Snapshot is set only for FetchFound; Code and Reason only for FetchFailed.
type FetchResult struct {
	Status   FetchStatus
	Snapshot *WarSnapshot
	Code     int
	Reason   string
}

func Found(snapshot *WarSnapshot) FetchResult {
	return FetchResult{Status: FetchFound, Snapshot: snapshot}
}

func NotFound() FetchResult {
	return FetchResult{Status: FetchNotFound}
}

func Failed(code int, reason string) FetchResult {
	return FetchResult{Status: FetchFailed, Code: code, Reason: reason}
}
