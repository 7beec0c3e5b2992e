package back

import (
	"fmt"
)

// FailureKind tells apart the expected ways an operation can fail.
type FailureKind int

const (
	FailureNotFound FailureKind = iota + 1
	FailureEmptyLeaderboard
	FailureDuplicatePlayers
	FailureInvalidPlayerCount
	FailurePlayerNotRegistered
	FailurePersistence
)

// A Failure is an expected, recoverable outcome of an operation. Callers
// compare it by kind with errors.Is against the Err* values and read the
// details with errors.As.
type Failure struct {
	Kind FailureKind

	// PlayerID is the offending player for FailurePlayerNotRegistered and
	// FailureDuplicatePlayers.
	PlayerID int64

	// Count is the number of players received by a match, set for
	// FailureInvalidPlayerCount and FailureDuplicatePlayers.
	Count int

	// Err is the underlying cause of a FailurePersistence.
	Err error
}

var (
	ErrNotFound            = &Failure{Kind: FailureNotFound}
	ErrEmptyLeaderboard    = &Failure{Kind: FailureEmptyLeaderboard}
	ErrDuplicatePlayers    = &Failure{Kind: FailureDuplicatePlayers}
	ErrInvalidPlayerCount  = &Failure{Kind: FailureInvalidPlayerCount}
	ErrPlayerNotRegistered = &Failure{Kind: FailurePlayerNotRegistered}
	ErrPersistence         = &Failure{Kind: FailurePersistence}
)

func (f *Failure) Error() string {
	switch f.Kind {
	case FailureNotFound:
		return "player not found"
	case FailureEmptyLeaderboard:
		return "no registered players"
	case FailureDuplicatePlayers:
		if f.Count == 0 {
			return "no players given"
		}
		return fmt.Sprintf("duplicate player %d", f.PlayerID)
	case FailureInvalidPlayerCount:
		return fmt.Sprintf("invalid player amount (%d), valid amounts are 4 and 6", f.Count)
	case FailurePlayerNotRegistered:
		return fmt.Sprintf("player %d is not registered", f.PlayerID)
	case FailurePersistence:
		if f.Err != nil {
			return fmt.Sprintf("unable to save changes: %s", f.Err)
		}
		return "unable to save changes"
	default:
		return fmt.Sprintf("failure #%d", f.Kind)
	}
}

func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	return ok && t.Kind == f.Kind
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func playerNotRegistered(playerID int64) error {
	return &Failure{Kind: FailurePlayerNotRegistered, PlayerID: playerID}
}

func duplicatePlayers(playerID int64, count int) error {
	return &Failure{Kind: FailureDuplicatePlayers, PlayerID: playerID, Count: count}
}

func invalidPlayerCount(count int) error {
	return &Failure{Kind: FailureInvalidPlayerCount, Count: count}
}

func persistenceFailure(err error) error {
	return &Failure{Kind: FailurePersistence, Err: err}
}
