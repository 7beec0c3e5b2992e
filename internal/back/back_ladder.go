package back

import (
	"errors"
	"fmt"
	"log"
	"teamladder/internal/back/elo"

	"github.com/jmoiron/sqlx"
)

// GetLeaderboard returns every Membership of a community, best rated first
// for the given mode and ties broken by ascending player ID.
func (b *Back) GetLeaderboard(communityID int64, mode elo.Mode) ([]Membership, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("invalid mode: %s", mode)
	}

	ret, err := getMembershipsByCommunity(b.db, communityID, mode)
	if err != nil {
		return nil, err
	}

	if len(ret) == 0 {
		return nil, ErrEmptyLeaderboard
	}

	return ret, nil
}

// MatchResult is the outcome of ApplyMatch for a single player.
type MatchResult struct {
	PlayerID  int64
	NewRating int // rating for the mode of the match
	Delta     int
	Wins      int
	Losses    int
}

// ApplyMatch records a match where the first half of playerIDs beat the
// second half. 4 players make a 2v2, 6 players a 3v3.
// Every rating change is saved atomically, on any failure nothing is.
// Results are in the same order as playerIDs.
func (b *Back) ApplyMatch(playerIDs []int64, communityID int64) (ret []MatchResult, _ error) {
	mode, err := validateMatchPlayers(playerIDs)
	if err != nil {
		return nil, err
	}

	if err := b.transaction(func(tx *sqlx.Tx) error {
		memberships, err := getMembershipsByPlayerIDs(tx, communityID, playerIDs)
		if err != nil {
			return err
		}

		records := make([]elo.Record, len(memberships))
		for k := range memberships {
			records[k] = memberships[k].Record
		}

		half := len(records) / 2
		results := elo.ComputeMatch(records[:half], records[half:], mode)

		match := NewMatch(communityID, mode)
		ret = make([]MatchResult, len(results))
		for k, result := range results {
			memberships[k].Record = result.Record

			outcome := MatchEntryOutcomeWin
			if k >= half {
				outcome = MatchEntryOutcomeLoss
			}
			match.addEntry(memberships[k].PlayerID, outcome, result)

			ret[k] = MatchResult{
				PlayerID:  memberships[k].PlayerID,
				NewRating: result.Record.Rating(mode),
				Delta:     result.Delta,
				Wins:      result.Record.Wins,
				Losses:    result.Record.Losses,
			}
		}

		if err := saveMemberships(tx, memberships); err != nil {
			return err
		}

		if err := match.insert(tx); err != nil {
			return fmt.Errorf("unable to log match: %w", err)
		}

		log.Printf(
			"info: applied %s match %s in community %d, delta %d",
			mode, match.ID, communityID, results[0].Delta,
		)

		return nil
	}); err != nil {
		var failure *Failure
		if errors.As(err, &failure) {
			return nil, err
		}

		log.Printf("error: unable to apply match in community %d: %s", communityID, err)
		return nil, persistenceFailure(err)
	}

	return ret, nil
}

func validateMatchPlayers(playerIDs []int64) (elo.Mode, error) {
	if len(playerIDs) == 0 {
		return 0, duplicatePlayers(0, 0)
	}

	seen := make(map[int64]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if _, ok := seen[id]; ok {
			return 0, duplicatePlayers(id, len(playerIDs))
		}
		seen[id] = struct{}{}
	}

	mode, ok := elo.ModeForPlayerCount(len(playerIDs))
	if !ok {
		return 0, invalidPlayerCount(len(playerIDs))
	}

	return mode, nil
}

// GetRecentMatches returns up to limit matches of a community, most recent
// first.
// Entries are committed with their Match, reading them in a second query
// cannot observe a partial match.
func (b *Back) GetRecentMatches(communityID int64, limit uint64) ([]Match, error) {
	return getMatchesByCommunity(b.db, communityID, limit)
}
