package back

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"teamladder/internal/back/elo"
	"time"

	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// Outcome is the successful result of a registration.
type Outcome int

const (
	OutcomeRegistered Outcome = iota + 1
	OutcomeAlreadyRegistered
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRegistered:
		return "registered"
	case OutcomeAlreadyRegistered:
		return "already registered"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Register creates the Membership of a player in a community, creating both
// on the fly when needed. Registering twice is harmless and reports
// OutcomeAlreadyRegistered, including when two calls race each other.
func (b *Back) Register(playerID, communityID int64) (outcome Outcome, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		player := NewPlayer(playerID)
		if _, err := player.insertIfAbsent(tx); err != nil {
			return fmt.Errorf("unable to create player: %w", err)
		}

		community := NewCommunity(communityID)
		if created, err := community.insertIfAbsent(tx); err != nil {
			return fmt.Errorf("unable to create community: %w", err)
		} else if created {
			log.Printf("info: new community %d", communityID)
		}

		membership := NewMembership(playerID, communityID)
		created, err := membership.insertIfAbsent(tx)
		if err != nil {
			return fmt.Errorf("unable to create membership: %w", err)
		}

		outcome = OutcomeAlreadyRegistered
		if created {
			outcome = OutcomeRegistered
		}

		return nil
	}); err != nil {
		return 0, err
	}

	return outcome, nil
}

// GetMembership returns the Membership of a player in a community or
// ErrNotFound.
func (b *Back) GetMembership(playerID, communityID int64) (Membership, error) {
	ret, err := getMembership(b.db, playerID, communityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Membership{}, ErrNotFound
		}
		return Membership{}, err
	}

	return ret, nil
}

// MembershipExists never fails, a database error is logged and reported as a
// missing Membership.
func (b *Back) MembershipExists(playerID, communityID int64) bool {
	ret, err := membershipExists(b.db, playerID, communityID)
	if err != nil {
		log.Printf("error: unable to check membership of %d in %d: %s", playerID, communityID, err)
		return false
	}

	return ret
}

// ResetMembership puts back the ratings and win/loss record of a Membership
// to their default values, the Membership itself is kept.
func (b *Back) ResetMembership(playerID, communityID int64) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		membership, err := getMembership(tx, playerID, communityID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		log.Printf(
			"info: resetting player %d in community %d (was %d/%d %dW %dL)",
			playerID, communityID,
			membership.Rating2v2, membership.Rating3v3,
			membership.Wins, membership.Losses,
		)

		membership.Record = elo.NewRecord()
		return membership.update(tx)
	})
}

// MembershipStats is a Membership along with its match history summary.
type MembershipStats struct {
	Membership

	MatchesPlayed int
	LastMatchAt   null.Time
}

// GetMembershipStats returns a Membership along with its match history
// summary, or ErrNotFound.
func (b *Back) GetMembershipStats(playerID, communityID int64) (MembershipStats, error) {
	membership, err := b.GetMembership(playerID, communityID)
	if err != nil {
		return MembershipStats{}, err
	}

	var row struct {
		MatchesPlayed int
		LastMatchAt   null.Int
	}
	if err := b.db.Get(&row, `
        SELECT COUNT(*) AS MatchesPlayed, MAX(Match.CreatedAt) AS LastMatchAt
        FROM MatchEntry
        INNER JOIN Match ON (Match.ID = MatchEntry.MatchID)
        WHERE MatchEntry.PlayerID = ? AND Match.CommunityID = ?`,
		playerID, communityID,
	); err != nil {
		return MembershipStats{}, err
	}

	return MembershipStats{
		Membership:    membership,
		MatchesPlayed: row.MatchesPlayed,
		LastMatchAt:   null.NewTime(time.Unix(row.LastMatchAt.Int64, 0), row.LastMatchAt.Valid),
	}, nil
}
