package back

import (
	"fmt"
	"teamladder/internal/back/elo"
	"teamladder/internal/util"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// A Membership is the rating and win/loss record of a Player in a Community.
// There is at most one Membership per (Player, Community) pair.
type Membership struct {
	PlayerID    int64
	CommunityID int64
	CreatedAt   util.TimeAsTimestamp

	elo.Record
}

func NewMembership(playerID, communityID int64) Membership {
	return Membership{
		PlayerID:    playerID,
		CommunityID: communityID,
		CreatedAt:   util.NewTimeAsTimestamp(time.Now()),
		Record:      elo.NewRecord(),
	}
}

func (m *Membership) insertIfAbsent(tx *sqlx.Tx) (created bool, _ error) {
	query, args, err := squirrel.Insert("Membership").SetMap(squirrel.Eq{
		"PlayerID":    m.PlayerID,
		"CommunityID": m.CommunityID,
		"CreatedAt":   m.CreatedAt,
		"Rating2v2":   m.Rating2v2,
		"Rating3v3":   m.Rating3v3,
		"Wins":        m.Wins,
		"Losses":      m.Losses,
	}).Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return false, err
	}

	return insertedOne(tx.Exec(query, args...))
}

func (m *Membership) update(tx *sqlx.Tx) error {
	query, args, err := squirrel.Update("Membership").SetMap(squirrel.Eq{
		"Rating2v2": m.Rating2v2,
		"Rating3v3": m.Rating3v3,
		"Wins":      m.Wins,
		"Losses":    m.Losses,
	}).Where(squirrel.Eq{
		"PlayerID":    m.PlayerID,
		"CommunityID": m.CommunityID,
	}).ToSql()
	if err != nil {
		return err
	}

	res, err := tx.Exec(query, args...)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if affected != 1 {
		return fmt.Errorf("updated %d Membership rows for player %d in community %d, expected 1",
			affected, m.PlayerID, m.CommunityID,
		)
	}

	return nil
}

// saveMemberships updates all memberships, it is only atomic if the caller
// does not commit tx after an error.
func saveMemberships(tx *sqlx.Tx, memberships []Membership) error {
	for k := range memberships {
		if err := memberships[k].update(tx); err != nil {
			return err
		}
	}

	return nil
}

func getMembership(q sqlx.Queryer, playerID, communityID int64) (Membership, error) {
	var ret Membership
	query := `SELECT * FROM Membership WHERE PlayerID = ? AND CommunityID = ? LIMIT 1`
	if err := sqlx.Get(q, &ret, query, playerID, communityID); err != nil {
		return Membership{}, err
	}

	return ret, nil
}

func membershipExists(q sqlx.Queryer, playerID, communityID int64) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM Membership WHERE PlayerID = ? AND CommunityID = ?`
	if err := sqlx.Get(q, &count, query, playerID, communityID); err != nil {
		return false, err
	}

	return count > 0, nil
}

// getMembershipsByCommunity returns every Membership of a Community, best
// rated first for the given mode, ties broken by PlayerID.
func getMembershipsByCommunity(q sqlx.Queryer, communityID int64, mode elo.Mode) ([]Membership, error) {
	var orderBy string
	switch mode {
	case elo.Mode2v2:
		orderBy = "Rating2v2 DESC"
	case elo.Mode3v3:
		orderBy = "Rating3v3 DESC"
	default:
		return nil, fmt.Errorf("invalid mode: %s", mode)
	}

	query, args, err := squirrel.Select("*").
		From("Membership").
		Where(squirrel.Eq{"CommunityID": communityID}).
		OrderBy(orderBy, "PlayerID ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var ret []Membership
	if err := sqlx.Select(q, &ret, query, args...); err != nil {
		return nil, err
	}

	return ret, nil
}

// getMembershipsByPlayerIDs returns the memberships of the given players in
// the same order, the first player without a Membership yields a
// PlayerNotRegistered failure.
func getMembershipsByPlayerIDs(tx *sqlx.Tx, communityID int64, playerIDs []int64) ([]Membership, error) {
	query, args, err := squirrel.Select("*").
		From("Membership").
		Where(squirrel.Eq{
			"CommunityID": communityID,
			"PlayerID":    playerIDs,
		}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var found []Membership
	if err := tx.Select(&found, query, args...); err != nil {
		return nil, err
	}

	byPlayerID := make(map[int64]Membership, len(found))
	for _, v := range found {
		byPlayerID[v.PlayerID] = v
	}

	ret := make([]Membership, 0, len(playerIDs))
	for _, id := range playerIDs {
		membership, ok := byPlayerID[id]
		if !ok {
			return nil, playerNotRegistered(id)
		}
		ret = append(ret, membership)
	}

	return ret, nil
}
