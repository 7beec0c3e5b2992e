package back

import (
	"teamladder/internal/back/elo"
	"teamladder/internal/util"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// A Match is the log of a team match applied to a Community ladder.
// It is written in the same transaction as the rating changes it caused.
type Match struct {
	ID          util.UUIDAsBlob
	CommunityID int64
	Mode        elo.Mode
	CreatedAt   util.TimeAsTimestamp

	Entries []MatchEntry `db:"-"`
}

// A MatchEntry is the outcome of a Match for one of its players.
type MatchEntry struct {
	MatchID     util.UUIDAsBlob
	PlayerID    int64
	Position    int // index in the winners-then-losers order
	Outcome     MatchEntryOutcome
	RatingDelta int
	RatingAfter int
}

type MatchEntryOutcome int

const ( // this is stored in DB, don't change values
	MatchEntryOutcomeLoss MatchEntryOutcome = -1
	MatchEntryOutcomeWin  MatchEntryOutcome = 1
)

func (o MatchEntryOutcome) String() string {
	switch o {
	case MatchEntryOutcomeWin:
		return "win"
	case MatchEntryOutcomeLoss:
		return "loss"
	default:
		return "unknown"
	}
}

func NewMatch(communityID int64, mode elo.Mode) Match {
	return Match{
		ID:          util.NewUUIDAsBlob(),
		CommunityID: communityID,
		Mode:        mode,
		CreatedAt:   util.NewTimeAsTimestamp(time.Now()),
	}
}

// addEntry appends the outcome of the next player, Position follows the
// insertion order.
func (m *Match) addEntry(playerID int64, outcome MatchEntryOutcome, result elo.Result) {
	m.Entries = append(m.Entries, MatchEntry{
		MatchID:     m.ID,
		PlayerID:    playerID,
		Position:    len(m.Entries),
		Outcome:     outcome,
		RatingDelta: result.Delta,
		RatingAfter: result.Record.Rating(m.Mode),
	})
}

// Winners returns the entries of the winning team.
func (m *Match) Winners() []MatchEntry {
	return m.entriesWithOutcome(MatchEntryOutcomeWin)
}

// Losers returns the entries of the losing team.
func (m *Match) Losers() []MatchEntry {
	return m.entriesWithOutcome(MatchEntryOutcomeLoss)
}

func (m *Match) entriesWithOutcome(outcome MatchEntryOutcome) []MatchEntry {
	ret := make([]MatchEntry, 0, m.Mode.TeamSize())
	for _, v := range m.Entries {
		if v.Outcome == outcome {
			ret = append(ret, v)
		}
	}

	return ret
}

func (m *Match) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Match").SetMap(squirrel.Eq{
		"ID":          m.ID,
		"CommunityID": m.CommunityID,
		"Mode":        m.Mode,
		"CreatedAt":   m.CreatedAt,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	for k := range m.Entries {
		if err := m.Entries[k].insert(tx); err != nil {
			return err
		}
	}

	return nil
}

func (e *MatchEntry) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("MatchEntry").SetMap(squirrel.Eq{
		"MatchID":     e.MatchID,
		"PlayerID":    e.PlayerID,
		"Position":    e.Position,
		"Outcome":     e.Outcome,
		"RatingDelta": e.RatingDelta,
		"RatingAfter": e.RatingAfter,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

// getMatchesByCommunity returns the last matches of a Community with their
// entries, most recent first.
func getMatchesByCommunity(q sqlx.Queryer, communityID int64, limit uint64) ([]Match, error) {
	query, args, err := squirrel.Select("*").
		From("Match").
		Where(squirrel.Eq{"CommunityID": communityID}).
		OrderBy("CreatedAt DESC", "rowid DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, err
	}

	var ret []Match
	if err := sqlx.Select(q, &ret, query, args...); err != nil {
		return nil, err
	}

	if len(ret) == 0 {
		return ret, nil
	}

	ids := make([]util.UUIDAsBlob, len(ret))
	for k := range ret {
		ids[k] = ret[k].ID
	}

	query, args, err = sqlx.In(`SELECT * FROM MatchEntry WHERE MatchID IN(?) ORDER BY Position ASC`, ids)
	if err != nil {
		return nil, err
	}

	var entries []MatchEntry
	if err := sqlx.Select(q, &entries, query, args...); err != nil {
		return nil, err
	}

	byMatchID := make(map[util.UUIDAsBlob][]MatchEntry, len(ret))
	for _, v := range entries {
		byMatchID[v.MatchID] = append(byMatchID[v.MatchID], v)
	}

	for k := range ret {
		ret[k].Entries = byMatchID[ret[k].ID]
	}

	return ret, nil
}
