package back

import (
	"database/sql"
	"teamladder/internal/util"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// A Player is a competitor identified by its Discord user ID, it can be a
// Member of any number of Community.
type Player struct {
	ID        int64
	CreatedAt util.TimeAsTimestamp
}

func NewPlayer(id int64) Player {
	return Player{
		ID:        id,
		CreatedAt: util.NewTimeAsTimestamp(time.Now()),
	}
}

// insertIfAbsent creates the Player unless it already exists, created is
// false when the row was already there.
func (p *Player) insertIfAbsent(tx *sqlx.Tx) (created bool, _ error) {
	query, args, err := squirrel.Insert("Player").SetMap(squirrel.Eq{
		"ID":        p.ID,
		"CreatedAt": p.CreatedAt,
	}).Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return false, err
	}

	return insertedOne(tx.Exec(query, args...))
}

// insertedOne reads the result of an INSERT … ON CONFLICT DO NOTHING.
func insertedOne(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}
