package back

import (
	"teamladder/internal/util"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// A Community is an isolated ladder, identified by its Discord guild ID.
// Ratings never cross Community boundaries.
type Community struct {
	ID        int64
	CreatedAt util.TimeAsTimestamp
}

func NewCommunity(id int64) Community {
	return Community{
		ID:        id,
		CreatedAt: util.NewTimeAsTimestamp(time.Now()),
	}
}

func (c *Community) insertIfAbsent(tx *sqlx.Tx) (created bool, _ error) {
	query, args, err := squirrel.Insert("Community").SetMap(squirrel.Eq{
		"ID":        c.ID,
		"CreatedAt": c.CreatedAt,
	}).Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return false, err
	}

	return insertedOne(tx.Exec(query, args...))
}
