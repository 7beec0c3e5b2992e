package back

import (
	"context"
	"fmt"
	"log"
	"teamladder/internal/util"

	"github.com/jmoiron/sqlx"
)

// Back holds the ladder state and implements every operation on it, it is
// safe for concurrent use. Coordination between concurrent writers is left to
// the database, see SQLiteDSN.
type Back struct {
	db *sqlx.DB
}

func New(sqlDriver string, sqlDSN string) (*Back, error) {
	// Why even bother converting names? A single greppable string across all
	// your source code is better than any odd conversion scheme you could ever
	// come up with.
	// HACK: This is global but putting this in init() makes test ugly.
	// As only the Back relies on the DB, this seems like an okay-ish place.
	sqlx.NameMapper = func(v string) string { return v }

	db, err := sqlx.Connect(sqlDriver, sqlDSN)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to %s database: %w", sqlDriver, err)
	}

	log.Printf("debug: connected to %s database", sqlDriver)

	return &Back{
		db: db,
	}, nil
}

// SQLiteDSN returns the go-sqlite3 DSN for the database file at path.
// Transactions are opened with BEGIN IMMEDIATE so that the read-compute-write
// cycle of a match is done while holding the write lock, concurrent writers
// wait for it instead of failing right away. Read-only operations don't use
// transactions and are never blocked by a writer.
func SQLiteDSN(path string) string {
	return path + "?_txlock=immediate&_busy_timeout=5000&_foreign_keys=1"
}

func (b *Back) Close() error {
	return b.db.Close()
}

func (b *Back) transaction(cb util.TransactionCallback) error {
	return util.Transaction(context.Background(), b.db, cb)
}
