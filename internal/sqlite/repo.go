package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lmoran/feedreg/internal/feedreg"
)

// Open connects to the sqlite database at path. The pragmas are in
// modernc's _pragma form; mattn-style names like _journal_mode are
// silently ignored by this driver.
func Open(path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("%s?_txlock=immediate&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	dbx, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %s", err)
	}

	return dbx, nil
}

// Ensure Repo implements the Repository interface
var _ feedreg.Repository = (*Repo)(nil)

type Repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Repo {
	return Repo{db: db}
}
