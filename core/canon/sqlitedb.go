package canon

import (
	"database/sql"
	"fmt"

	"github.com/FocuswithJustin/CedarCite/core/sqlite"
)

// LoadSQLite loads a canon table from a SQLite database with the schema:
//
//	books(id INTEGER PRIMARY KEY, position INTEGER, name TEXT, short_name TEXT)
//	chapters(book_id INTEGER, number INTEGER, verses INTEGER)
//	aliases(book_id INTEGER, alias TEXT)   -- optional
func LoadSQLite(path string) (*Table, error) {
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, fmt.Errorf("opening canon database: %w", err)
	}
	defer db.Close()
	return LoadDB(db)
}

// LoadDB reads the canon schema from an open database handle.
func LoadDB(db *sql.DB) (*Table, error) {
	rows, err := db.Query(`SELECT id, name, short_name FROM books ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var records []*Record
	byID := make(map[int64]*Record)
	for rows.Next() {
		var id int64
		rec := &Record{}
		if err := rows.Scan(&id, &rec.Name, &rec.ShortName); err != nil {
			return nil, fmt.Errorf("scanning book row: %w", err)
		}
		records = append(records, rec)
		byID[id] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading book rows: %w", err)
	}

	chRows, err := db.Query(`SELECT book_id, verses FROM chapters ORDER BY book_id, number`)
	if err != nil {
		return nil, fmt.Errorf("querying chapters: %w", err)
	}
	defer chRows.Close()
	for chRows.Next() {
		var bookID int64
		var verses int
		if err := chRows.Scan(&bookID, &verses); err != nil {
			return nil, fmt.Errorf("scanning chapter row: %w", err)
		}
		rec, ok := byID[bookID]
		if !ok {
			return nil, fmt.Errorf("chapter references unknown book id %d", bookID)
		}
		rec.ChapterVerseCounts = append(rec.ChapterVerseCounts, verses)
	}
	if err := chRows.Err(); err != nil {
		return nil, fmt.Errorf("reading chapter rows: %w", err)
	}

	hasAliases, err := hasTable(db, "aliases")
	if err != nil {
		return nil, err
	}
	if hasAliases {
		alRows, err := db.Query(`SELECT book_id, alias FROM aliases`)
		if err != nil {
			return nil, fmt.Errorf("querying aliases: %w", err)
		}
		defer alRows.Close()
		for alRows.Next() {
			var bookID int64
			var alias string
			if err := alRows.Scan(&bookID, &alias); err != nil {
				return nil, fmt.Errorf("scanning alias row: %w", err)
			}
			if rec, ok := byID[bookID]; ok {
				rec.Aliases = append(rec.Aliases, alias)
			}
		}
		if err := alRows.Err(); err != nil {
			return nil, fmt.Errorf("reading alias rows: %w", err)
		}
	}

	return buildTable(records)
}

func hasTable(db *sql.DB, name string) (bool, error) {
	var found string
	err := db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, name,
	).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking for table %s: %w", name, err)
	}
	return true, nil
}
