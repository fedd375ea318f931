package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordFill(f FillRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO fills (fill_id, time, kind, price, amount, fee)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID, f.Time, f.Kind, f.Price, f.Amount, f.Fee,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e EquityPoint) error {
	_, err := j.db.Exec(`INSERT INTO equity (time, value) VALUES (?, ?)`,
		e.Time, e.Value,
	)
	return err
}

// ListFillsBetween returns fills with start <= time < end, oldest first.
func (j *SQLiteJournal) ListFillsBetween(start, end time.Time) ([]FillRecord, error) {
	rows, err := j.db.Query(`
		SELECT fill_id, time, kind, price, amount, fee
		FROM fills
		WHERE time >= ? AND time < ?
		ORDER BY time, fill_id`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FillRecord
	for rows.Next() {
		var f FillRecord
		if err := rows.Scan(&f.ID, &f.Time, &f.Kind, &f.Price, &f.Amount, &f.Fee); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
