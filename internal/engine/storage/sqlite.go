package storage

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/leadgrid/leadgrid/internal/model"
)

// Store persists scan output to SQLite so older runs can be re-exported
// without hitting the provider again. It is an output sink only; the scan
// itself keeps its working set in memory.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	// Optimize for write throughput
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if err := createSchema(db); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS businesses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		place_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		address TEXT,
		phone TEXT,
		website TEXT,
		rating REAL,
		review_count INTEGER,
		categories TEXT,
		lat REAL,
		lng REAL,
		google_url TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_businesses_name ON businesses(name);
	CREATE INDEX IF NOT EXISTS idx_businesses_coords ON businesses(lat, lng);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// InsertBatch writes businesses in one transaction, ignoring place IDs
// already present. Returns how many rows were actually inserted.
func (s *Store) InsertBatch(businesses []model.Business) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning tx: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO businesses
		(place_id, name, address, phone, website, rating, review_count,
		 categories, lat, lng, google_url)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)
	`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("preparing stmt: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, b := range businesses {
		res, err := stmt.Exec(
			b.PlaceID, b.Name, b.Address, b.Phone, b.Website,
			b.Rating, b.ReviewCount, b.Categories, b.Lat, b.Lng, b.GoogleURL,
		)
		if err != nil {
			continue
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing tx: %w", err)
	}

	return inserted, nil
}

// LoadAll returns every stored business in insertion order.
func (s *Store) LoadAll() ([]model.Business, error) {
	rows, err := s.db.Query(`
		SELECT place_id, name, address, phone, website, rating, review_count,
		       categories, lat, lng, google_url
		FROM businesses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var businesses []model.Business
	for rows.Next() {
		var b model.Business
		if err := rows.Scan(
			&b.PlaceID, &b.Name, &b.Address, &b.Phone, &b.Website,
			&b.Rating, &b.ReviewCount, &b.Categories, &b.Lat, &b.Lng, &b.GoogleURL,
		); err != nil {
			return nil, err
		}
		businesses = append(businesses, b)
	}
	return businesses, rows.Err()
}

func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM businesses").Scan(&count)
	return count, err
}

func (s *Store) Close() error {
	return s.db.Close()
}
