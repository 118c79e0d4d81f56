// Package store persists generated events and branching traces to SQLite
// for offline inspection. It is optional: the generator never needs it.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/xid"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/partonsim/partonsim/shower/event"
	"github.com/partonsim/partonsim/shower/trace"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		run_id     TEXT PRIMARY KEY,
		seed       INTEGER NOT NULL,
		config     TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS particles (
		run_id    TEXT NOT NULL,
		event     INTEGER NOT NULL,
		line      INTEGER NOT NULL,
		pdg_id    INTEGER NOT NULL,
		status    INTEGER NOT NULL,
		px        REAL NOT NULL,
		py        REAL NOT NULL,
		pz        REAL NOT NULL,
		e         REAL NOT NULL,
		m         REAL NOT NULL,
		scale     REAL NOT NULL,
		mothers   TEXT NOT NULL,
		daughters TEXT NOT NULL,
		PRIMARY KEY (run_id, event, line)
	)`,
	`CREATE TABLE IF NOT EXISTS systems (
		run_id TEXT NOT NULL,
		event  INTEGER NOT NULL,
		sys    INTEGER NOT NULL,
		slot   INTEGER NOT NULL,
		line   INTEGER NOT NULL,
		PRIMARY KEY (run_id, event, sys, slot)
	)`,
	`CREATE TABLE IF NOT EXISTS branchings (
		run_id    TEXT NOT NULL,
		event     INTEGER NOT NULL,
		step      INTEGER NOT NULL,
		kind      TEXT NOT NULL,
		sys       INTEGER NOT NULL,
		scale     REAL NOT NULL,
		committed INTEGER NOT NULL,
		margin    REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS vetoes (
		run_id TEXT NOT NULL,
		event  INTEGER NOT NULL,
		scale  REAL NOT NULL,
		reason TEXT NOT NULL
	)`,
}

// Store is a SQLite-backed event store. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	db, err := sql.Open("sqlite", filepath.Clean(path)+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer at a time; SQLite serialises writes anyway.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun registers a run and returns its new id.
func (s *Store) BeginRun(ctx context.Context, seed int64, config string) (string, error) {
	runID := xid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, seed, config, created_at) VALUES (?, ?, ?, ?)`,
		runID, seed, config, time.Now().UTC().UnixMilli())
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return runID, nil
}

// SaveEvent writes every line and the subsystem table of event n.
func (s *Store) SaveEvent(ctx context.Context, runID string, n int, ev *event.Record) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	insertLine, err := tx.PrepareContext(ctx, `
INSERT INTO particles (run_id, event, line, pdg_id, status, px, py, pz, e, m, scale, mothers, daughters)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare particles: %w", err)
	}
	defer insertLine.Close()
	for i := event.None; int(i) < ev.Size(); i++ {
		p := ev.At(i)
		mothers, err := json.Marshal(indices(p.Mothers))
		if err != nil {
			return fmt.Errorf("encode mothers of line %d: %w", i, err)
		}
		daughters, err := json.Marshal(indices(p.Daughters))
		if err != nil {
			return fmt.Errorf("encode daughters of line %d: %w", i, err)
		}
		if _, err := insertLine.ExecContext(ctx, runID, n, int(i), p.ID, p.Status,
			p.P.Px, p.P.Py, p.P.Pz, p.P.E, p.M, p.Scale, string(mothers), string(daughters)); err != nil {
			return fmt.Errorf("insert line %d: %w", i, err)
		}
	}

	insertSlot, err := tx.PrepareContext(ctx,
		`INSERT INTO systems (run_id, event, sys, slot, line) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare systems: %w", err)
	}
	defer insertSlot.Close()
	for sys := 0; sys < ev.SizeSystems(); sys++ {
		for slot, pos := range ev.Members(event.SysID(sys)) {
			if _, err := insertSlot.ExecContext(ctx, runID, n, sys, slot, int(pos)); err != nil {
				return fmt.Errorf("insert system %d slot %d: %w", sys, slot, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit event %d: %w", n, err)
	}
	return nil
}

// SaveTrace writes all branching and veto records of st.
func (s *Store) SaveTrace(ctx context.Context, runID string, st *trace.ShowerTrace) (err error) {
	if st == nil {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for _, b := range st.Branchings {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO branchings (run_id, event, step, kind, sys, scale, committed, margin)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, b.Event, b.Step, b.Kind, b.System, b.Scale, b.Committed, b.Margin); err != nil {
			return fmt.Errorf("insert branching: %w", err)
		}
	}
	for _, v := range st.Vetoes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO vetoes (run_id, event, scale, reason) VALUES (?, ?, ?, ?)`,
			runID, v.Event, v.Scale, v.Reason); err != nil {
			return fmt.Errorf("insert veto: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit trace: %w", err)
	}
	return nil
}

// LoadEvent reads back the lines of event n in record order.
func (s *Store) LoadEvent(ctx context.Context, runID string, n int) ([]event.Particle, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT pdg_id, status, px, py, pz, e, m, scale, mothers, daughters
FROM particles
WHERE run_id = ? AND event = ?
ORDER BY line`, runID, n)
	if err != nil {
		return nil, fmt.Errorf("select event %d: %w", n, err)
	}
	defer func() { _ = rows.Close() }()

	var out []event.Particle
	for rows.Next() {
		var p event.Particle
		var mothers, daughters string
		if err := rows.Scan(&p.ID, &p.Status, &p.P.Px, &p.P.Py, &p.P.Pz, &p.P.E, &p.M, &p.Scale,
			&mothers, &daughters); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if p.Mothers, err = decodeIndices(mothers); err != nil {
			return nil, err
		}
		if p.Daughters, err = decodeIndices(daughters); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event %d: %w", n, err)
	}
	return out, nil
}

// LoadSystems reads back the subsystem table of event n.
func (s *Store) LoadSystems(ctx context.Context, runID string, n int) ([][]event.Index, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sys, line FROM systems WHERE run_id = ? AND event = ? ORDER BY sys, slot`, runID, n)
	if err != nil {
		return nil, fmt.Errorf("select systems of event %d: %w", n, err)
	}
	defer func() { _ = rows.Close() }()

	var out [][]event.Index
	for rows.Next() {
		var sys, line int
		if err := rows.Scan(&sys, &line); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		for len(out) <= sys {
			out = append(out, nil)
		}
		out[sys] = append(out[sys], event.Index(line))
	}
	return out, rows.Err()
}

// CountBranchings returns the number of committed branchings stored for
// runID, per kind.
func (s *Store) CountBranchings(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM branchings WHERE run_id = ? AND committed = 1 GROUP BY kind`, runID)
	if err != nil {
		return nil, fmt.Errorf("count branchings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

func indices(list []event.Index) []int {
	out := make([]int, len(list))
	for k, i := range list {
		out[k] = int(i)
	}
	return out
}

func decodeIndices(s string) ([]event.Index, error) {
	var raw []int
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("decode index list %q: %w", s, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]event.Index, len(raw))
	for k, i := range raw {
		out[k] = event.Index(i)
	}
	return out, nil
}
