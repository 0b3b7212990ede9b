// Package storage provides SQLite-based persistence for player profiles and
// session history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection. It is safe for concurrent
// use by several sessions.
type Store struct {
	db *sql.DB
}

// ProfileRecord is one persisted player profile.
type ProfileRecord struct {
	Name                   string
	Currency               int
	LifetimeEarned         int
	PairLevel              int
	TimeLevel              int
	CurrentLevel           int
	MaxLevelCompleted      int
	GamesPlayed            int
	Victories              int
	Defeats                int
	PairsFound             int
	WinStreak              int
	BestStreak             int
	HintsUsed              int
	RewardedWatched        int
	GamesSinceInterstitial int
	UpdatedAt              time.Time
}

// SessionRecord is the outcome of one finished session.
type SessionRecord struct {
	ID         int64
	SessionID  string // uuid assigned by the session
	Profile    string
	Level      int
	Victory    bool
	PairsFound int
	TotalPairs int
	Reward     int // currency granted, including a doubled reward
	TimeLeft   float64
	Doubled    bool
	CreatedAt  time.Time
}

// LevelBest is the best outcome recorded for one level.
type LevelBest struct {
	Level      int
	BestReward int
	Clears     int
	Attempts   int
}

// HistoryStats contains aggregated statistics over a profile's sessions.
type HistoryStats struct {
	Profile     string
	Sessions    int
	Victories   int
	BestReward  int
	AvgReward   float64
	TotalReward int64
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; sqlite serialises anyway and this avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS profiles (
			name TEXT PRIMARY KEY,
			currency INTEGER NOT NULL DEFAULT 0,
			lifetime_earned INTEGER NOT NULL DEFAULT 0,
			pair_level INTEGER NOT NULL DEFAULT 0,
			time_level INTEGER NOT NULL DEFAULT 0,
			current_level INTEGER NOT NULL DEFAULT 1,
			max_level_completed INTEGER NOT NULL DEFAULT 0,
			games_played INTEGER NOT NULL DEFAULT 0,
			victories INTEGER NOT NULL DEFAULT 0,
			defeats INTEGER NOT NULL DEFAULT 0,
			pairs_found INTEGER NOT NULL DEFAULT 0,
			win_streak INTEGER NOT NULL DEFAULT 0,
			best_streak INTEGER NOT NULL DEFAULT 0,
			hints_used INTEGER NOT NULL DEFAULT 0,
			rewarded_watched INTEGER NOT NULL DEFAULT 0,
			games_since_interstitial INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			profile TEXT NOT NULL,
			level INTEGER NOT NULL,
			victory INTEGER NOT NULL DEFAULT 0,
			pairs_found INTEGER NOT NULL DEFAULT 0,
			total_pairs INTEGER NOT NULL DEFAULT 0,
			reward INTEGER NOT NULL DEFAULT 0,
			time_left REAL NOT NULL DEFAULT 0,
			doubled INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_profile ON sessions(profile);
		CREATE INDEX IF NOT EXISTS idx_sessions_best ON sessions(profile, level, reward DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadProfile returns the named profile. The boolean is false when no such
// profile has been saved yet.
func (s *Store) LoadProfile(name string) (ProfileRecord, bool, error) {
	var p ProfileRecord
	var updatedAt any

	err := s.db.QueryRow(
		`SELECT name, currency, lifetime_earned, pair_level, time_level, current_level,
		        max_level_completed, games_played, victories, defeats, pairs_found,
		        win_streak, best_streak, hints_used, rewarded_watched,
		        games_since_interstitial, updated_at
		 FROM profiles WHERE name = ?`,
		name,
	).Scan(
		&p.Name, &p.Currency, &p.LifetimeEarned, &p.PairLevel, &p.TimeLevel, &p.CurrentLevel,
		&p.MaxLevelCompleted, &p.GamesPlayed, &p.Victories, &p.Defeats, &p.PairsFound,
		&p.WinStreak, &p.BestStreak, &p.HintsUsed, &p.RewardedWatched,
		&p.GamesSinceInterstitial, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ProfileRecord{}, false, nil
	}
	if err != nil {
		return ProfileRecord{}, false, fmt.Errorf("storage: cannot load profile %q: %w", name, err)
	}
	p.UpdatedAt = parseTime(updatedAt)
	return p, true, nil
}

// SaveProfile writes the whole profile row atomically.
func (s *Store) SaveProfile(p ProfileRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertProfile(tx, p); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit profile: %w", err)
	}
	return nil
}

// SaveOutcome stores a finished session together with the profile it
// updated, in one transaction.
func (s *Store) SaveOutcome(p ProfileRecord, rec SessionRecord) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertProfile(tx, p); err != nil {
		return 0, err
	}
	id, err := insertSession(tx, rec)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit outcome: %w", err)
	}
	return id, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func upsertProfile(x execer, p ProfileRecord) error {
	_, err := x.Exec(
		`INSERT INTO profiles
		 (name, currency, lifetime_earned, pair_level, time_level, current_level,
		  max_level_completed, games_played, victories, defeats, pairs_found,
		  win_streak, best_streak, hints_used, rewarded_watched,
		  games_since_interstitial, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET
		  currency = excluded.currency,
		  lifetime_earned = excluded.lifetime_earned,
		  pair_level = excluded.pair_level,
		  time_level = excluded.time_level,
		  current_level = excluded.current_level,
		  max_level_completed = excluded.max_level_completed,
		  games_played = excluded.games_played,
		  victories = excluded.victories,
		  defeats = excluded.defeats,
		  pairs_found = excluded.pairs_found,
		  win_streak = excluded.win_streak,
		  best_streak = excluded.best_streak,
		  hints_used = excluded.hints_used,
		  rewarded_watched = excluded.rewarded_watched,
		  games_since_interstitial = excluded.games_since_interstitial,
		  updated_at = CURRENT_TIMESTAMP`,
		p.Name, p.Currency, p.LifetimeEarned, p.PairLevel, p.TimeLevel, p.CurrentLevel,
		p.MaxLevelCompleted, p.GamesPlayed, p.Victories, p.Defeats, p.PairsFound,
		p.WinStreak, p.BestStreak, p.HintsUsed, p.RewardedWatched,
		p.GamesSinceInterstitial,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save profile %q: %w", p.Name, err)
	}
	return nil
}

func insertSession(x execer, rec SessionRecord) (int64, error) {
	result, err := x.Exec(
		`INSERT INTO sessions
		 (session_id, profile, level, victory, pairs_found, total_pairs, reward, time_left, doubled)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Profile, rec.Level, rec.Victory, rec.PairsFound,
		rec.TotalPairs, rec.Reward, rec.TimeLeft, rec.Doubled,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Profiles lists the names of all saved profiles.
func (s *Store) Profiles() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM profiles ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return names, nil
}

// RecentSessions retrieves the most recent sessions of a profile.
func (s *Store) RecentSessions(profile string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, profile, level, victory, pairs_found, total_pairs,
		        reward, time_left, doubled, created_at
		 FROM sessions
		 WHERE profile = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		profile, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.SessionID, &r.Profile, &r.Level, &r.Victory, &r.PairsFound,
			&r.TotalPairs, &r.Reward, &r.TimeLeft, &r.Doubled, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// SessionByID retrieves a session by the id the session engine assigned.
// Returns nil if no such session was recorded.
func (s *Store) SessionByID(sessionID string) (*SessionRecord, error) {
	var r SessionRecord
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, session_id, profile, level, victory, pairs_found, total_pairs,
		        reward, time_left, doubled, created_at
		 FROM sessions
		 WHERE session_id = ?`,
		sessionID,
	).Scan(
		&r.ID, &r.SessionID, &r.Profile, &r.Level, &r.Victory, &r.PairsFound,
		&r.TotalPairs, &r.Reward, &r.TimeLeft, &r.Doubled, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// BestRewards returns the per-level best outcome of a profile, ordered by level.
func (s *Store) BestRewards(profile string) ([]LevelBest, error) {
	rows, err := s.db.Query(
		`SELECT level, MAX(reward), SUM(victory), COUNT(*)
		 FROM sessions
		 WHERE profile = ?
		 GROUP BY level
		 ORDER BY level`,
		profile,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best rewards: %w", err)
	}
	defer rows.Close()

	var out []LevelBest
	for rows.Next() {
		var b LevelBest
		if err := rows.Scan(&b.Level, &b.BestReward, &b.Clears, &b.Attempts); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// BestReward returns the highest reward recorded for a level.
// Returns 0 if the level was never played.
func (s *Store) BestReward(profile string, level int) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(reward) FROM sessions WHERE profile = ? AND level = ?",
		profile, level,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best reward: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// Stats retrieves aggregated statistics over a profile's session history.
func (s *Store) Stats(profile string) (*HistoryStats, error) {
	stats := &HistoryStats{Profile: profile}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(victory), 0), COALESCE(MAX(reward), 0),
		        COALESCE(AVG(reward), 0), COALESCE(SUM(reward), 0), MAX(created_at)
		 FROM sessions WHERE profile = ?`,
		profile,
	).Scan(&stats.Sessions, &stats.Victories, &stats.BestReward, &stats.AvgReward, &stats.TotalReward, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// ClearHistory deletes all sessions of a profile.
func (s *Store) ClearHistory(profile string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE profile = ?", profile)
	if err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// parseTime handles the datetime column as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
