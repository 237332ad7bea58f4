// Package store handles SQLite persistence for users and scores.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dpratama/typerush/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// DefaultLeaderboardLimit is the maximum number of leaderboard entries shown.
const DefaultLeaderboardLimit = 50

// ErrInvalidCredentials is returned when username/password do not match.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrUsernameTaken is returned when registering an existing username.
var ErrUsernameTaken = errors.New("username already taken")

// Store wraps SQLite access for users and scores.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY,
			user_id INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			gross_wpm INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			weighted_score REAL NOT NULL,
			time_mode INTEGER NOT NULL,
			language TEXT NOT NULL,
			date_played TEXT NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_weighted ON scores(time_mode, weighted_score);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_user ON scores(user_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RegisterUser creates a new user and returns its ID.
func (s *Store) RegisterUser(ctx context.Context, username, password string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password) VALUES (?, ?)`,
		username, hashPassword(password))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return 0, ErrUsernameTaken
		}
		return 0, err
	}
	return res.LastInsertId()
}

// Authenticate verifies credentials and returns the matching user.
func (s *Store) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	var user model.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username FROM users WHERE username = ? AND password = ?`,
		username, hashPassword(password)).Scan(&user.ID, &user.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

// RenameUser changes a user's name, optionally updating the password.
// An empty newPassword leaves the stored password untouched.
func (s *Store) RenameUser(ctx context.Context, userID int64, newName, newPassword string) error {
	var err error
	if newPassword == "" {
		_, err = s.db.ExecContext(ctx,
			`UPDATE users SET username = ? WHERE id = ?`, newName, userID)
	} else {
		_, err = s.db.ExecContext(ctx,
			`UPDATE users SET username = ?, password = ? WHERE id = ?`,
			newName, hashPassword(newPassword), userID)
	}
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return ErrUsernameTaken
	}
	return err
}

// DeleteUser removes a user and all of their scores.
func (s *Store) DeleteUser(ctx context.Context, userID int64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM scores WHERE user_id = ?`, userID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// AddScore stores a finished game's metrics for a user.
func (s *Store) AddScore(ctx context.Context, userID int64, score model.Score) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (user_id, wpm, gross_wpm, accuracy, weighted_score, time_mode, language, date_played)
		 VALUES (?, ?, ?, ?, ?, ?, ?, datetime('now', 'localtime'))`,
		userID,
		score.NetWPM,
		score.GrossWPM,
		score.Accuracy,
		score.WeightedScore,
		score.TimeMode,
		score.Language,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Leaderboard returns the best scores for a time mode, highest weighted
// score first.
func (s *Store) Leaderboard(ctx context.Context, filter model.BoardFilter) ([]model.Score, error) {
	clauses := []string{"s.time_mode = ?"}
	args := []any{filter.TimeMode}
	if filter.NameSearch != "" {
		clauses = append(clauses, "u.username LIKE ?")
		args = append(args, "%"+filter.NameSearch+"%")
	}
	if filter.Language != "" && !strings.EqualFold(filter.Language, "All") {
		clauses = append(clauses, "s.language = ?")
		args = append(args, filter.Language)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT u.username, s.wpm, s.gross_wpm, s.accuracy, s.weighted_score, s.time_mode, s.language, s.date_played
		FROM scores s JOIN users u ON s.user_id = u.id
		WHERE %s
		ORDER BY s.weighted_score DESC
		LIMIT ?`, strings.Join(clauses, " AND "))
	return s.queryScores(ctx, query, args...)
}

// History returns a user's scores, newest first, optionally filtered by
// language.
func (s *Store) History(ctx context.Context, userID int64, language string) ([]model.Score, error) {
	clauses := []string{"s.user_id = ?"}
	args := []any{userID}
	if language != "" && !strings.EqualFold(language, "All") {
		clauses = append(clauses, "s.language = ?")
		args = append(args, language)
	}
	query := fmt.Sprintf(`SELECT u.username, s.wpm, s.gross_wpm, s.accuracy, s.weighted_score, s.time_mode, s.language, s.date_played
		FROM scores s JOIN users u ON s.user_id = u.id
		WHERE %s
		ORDER BY s.id DESC`, strings.Join(clauses, " AND "))
	return s.queryScores(ctx, query, args...)
}

func (s *Store) queryScores(ctx context.Context, query string, args ...any) ([]model.Score, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var scores []model.Score
	for rows.Next() {
		var sc model.Score
		if err := rows.Scan(&sc.Username, &sc.NetWPM, &sc.GrossWPM, &sc.Accuracy, &sc.WeightedScore, &sc.TimeMode, &sc.Language, &sc.PlayedAt); err != nil {
			return nil, err
		}
		scores = append(scores, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
