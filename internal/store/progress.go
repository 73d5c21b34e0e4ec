package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ProgressKey identifies one progress record. Chapter ids repeat across
// subjects, so the full triple is always required.
type ProgressKey struct {
	UserID    string
	SubjectID int
	ChapterID int
}

// AddTimeDelta appends a study session and folds its duration into the
// cached time_spent, latching completed once the running total reaches
// threshold. The increment runs as a single upsert so concurrent reports
// for the same key cannot lose updates (the periodic autosave racing the
// flush-on-close call is the common case).
func (s *SQLiteStore) AddTimeDelta(key ProgressKey, subjectName, chapterName string, delta, threshold float64, now time.Time) (*Progress, error) {
	now = now.UTC()

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin progress tx: %w", err)
	}
	defer tx.Rollback()

	const upsert = `
        INSERT INTO progress (user_id, subject_id, subject_name, chapter_id, chapter_name, time_spent, completed, last_accessed, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (user_id, subject_id, chapter_id) DO UPDATE SET
            time_spent    = progress.time_spent + excluded.time_spent,
            completed     = progress.completed OR (progress.time_spent + excluded.time_spent >= ?),
            last_accessed = excluded.last_accessed`
	_, err = tx.Exec(upsert,
		key.UserID, key.SubjectID, subjectName, key.ChapterID, chapterName,
		delta, delta >= threshold, now, now, threshold,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert progress: %w", err)
	}

	var p Progress
	err = tx.Get(&p,
		"SELECT * FROM progress WHERE user_id = ? AND subject_id = ? AND chapter_id = ?",
		key.UserID, key.SubjectID, key.ChapterID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read back progress: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO progress_sessions (progress_id, occurred_at, duration) VALUES (?, ?, ?)",
		p.ID, now, delta,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append study session: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit progress tx: %w", err)
	}
	return &p, nil
}

func (s *SQLiteStore) GetProgress(key ProgressKey) (*Progress, error) {
	var p Progress
	err := s.db.Get(&p,
		"SELECT * FROM progress WHERE user_id = ? AND subject_id = ? AND chapter_id = ?",
		key.UserID, key.SubjectID, key.ChapterID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &p, nil
}

func (s *SQLiteStore) ListProgressByUser(userID string) ([]Progress, error) {
	var records []Progress
	err := s.db.Select(&records,
		"SELECT * FROM progress WHERE user_id = ? ORDER BY last_accessed DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user progress: %w", err)
	}
	return records, nil
}

func (s *SQLiteStore) ListProgressBySubject(userID string, subjectID int) ([]Progress, error) {
	var records []Progress
	err := s.db.Select(&records,
		"SELECT * FROM progress WHERE user_id = ? AND subject_id = ? ORDER BY chapter_id ASC",
		userID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subject progress: %w", err)
	}
	return records, nil
}

// ListProgressSince returns records whose last_accessed falls at or after
// since, with their full sessions log attached. Analytics re-validates each
// session timestamp against the window; this is only the pre-filter.
func (s *SQLiteStore) ListProgressSince(userID string, since time.Time) ([]Progress, error) {
	var records []Progress
	err := s.db.Select(&records,
		"SELECT * FROM progress WHERE user_id = ? AND last_accessed >= ?",
		userID, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list progress since %s: %w", since, err)
	}
	for i := range records {
		var sessions []StudySession
		err = s.db.Select(&sessions,
			"SELECT * FROM progress_sessions WHERE progress_id = ? ORDER BY occurred_at ASC",
			records[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load study sessions: %w", err)
		}
		records[i].Sessions = sessions
	}
	return records, nil
}
