package store

import "time"

type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"` // Do not expose this in JSON responses
	Class        string    `db:"class" json:"class"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Progress is the cumulative study state for one (user, subject, chapter)
// triple. TimeSpent is the incrementally maintained sum of the Sessions log.
type Progress struct {
	ID           int64     `db:"id" json:"-"`
	UserID       string    `db:"user_id" json:"userId"`
	SubjectID    int       `db:"subject_id" json:"subjectId"`
	SubjectName  string    `db:"subject_name" json:"subjectName"`
	ChapterID    int       `db:"chapter_id" json:"chapterId"`
	ChapterName  string    `db:"chapter_name" json:"chapterName"`
	TimeSpent    float64   `db:"time_spent" json:"timeSpent"` // minutes, fractional
	Completed    bool      `db:"completed" json:"completed"`
	LastAccessed time.Time `db:"last_accessed" json:"lastAccessed"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`

	Sessions []StudySession `db:"-" json:"sessions,omitempty"`
}

// StudySession is one reported time delta. Rows are append-only; analytics
// buckets durations by OccurredAt.
type StudySession struct {
	ID         int64     `db:"id" json:"-"`
	ProgressID int64     `db:"progress_id" json:"-"`
	OccurredAt time.Time `db:"occurred_at" json:"date"`
	Duration   float64   `db:"duration" json:"duration"` // minutes
}

type ChatSession struct {
	ID          string    `db:"id" json:"id"` // UUID
	UserID      string    `db:"user_id" json:"userId"`
	SessionName string    `db:"session_name" json:"sessionName"`
	Language    string    `db:"language" json:"language"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`

	Messages []ChatMessage `db:"-" json:"messages,omitempty"`
}

type ChatMessage struct {
	ID        string    `db:"id" json:"id"` // UUID
	SessionID string    `db:"session_id" json:"sessionId"`
	Role      string    `db:"role" json:"role"` // "user" or "assistant"
	Content   string    `db:"content" json:"content"`
	AudioURL  *string   `db:"audio_url" json:"audioUrl,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"timestamp"`
}

// Document records a file that was handed to the RAG service for ingestion.
type Document struct {
	ID         string    `db:"id" json:"id"` // UUID
	UserID     string    `db:"user_id" json:"userId"`
	FileName   string    `db:"file_name" json:"fileName"`
	NumChunks  int       `db:"num_chunks" json:"numChunks"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploadedAt"`
}
