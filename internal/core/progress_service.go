package core

import (
	"fmt"
	"math"
	"time"

	"gyansetu.io/backend/internal/store"
	"gyansetu.io/backend/internal/syllabus"
)

// CompletionThresholdMinutes is the cumulative study time after which a
// chapter counts as completed. Completion never reverts.
const CompletionThresholdMinutes = 2.0

// ErrSubjectNotFound is returned when a chapter view is requested for a
// subject the user's class does not have.
var ErrSubjectNotFound = fmt.Errorf("subject not found")

// ProgressService tracks per-chapter study time and derives unlock state
// from it. Unlocking is recomputed on every read, never cached.
type ProgressService struct {
	dbStore *store.SQLiteStore
}

func NewProgressService(db *store.SQLiteStore) *ProgressService {
	return &ProgressService{dbStore: db}
}

type ReportTimeInput struct {
	SubjectID   int     `json:"subjectId"`
	SubjectName string  `json:"subjectName"`
	ChapterID   int     `json:"chapterId"`
	ChapterName string  `json:"chapterName"`
	TimeSpent   float64 `json:"timeSpent"` // minutes, fractional
}

// ReportTime folds a positive time delta into the progress record for the
// triple, creating it on first report. Non-positive deltas are ignored
// (the client's unload flush occasionally fires with nothing accumulated).
// Unknown subject or chapter ids are accepted as-is; validating them
// against the syllabus is the caller's business.
func (s *ProgressService) ReportTime(userID string, in ReportTimeInput) (*store.Progress, error) {
	if in.TimeSpent <= 0 {
		return nil, nil
	}
	key := store.ProgressKey{UserID: userID, SubjectID: in.SubjectID, ChapterID: in.ChapterID}
	return s.dbStore.AddTimeDelta(key, in.SubjectName, in.ChapterName, in.TimeSpent, CompletionThresholdMinutes, time.Now())
}

// ProgressPercent maps cumulative time to the percentage shown on chapter
// cards. It is 100 exactly when the completion flag is set and caps at 99
// otherwise, so "almost done" never looks like "done".
func ProgressPercent(timeSpent float64, completed bool) int {
	if completed {
		return 100
	}
	frac := timeSpent / CompletionThresholdMinutes
	if frac > 0.99 {
		frac = 0.99
	}
	if frac < 0 {
		frac = 0
	}
	return int(math.Floor(frac * 100))
}

// ChapterView is one chapter of a subject with the user's derived state.
type ChapterView struct {
	syllabus.Chapter
	TimeSpent       float64 `json:"timeSpent"`
	ProgressPercent int     `json:"progress"`
	IsLocked        bool    `json:"isLocked"`
	RequiredTime    float64 `json:"requiredTime"` // minutes
}

type SubjectView struct {
	SubjectID   int           `json:"subjectId"`
	SubjectName string        `json:"subjectName"`
	Chapters    []ChapterView `json:"chapters"`
}

// ChapterViews derives lock state and completion percentage for every
// chapter of a subject, in syllabus order. Chapter 0 is always unlocked;
// chapter i is unlocked only when chapter i-1 has been completed.
func (s *ProgressService) ChapterViews(userID, class string, subjectID int) (*SubjectView, error) {
	subject, ok := syllabus.SubjectForClass(class, subjectID)
	if !ok {
		return nil, ErrSubjectNotFound
	}

	records, err := s.dbStore.ListProgressBySubject(userID, subjectID)
	if err != nil {
		return nil, err
	}
	byChapter := make(map[int]store.Progress, len(records))
	for _, r := range records {
		byChapter[r.ChapterID] = r
	}

	views := make([]ChapterView, 0, len(subject.Chapters))
	for i, ch := range subject.Chapters {
		view := ChapterView{
			Chapter:      ch,
			RequiredTime: CompletionThresholdMinutes,
		}
		if rec, ok := byChapter[ch.ID]; ok {
			view.TimeSpent = rec.TimeSpent
			view.ProgressPercent = ProgressPercent(rec.TimeSpent, rec.Completed)
		}
		if i > 0 {
			prev, ok := byChapter[subject.Chapters[i-1].ID]
			view.IsLocked = !ok || !prev.Completed
		}
		views = append(views, view)
	}

	return &SubjectView{
		SubjectID:   subject.ID,
		SubjectName: subject.Name,
		Chapters:    views,
	}, nil
}

func (s *ProgressService) UserProgress(userID string) ([]store.Progress, error) {
	return s.dbStore.ListProgressByUser(userID)
}

func (s *ProgressService) SubjectProgress(userID string, subjectID int) ([]store.Progress, error) {
	return s.dbStore.ListProgressBySubject(userID, subjectID)
}
