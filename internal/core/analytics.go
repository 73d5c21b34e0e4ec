package core

import (
	"math"
	"sort"
	"strconv"
	"time"

	"gyansetu.io/backend/internal/store"
)

// BucketFunc assigns a session timestamp to an aggregation bucket, e.g. a
// weekday name or a week-of-month index.
type BucketFunc func(time.Time) string

type SubjectAggregate struct {
	Name            string  `json:"name"`
	TimeSpent       float64 `json:"timeSpent"`
	TopicsCompleted int     `json:"topicsCompleted"`
	TotalTopics     int     `json:"totalTopics"`
	Proficiency     int     `json:"proficiency"`
}

type PeriodAggregate struct {
	Buckets           map[string]float64
	TotalMinutes      float64
	ActiveDays        map[string]bool
	Subjects          map[string]*SubjectAggregate
	ChaptersCompleted int
}

// AggregateByPeriod buckets the user's study time within [windowStart,
// windowEnd]. Records are pre-filtered on lastAccessed; each session entry
// is then re-validated against the window before its duration counts.
//
// Records without session rows predate the sessions log. For those, and
// only those, the whole cached timeSpent is attributed to the bucket of
// lastAccessed: an admitted approximation, but better than zeroing out an
// entire account's history. The two paths are mutually exclusive so no
// duration is ever counted twice.
func (s *ProgressService) AggregateByPeriod(userID string, windowStart, windowEnd time.Time, bucket BucketFunc) (*PeriodAggregate, error) {
	records, err := s.dbStore.ListProgressSince(userID, windowStart)
	if err != nil {
		return nil, err
	}

	agg := &PeriodAggregate{
		Buckets:    make(map[string]float64),
		ActiveDays: make(map[string]bool),
		Subjects:   make(map[string]*SubjectAggregate),
	}

	addTime := func(r store.Progress, at time.Time, minutes float64) {
		agg.Buckets[bucket(at)] += minutes
		agg.TotalMinutes += minutes
		agg.ActiveDays[at.Format("2006-01-02")] = true
		agg.subject(r.SubjectName).TimeSpent += minutes
	}

	inWindow := func(at time.Time) bool {
		return !at.Before(windowStart) && !at.After(windowEnd)
	}

	for _, r := range records {
		if len(r.Sessions) > 0 {
			for _, session := range r.Sessions {
				if inWindow(session.OccurredAt) {
					addTime(r, session.OccurredAt, session.Duration)
				}
			}
		} else if inWindow(r.LastAccessed) {
			addTime(r, r.LastAccessed, r.TimeSpent)
		}

		// Topic tallies are independent of the time bucketing: every
		// record touched in the window counts.
		subj := agg.subject(r.SubjectName)
		subj.TotalTopics++
		if r.Completed {
			subj.TopicsCompleted++
			agg.ChaptersCompleted++
		}
	}

	for _, subj := range agg.Subjects {
		if subj.TotalTopics > 0 {
			subj.Proficiency = int(math.Round(float64(subj.TopicsCompleted) / float64(subj.TotalTopics) * 100))
		}
	}
	return agg, nil
}

func (a *PeriodAggregate) subject(name string) *SubjectAggregate {
	if s, ok := a.Subjects[name]; ok {
		return s
	}
	s := &SubjectAggregate{Name: name}
	a.Subjects[name] = s
	return s
}

func (a *PeriodAggregate) subjectList() []SubjectAggregate {
	list := make([]SubjectAggregate, 0, len(a.Subjects))
	for _, s := range a.Subjects {
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Weekly dashboard

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// weekdayBucket names the day Monday-first, matching the dashboard axis.
func weekdayBucket(t time.Time) string {
	return weekdayNames[(int(t.Weekday())+6)%7]
}

type WeeklyAnalytics struct {
	TotalTime       int                `json:"totalTime"` // minutes, rounded
	DailyData       map[string]float64 `json:"dailyData"`
	SubjectProgress []SubjectAggregate `json:"subjectProgress"`
}

func (s *ProgressService) WeeklyAnalytics(userID string, now time.Time) (*WeeklyAnalytics, error) {
	weekAgo := now.Add(-7 * 24 * time.Hour)
	agg, err := s.AggregateByPeriod(userID, weekAgo, now, weekdayBucket)
	if err != nil {
		return nil, err
	}

	daily := make(map[string]float64, len(weekdayNames))
	for _, day := range weekdayNames {
		daily[day] = agg.Buckets[day]
	}

	return &WeeklyAnalytics{
		TotalTime:       int(math.Round(agg.TotalMinutes)),
		DailyData:       daily,
		SubjectProgress: agg.subjectList(),
	}, nil
}

// Monthly dashboard

type MonthlyAnalytics struct {
	TotalTime         int                `json:"totalTime"`    // whole hours
	TotalMinutes      int                `json:"totalMinutes"` // remainder
	TotalMinutesSpent float64            `json:"totalMinutesSpent"`
	ChaptersCompleted int                `json:"chaptersCompleted"`
	Consistency       int                `json:"consistency"` // % of active days
	AITutorQueries    int                `json:"aiTutorQueries"`
	WeeklyData        []float64          `json:"weeklyData"` // 4 weeks, oldest first
	SubjectGrowth     []SubjectAggregate `json:"subjectGrowth"`
}

func (s *ProgressService) MonthlyAnalytics(userID string, now time.Time) (*MonthlyAnalytics, error) {
	monthAgo := now.Add(-30 * 24 * time.Hour)

	// Bucket key is the number of whole weeks before now.
	weekOfMonth := func(t time.Time) string {
		daysAgo := int(now.Sub(t).Hours() / 24)
		return strconv.Itoa(daysAgo / 7)
	}

	agg, err := s.AggregateByPeriod(userID, monthAgo, now, weekOfMonth)
	if err != nil {
		return nil, err
	}

	weekly := make([]float64, 4)
	for idx := 0; idx < 4; idx++ {
		weekly[3-idx] = agg.Buckets[strconv.Itoa(idx)]
	}

	queries, err := s.dbStore.CountUserMessagesSince(userID, monthAgo)
	if err != nil {
		return nil, err
	}

	return &MonthlyAnalytics{
		TotalTime:         int(agg.TotalMinutes) / 60,
		TotalMinutes:      int(math.Round(math.Mod(agg.TotalMinutes, 60))),
		TotalMinutesSpent: agg.TotalMinutes,
		ChaptersCompleted: agg.ChaptersCompleted,
		Consistency:       int(math.Round(float64(len(agg.ActiveDays)) / 30 * 100)),
		AITutorQueries:    queries,
		WeeklyData:        weekly,
		SubjectGrowth:     agg.subjectList(),
	}, nil
}
