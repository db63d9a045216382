package service

import (
	"fmt"
	"time"

	"singlang/internal/models"
	"singlang/internal/repository"
)

// ProgressService aggregates watched-sign progress into completion counters,
// weekly figures and login streaks
type ProgressService struct {
	progressRepo *repository.ProgressRepository
	catalogRepo  *repository.CatalogRepository
	loginRepo    *repository.LoginRepository
	now          func() time.Time
}

// NewProgressService creates a new progress service
func NewProgressService(
	progressRepo *repository.ProgressRepository,
	catalogRepo *repository.CatalogRepository,
	loginRepo *repository.LoginRepository,
) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		catalogRepo:  catalogRepo,
		loginRepo:    loginRepo,
		now:          time.Now,
	}
}

// SaveSignProgress records that the user watched a sign to completion.
// Returns true when a new record was created; a repeat watch is a no-op.
func (s *ProgressService) SaveSignProgress(p *models.SignProgress) (bool, error) {
	return s.progressRepo.SaveSignProgress(p)
}

// GetLessonProgress retrieves the user's watched records for one lesson
func (s *ProgressService) GetLessonProgress(userID, lessonID int64) ([]models.SignProgress, error) {
	return s.progressRepo.GetByUserLesson(userID, lessonID)
}

// GetSubjectProgress computes completion counters for one subject. A lesson
// is complete when every one of its signs is watched; a module is complete
// when every one of its lessons is.
func (s *ProgressService) GetSubjectProgress(userID int64, subject string) (*models.SubjectProgress, error) {
	lessons, err := s.catalogRepo.GetLessonsBySubject(subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load subject lessons: %w", err)
	}

	watched, err := s.progressRepo.GetWatchedSignIDsBySubject(userID, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load watched signs: %w", err)
	}

	progress := &models.SubjectProgress{Subject: subject, TotalLessons: len(lessons)}

	moduleComplete := make(map[string]bool)
	for _, lesson := range lessons {
		if _, seen := moduleComplete[lesson.Module]; !seen {
			moduleComplete[lesson.Module] = true
		}

		complete := true
		for _, sign := range lesson.Signs {
			if !watched[sign.ID] {
				complete = false
				break
			}
		}

		if complete {
			progress.CompletedLessons++
		} else {
			moduleComplete[lesson.Module] = false
		}
	}

	for _, complete := range moduleComplete {
		if complete {
			progress.CompletedModules++
		}
	}

	return progress, nil
}

// GetWeeklySignsLearned counts the distinct signs the user watched since the
// start of the current week
func (s *ProgressService) GetWeeklySignsLearned(userID int64) (int, error) {
	weekStart := WeekStartFor(s.now())

	signs, err := s.progressRepo.GetSignIDsWatchedSince(userID, weekStart)
	if err != nil {
		return 0, fmt.Errorf("failed to load weekly progress: %w", err)
	}
	return len(signs), nil
}

// RecordLogin stores today's login for streak tracking
func (s *ProgressService) RecordLogin(userID int64) error {
	return s.loginRepo.RecordLogin(userID, s.now().Format(ISODate))
}

// GetLoginStreak computes the user's current and best login streaks
func (s *ProgressService) GetLoginStreak(userID int64) (*models.Streak, error) {
	dates, err := s.loginRepo.GetLoginDates(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load login activity: %w", err)
	}

	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day, err := time.Parse(ISODate, d)
		if err != nil {
			return nil, fmt.Errorf("bad login date %q: %w", d, err)
		}
		days = append(days, day)
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	streak := computeStreak(days, today)
	return &streak, nil
}

// computeStreak derives streaks from distinct login days sorted most recent
// first. Consecutive means a gap of exactly one calendar day; any other gap
// breaks the run. The current streak is zero unless the most recent login is
// today.
func computeStreak(days []time.Time, today time.Time) models.Streak {
	if len(days) == 0 {
		return models.Streak{}
	}

	current := 0
	if days[0].Equal(today) {
		current = 1
		for i := 0; i < len(days)-1; i++ {
			if gapDays(days[i+1], days[i]) == 1 {
				current++
			} else {
				break
			}
		}
	}

	best := 1
	run := 1
	for i := 0; i < len(days)-1; i++ {
		if gapDays(days[i+1], days[i]) == 1 {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
	}

	return models.Streak{CurrentStreak: current, BestStreak: best}
}

// gapDays returns the number of calendar days from earlier to later
func gapDays(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
