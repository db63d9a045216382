package service

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"time"

	"singlang/internal/models"
	"singlang/internal/repository"
)

var ErrStudyPlanNotFound = errors.New("study plan not found")

// WeekStartDay is the weekly boundary: schedules run Monday through Sunday.
// Every week computation in the system goes through WeekStartFor so the
// convention lives in exactly one place.
const WeekStartDay = time.Monday

// ISODate is the calendar-date layout used in schedules and login activity
const ISODate = "2006-01-02"

// WeekStartFor returns the most recent occurrence of WeekStartDay on or
// before t, truncated to the start of day.
func WeekStartFor(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) - int(WeekStartDay) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// ordinalPattern extracts the numeric token from a module name,
// e.g. "Module 3- Colors" -> 3
var ordinalPattern = regexp.MustCompile(`\d+`)

// moduleOrdinal returns the module's sequence number. A name without a
// numeric token sorts with ordinal 0; that is a defined fallback, not an
// error.
func moduleOrdinal(name string) int {
	match := ordinalPattern.FindString(name)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return n
}

// groupCatalog organizes lessons into subject -> ordered module groups ->
// ordered lessons. Built fresh per call; never mutated afterwards.
func groupCatalog(lessons []models.Lesson) map[string][]models.ModuleGroup {
	grouped := make(map[string][]models.ModuleGroup)

	for _, lesson := range lessons {
		groups := grouped[lesson.Subject]

		var group *models.ModuleGroup
		for i := range groups {
			if groups[i].Name == lesson.Module {
				group = &groups[i]
				break
			}
		}
		if group == nil {
			groups = append(groups, models.ModuleGroup{
				Name:    lesson.Module,
				Ordinal: moduleOrdinal(lesson.Module),
				Level:   lesson.Level,
			})
			group = &groups[len(groups)-1]
		}

		group.Lessons = append(group.Lessons, lesson)
		grouped[lesson.Subject] = groups
	}

	for subject, groups := range grouped {
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].Ordinal < groups[j].Ordinal
		})
		for i := range groups {
			lessons := groups[i].Lessons
			sort.SliceStable(lessons, func(a, b int) bool {
				return lessons[a].LessonNumber < lessons[b].LessonNumber
			})
		}
		grouped[subject] = groups
	}

	return grouped
}

// lessonEligible reports whether a lesson still has at least one unwatched
// sign. A fully watched lesson is skipped entirely: it does not count toward
// the day's quota and is not re-surfaced.
func lessonEligible(lesson models.Lesson, watched map[int64]bool) bool {
	for _, sign := range lesson.Signs {
		if !watched[sign.ID] {
			return true
		}
	}
	return false
}

// buildWeeklyEntries assembles the 7-day schedule for one plan. Pure: all
// inputs are read-only snapshots taken at generation time.
func buildWeeklyEntries(weekStart time.Time, plan *models.StudyPlan, catalog map[string][]models.ModuleGroup, watched map[int64]bool) []models.ScheduleEntry {
	var entries []models.ScheduleEntry

	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		dayName := date.Weekday().String()
		dayAbbrev := dayName[:3]
		dateString := date.Format(ISODate)

		for _, sp := range plan.Subjects {
			if !containsDay(sp.StudyDays, dayAbbrev) {
				continue
			}

			groups := catalog[sp.Subject]
			if len(groups) == 0 {
				log.Printf("Schedule generation: no catalog data for subject %q, skipping", sp.Subject)
				continue
			}

			// Only modules at the subject's configured level, starting at
			// the configured starting module
			start := -1
			for idx, group := range groups {
				if group.Level != sp.StartingLevel {
					continue
				}
				if group.Name == sp.StartingModule {
					start = idx
					break
				}
			}
			if start == -1 {
				log.Printf("Schedule generation: starting module %q not found for subject %q at level %q, skipping",
					sp.StartingModule, sp.Subject, sp.StartingLevel)
				continue
			}

			count := 0
			for _, group := range groups[start:] {
				if group.Level != sp.StartingLevel {
					continue
				}
				for _, lesson := range group.Lessons {
					if !lessonEligible(lesson, watched) {
						continue
					}
					entries = append(entries, models.ScheduleEntry{
						Date:        dateString,
						Weekday:     dayName,
						Subject:     sp.Subject,
						Module:      group.Name,
						Level:       group.Level,
						LessonLabel: fmt.Sprintf("Lesson %d", lesson.LessonNumber),
						LessonID:    lesson.ID,
					})
					count++
					if count >= sp.WeeklyLessons {
						break
					}
				}
				if count >= sp.WeeklyLessons {
					break
				}
			}
		}
	}

	return entries
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

// ScheduleService generates weekly schedules and resolves today's lessons
type ScheduleService struct {
	scheduleRepo  *repository.ScheduleRepository
	studyPlanRepo *repository.StudyPlanRepository
	catalogRepo   *repository.CatalogRepository
	progressRepo  *repository.ProgressRepository
	now           func() time.Time
}

// NewScheduleService creates a new schedule service
func NewScheduleService(
	scheduleRepo *repository.ScheduleRepository,
	studyPlanRepo *repository.StudyPlanRepository,
	catalogRepo *repository.CatalogRepository,
	progressRepo *repository.ProgressRepository,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo:  scheduleRepo,
		studyPlanRepo: studyPlanRepo,
		catalogRepo:   catalogRepo,
		progressRepo:  progressRepo,
		now:           time.Now,
	}
}

// GenerateWeeklySchedule materializes the schedule for the current week.
// Idempotent on (user, week start): if a schedule already exists it is
// returned unchanged and created is false. Generation is a pure function of
// the catalog, the study plan and the progress snapshot, so a concurrent
// duplicate call upserting the same key is harmless (last writer wins with a
// complete document).
func (s *ScheduleService) GenerateWeeklySchedule(userID int64) (*models.WeeklySchedule, bool, error) {
	weekStart := WeekStartFor(s.now())
	weekStartString := weekStart.Format(ISODate)

	existing, err := s.scheduleRepo.GetByUserWeek(userID, weekStartString)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up schedule: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	plan, err := s.studyPlanRepo.GetByUserID(userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load study plan: %w", err)
	}
	if plan == nil {
		return nil, false, ErrStudyPlanNotFound
	}

	lessons, err := s.catalogRepo.GetAllLessons()
	if err != nil {
		return nil, false, fmt.Errorf("failed to load catalog: %w", err)
	}

	watched, err := s.progressRepo.GetWatchedSignIDs(userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load watched signs: %w", err)
	}

	schedule := &models.WeeklySchedule{
		UserID:    userID,
		WeekStart: weekStartString,
		Entries:   buildWeeklyEntries(weekStart, plan, groupCatalog(lessons), watched),
	}

	if err := s.scheduleRepo.Upsert(schedule); err != nil {
		return nil, false, fmt.Errorf("failed to store schedule: %w", err)
	}

	log.Printf("Weekly schedule generated for user %d, week of %s (%d entries)",
		userID, weekStartString, len(schedule.Entries))

	return schedule, true, nil
}

// RegenerateCurrentWeek drops and rebuilds the active week's schedule. Called
// after a study plan edit so the rest of the week follows the new plan.
func (s *ScheduleService) RegenerateCurrentWeek(userID int64) (*models.WeeklySchedule, error) {
	weekStart := WeekStartFor(s.now()).Format(ISODate)

	if err := s.scheduleRepo.DeleteByUserWeek(userID, weekStart); err != nil {
		return nil, fmt.Errorf("failed to delete schedule: %w", err)
	}

	schedule, _, err := s.GenerateWeeklySchedule(userID)
	return schedule, err
}

// TodayScheduleResult is today's lessons, or a rest-day signal with the next
// study date when today has no entries. A rest day is a normal outcome, not
// an error.
type TodayScheduleResult struct {
	Lessons       []models.TodayLesson `json:"todaySchedule"`
	RestDay       bool                 `json:"restDay"`
	NextStudyDate string               `json:"nextStudyDate,omitempty"`
}

// TodaySchedule resolves today's entries from the stored weekly schedule and
// enriches each with its lesson's sign media, re-fetched from the catalog.
func (s *ScheduleService) TodaySchedule(userID int64) (*TodayScheduleResult, error) {
	today := s.now().Format(ISODate)

	schedule, err := s.scheduleRepo.GetByUserWeek(userID, WeekStartFor(s.now()).Format(ISODate))
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	var todayEntries []models.ScheduleEntry
	if schedule != nil {
		for _, entry := range schedule.Entries {
			if entry.Date == today {
				todayEntries = append(todayEntries, entry)
			}
		}
	}

	if len(todayEntries) == 0 {
		next, err := s.nextStudyDate(userID, today)
		if err != nil {
			return nil, err
		}
		return &TodayScheduleResult{Lessons: []models.TodayLesson{}, RestDay: true, NextStudyDate: next}, nil
	}

	lessons := make([]models.TodayLesson, 0, len(todayEntries))
	for _, entry := range todayEntries {
		enriched := models.TodayLesson{ScheduleEntry: entry}

		lessonNumber, err := parseLessonLabel(entry.LessonLabel)
		if err != nil {
			log.Printf("Today schedule: bad lesson label %q for user %d: %v", entry.LessonLabel, userID, err)
			lessons = append(lessons, enriched)
			continue
		}

		lesson, err := s.catalogRepo.GetLesson(entry.Subject, entry.Module, lessonNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to load lesson: %w", err)
		}
		if lesson == nil {
			log.Printf("Today schedule: lesson %q no longer in catalog for %s/%s", entry.LessonLabel, entry.Subject, entry.Module)
			lessons = append(lessons, enriched)
			continue
		}

		enriched.Signs = lesson.Signs
		lessons = append(lessons, enriched)
	}

	return &TodayScheduleResult{Lessons: lessons}, nil
}

// nextStudyDate finds the earliest scheduled date strictly after today in the
// user's most recent schedule. Empty when there is none.
func (s *ScheduleService) nextStudyDate(userID int64, today string) (string, error) {
	latest, err := s.scheduleRepo.GetLatestByUser(userID)
	if err != nil {
		return "", fmt.Errorf("failed to load latest schedule: %w", err)
	}
	if latest == nil {
		return "", nil
	}

	next := ""
	for _, entry := range latest.Entries {
		if entry.Date <= today {
			continue
		}
		if next == "" || entry.Date < next {
			next = entry.Date
		}
	}
	return next, nil
}

// parseLessonLabel extracts the lesson number from a "Lesson N" label
func parseLessonLabel(label string) (int, error) {
	match := ordinalPattern.FindString(label)
	if match == "" {
		return 0, fmt.Errorf("no lesson number in %q", label)
	}
	return strconv.Atoi(match)
}
