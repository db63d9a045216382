package service

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"singlang/internal/models"
	"singlang/internal/repository"
)

var (
	ErrStudyPlanExists  = errors.New("study plan already exists")
	ErrSubjectNotInPlan = errors.New("subject not in study plan")
)

// Level ladder, lowest first
var levelOrder = []string{"beginner", "intermediate", "advanced"}

// StudyPlanService manages study plans and subject level advancement
type StudyPlanService struct {
	studyPlanRepo   *repository.StudyPlanRepository
	catalogRepo     *repository.CatalogRepository
	progressRepo    *repository.ProgressRepository
	scheduleService *ScheduleService
}

// NewStudyPlanService creates a new study plan service
func NewStudyPlanService(studyPlanRepo *repository.StudyPlanRepository, catalogRepo *repository.CatalogRepository, progressRepo *repository.ProgressRepository, scheduleService *ScheduleService) *StudyPlanService {
	return &StudyPlanService{
		studyPlanRepo:   studyPlanRepo,
		catalogRepo:     catalogRepo,
		progressRepo:    progressRepo,
		scheduleService: scheduleService,
	}
}

// CreateStudyPlan creates the user's plan. A user has at most one plan;
// creating a second is a conflict, not an overwrite.
func (s *StudyPlanService) CreateStudyPlan(userID int64, subjects []models.SubjectPlan) (*models.StudyPlan, error) {
	existing, err := s.studyPlanRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing plan: %w", err)
	}
	if existing != nil {
		return nil, ErrStudyPlanExists
	}

	plan, err := s.studyPlanRepo.Create(userID, subjects)
	if err != nil {
		return nil, fmt.Errorf("failed to create study plan: %w", err)
	}
	return plan, nil
}

// GetStudyPlan returns the user's plan, or ErrStudyPlanNotFound
func (s *StudyPlanService) GetStudyPlan(userID int64) (*models.StudyPlan, error) {
	plan, err := s.studyPlanRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get study plan: %w", err)
	}
	if plan == nil {
		return nil, ErrStudyPlanNotFound
	}
	return plan, nil
}

// EditStudyPlan replaces the plan's subjects and regenerates the current
// week's schedule so today's lessons reflect the edit immediately
func (s *StudyPlanService) EditStudyPlan(userID int64, subjects []models.SubjectPlan) (*models.StudyPlan, error) {
	plan, err := s.GetStudyPlan(userID)
	if err != nil {
		return nil, err
	}

	if err := s.studyPlanRepo.ReplaceSubjects(plan.ID, subjects); err != nil {
		return nil, fmt.Errorf("failed to update study plan: %w", err)
	}

	if _, err := s.scheduleService.RegenerateCurrentWeek(userID); err != nil {
		log.Printf("Failed to regenerate schedule after plan edit for user %d: %v", userID, err)
	}

	return s.GetStudyPlan(userID)
}

// LevelUpdateResult reports the outcome of a level advancement check
type LevelUpdateResult struct {
	Subject        string `json:"subject"`
	Level          string `json:"level"`
	StartingModule string `json:"startingModule"`
	Advanced       bool   `json:"advanced"`
}

// UpdateStudyPlanLevel advances the subject to the next level once every
// sign at the current level has been watched. At the top level, or with
// signs still unwatched, the call is a no-op reporting the current state.
// On advancement the starting module resets to the new level's first module
// and the current week's schedule is regenerated.
func (s *StudyPlanService) UpdateStudyPlanLevel(userID int64, subject string) (*LevelUpdateResult, error) {
	plan, err := s.GetStudyPlan(userID)
	if err != nil {
		return nil, err
	}

	sp := plan.SubjectFor(subject)
	if sp == nil {
		return nil, ErrSubjectNotInPlan
	}

	result := &LevelUpdateResult{
		Subject:        subject,
		Level:          sp.StartingLevel,
		StartingModule: sp.StartingModule,
	}

	next := nextLevel(sp.StartingLevel)
	if next == "" {
		return result, nil
	}

	total, err := s.catalogRepo.CountSignsBySubjectLevel(subject, sp.StartingLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to count level signs: %w", err)
	}
	watched, err := s.progressRepo.CountWatchedAtLevel(userID, subject, sp.StartingLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to count watched signs: %w", err)
	}
	if total == 0 || watched < total {
		return result, nil
	}

	startModule, err := s.firstModuleAt(subject, next)
	if err != nil {
		return nil, err
	}

	if err := s.studyPlanRepo.UpdateSubjectLevel(plan.ID, subject, next, startModule); err != nil {
		return nil, fmt.Errorf("failed to advance level: %w", err)
	}

	if _, err := s.scheduleService.RegenerateCurrentWeek(userID); err != nil {
		log.Printf("Failed to regenerate schedule after level advance for user %d: %v", userID, err)
	}

	result.Level = next
	result.StartingModule = startModule
	result.Advanced = true
	return result, nil
}

// firstModuleAt returns the lowest-ordinal module at a level, or "" when the
// level has no content yet
func (s *StudyPlanService) firstModuleAt(subject, level string) (string, error) {
	names, err := s.catalogRepo.GetModuleNames(subject, level)
	if err != nil {
		return "", fmt.Errorf("failed to load modules: %w", err)
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.SliceStable(names, func(i, j int) bool {
		return moduleOrdinal(names[i]) < moduleOrdinal(names[j])
	})
	return names[0], nil
}

// nextLevel returns the level above the given one, or "" at the top
func nextLevel(level string) string {
	for i, l := range levelOrder {
		if l == level && i < len(levelOrder)-1 {
			return levelOrder[i+1]
		}
	}
	return ""
}
