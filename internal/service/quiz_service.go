package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"singlang/internal/models"
	"singlang/internal/repository"
)

var ErrNotEnoughQuestions = errors.New("not enough quiz questions for this module")

const (
	// UnlockThreshold is the module score that unlocks the next module
	UnlockThreshold = 70

	// QuizLength is the number of questions delivered per quiz
	QuizLength = 10

	// CorrectScore is the score recorded for a correct answer
	CorrectScore = 10

	optionCount = 4
)

// QuizService generates quizzes, records attempts and computes module unlocks
type QuizService struct {
	quizRepo    *repository.QuizRepository
	catalogRepo *repository.CatalogRepository
}

// NewQuizService creates a new quiz service
func NewQuizService(quizRepo *repository.QuizRepository, catalogRepo *repository.CatalogRepository) *QuizService {
	return &QuizService{
		quizRepo:    quizRepo,
		catalogRepo: catalogRepo,
	}
}

// GenerateQuiz builds a shuffled question set for a module. Static questions
// get four shuffled options (the correct label plus three distinct wrong ones
// drawn from the module's sign pool). Dynamic questions are answered by live
// gesture inference and carry no options; they are currently excluded from
// delivery but kept structurally so re-enabling them is a one-line change.
func (s *QuizService) GenerateQuiz(module string) ([]models.GeneratedQuestion, error) {
	questions, err := s.quizRepo.GetQuestionsByModule(module)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	var static, dynamic []models.QuizQuestion
	for _, q := range questions {
		if q.Type == models.QuestionTypeDynamic {
			dynamic = append(dynamic, q)
		} else {
			static = append(static, q)
		}
	}
	_ = dynamic // dynamic questions are not delivered until camera quizzes return

	if len(static) < QuizLength {
		return nil, ErrNotEnoughQuestions
	}

	lessons, err := s.catalogRepo.GetLessonsByModule(module)
	if err != nil {
		return nil, fmt.Errorf("failed to load module signs: %w", err)
	}

	var signTitles []string
	for _, lesson := range lessons {
		for _, sign := range lesson.Signs {
			signTitles = append(signTitles, sign.Title)
		}
	}

	rand.Shuffle(len(static), func(i, j int) {
		static[i], static[j] = static[j], static[i]
	})

	generated := make([]models.GeneratedQuestion, 0, QuizLength)
	for _, q := range static[:QuizLength] {
		generated = append(generated, buildStaticQuestion(q, signTitles))
	}

	return generated, nil
}

// buildStaticQuestion assembles a multiple-choice question: the correct label
// plus three distinct wrong labels from the sign pool, in shuffled order
func buildStaticQuestion(q models.QuizQuestion, signTitles []string) models.GeneratedQuestion {
	var pool []string
	for _, title := range signTitles {
		if title != q.SignTitle {
			pool = append(pool, title)
		}
	}
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	wrong := optionCount - 1
	if len(pool) < wrong {
		wrong = len(pool)
	}

	options := make([]models.QuizOption, 0, optionCount)
	options = append(options, models.QuizOption{Label: q.SignTitle, IsCorrect: true})
	for _, label := range pool[:wrong] {
		options = append(options, models.QuizOption{Label: label})
	}
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return models.GeneratedQuestion{
		Type:      models.QuestionTypeStatic,
		Prompt:    "What does this sign represent?",
		SignTitle: q.SignTitle,
		ImageURL:  q.ImageURL,
		Options:   options,
	}
}

// buildDynamicQuestion assembles a gesture-production question: a prompt and
// the expected label only, since the answer comes from gesture inference
func buildDynamicQuestion(q models.QuizQuestion) models.GeneratedQuestion {
	return models.GeneratedQuestion{
		Type:         models.QuestionTypeDynamic,
		Prompt:       fmt.Sprintf("Show the sign for %q", q.SignTitle),
		CorrectLabel: q.SignTitle,
	}
}

// SaveQuizProgress records a quiz answer. The score is derived from the
// answer here so the two can never disagree; the latest attempt for
// (user, module, signTitle) overwrites any earlier one.
func (s *QuizService) SaveQuizProgress(userID int64, module, signTitle string, isCorrect bool) error {
	answer := "incorrect"
	score := 0
	if isCorrect {
		answer = "correct"
		score = CorrectScore
	}
	return s.quizRepo.SaveAttempt(userID, module, signTitle, answer, score)
}

// GetModuleScore sums the user's recorded scores for one module
func (s *QuizService) GetModuleScore(userID int64, module string) (int, error) {
	return s.quizRepo.GetModuleScore(userID, module)
}

// GetModuleAttempts returns the user's latest attempt per sign for one module
func (s *QuizService) GetModuleAttempts(userID int64, module string) ([]models.QuizProgress, error) {
	return s.quizRepo.GetAttemptsByUserModule(userID, module)
}

// ModuleAvailability computes which of a subject's modules the user has
// unlocked. Recomputed fresh on every call, never cached.
func (s *QuizService) ModuleAvailability(userID int64, subject, level string) (*models.ModuleAvailability, error) {
	names, err := s.catalogRepo.GetModuleNames(subject, level)
	if err != nil {
		return nil, fmt.Errorf("failed to load modules: %w", err)
	}

	scores, err := s.quizRepo.GetModuleScores(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz scores: %w", err)
	}

	ordered, unlocked := resolveUnlocks(names, scores)
	return &models.ModuleAvailability{
		Subject:         subject,
		OrderedModules:  ordered,
		UnlockedModules: unlocked,
	}, nil
}

// resolveUnlocks orders modules by their numeric ordinal and walks them once
// left to right: the first module is always unlocked, and a module whose
// score reaches the threshold unlocks its immediate successor. Each module's
// own score decides its successor, so a module can be unlocked while an
// earlier one is still below threshold.
func resolveUnlocks(moduleNames []string, scores map[string]int) ([]string, []string) {
	ordered := append([]string(nil), moduleNames...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return moduleOrdinal(ordered[i]) < moduleOrdinal(ordered[j])
	})

	if len(ordered) == 0 {
		return ordered, nil
	}

	unlocked := []string{ordered[0]}
	for i := 0; i < len(ordered)-1; i++ {
		if scores[ordered[i]] >= UnlockThreshold {
			unlocked = append(unlocked, ordered[i+1])
		}
	}

	return ordered, unlocked
}
