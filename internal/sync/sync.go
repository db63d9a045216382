// Package sync mirrors the media library and authored quiz questions into
// the lesson catalog.
package sync

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"singlang/internal/models"
	"singlang/internal/repository"
)

// DefaultSignsPerLesson is used for modules without an explicit entry in
// the lesson config
const DefaultSignsPerLesson = 3

// LessonConfig sets how many signs each module packs into one lesson.
// Keys are "<subject>/<module>".
type LessonConfig struct {
	SignsPerLesson map[string]int `yaml:"signsPerLesson"`
}

// QuestionSeed is the authored quiz question file, grouped by module
type QuestionSeed struct {
	Modules map[string][]SeedQuestion `yaml:"modules"`
}

// SeedQuestion is one authored question
type SeedQuestion struct {
	SignTitle string `yaml:"signTitle"`
	Type      string `yaml:"type"`
	ImageURL  string `yaml:"imageUrl"`
}

// Service walks the media tree and replaces the catalog to match it
type Service struct {
	catalogRepo  *repository.CatalogRepository
	quizRepo     *repository.QuizRepository
	mediaRoot    string
	mediaBaseURL string
	lessonConfig *LessonConfig
	questionSeed *QuestionSeed
}

// NewService creates a sync service. The YAML config files are loaded once
// at construction; a missing file means defaults, a malformed one is an error.
func NewService(catalogRepo *repository.CatalogRepository, quizRepo *repository.QuizRepository, mediaRoot, mediaBaseURL, lessonConfigPath, questionSeedPath string) (*Service, error) {
	lessonConfig, err := loadLessonConfig(lessonConfigPath)
	if err != nil {
		return nil, err
	}
	questionSeed, err := loadQuestionSeed(questionSeedPath)
	if err != nil {
		return nil, err
	}
	return &Service{
		catalogRepo:  catalogRepo,
		quizRepo:     quizRepo,
		mediaRoot:    mediaRoot,
		mediaBaseURL: mediaBaseURL,
		lessonConfig: lessonConfig,
		questionSeed: questionSeed,
	}, nil
}

func loadLessonConfig(path string) (*LessonConfig, error) {
	cfg := &LessonConfig{SignsPerLesson: map[string]int{}}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("Lesson config %s not found, using default of %d signs per lesson", path, DefaultSignsPerLesson)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read lesson config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse lesson config %s: %w", path, err)
	}
	if cfg.SignsPerLesson == nil {
		cfg.SignsPerLesson = map[string]int{}
	}
	return cfg, nil
}

func loadQuestionSeed(path string) (*QuestionSeed, error) {
	seed := &QuestionSeed{Modules: map[string][]SeedQuestion{}}
	if path == "" {
		return seed, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("Question seed %s not found, skipping quiz question sync", path)
		return seed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read question seed: %w", err)
	}
	if err := yaml.Unmarshal(data, seed); err != nil {
		return nil, fmt.Errorf("failed to parse question seed %s: %w", path, err)
	}
	if seed.Modules == nil {
		seed.Modules = map[string][]SeedQuestion{}
	}
	return seed, nil
}

// Run performs a full sync: lessons from the media tree, then quiz questions
// from the seed file. A failed module is logged and skipped so one bad
// directory never blocks the rest.
func (s *Service) Run() error {
	if err := s.syncLessons(); err != nil {
		return err
	}
	return s.syncQuestions()
}

// moduleDir identifies one media directory: mediaRoot/subject/level/module
type moduleDir struct {
	subject string
	level   string
	module  string
	path    string
}

func (s *Service) syncLessons() error {
	dirs, err := s.discoverModules()
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		lessons, err := s.buildLessons(dir)
		if err != nil {
			log.Printf("Sync: skipping %s/%s/%s: %v", dir.subject, dir.level, dir.module, err)
			continue
		}
		if err := s.catalogRepo.ReplaceModuleLessons(dir.subject, dir.module, lessons); err != nil {
			log.Printf("Sync: failed to store %s/%s: %v", dir.subject, dir.module, err)
			continue
		}
		log.Printf("Sync: %s/%s/%s -> %d lessons", dir.subject, dir.level, dir.module, len(lessons))
	}
	return nil
}

func (s *Service) discoverModules() ([]moduleDir, error) {
	var dirs []moduleDir

	subjects, err := listDirs(s.mediaRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read media root %s: %w", s.mediaRoot, err)
	}
	for _, subject := range subjects {
		levels, err := listDirs(filepath.Join(s.mediaRoot, subject))
		if err != nil {
			log.Printf("Sync: skipping subject %s: %v", subject, err)
			continue
		}
		for _, level := range levels {
			modules, err := listDirs(filepath.Join(s.mediaRoot, subject, level))
			if err != nil {
				log.Printf("Sync: skipping %s/%s: %v", subject, level, err)
				continue
			}
			for _, module := range modules {
				dirs = append(dirs, moduleDir{
					subject: subject,
					level:   level,
					module:  module,
					path:    filepath.Join(s.mediaRoot, subject, level, module),
				})
			}
		}
	}
	return dirs, nil
}

// buildLessons groups a module's media files, in name order, into lessons of
// the configured size. The file name minus its extension becomes the sign
// title.
func (s *Service) buildLessons(dir moduleDir) ([]models.Lesson, error) {
	entries, err := os.ReadDir(dir.path)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no media files")
	}

	perLesson := s.lessonConfig.SignsPerLesson[dir.subject+"/"+dir.module]
	if perLesson <= 0 {
		perLesson = DefaultSignsPerLesson
	}

	var lessons []models.Lesson
	for start := 0; start < len(files); start += perLesson {
		end := start + perLesson
		if end > len(files) {
			end = len(files)
		}
		lesson := models.Lesson{
			Subject:      dir.subject,
			Module:       dir.module,
			LessonNumber: len(lessons) + 1,
			Level:        dir.level,
		}
		for i, name := range files[start:end] {
			lesson.Signs = append(lesson.Signs, models.Sign{
				Title:    signTitle(name),
				MediaURL: s.mediaURL(dir, name),
				Position: i + 1,
			})
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}

func (s *Service) syncQuestions() error {
	for module, seeds := range s.questionSeed.Modules {
		questions := make([]models.QuizQuestion, 0, len(seeds))
		for _, seed := range seeds {
			qType := seed.Type
			if qType == "" {
				qType = models.QuestionTypeStatic
			}
			questions = append(questions, models.QuizQuestion{
				Module:    module,
				SignTitle: seed.SignTitle,
				Type:      qType,
				ImageURL:  seed.ImageURL,
			})
		}
		if err := s.quizRepo.ReplaceModuleQuestions(module, questions); err != nil {
			log.Printf("Sync: failed to seed questions for %s: %v", module, err)
			continue
		}
		log.Printf("Sync: %s -> %d quiz questions", module, len(questions))
	}
	return nil
}

func (s *Service) mediaURL(dir moduleDir, name string) string {
	return strings.TrimSuffix(s.mediaBaseURL, "/") + "/" +
		filepath.ToSlash(filepath.Join(dir.subject, dir.level, dir.module, name))
}

func signTitle(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

func listDirs(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
