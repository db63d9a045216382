package models

// Quiz question types. Static questions show an image and multiple-choice
// options; dynamic questions ask the learner to perform the sign on camera.
const (
	QuestionTypeStatic  = "static"
	QuestionTypeDynamic = "dynamic"
)

// QuizQuestion is an authored question for a module, seeded by the sync job.
type QuizQuestion struct {
	ID        int64  `json:"-"`
	Module    string `json:"module"`
	SignTitle string `json:"signTitle"`
	Type      string `json:"type"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// QuizOption is one answer choice on a static question.
type QuizOption struct {
	Label     string `json:"label"`
	IsCorrect bool   `json:"isCorrect"`
}

// GeneratedQuestion is a question prepared for delivery. Static questions
// carry shuffled options; dynamic questions carry only the expected label,
// answered by live gesture inference.
type GeneratedQuestion struct {
	Type         string       `json:"type"`
	Prompt       string       `json:"prompt"`
	SignTitle    string       `json:"signTitle,omitempty"`
	ImageURL     string       `json:"signUrl,omitempty"`
	Options      []QuizOption `json:"options,omitempty"`
	CorrectLabel string       `json:"correctLabel,omitempty"`
}

// ModuleAvailability is the unlock state of a subject's modules.
type ModuleAvailability struct {
	Subject         string   `json:"subject"`
	OrderedModules  []string `json:"modules"`
	UnlockedModules []string `json:"unlockedModules"`
}
