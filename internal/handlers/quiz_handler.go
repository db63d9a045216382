package handlers

import (
	"context"
	"log"
	"net/http"

	"singlang/internal/inference"
	"singlang/internal/service"
)

// QuizHandler handles quiz generation, attempts, unlocks and gesture
// inference
type QuizHandler struct {
	quizService      *service.QuizService
	studyPlanService *service.StudyPlanService
	inferenceClient  *inference.Client
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService *service.QuizService, studyPlanService *service.StudyPlanService, inferenceClient *inference.Client) *QuizHandler {
	return &QuizHandler{
		quizService:      quizService,
		studyPlanService: studyPlanService,
		inferenceClient:  inferenceClient,
	}
}

// Modules returns the subject's modules in order with the user's unlock
// state, at the level the user's study plan is currently on
func (h *QuizHandler) Modules(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	subject := r.PathValue("subject")
	if subject == "" {
		respondValidationError(w, "subject is required")
		return
	}

	plan, err := h.studyPlanService.GetStudyPlan(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	sp := plan.SubjectFor(subject)
	if sp == nil {
		respondError(w, service.ErrSubjectNotInPlan)
		return
	}

	availability, err := h.quizService.ModuleAvailability(user.ID, subject, sp.StartingLevel)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, availability)
}

// Generate builds a quiz for a module
func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	module := r.PathValue("module")
	if module == "" {
		respondValidationError(w, "module is required")
		return
	}

	questions, err := h.quizService.GenerateQuiz(module)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

type quizProgressRequest struct {
	Module    string `json:"module"`
	SignTitle string `json:"signTitle"`
	IsCorrect *bool  `json:"isCorrect"`
}

func (req *quizProgressRequest) validate() string {
	switch {
	case req.Module == "":
		return "module is required"
	case req.SignTitle == "":
		return "signTitle is required"
	case req.IsCorrect == nil:
		return "isCorrect is required"
	}
	return ""
}

// SaveProgress records a quiz answer; retrying a sign overwrites the
// earlier attempt
func (h *QuizHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req quizProgressRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidationError(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondValidationError(w, msg)
		return
	}

	if err := h.quizService.SaveQuizProgress(user.ID, req.Module, req.SignTitle, *req.IsCorrect); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "quiz progress saved")
}

// Score returns the user's total score for a module
func (h *QuizHandler) Score(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	module := r.PathValue("module")
	if module == "" {
		respondValidationError(w, "module is required")
		return
	}

	score, err := h.quizService.GetModuleScore(user.ID, module)
	if err != nil {
		respondError(w, err)
		return
	}
	attempts, err := h.quizService.GetModuleAttempts(user.ID, module)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"module":   module,
		"score":    score,
		"attempts": attempts,
	})
}

type inferRequest struct {
	Features  []float64 `json:"features"`
	Hand      string    `json:"hand"`
	Expected  string    `json:"expected"`
	Module    string    `json:"module"`
	SignTitle string    `json:"signTitle"`
}

func (req *inferRequest) validate() string {
	switch {
	case len(req.Features) == 0:
		return "features are required"
	case req.Expected == "":
		return "expected sign is required"
	}
	return ""
}

type inferResponse struct {
	Predicted  string  `json:"predicted"`
	Confidence float64 `json:"confidence"`
	IsCorrect  bool    `json:"isCorrect"`
}

// InferSign classifies an alphabet gesture and scores the attempt when it
// belongs to a quiz. Classifier failures are reported upstream and never
// recorded as an answer.
func (h *QuizHandler) InferSign(w http.ResponseWriter, r *http.Request) {
	h.infer(w, r, h.inferenceClient.ClassifySign, inference.SignIsCorrect)
}

// InferWord classifies a word gesture
func (h *QuizHandler) InferWord(w http.ResponseWriter, r *http.Request) {
	h.infer(w, r, h.inferenceClient.ClassifyWord, inference.WordIsCorrect)
}

func (h *QuizHandler) infer(
	w http.ResponseWriter,
	r *http.Request,
	classify func(ctx context.Context, req inference.Request) (*inference.Result, error),
	isCorrect func(expected string, result *inference.Result) bool,
) {
	user := GetUserFromContext(r.Context())

	var req inferRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidationError(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondValidationError(w, msg)
		return
	}

	result, err := classify(r.Context(), inference.Request{
		Features: req.Features,
		Hand:     req.Hand,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	correct := isCorrect(req.Expected, result)

	if req.Module != "" && req.SignTitle != "" {
		if err := h.quizService.SaveQuizProgress(user.ID, req.Module, req.SignTitle, correct); err != nil {
			log.Printf("Failed to save inferred quiz progress for user %d: %v", user.ID, err)
		}
	}

	respondJSON(w, http.StatusOK, inferResponse{
		Predicted:  result.Predicted,
		Confidence: result.Confidence,
		IsCorrect:  correct,
	})
}
