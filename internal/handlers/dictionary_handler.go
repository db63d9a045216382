package handlers

import (
	"net/http"
	"sort"

	"singlang/internal/models"
	"singlang/internal/repository"
)

// DictionaryHandler serves the full sign dictionary
type DictionaryHandler struct {
	catalogRepo *repository.CatalogRepository
}

// NewDictionaryHandler creates a new dictionary handler
func NewDictionaryHandler(catalogRepo *repository.CatalogRepository) *DictionaryHandler {
	return &DictionaryHandler{catalogRepo: catalogRepo}
}

// Get returns every sign grouped by subject, alphabetical within each
func (h *DictionaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.catalogRepo.GetAllLessons()
	if err != nil {
		respondError(w, err)
		return
	}

	bySubject := map[string][]models.Sign{}
	for _, lesson := range lessons {
		bySubject[lesson.Subject] = append(bySubject[lesson.Subject], lesson.Signs...)
	}

	subjects := make([]string, 0, len(bySubject))
	for subject := range bySubject {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	dictionary := make([]models.SubjectSigns, 0, len(subjects))
	for _, subject := range subjects {
		signs := bySubject[subject]
		sort.Slice(signs, func(i, j int) bool {
			return signs[i].Title < signs[j].Title
		})
		dictionary = append(dictionary, models.SubjectSigns{Subject: subject, Signs: signs})
	}

	respondJSON(w, http.StatusOK, dictionary)
}
