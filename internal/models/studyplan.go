package models

import "time"

// SubjectPlan is the per-subject slice of a study plan: where the learner
// starts and how much they study each week.
type SubjectPlan struct {
	Subject        string   `json:"subject"`
	StartingLevel  string   `json:"startingLevel"`
	StartingModule string   `json:"startingModule"`
	WeeklyLessons  int      `json:"weeklyLessons"`
	StudyDays      []string `json:"studyDays"` // weekday abbreviations: Mon, Tue, ...
}

// StudyPlan is a user's study configuration. One plan per user; edits replace
// all subject entries atomically.
type StudyPlan struct {
	ID        int64         `json:"-"`
	UserID    int64         `json:"-"`
	Subjects  []SubjectPlan `json:"subjects"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// SubjectFor returns the plan entry for a subject, or nil if the subject is
// not part of the plan.
func (p *StudyPlan) SubjectFor(subject string) *SubjectPlan {
	for i := range p.Subjects {
		if p.Subjects[i].Subject == subject {
			return &p.Subjects[i]
		}
	}
	return nil
}
