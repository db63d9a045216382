package models

import "time"

// Watched-sign status. SignProgress rows are append-only; there is no other
// status today.
const StatusWatched = "watched"

// SignProgress records that a user watched one sign's media to completion.
// Unique per (user, lesson, sign, level); duplicate watch events are no-ops.
type SignProgress struct {
	ID        int64     `json:"-"`
	UserID    int64     `json:"-"`
	LessonID  int64     `json:"lessonId"`
	SignID    int64     `json:"signId"`
	Level     string    `json:"level"`
	Module    string    `json:"module"`
	Subject   string    `json:"subject"`
	SignTitle string    `json:"signTitle"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// QuizProgress is the latest quiz attempt for one sign in one module.
// Unique per (user, module, signTitle); a retry overwrites the prior record.
type QuizProgress struct {
	ID         int64     `json:"-"`
	UserID     int64     `json:"-"`
	Module     string    `json:"module"`
	SignTitle  string    `json:"signTitle"`
	Answer     string    `json:"answer"` // correct or incorrect
	Score      int       `json:"score"`  // 10 for correct, 0 for incorrect
	AnsweredAt time.Time `json:"timestamp"`
}

// SubjectProgress is the completion summary for one subject.
type SubjectProgress struct {
	Subject          string `json:"subject"`
	CompletedModules int    `json:"completedModules"`
	CompletedLessons int    `json:"completedLessons"`
	TotalLessons     int    `json:"totalLessons"`
}

// Streak is the login-streak summary computed from login activity.
type Streak struct {
	CurrentStreak int `json:"currentStreak"`
	BestStreak    int `json:"bestStreak"`
}
