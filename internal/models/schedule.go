package models

import "time"

// ScheduleEntry is one lesson assigned to one calendar day.
type ScheduleEntry struct {
	Date        string `json:"date"` // ISO date (2006-01-02)
	Weekday     string `json:"day"`  // full weekday name
	Subject     string `json:"subject"`
	Module      string `json:"module"`
	Level       string `json:"level"`
	LessonLabel string `json:"lesson"` // e.g. "Lesson 3"
	LessonID    int64  `json:"lessonId"`
}

// WeeklySchedule is the materialized 7-day plan for one user and one week.
// (UserID, WeekStart) is the idempotence key: regenerating within the same
// week is a no-op.
type WeeklySchedule struct {
	ID          int64           `json:"-"`
	UserID      int64           `json:"-"`
	WeekStart   string          `json:"weekStartDate"` // ISO date of the week's Monday
	Entries     []ScheduleEntry `json:"schedule"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// TodayLesson is a schedule entry enriched with the lesson's sign media,
// re-fetched from the catalog rather than trusted from the stored schedule.
type TodayLesson struct {
	ScheduleEntry
	Signs []Sign `json:"signs"`
}
