package models

// Sign is the atomic learning unit: one gesture with its media clip.
// Signs are immutable once synced from the media library.
type Sign struct {
	ID       int64  `json:"id"`
	LessonID int64  `json:"-"`
	Title    string `json:"title"`
	MediaURL string `json:"mediaUrl"`
	Position int    `json:"-"`
}

// Lesson is an ordered group of signs within a module. LessonNumber is 1-based
// and unique within the module; it is the authoritative progression order.
type Lesson struct {
	ID           int64  `json:"id"`
	Subject      string `json:"subject"`
	Module       string `json:"module"`
	LessonNumber int    `json:"lessonNumber"`
	Level        string `json:"level"`
	Signs        []Sign `json:"signs"`
}

// ModuleGroup is a module's lessons in progression order. Modules are not
// stored as their own rows; they are derived by grouping lessons.
type ModuleGroup struct {
	Name    string
	Ordinal int
	Level   string
	Lessons []Lesson
}

// SubjectSigns holds every sign of a subject, for the dictionary view.
type SubjectSigns struct {
	Subject string `json:"subject"`
	Signs   []Sign `json:"signs"`
}
