package models

import "time"

// Note source markers.
const (
	NoteSourceLLM      = "llm"
	NoteSourceFallback = "fallback"
)

// Note is a synthesized set of lecture notes, owned transitively through the
// lecture.
type Note struct {
	ID        string    `db:"id" json:"id"`
	LectureID string    `db:"lecture_id" json:"lecture_id"`
	Content   string    `db:"content" json:"content"`
	Source    string    `db:"source" json:"source"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Document is reference material registered for a lecture.
type Document struct {
	ID          string    `db:"id" json:"id"`
	LectureID   string    `db:"lecture_id" json:"lecture_id"`
	Filename    string    `db:"filename" json:"filename"`
	ContentType string    `db:"content_type" json:"content_type"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
