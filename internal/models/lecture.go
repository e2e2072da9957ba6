package models

import "time"

// Lecture represents a recorded lecture session. SubjectID is a weak
// reference: the subject does not own the lecture's lifecycle.
type Lecture struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// HasNotes is computed when listing lectures of a subject.
	HasNotes bool `db:"has_notes" json:"has_notes"`
}

// LectureDetail inlines the lecture's notes and registered documents.
type LectureDetail struct {
	Lecture
	Notes     []Note     `json:"notes"`
	Documents []Document `json:"documents"`
}
