package models

import "time"

// Subject represents a course subject owned by a single user.
type Subject struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Code        string    `db:"code" json:"code"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	// LectureCount is computed per owner when listing.
	LectureCount int `db:"lecture_count" json:"lecture_count"`
}

// SubjectDetail inlines the subject's owned lectures.
type SubjectDetail struct {
	Subject
	Lectures []Lecture `json:"lectures"`
}

// SubjectPatch carries optional fields for a partial update. At least one
// field must be set.
type SubjectPatch struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
}

// Empty reports whether no field of the patch is set.
func (p SubjectPatch) Empty() bool {
	return p.Name == nil && p.Code == nil && p.Description == nil
}
