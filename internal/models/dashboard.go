package models

// DashboardStats aggregates per-user counts for the dashboard.
type DashboardStats struct {
	SubjectCount   int       `json:"subject_count"`
	LectureCount   int       `json:"lecture_count"`
	NotesCount     int       `json:"notes_count"`
	DocumentsCount int       `json:"documents_count"`
	RecentLectures []Lecture `json:"recent_lectures"`
}
