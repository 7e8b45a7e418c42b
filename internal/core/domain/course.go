package domain

import "time"

// Difficulty levels a course may declare.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Course is a catalog entry. The catalog is owned by the remote API; the
// client only reads it.
type Course struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CategoryID    int       `json:"categoryId"`
	Difficulty    string    `json:"difficulty"`
	Duration      int       `json:"duration"`
	Lessons       int       `json:"lessons"`
	Rating        float64   `json:"rating"`
	EnrolledCount int       `json:"enrolledCount"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	InstructorID  int       `json:"instructorId"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CourseFilter narrows a catalog query. Zero values mean "no filter".
type CourseFilter struct {
	Category   int    `query:"category"`
	Difficulty string `query:"difficulty"`
	Search     string `query:"search"`
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
}

// CourseList is the payload returned by the catalog listing endpoint.
type CourseList struct {
	Courses []Course `json:"courses"`
	Total   int      `json:"total"`
}
