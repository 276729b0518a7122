package core

import "context"

// CandidateCourse is a course record produced by a CourseGenerator; it has no
// ID yet and only becomes a Course once imported through the store.
type CandidateCourse struct {
	Name        string
	Credits     int
	Description string
	TeacherID   string
	TeacherName string
}

// CourseGenerator produces candidate course records for a topic, attributed
// to the given teacher. It simulates crawling an academic catalog; it never
// fetches real web content. Implementations must recover from any upstream
// failure by returning an empty list rather than an error the caller cannot
// act on.
type CourseGenerator interface {
	GenerateCourses(ctx context.Context, topic, teacherID, teacherName string) ([]CandidateCourse, error)
}
