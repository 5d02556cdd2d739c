package dto

import "time"

// AssignmentProgress pairs an assignment with the student's submission state.
type AssignmentProgress struct {
	AssignmentID uint       `json:"assignment_id"`
	CourseID     uint       `json:"course_id"`
	Title        string     `json:"title"`
	DueDate      time.Time  `json:"due_date"`
	Status       string     `json:"status"`
	SubmissionID *uint      `json:"submission_id,omitempty"`
	Grade        *float64   `json:"grade,omitempty"`
	Feedback     string     `json:"feedback,omitempty"`
	Overdue      bool       `json:"overdue"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
}

// ProgressSummary condenses the assignment table into headline numbers.
type ProgressSummary struct {
	TotalAssignments int     `json:"total_assignments"`
	Submitted        int     `json:"submitted"`
	Graded           int     `json:"graded"`
	Pending          int     `json:"pending"`
	Overdue          int     `json:"overdue"`
	AverageGrade     float64 `json:"average_grade"`
	CompletionRate   float64 `json:"completion_rate"`
}

// StudentDashboardResponse is the aggregate the student dashboard renders.
// The component reads are issued in parallel and joined; one failed read
// fails the whole aggregate.
type StudentDashboardResponse struct {
	Summary       ProgressSummary        `json:"summary"`
	Assignments   []AssignmentProgress   `json:"assignments"`
	Attendance    AttendanceSummary      `json:"attendance"`
	LiveClasses   []LiveClassResponse    `json:"live_classes"`
	Grades        []GradeResponse        `json:"grades"`
	Notifications []NotificationResponse `json:"notifications"`
	GeneratedAt   time.Time              `json:"generated_at"`
}
