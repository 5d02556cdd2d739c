package models

import "time"

// Attendance status values.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

// AttendanceRecord marks a student's presence for a course on a given day.
type AttendanceRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"uniqueIndex:idx_attendance_student_course_date;not null" json:"student_id"`
	CourseID  uint      `gorm:"uniqueIndex:idx_attendance_student_course_date;not null" json:"course_id"`
	Date      time.Time `gorm:"uniqueIndex:idx_attendance_student_course_date;not null" json:"date"`
	Status    string    `gorm:"size:32;not null" json:"status"`
	MarkedBy  uint      `gorm:"index" json:"marked_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsValidAttendanceStatus reports whether the value is a known status.
func IsValidAttendanceStatus(status string) bool {
	switch status {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}
