package models

import "time"

// Course is a minimal container for exercises. Enrollment management is
// handled by the surrounding LMS integration, not this API.
type Course struct {
	CourseID   int        `gorm:"primaryKey;column:course_id" json:"course_id"`
	Code       string     `gorm:"column:code" json:"code"`
	CourseName string     `gorm:"column:course_name" json:"course_name"`
	Year       int        `gorm:"column:year" json:"year"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides the table name for Course
func (Course) TableName() string {
	return "courses"
}
