package models

import "time"

// StudentGroup represents the student_groups table. Members are listed
// by email so that a group can reference students who have never logged
// in (placeholder accounts are created for them on demand).
type StudentGroup struct {
	GroupID   int        `gorm:"primaryKey;column:group_id" json:"group_id"`
	CourseID  int        `gorm:"column:course_id" json:"course_id"`
	GroupName string     `gorm:"column:group_name" json:"group_name"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Course  Course        `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Members []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}

// GroupMember represents the group_members table.
type GroupMember struct {
	MemberID int        `gorm:"primaryKey;column:member_id" json:"member_id"`
	GroupID  int        `gorm:"column:group_id" json:"group_id"`
	Email    string     `gorm:"column:email" json:"email"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
}

// TableName overrides
func (StudentGroup) TableName() string {
	return "student_groups"
}

func (GroupMember) TableName() string {
	return "group_members"
}
