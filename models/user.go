package models

import (
	"time"
)

// Role IDs as seeded in the roles table.
const (
	RoleStudent = 1
	RoleTeacher = 2
	RoleAdmin   = 3
)

type User struct {
	UserID    int    `gorm:"primaryKey;column:user_id" json:"user_id"`
	UserFname string `gorm:"column:user_fname" json:"user_fname"`
	UserLname string `gorm:"column:user_lname" json:"user_lname"`
	Email     string `gorm:"column:email;unique" json:"email"`
	Password  string `gorm:"column:password" json:"-"`
	RoleID    int    `gorm:"column:role_id" json:"role_id"`

	// IsTemporary marks placeholder accounts created for group members
	// who have never logged in. They are merged into the real account
	// on first login (see services.ReconcilePlaceholder).
	IsTemporary bool `gorm:"column:is_temporary" json:"is_temporary"`

	StudentNumber *string    `gorm:"column:student_number" json:"student_number,omitempty"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

type Role struct {
	RoleID   int        `gorm:"primaryKey;column:role_id" json:"role_id"`
	Role     string     `gorm:"column:role" json:"role"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// FullName returns the display name used in notification mails.
func (u *User) FullName() string {
	return u.UserFname + " " + u.UserLname
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}
