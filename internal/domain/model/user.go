package model

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleRegularUser Role = "regular_user"
)

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Firstname    string    `gorm:"type:varchar(255)" json:"firstname"`
	Lastname     string    `gorm:"type:varchar(255)" json:"lastname"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'regular_user'" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 表示用のフルネーム
func (u *User) Fullname() string {
	return u.Firstname + " " + u.Lastname
}
