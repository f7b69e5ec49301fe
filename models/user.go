package models

import "time"

// 用户角色常量定义
const (
	RoleFree  = "free"  // 免费用户
	RolePaid  = "paid"  // 付费用户
	RoleAdmin = "admin" // 管理员
)

type Users struct {
	ID          int64      `gorm:"primaryKey;column:id"`
	Nickname    string     `gorm:"column:nickname;size:64"`
	Email       string     `gorm:"column:email;uniqueIndex;size:255"`
	Password    string     `gorm:"column:password;size:255"` // bcrypt 哈希
	Role        string     `gorm:"column:role;size:16;default:'free'"`
	FirstPaidAt *time.Time `gorm:"column:first_paid_at"` // 首次付费时间
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (Users) TableName() string {
	return "users"
}

func (u *Users) IsAdmin() bool {
	return u.Role == RoleAdmin
}
