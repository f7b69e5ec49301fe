package dao

import (
	"context"
	"errors"

	"Pointly/models"
	"Pointly/pkg/snowflake"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.Users]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.Users](db),
	}
}

// FindByEmail 邮箱查询
func (u *Users) FindByEmail(ctx context.Context, email string) (*models.Users, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	user, err := u.Repo.FindByWhere(ctx, "email = ?", email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, mapStoreErr(err)
	}
	return user, nil
}

// IsEmailExist 判断邮箱是否已注册
func (u *Users) IsEmailExist(ctx context.Context, email string) bool {
	exist, _ := u.Repo.IsExist(ctx, "email = ?", email)
	return exist
}

// FindUser 按 ID 查询用户
func (u *Users) FindUser(ctx context.Context, userID int64) (*models.Users, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	user, err := u.Repo.FindById(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, mapStoreErr(err)
	}
	return user, nil
}

// CreateWithAccount 创建用户并初始化积分账户，同一事务
func (u *Users) CreateWithAccount(ctx context.Context, user *models.Users) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if user.ID == 0 {
		user.ID = snowflake.GenID()
	}
	err := u.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		account := &models.UserPoint{
			ID:     snowflake.GenID(),
			UserID: user.ID,
		}
		return tx.Create(account).Error
	})
	return mapStoreErr(err)
}

// UserAccountRow 管理端用户列表行：用户信息 + 积分账户
type UserAccountRow struct {
	models.Users
	Balance       int64 `gorm:"column:balance" json:"balance"`
	TotalRedeemed int64 `gorm:"column:total_redeemed" json:"total_redeemed"`
	TotalUsed     int64 `gorm:"column:total_used" json:"total_used"`
}

// ListWithAccounts 用户连积分账户的分页列表
func (u *Users) ListWithAccounts(ctx context.Context, search string, limit, offset int) ([]UserAccountRow, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := u.Db.WithContext(ctx).Model(&models.Users{}).
		Joins("LEFT JOIN user_points ON user_points.user_id = users.id")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("users.nickname LIKE ? OR users.email LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, mapStoreErr(err)
	}

	var rows []UserAccountRow
	err := query.
		Select("users.*, user_points.balance, user_points.total_redeemed, user_points.total_used").
		Order("users.created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, mapStoreErr(err)
	}
	return rows, total, nil
}
