package service

import (
	"context"
	"time"

	"Pointly/config"
	"Pointly/dao"
	"Pointly/models"
	"Pointly/pkg/jwt"
	"Pointly/pkg/response"
	"Pointly/types"

	"golang.org/x/crypto/bcrypt"
)

// UserStore 用户存储
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Users, error)
	IsEmailExist(ctx context.Context, email string) bool
	FindUser(ctx context.Context, userID int64) (*models.Users, error)
	CreateWithAccount(ctx context.Context, user *models.Users) error
	ListWithAccounts(ctx context.Context, search string, limit, offset int) ([]dao.UserAccountRow, int64, error)
}

type AuthService struct {
	Config *config.Config
	Users  UserStore
}

var _ IAuthService = (*AuthService)(nil)

type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterReq) (*types.LoginResp, error)
	Login(ctx context.Context, req *types.LoginReq) (*types.LoginResp, error)
}

// Register 注册新用户并初始化积分账户
func (s *AuthService) Register(ctx context.Context, req *types.RegisterReq) (*types.LoginResp, error) {
	if s.Users.IsEmailExist(ctx, req.Email) {
		return nil, response.NewError(40903, "邮箱已注册")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.Users{
		Nickname: req.Nickname,
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleFree,
	}
	if err := s.Users.CreateWithAccount(ctx, user); err != nil {
		return nil, asBizError(err)
	}
	return s.issueToken(user)
}

// Login 密码登录
func (s *AuthService) Login(ctx context.Context, req *types.LoginReq) (*types.LoginResp, error) {
	user, err := s.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, response.NewError(40101, "邮箱或密码错误")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, response.NewError(40101, "邮箱或密码错误")
	}
	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.Users) (*types.LoginResp, error) {
	token, err := jwt.GenerateToken(
		[]byte(s.Config.Jwt.Secret),
		user.ID,
		user.Role,
		"access",
		time.Duration(s.Config.Jwt.ExpiresIn)*time.Second,
	)
	if err != nil {
		return nil, err
	}
	return &types.LoginResp{
		AccessToken: token,
		UserID:      user.ID,
		Role:        user.Role,
	}, nil
}
