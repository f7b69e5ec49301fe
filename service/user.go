package service

import (
	"context"

	"Pointly/types"
)

type UserService struct {
	Users UserStore
}

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	ListUsers(ctx context.Context, req *types.ListUsersReq) (*types.UserPage, error)
}

// ListUsers 管理端用户列表，连同积分账户一起返回
func (s *UserService) ListUsers(ctx context.Context, req *types.ListUsersReq) (*types.UserPage, error) {
	rows, total, err := s.Users.ListWithAccounts(ctx, req.Search, normalizeLimit(req.Limit), req.Offset)
	if err != nil {
		return nil, asBizError(err)
	}

	page := &types.UserPage{
		Users: make([]types.UserRow, 0, len(rows)),
		Total: total,
	}
	for _, r := range rows {
		row := types.UserRow{
			ID:            r.ID,
			Nickname:      r.Nickname,
			Email:         r.Email,
			Role:          r.Role,
			Balance:       r.Balance,
			TotalRedeemed: r.TotalRedeemed,
			TotalUsed:     r.TotalUsed,
			CreatedAt:     r.CreatedAt.Format(timeLayout),
		}
		if r.FirstPaidAt != nil {
			row.FirstPaidAt = r.FirstPaidAt.Format(timeLayout)
		}
		page.Users = append(page.Users, row)
	}
	return page, nil
}
