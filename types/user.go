package types

// RegisterReq 注册请求体
type RegisterReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Nickname string `json:"nickname" binding:"required"`
}

// LoginReq 登录请求体
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResp 登录响应
type LoginResp struct {
	AccessToken string `json:"access_token"`
	UserID      int64  `json:"user_id"`
	Role        string `json:"role"`
}

// UserRow 管理端用户列表行
type UserRow struct {
	ID            int64  `json:"id"`
	Nickname      string `json:"nickname"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	FirstPaidAt   string `json:"first_paid_at,omitempty"`
	Balance       int64  `json:"balance"`
	TotalRedeemed int64  `json:"total_redeemed"`
	TotalUsed     int64  `json:"total_used"`
	CreatedAt     string `json:"created_at"`
}

// ListUsersReq 用户列表请求
type ListUsersReq struct {
	Search string `form:"search"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset"`
}

// UserPage 用户列表分页包装
type UserPage struct {
	Users []UserRow `json:"users"`
	Total int64     `json:"total"`
}
