package types

import "encoding/json"

// CreateTaskReq 创建任务请求体
type CreateTaskReq struct {
	Type   string          `json:"type" binding:"required"`
	Params json.RawMessage `json:"params"`
}

// FinishTaskReq 任务终态请求体（完成 / 失败）
type FinishTaskReq struct {
	Detail string          `json:"detail"`
	Result json.RawMessage `json:"result"`
}

// Task 任务的对外形态
type Task struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	Type       string          `json:"type"`
	Status     string          `json:"status"`
	PointsCost int64           `json:"points_cost"`
	Params     json.RawMessage `json:"params,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
	Detail     string          `json:"detail,omitempty"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
}

// TaskPage 任务分页包装
type TaskPage struct {
	Tasks []Task `json:"tasks"`
	Total int64  `json:"total"`
}

// ListTasksReq 任务列表请求
type ListTasksReq struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset"`
}
