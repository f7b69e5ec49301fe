package models

import (
	"time"

	"gorm.io/datatypes"
)

// 任务状态常量定义
const (
	TaskPending    = "pending"
	TaskProcessing = "processing"
	TaskCompleted  = "completed"
	TaskFailed     = "failed"
	TaskCancelled  = "cancelled"
)

// taskTransitions 任务状态机：pending -> processing -> completed|failed，
// pending / processing 均可取消
var taskTransitions = map[string][]string{
	TaskPending:    {TaskProcessing, TaskCancelled},
	TaskProcessing: {TaskCompleted, TaskFailed, TaskCancelled},
}

// Task 计费任务，创建时扣减积分，失败或取消时返还
type Task struct {
	ID         int64          `gorm:"primaryKey;column:id"`
	UserID     int64          `gorm:"column:user_id;index:idx_user_id"`
	Type       string         `gorm:"column:type;size:32"`
	Status     string         `gorm:"column:status;index;size:16;default:'pending'"`
	PointsCost int64          `gorm:"column:points_cost"`
	Params     datatypes.JSON `gorm:"column:params"`
	Result     datatypes.JSON `gorm:"column:result"`
	Detail     string         `gorm:"column:detail;size:512"`
	Refunded   bool           `gorm:"column:refunded;default:false"` // 保证至多一次退款
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// TransitionTo 校验并执行状态变更
func (t *Task) TransitionTo(status string) error {
	for _, next := range taskTransitions[t.Status] {
		if next == status {
			t.Status = status
			return nil
		}
	}
	return ErrInvalidTransition
}

// NeedsRefund 失败或取消的任务在未退款前需要返还扣减的积分
func (t *Task) NeedsRefund() bool {
	if t.Refunded || t.PointsCost <= 0 {
		return false
	}
	return t.Status == TaskFailed || t.Status == TaskCancelled
}
