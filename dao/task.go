package dao

import (
	"context"
	"errors"
	"fmt"

	"Pointly/models"
	"Pointly/pkg/snowflake"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Task struct {
	Repo[models.Task]
}

func NewTask(db *gorm.DB) *Task {
	return &Task{
		Repo: NewRepo[models.Task](db),
	}
}

// CreateWithCharge 创建任务并扣减积分，同一事务内完成。
// 余额不足时任务不会落库。
func (t *Task) CreateWithCharge(ctx context.Context, task *models.Task) (*models.PointsLog, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if task.ID == 0 {
		task.ID = snowflake.GenID()
	}
	task.Status = models.TaskPending

	var entry *models.PointsLog
	err := t.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if task.PointsCost > 0 {
			e, err := appendTx(tx, AppendParams{
				UserID: task.UserID,
				Delta:  -task.PointsCost,
				Kind:   models.KindFeatureUsage,
				Remark: fmt.Sprintf("任务消耗：%s", task.Type),
				TaskID: &task.ID,
			})
			if err != nil {
				return err
			}
			entry = e
		}
		return tx.Create(task).Error
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return entry, nil
}

// Transition 变更任务状态。失败或取消且尚未退款的任务在同一事务内
// 追加一条 refund 流水并标记已退款，保证至多退一次。
func (t *Task) Transition(ctx context.Context, taskID int64, to, detail string, result datatypes.JSON) (*models.Task, *models.PointsLog, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var (
		task  models.Task
		entry *models.PointsLog
	)
	err := t.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", taskID).
			First(&task).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrTaskNotFound
			}
			return err
		}

		if err := task.TransitionTo(to); err != nil {
			return err
		}
		if detail != "" {
			task.Detail = detail
		}
		if result != nil {
			task.Result = result
		}

		if task.NeedsRefund() {
			e, err := appendTx(tx, AppendParams{
				UserID: task.UserID,
				Delta:  task.PointsCost,
				Kind:   models.KindRefund,
				Remark: fmt.Sprintf("任务退款：%s", task.Type),
				TaskID: &task.ID,
			})
			if err != nil {
				return err
			}
			entry = e
			task.Refunded = true
		}

		return tx.Model(&models.Task{}).
			Where("id = ?", task.ID).
			Updates(map[string]any{
				"status":   task.Status,
				"detail":   task.Detail,
				"result":   task.Result,
				"refunded": task.Refunded,
			}).Error
	})
	if err != nil {
		return nil, nil, mapStoreErr(err)
	}
	return &task, entry, nil
}

// FindUserTask 查询属于某个用户的任务
func (t *Task) FindUserTask(ctx context.Context, taskID, userID int64) (*models.Task, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	task, err := t.Repo.FindByWhere(ctx, "id = ? AND user_id = ?", taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTaskNotFound
		}
		return nil, mapStoreErr(err)
	}
	return task, nil
}

// ListByUser 分页查询用户任务，按创建时间倒序
func (t *Task) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Task, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := t.Db.WithContext(ctx).Model(&models.Task{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, mapStoreErr(err)
	}

	var tasks []models.Task
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&tasks).Error
	if err != nil {
		return nil, 0, mapStoreErr(err)
	}
	return tasks, total, nil
}
