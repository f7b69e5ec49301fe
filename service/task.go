package service

import (
	"context"

	"Pointly/models"
	"Pointly/types"

	"github.com/tidwall/gjson"
	"gorm.io/datatypes"
)

// taskPrices 任务类型 -> 单次积分消耗
var taskPrices = map[string]int64{
	"chat":      5,
	"image_gen": 20,
	"video_gen": 100,
}

// TaskStore 任务存储。创建扣费、状态流转带退款均由实现方保证事务性。
type TaskStore interface {
	CreateWithCharge(ctx context.Context, task *models.Task) (*models.PointsLog, error)
	Transition(ctx context.Context, taskID int64, to, detail string, result datatypes.JSON) (*models.Task, *models.PointsLog, error)
	FindUserTask(ctx context.Context, taskID, userID int64) (*models.Task, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Task, int64, error)
}

type TaskService struct {
	Tasks TaskStore
}

var _ ITaskService = (*TaskService)(nil)

type ITaskService interface {
	CreateTask(ctx context.Context, userID int64, req *types.CreateTaskReq) (*types.Task, error)
	CancelTask(ctx context.Context, userID, taskID int64) (*types.Task, error)
	StartTask(ctx context.Context, taskID int64) (*types.Task, error)
	CompleteTask(ctx context.Context, taskID int64, req *types.FinishTaskReq) (*types.Task, error)
	FailTask(ctx context.Context, taskID int64, req *types.FinishTaskReq) (*types.Task, error)
	GetTask(ctx context.Context, userID, taskID int64) (*types.Task, error)
	ListTasks(ctx context.Context, userID int64, req *types.ListTasksReq) (*types.TaskPage, error)
}

// taskCost 按类型定价。image_gen 支持 params.count 批量出图，费用按
// 张数累乘，缺省一张。
func taskCost(taskType string, params []byte) (int64, error) {
	base, ok := taskPrices[taskType]
	if !ok {
		return 0, models.ErrInvalidArgument
	}
	if taskType == "image_gen" && len(params) > 0 {
		if count := gjson.GetBytes(params, "count").Int(); count > 1 {
			return base * count, nil
		}
	}
	return base, nil
}

// CreateTask 创建任务并预扣积分，余额不足时任务不会创建
func (s *TaskService) CreateTask(ctx context.Context, userID int64, req *types.CreateTaskReq) (*types.Task, error) {
	cost, err := taskCost(req.Type, req.Params)
	if err != nil {
		return nil, asBizError(err)
	}

	task := &models.Task{
		UserID:     userID,
		Type:       req.Type,
		PointsCost: cost,
		Params:     datatypes.JSON(req.Params),
	}
	if _, err := s.Tasks.CreateWithCharge(ctx, task); err != nil {
		return nil, asBizError(err)
	}
	return toTask(task), nil
}

// CancelTask 用户取消自己的任务，已扣积分原路返还
func (s *TaskService) CancelTask(ctx context.Context, userID, taskID int64) (*types.Task, error) {
	if _, err := s.Tasks.FindUserTask(ctx, taskID, userID); err != nil {
		return nil, asBizError(err)
	}
	task, _, err := s.Tasks.Transition(ctx, taskID, models.TaskCancelled, "", nil)
	if err != nil {
		return nil, asBizError(err)
	}
	return toTask(task), nil
}

func (s *TaskService) StartTask(ctx context.Context, taskID int64) (*types.Task, error) {
	task, _, err := s.Tasks.Transition(ctx, taskID, models.TaskProcessing, "", nil)
	if err != nil {
		return nil, asBizError(err)
	}
	return toTask(task), nil
}

func (s *TaskService) CompleteTask(ctx context.Context, taskID int64, req *types.FinishTaskReq) (*types.Task, error) {
	task, _, err := s.Tasks.Transition(ctx, taskID, models.TaskCompleted, req.Detail, datatypes.JSON(req.Result))
	if err != nil {
		return nil, asBizError(err)
	}
	return toTask(task), nil
}

// FailTask 置任务失败并退款
func (s *TaskService) FailTask(ctx context.Context, taskID int64, req *types.FinishTaskReq) (*types.Task, error) {
	task, _, err := s.Tasks.Transition(ctx, taskID, models.TaskFailed, req.Detail, datatypes.JSON(req.Result))
	if err != nil {
		return nil, asBizError(err)
	}
	return toTask(task), nil
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID int64) (*types.Task, error) {
	task, err := s.Tasks.FindUserTask(ctx, taskID, userID)
	if err != nil {
		return nil, asBizError(err)
	}
	return toTask(task), nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID int64, req *types.ListTasksReq) (*types.TaskPage, error) {
	tasks, total, err := s.Tasks.ListByUser(ctx, userID, normalizeLimit(req.Limit), req.Offset)
	if err != nil {
		return nil, asBizError(err)
	}

	page := &types.TaskPage{
		Tasks: make([]types.Task, 0, len(tasks)),
		Total: total,
	}
	for i := range tasks {
		page.Tasks = append(page.Tasks, *toTask(&tasks[i]))
	}
	return page, nil
}
