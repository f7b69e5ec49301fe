package handler

import (
	"net/http"
	"strconv"

	"Pointly/config"
	"Pointly/middleware"
	"Pointly/pkg/context"
	"Pointly/pkg/response"
	"Pointly/service"
	"Pointly/types"

	"github.com/gin-gonic/gin"
)

type Task struct {
	Config      *config.Config
	TaskService service.ITaskService
}

func (h *Task) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))

	g := r.Group("/v1/tasks")
	g.Use(authorize)
	g.POST("", context.Wrap(h.Create))
	g.GET("", context.Wrap(h.List))
	g.GET("/:id", context.Wrap(h.Detail))
	g.POST("/:id/cancel", context.Wrap(h.Cancel))

	// 任务执行器回写状态走管理端口子
	admin := r.Group("/v1/admin/tasks")
	admin.Use(authorize, middleware.AdminOnly())
	admin.POST("/:id/start", context.Wrap(h.Start))
	admin.POST("/:id/complete", context.Wrap(h.Complete))
	admin.POST("/:id/fail", context.Wrap(h.Fail))
}

func taskID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, response.NewError(40001, "任务 ID 不合法")
	}
	return id, nil
}

// Create 创建任务，积分在创建时预扣
func (h *Task) Create(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(40001, "参数格式错误")
	}

	task, err := h.TaskService.CreateTask(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, task)
	return nil
}

func (h *Task) List(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.ListTasksReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(40001, "参数格式错误")
	}

	page, err := h.TaskService.ListTasks(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, page)
	return nil
}

func (h *Task) Detail(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.TaskService.GetTask(c.Request.Context(), userID, id)
	if err != nil {
		return err
	}
	response.Success(c, task)
	return nil
}

// Cancel 取消自己的任务，扣掉的积分退回
func (h *Task) Cancel(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.TaskService.CancelTask(c.Request.Context(), userID, id)
	if err != nil {
		return err
	}
	response.Success(c, task)
	return nil
}

func (h *Task) Start(c *gin.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.TaskService.StartTask(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, task)
	return nil
}

func (h *Task) Complete(c *gin.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req types.FinishTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(40001, "参数格式错误")
	}

	task, err := h.TaskService.CompleteTask(c.Request.Context(), id, &req)
	if err != nil {
		return err
	}
	response.Success(c, task)
	return nil
}

// Fail 置失败并退款
func (h *Task) Fail(c *gin.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req types.FinishTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(40001, "参数格式错误")
	}

	task, err := h.TaskService.FailTask(c.Request.Context(), id, &req)
	if err != nil {
		return err
	}
	response.Success(c, task)
	return nil
}
