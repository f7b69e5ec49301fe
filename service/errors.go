package service

import (
	"errors"

	"Pointly/models"
	"Pointly/pkg/response"
)

// asBizError 把领域错误映射为带业务码的响应错误。
// 403x 权限/资格，404x 资源不存在，409x 状态冲突，503x 可重试。
func asBizError(err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidArgument),
		errors.Is(err, models.ErrInvalidTransition):
		return response.NewError(40001, err.Error())
	case errors.Is(err, models.ErrIneligibleUser):
		return response.NewError(40301, err.Error())
	case errors.Is(err, models.ErrUserNotFound):
		return response.NewError(40401, err.Error())
	case errors.Is(err, models.ErrCardNotFound):
		return response.NewError(40402, err.Error())
	case errors.Is(err, models.ErrTaskNotFound):
		return response.NewError(40403, err.Error())
	case errors.Is(err, models.ErrCardAlreadyRedeemed):
		return response.NewError(40901, err.Error())
	case errors.Is(err, models.ErrInsufficientBalance):
		return response.NewError(40902, err.Error())
	case errors.Is(err, models.ErrStoreUnavailable):
		return response.NewError(50301, err.Error())
	default:
		return err
	}
}
