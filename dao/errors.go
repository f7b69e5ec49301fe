package dao

import (
	"context"
	"errors"

	"Pointly/models"
)

// mapStoreErr 把底层超时统一映射为可重试的存储错误，领域错误原样透传。
// 调用方主动取消的请求不在重试范畴，保持原错误。
func mapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return models.ErrStoreUnavailable
	}
	return err
}
