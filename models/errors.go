package models

import "errors"

// 领域错误。dao / service 统一使用这些哨兵错误区分失败原因，
// handler 层再映射为响应码。
var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrCardNotFound        = errors.New("兑换卡不存在")
	ErrCardAlreadyRedeemed = errors.New("兑换卡已被使用")
	ErrIneligibleUser      = errors.New("用户不符合兑换条件")
	ErrInsufficientBalance = errors.New("积分余额不足")
	ErrInvalidArgument     = errors.New("参数不合法")
	ErrTaskNotFound        = errors.New("任务不存在")
	ErrInvalidTransition   = errors.New("任务状态不允许该变更")
	ErrStoreUnavailable    = errors.New("存储服务暂不可用，请稍后重试")
)
