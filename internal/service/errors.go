package service

import "errors"

// 业务错误统一成哨兵变量，handler 层据此映射状态码；
// 不认识的错误一律当作基础设施故障透传（500）。
var (
	ErrValidation   = errors.New("invalid params")
	ErrPastDate     = errors.New("gathering already held")
	ErrNotFound     = errors.New("gathering not found")
	ErrNotOrganizer = errors.New("operation not allowed for this user")
	ErrSlotTaken    = errors.New("already subscribed to a gathering at this hour")
)
