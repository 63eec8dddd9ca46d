package model

import "time"

type Subscription struct {
	ID          uint64 `gorm:"primaryKey"`
	UserID      uint64 `gorm:"not null;index;uniqueIndex:uk_user_gathering;uniqueIndex:uk_user_slot"`
	GatheringID uint64 `gorm:"not null;index;uniqueIndex:uk_user_gathering"`
	// Slot 为活动时间取整到小时的快照，(user_id, slot) 唯一约束在存储层兜底同时段冲突
	Slot      time.Time `gorm:"not null;uniqueIndex:uk_user_slot"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// NotifyOutbox 订阅事件监控表
type NotifyOutbox struct {
	ID          uint64 `gorm:"primaryKey"`
	EventType   string `gorm:"size:16;not null"` // subscribe / unsubscribe
	UserID      uint64 `gorm:"not null"`
	GatheringID uint64 `gorm:"not null"`
	Payload     string `gorm:"type:json;not null"`
	Status      int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry       int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (NotifyOutbox) TableName() string { return "notify_outbox" }
