package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"Gather_Hub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrSlotConflict 同一用户已订阅同一天同一小时的活动（或重复订阅同一活动）
	ErrSlotConflict = errors.New("subscription slot conflict")
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

type OutboxRepository struct {
	DB *gorm.DB
}

// Subscribe 冲突检查、插入与 outbox 写入在同一事务内完成。
// 行锁挡住同用户的并发订阅；(user_id, slot) 与 (user_id, gathering_id)
// 唯一索引兜底锁不到的幻读插入。
func (r *SubscriptionRepository) Subscribe(ctx context.Context, userID uint64, g *model.Gathering) error {
	slot := g.HourStart()
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []model.Subscription
		// select for update 避免竞争
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Find(&rows).Error; err != nil {
			return err
		}
		for i := range rows {
			if rows[i].GatheringID == g.ID || rows[i].Slot.Equal(slot) {
				return ErrSlotConflict
			}
		}

		sub := model.Subscription{UserID: userID, GatheringID: g.ID, Slot: slot}
		if err := tx.Create(&sub).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotConflict
			}
			return err
		}

		return insertOutbox(tx, "subscribe", userID, g.ID)
	})
}

// Unsubscribe 幂等删除，关系本就不存在也算成功。返回是否真的删除了。
func (r *SubscriptionRepository) Unsubscribe(ctx context.Context, userID, gatheringID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND gathering_id = ?", userID, gatheringID).
			Delete(&model.Subscription{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return insertOutbox(tx, "unsubscribe", userID, gatheringID)
	})
	return changed, err
}

// ListGatheringsForUser 用户当前订阅的活动，按活动时间升序
func (r *SubscriptionRepository) ListGatheringsForUser(ctx context.Context, userID uint64) ([]model.Gathering, error) {
	var list []model.Gathering
	err := r.DB.WithContext(ctx).
		Joins("JOIN subscriptions s ON s.gathering_id = gatherings.id").
		Where("s.user_id = ?", userID).
		Order("gatherings.date ASC").
		Find(&list).Error
	return list, err
}

func (r *SubscriptionRepository) IsSubscribed(ctx context.Context, userID, gatheringID uint64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("user_id = ? AND gathering_id = ?", userID, gatheringID).
		Count(&count).Error
	return count > 0, err
}

// 插入outbox事件表
func insertOutbox(tx *gorm.DB, event string, userID, gatheringID uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"user":       userID,
		"gathering":  gatheringID,
	})
	ob := &model.NotifyOutbox{
		EventType:   event,
		UserID:      userID,
		GatheringID: gatheringID,
		Payload:     string(payload),
		Status:      0,
	}
	return tx.Create(ob).Error
}

// List outbox查询
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.NotifyOutbox, error) {
	var list []model.NotifyOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate outbox记录消息失败重试
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.NotifyOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

// SuccessUpdate outbox成功记录消息更新
func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.NotifyOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}
