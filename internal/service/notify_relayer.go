package service

import (
	"context"
	"log"
	"time"

	"Gather_Hub/internal/model"
	"Gather_Hub/internal/pkg"
	"Gather_Hub/internal/repository/mysql"
)

type Sender func(ctx context.Context, ob *model.NotifyOutbox) error

// OutboxRelayer 定时把 notify_outbox 里的待发事件投递出去
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(repo *mysql.OutboxRepository, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      repo,
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

// Run outbox启动器
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

// 从数据库读取事件记录，逐条交给 sender，失败的标记重试
func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// LogSender 默认 sender（占位）：先打印，生产环境换成 Kafka Producer
func LogSender(ctx context.Context, ob *model.NotifyOutbox) error {
	log.Printf("OUTBOX SEND type=%s user=%d gathering=%d payload=%s", ob.EventType, ob.UserID, ob.GatheringID, ob.Payload)
	return nil
}

// KafkaSender 用 kafka producer 投递 outbox 事件，按活动 id 分区
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.NotifyOutbox) error {
		return p.Send(ctx, pkg.MakeKeyFromID(ob.GatheringID), []byte(ob.Payload))
	}
}
