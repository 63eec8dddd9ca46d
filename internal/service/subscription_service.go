package service

import (
	"context"
	"errors"
	"log"
	"time"

	"Gather_Hub/internal/model"
	"Gather_Hub/internal/pkg"
	"Gather_Hub/internal/repository/mysql"

	"gorm.io/gorm"
)

// SubscriptionStore 订阅关系的持久化接口，冲突检查与插入必须在同一事务内
type SubscriptionStore interface {
	Subscribe(ctx context.Context, userID uint64, g *model.Gathering) error
	Unsubscribe(ctx context.Context, userID, gatheringID uint64) (bool, error)
	ListGatheringsForUser(ctx context.Context, userID uint64) ([]model.Gathering, error)
}

type GatheringFinder interface {
	FindByID(id uint64) (*model.Gathering, error)
}

type UserFinder interface {
	FindByID(id uint64) (*model.User, error)
}

// Notifier 订阅成功后通知组织者，尽力而为，失败不回滚订阅
type Notifier interface {
	Send(toName, toEmail, subject, body string) error
}

type SubscriptionService struct {
	subs       SubscriptionStore
	gatherings GatheringFinder
	users      UserFinder
	notifier   Notifier
	clock      pkg.Clock
}

func NewSubscriptionService(subs SubscriptionStore, gatherings GatheringFinder, users UserFinder, notifier Notifier, clock pkg.Clock) *SubscriptionService {
	return &SubscriptionService{
		subs:       subs,
		gatherings: gatherings,
		users:      users,
		notifier:   notifier,
		clock:      clock,
	}
}

// ListForUser 用户当前订阅的活动
func (s *SubscriptionService) ListForUser(ctx context.Context, userID uint64) ([]model.Gathering, error) {
	return s.subs.ListGatheringsForUser(ctx, userID)
}

func (s *SubscriptionService) Subscribe(ctx context.Context, userID, gatheringID uint64) (*model.Gathering, error) {
	g, err := s.findGathering(gatheringID)
	if err != nil {
		return nil, err
	}

	// 组织者不能订阅自己的活动
	if g.ProviderID == userID {
		return nil, ErrNotOrganizer
	}

	// 已举办的活动不能订阅
	if g.HourStart().Before(s.clock.Now().Truncate(time.Hour)) {
		return nil, ErrPastDate
	}

	if err := s.subs.Subscribe(ctx, userID, g); err != nil {
		if errors.Is(err, mysql.ErrSlotConflict) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	s.notifyProvider(userID, g)
	return g, nil
}

// Unsubscribe 退订。关系不存在时也算成功（幂等删除）。
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, gatheringID uint64) (*model.Gathering, error) {
	g, err := s.findGathering(gatheringID)
	if err != nil {
		return nil, err
	}

	if g.ProviderID == userID {
		return nil, ErrNotOrganizer
	}

	if _, err := s.subs.Unsubscribe(ctx, userID, g.ID); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *SubscriptionService) findGathering(id uint64) (*model.Gathering, error) {
	g, err := s.gatherings.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

// 给组织者发邮件通知，失败只记录日志
func (s *SubscriptionService) notifyProvider(userID uint64, g *model.Gathering) {
	provider, err := s.users.FindByID(g.ProviderID)
	if err != nil {
		log.Printf("notify: load provider %d err: %v", g.ProviderID, err)
		return
	}
	subscriber, err := s.users.FindByID(userID)
	if err != nil {
		log.Printf("notify: load subscriber %d err: %v", userID, err)
		return
	}

	body := pkg.SubscriptionNoticeHTML(provider.Name, subscriber.Name, g.Title, g.Date)
	if err := s.notifier.Send(provider.Name, provider.Email, "新报名通知", body); err != nil {
		log.Printf("notify: send to %s err: %v", provider.Email, err)
	}
}
