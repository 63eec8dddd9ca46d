package service

import (
	"errors"
	"time"

	"Gather_Hub/internal/model"
	"Gather_Hub/internal/pkg"

	"gorm.io/gorm"
)

const (
	// 列表分页固定大小：全量列表 20，按天过滤列表 10
	ListPageSize    = 20
	DayListPageSize = 10
)

// GatheringStore 活动的持久化接口，mysql.GatheringRepository 为默认实现
type GatheringStore interface {
	Create(g *model.Gathering) error
	FindByID(id uint64) (*model.Gathering, error)
	FindByIDAndProvider(id, providerID uint64) (*model.Gathering, error)
	List(offset, limit int) ([]model.Gathering, error)
	ListByDay(from, to time.Time, offset, limit int) ([]model.Gathering, error)
	ListByProvider(providerID uint64, offset, limit int) ([]model.Gathering, error)
	Update(g *model.Gathering) error
	Delete(id uint64) error
}

// GatheringCache 详情缓存，失败只影响性能不影响语义
type GatheringCache interface {
	Get(id uint64) (*model.Gathering, error)
	Set(g *model.Gathering) error
	Delete(id uint64) error
}

type GatheringInput struct {
	Title        string
	Description  string
	Localization string
	Date         string
	Banner       string
}

type GatheringService struct {
	repo  GatheringStore
	cache GatheringCache
	clock pkg.Clock
}

func NewGatheringService(repo GatheringStore, cache GatheringCache, clock pkg.Clock) *GatheringService {
	return &GatheringService{repo: repo, cache: cache, clock: clock}
}

// validate 必填字段与时间格式校验，返回解析后的活动时间
func (in *GatheringInput) validate() (time.Time, error) {
	if in.Title == "" || in.Description == "" || in.Localization == "" || in.Banner == "" {
		return time.Time{}, ErrValidation
	}
	date, err := time.Parse(time.RFC3339, in.Date)
	if err != nil {
		return time.Time{}, ErrValidation
	}
	return date, nil
}

func (s *GatheringService) List(page int) ([]model.Gathering, error) {
	if page <= 0 {
		page = 1
	}
	return s.repo.List((page-1)*ListPageSize, ListPageSize)
}

// ListByDate 某一天的活动列表，date 必填（YYYY-MM-DD）
func (s *GatheringService) ListByDate(date string, page int) ([]model.Gathering, error) {
	if date == "" {
		return nil, ErrValidation
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrValidation
	}
	if page <= 0 {
		page = 1
	}
	from := day
	to := day.Add(24*time.Hour - time.Nanosecond)
	return s.repo.ListByDay(from, to, (page-1)*DayListPageSize, DayListPageSize)
}

// ListByProvider 组织者自己的活动
func (s *GatheringService) ListByProvider(providerID uint64, page int) ([]model.Gathering, error) {
	if page <= 0 {
		page = 1
	}
	return s.repo.ListByProvider(providerID, (page-1)*ListPageSize, ListPageSize)
}

func (s *GatheringService) Create(providerID uint64, in GatheringInput) (*model.Gathering, error) {
	date, err := in.validate()
	if err != nil {
		return nil, err
	}

	// 取整到小时比较，不允许创建已经过去的活动
	if date.Truncate(time.Hour).Before(s.clock.Now().Truncate(time.Hour)) {
		return nil, ErrPastDate
	}

	g := &model.Gathering{
		Title:        in.Title,
		Description:  in.Description,
		Localization: in.Localization,
		Date:         date,
		Banner:       in.Banner,
		ProviderID:   providerID,
	}
	if err := s.repo.Create(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GatheringService) Update(providerID, id uint64, in GatheringInput) (*model.Gathering, error) {
	// 存在性和归属一起查，别人的活动和不存在的活动不可区分
	g, err := s.repo.FindByIDAndProvider(id, providerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	date, err := in.validate()
	if err != nil {
		return nil, err
	}
	// 以新时间判断，不允许把活动改到过去
	if date.Truncate(time.Hour).Before(s.clock.Now().Truncate(time.Hour)) {
		return nil, ErrPastDate
	}

	g.Title = in.Title
	g.Description = in.Description
	g.Localization = in.Localization
	g.Date = date
	g.Banner = in.Banner
	if err := s.repo.Update(g); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(g.ID)
	return g, nil
}

// Destroy 取消活动。已举办的活动不允许删除，和"不能修改过去"保持同一条规则。
func (s *GatheringService) Destroy(providerID, id uint64) (*model.Gathering, error) {
	g, err := s.repo.FindByIDAndProvider(id, providerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if g.HourStart().Before(s.clock.Now().Truncate(time.Hour)) {
		return nil, ErrPastDate
	}

	if err := s.repo.Delete(g.ID); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(g.ID)
	return g, nil
}

// FindByID 详情查询，先走缓存
func (s *GatheringService) FindByID(id uint64) (*model.Gathering, error) {
	if g, err := s.cache.Get(id); err == nil {
		return g, nil
	}
	g, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	_ = s.cache.Set(g)
	return g, nil
}
