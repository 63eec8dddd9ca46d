package mysql

import (
	"time"

	"Gather_Hub/internal/model"

	"gorm.io/gorm"
)

type GatheringRepository struct {
	DB *gorm.DB
}

func (r *GatheringRepository) Create(g *model.Gathering) error {
	return r.DB.Create(g).Error
}

func (r *GatheringRepository) FindByID(id uint64) (*model.Gathering, error) {
	var g model.Gathering
	err := r.DB.First(&g, id).Error
	return &g, err
}

// FindByIDAndProvider 归属校验和存在性校验合在一次查询里
func (r *GatheringRepository) FindByIDAndProvider(id, providerID uint64) (*model.Gathering, error) {
	var g model.Gathering
	err := r.DB.Where("id = ? AND provider_id = ?", id, providerID).First(&g).Error
	return &g, err
}

// List 基础分页查询，按活动时间升序
func (r *GatheringRepository) List(offset, limit int) ([]model.Gathering, error) {
	var list []model.Gathering
	err := r.DB.Order("date ASC").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

// ListByDay 查询 [from, to] 区间内的活动，按活动时间降序
func (r *GatheringRepository) ListByDay(from, to time.Time, offset, limit int) ([]model.Gathering, error) {
	var list []model.Gathering
	err := r.DB.
		Where("date BETWEEN ? AND ?", from, to).
		Order("date DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// ListByProvider 组织者自己的活动列表
func (r *GatheringRepository) ListByProvider(providerID uint64, offset, limit int) ([]model.Gathering, error) {
	var list []model.Gathering
	err := r.DB.
		Where("provider_id = ?", providerID).
		Order("date ASC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// Update 只覆盖可变字段，provider_id 不参与
func (r *GatheringRepository) Update(g *model.Gathering) error {
	return r.DB.Model(&model.Gathering{ID: g.ID}).
		Select("title", "description", "localization", "date", "banner").
		Updates(g).Error
}

func (r *GatheringRepository) Delete(id uint64) error {
	return r.DB.Delete(&model.Gathering{}, id).Error
}
