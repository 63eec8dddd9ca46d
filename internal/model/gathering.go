package model

import "time"

type Gathering struct {
	ID           uint64    `gorm:"primaryKey"`
	Title        string    `gorm:"size:200;not null"`
	Description  string    `gorm:"type:text"`
	Localization string    `gorm:"size:255;not null"`
	Date         time.Time `gorm:"not null;index:idx_gathering_date"`
	Banner       string    `gorm:"size:255;not null"`
	ProviderID   uint64    `gorm:"not null;index"` // 创建后不可变更
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HourStart 取整到小时，用于"是否已举办"的比较
func (g *Gathering) HourStart() time.Time {
	return g.Date.Truncate(time.Hour)
}
