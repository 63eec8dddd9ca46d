package model

import "time"

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"size:64;not null"`
	Email     string `gorm:"uniqueIndex;size:64;not null"`
	Password  string `gorm:"size:255;not null"`
	Provider  bool   `gorm:"not null;default:false"` // 是否为组织者账号
	CreatedAt time.Time
	UpdatedAt time.Time
}
