package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDModel 以 UUID 字符串作为主键，替代自增 ID 对外暴露。
type UUIDModel struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate fills an empty primary key.
func (m *UUIDModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
