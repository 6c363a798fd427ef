package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyName     string     `gorm:"type:varchar(255);not null"`
	SoftDeleteLevel uint8      `gorm:"not null;default:0;index"`
	UserId          *uuid.UUID `gorm:"type:uuid;index"`
	Quotes          []Quote    `gorm:"foreignKey:CompanyId"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
}

func (Company) TableName() string {
	return "companies"
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	assignId(&c.Id)
	return nil
}

type Quote struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name            string     `gorm:"type:varchar(255);not null"`
	Price           float64    `gorm:"not null;default:0"`
	CompanyId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	SoftDeleteLevel uint8      `gorm:"not null;default:0;index"`
	UserId          *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
}

func (Quote) TableName() string {
	return "quotes"
}

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	assignId(&q.Id)
	return nil
}
