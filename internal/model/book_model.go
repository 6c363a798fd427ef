package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book supports single soft delete.
type Book struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title       string     `gorm:"type:varchar(255);not null"`
	SoftDeleted bool       `gorm:"not null;default:false;index"`
	UserId      *uuid.UUID `gorm:"type:uuid;index"`
	Reviews     []Review   `gorm:"foreignKey:BookId"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (Book) TableName() string {
	return "books"
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	assignId(&b.Id)
	return nil
}

// Review is not soft deletable; it follows its book through the visibility
// of the book itself.
type Review struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	NumStars  int       `gorm:"not null"`
	BookId    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	assignId(&r.Id)
	return nil
}
