package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is a self-referencing hierarchy: deleting a manager cascades to
// everyone who works from them and to their contract.
type Employee struct {
	Id              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name            string            `gorm:"type:varchar(255);not null"`
	ManagerId       *uuid.UUID        `gorm:"type:uuid;index"`
	WorksFromMe     []Employee        `gorm:"foreignKey:ManagerId"`
	Contract        *EmployeeContract `gorm:"foreignKey:EmployeeId"`
	SoftDeleteLevel uint8             `gorm:"not null;default:0;index"`
	UserId          *uuid.UUID        `gorm:"type:uuid;index"`
	CreatedAt       time.Time         `gorm:"autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	assignId(&e.Id)
	return nil
}

type EmployeeContract struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ContractText    string     `gorm:"type:text"`
	EmployeeId      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	SoftDeleteLevel uint8      `gorm:"not null;default:0;index"`
	UserId          *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
}

func (EmployeeContract) TableName() string {
	return "employee_contracts"
}

func (c *EmployeeContract) BeforeCreate(tx *gorm.DB) error {
	assignId(&c.Id)
	return nil
}
