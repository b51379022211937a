package model

import "time"

type Glassware struct {
	ID         int64 `gorm:"primaryKey;autoIncrement:false"`
	Name       *string
	CreateDate *time.Time
}

func (Glassware) TableName() string {
	return "glassware"
}

type Availability struct {
	ID          int64 `gorm:"primaryKey;autoIncrement:false"`
	Name        *string
	Description *string
}

func (Availability) TableName() string {
	return "availability"
}
