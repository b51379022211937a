package model

import "time"

type Beer struct {
	ID            string `gorm:"primaryKey;autoIncrement:false"`
	Name          *string
	NameDisplay   *string
	Description   *string
	ABV           *float64
	IBU           *float64
	SRM           *float64
	StyleID       *int64
	AvailableID   *int64
	GlasswareID   *int64
	IsOrganic     bool
	IsRetired     bool
	Labels        *string
	Status        *string
	StatusDisplay *string
	CreateDate    *time.Time
	UpdateDate    *time.Time
}

func (Beer) TableName() string {
	return "beers"
}
