package model

import "time"

type Category struct {
	ID         int64 `gorm:"primaryKey;autoIncrement:false"`
	Name       *string
	CreateDate *time.Time
}

func (Category) TableName() string {
	return "categories"
}

// Style ranges are nullable so that an unknown bound is never stored as zero.
type Style struct {
	ID          int64 `gorm:"primaryKey;autoIncrement:false"`
	CategoryID  *int64
	Name        *string
	ShortName   *string
	Description *string
	IBUMin      *float64 `gorm:"column:ibu_min"`
	IBUMax      *float64 `gorm:"column:ibu_max"`
	ABVMin      *float64 `gorm:"column:abv_min"`
	ABVMax      *float64 `gorm:"column:abv_max"`
	SRMMin      *float64 `gorm:"column:srm_min"`
	SRMMax      *float64 `gorm:"column:srm_max"`
	OGMin       *float64 `gorm:"column:og_min"`
	FGMin       *float64 `gorm:"column:fg_min"`
	FGMax       *float64 `gorm:"column:fg_max"`
	CreateDate  *time.Time
	UpdateDate  *time.Time
}

func (Style) TableName() string {
	return "styles"
}
