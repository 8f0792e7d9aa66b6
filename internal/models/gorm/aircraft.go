package gorm

import "time"

// Aircraft is one tracked airframe. Registration and icao24 are both
// unique; a collision means the fleet configuration is wrong.
type Aircraft struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Registration string    `gorm:"column:registration;type:varchar(10);uniqueIndex;not null"`
	ICAO24       string    `gorm:"column:icao24;type:varchar(6);uniqueIndex;not null"`
	Description  string    `gorm:"column:description;type:varchar(100)"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Aircraft) TableName() string {
	return "aircraft"
}
