package gorm

import "time"

// StatusHistory is one live-status sample for a tracked aircraft. Rows are
// purged once their timestamp falls behind the retention horizon.
type StatusHistory struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	AircraftID uint      `gorm:"column:aircraft_id;not null;index"`
	Timestamp  int64     `gorm:"column:timestamp;index"`
	Latitude   *float64  `gorm:"column:latitude"`
	Longitude  *float64  `gorm:"column:longitude"`
	Altitude   *float64  `gorm:"column:altitude"`
	Velocity   *float64  `gorm:"column:velocity"`
	Heading    *float64  `gorm:"column:heading"`
	OnGround   bool      `gorm:"column:on_ground"`
	Callsign   *string   `gorm:"column:callsign;type:varchar(10)"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (StatusHistory) TableName() string {
	return "status_history"
}
