package gorm

// CollisionCheck flags a depth interval of a Borehole as a proximity risk
// to a neighbouring well. Schema only.
type CollisionCheck struct {
	ID        uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	HoleID    string  `gorm:"column:hole_id;type:text;not null;index:idx_collision_checks_hole_id" json:"hole_id"`
	ZoneStart float64 `gorm:"column:zone_start;not null" json:"zone_start"`
	ZoneEnd   float64 `gorm:"column:zone_end;not null" json:"zone_end"`
	RiskLevel string  `gorm:"column:risk_level;type:text;not null" json:"risk_level"`
}

func (CollisionCheck) TableName() string {
	return "collision_checks"
}
