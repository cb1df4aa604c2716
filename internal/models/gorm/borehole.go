package gorm

// Borehole is one directional-drilling well record. HoleID is the natural
// key and is unique across the table; ID is the surrogate key assigned on
// insert.
type Borehole struct {
	ID          uint     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	HoleID      string   `gorm:"column:hole_id;type:text;not null;uniqueIndex:idx_boreholes_hole_id" json:"hole_id"`
	Azimuth     float64  `gorm:"column:azimuth;not null" json:"azimuth"`
	Inclination float64  `gorm:"column:inclination;not null" json:"inclination"`
	Depth       float64  `gorm:"column:depth;not null" json:"depth"`
	Northing    *float64 `gorm:"column:northing" json:"northing"`
	Easting     *float64 `gorm:"column:easting" json:"easting"`
	TVD         *float64 `gorm:"column:tvd" json:"tvd"`
	Deviation   *float64 `gorm:"column:deviation" json:"deviation"`
}

// TableName specifies the table name for GORM
func (Borehole) TableName() string {
	return "boreholes"
}
