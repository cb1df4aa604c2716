package gorm

// Survey is a single along-hole measurement station belonging to a
// Borehole through HoleID. The table is created with the extended schema
// but nothing reads or writes it yet. No foreign key is declared on
// either side, so boreholes stay writable whatever these tables hold.
type Survey struct {
	ID          uint     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	HoleID      string   `gorm:"column:hole_id;type:text;not null;index:idx_surveys_hole_id" json:"hole_id"`
	SurveyPoint int      `gorm:"column:survey_point;not null" json:"survey_point"`
	Depth       float64  `gorm:"column:depth;not null" json:"depth"`
	Azimuth     float64  `gorm:"column:azimuth;not null" json:"azimuth"`
	Inclination float64  `gorm:"column:inclination;not null" json:"inclination"`
	Northing    *float64 `gorm:"column:northing" json:"northing"`
	Easting     *float64 `gorm:"column:easting" json:"easting"`
	TVD         *float64 `gorm:"column:tvd" json:"tvd"`
}

func (Survey) TableName() string {
	return "surveys"
}
