package models

// NamingSeriesModel holds the last number handed out for a name prefix
type NamingSeriesModel struct {
	Prefix  string `gorm:"type:varchar(64);primary_key"`
	Counter int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (NamingSeriesModel) TableName() string {
	return "naming_series"
}
