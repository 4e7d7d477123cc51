package models

import "time"

// Schedule is the main company's fixed working day: start/end times of day
// plus a correction, valid inside [ValidFrom, ValidTo]. Exactly one must be
// active on any date the main company operates.
type Schedule struct {
	ID                   uint       `gorm:"primarykey" json:"id"`
	CompanyID            uint       `gorm:"not null;index" json:"company_id"`
	StartTime            string     `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime              string     `gorm:"type:varchar(5);not null;check:chk_schedules_times,end_time > start_time" json:"end_time"`
	DayCorrectionMinutes int        `gorm:"not null;default:0" json:"day_correction_minutes"`
	ValidFrom            time.Time  `gorm:"type:date;not null" json:"valid_from"`
	ValidTo              *time.Time `gorm:"type:date" json:"valid_to"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (Schedule) TableName() string {
	return "schedules"
}
