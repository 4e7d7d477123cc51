package models

import (
	"time"

	"time-control-api/pkg/clock"
)

// Worked-minutes modes. Auto means the value is derived on read from the
// joined rule's correction; manual means it was computed eagerly (main
// company) or fixed by an administrator. Auto→manual only.
const (
	WorkedMinutesAuto   = "auto"
	WorkedMinutesManual = "manual"
)

// TimeEntry records a resource's worked day on a site. Times of day are HH:MM
// strings so the end-after-start CHECK compares correctly. An entry with no
// end time is "open".
type TimeEntry struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	WorkSiteID        uint      `gorm:"not null;index" json:"work_site_id"`
	ResourceID        uint      `gorm:"not null;index" json:"resource_id"`
	AppliedRuleID     *uint     `gorm:"index" json:"applied_rule_id"`
	WorkDate          time.Time `gorm:"type:date;not null;index" json:"work_date"`
	StartTime         string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime           *string   `gorm:"type:varchar(5);check:chk_time_entries_times,end_time IS NULL OR end_time > start_time" json:"end_time"`
	WorkedMinutes     *int      `json:"worked_minutes"`
	WorkedMinutesMode string    `gorm:"type:varchar(10);not null;default:'auto'" json:"worked_minutes_mode"`
	Comment           *string   `json:"comment"`
	CreatedBy         uint      `gorm:"not null" json:"created_by"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	WorkSite    WorkSite  `gorm:"foreignKey:WorkSiteID" json:"-"`
	Resource    Resource  `gorm:"foreignKey:ResourceID" json:"-"`
	AppliedRule *WorkRule `gorm:"foreignKey:AppliedRuleID;constraint:OnDelete:SET NULL" json:"-"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

// IsValid checks the stored fields.
func (t *TimeEntry) IsValid() bool {
	if t.WorkSiteID == 0 || t.ResourceID == 0 {
		return false
	}
	if t.WorkDate.IsZero() {
		return false
	}
	if !clock.IsTimeOfDay(t.StartTime) {
		return false
	}
	if t.EndTime != nil && !clock.IsTimeOfDay(*t.EndTime) {
		return false
	}
	if t.WorkedMinutesMode != WorkedMinutesAuto && t.WorkedMinutesMode != WorkedMinutesManual {
		return false
	}
	return true
}

// TimeEntryView is the joined read shape returned by the engine: entry fields
// plus work-site/company/resource names and the correction of whichever rule
// applies at read time.
type TimeEntryView struct {
	ID                uint    `json:"id"`
	WorkDate          string  `json:"work_date"`
	StartTime         string  `json:"start_time"`
	EndTime           *string `json:"end_time"`
	WorkedMinutes     *int    `json:"worked_minutes"`
	WorkedMinutesMode string  `json:"worked_minutes_mode"`
	AppliedRuleID     *uint   `json:"applied_rule_id"`
	Correction        *int    `json:"correction"`
	Comment           *string `json:"comment"`
	CreatedBy         uint    `json:"created_by"`
	WorkSite          Ref     `json:"work_site"`
	Company           Ref     `json:"company"`
	Resource          Ref     `json:"resource"`
}
