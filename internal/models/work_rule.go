package models

import "time"

// WorkRule is a day-correction-in-minutes override for a (work site, company)
// pair, valid inside [ValidFrom, ValidTo]. ValidTo nil means open-ended. At
// most one rule should be valid per pair and date; the resolver still breaks
// ties deterministically because entry discipline, not the database, enforces
// the non-overlap.
type WorkRule struct {
	ID                   uint       `gorm:"primarykey" json:"id"`
	WorkSiteID           uint       `gorm:"not null;index:idx_rule_site_company" json:"work_site_id"`
	CompanyID            uint       `gorm:"not null;index:idx_rule_site_company" json:"company_id"`
	DayCorrectionMinutes int        `gorm:"not null;default:0" json:"day_correction_minutes"`
	ValidFrom            time.Time  `gorm:"type:date;not null" json:"valid_from"`
	ValidTo              *time.Time `gorm:"type:date" json:"valid_to"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	WorkSite WorkSite `gorm:"foreignKey:WorkSiteID" json:"-"`
	Company  Company  `gorm:"foreignKey:CompanyID" json:"-"`
}

func (WorkRule) TableName() string {
	return "work_site_company_rules"
}

// WorkRuleView is the joined read shape.
type WorkRuleView struct {
	ID                   uint    `json:"id"`
	DayCorrectionMinutes int     `json:"day_correction_minutes"`
	ValidFrom            string  `json:"valid_from"`
	ValidTo              *string `json:"valid_to"`
	WorkSite             Ref     `json:"work_site"`
	Company              Ref     `json:"company"`
}
