package models

import "time"

// CompanyKind filters existence assertions: the main company runs on fixed
// schedules and is treated specially almost everywhere.
type CompanyKind string

const (
	CompanyAny     CompanyKind = "any"
	CompanyRegular CompanyKind = "regular"
	CompanyMain    CompanyKind = "main"
)

type Company struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	IsMain    bool      `gorm:"default:false" json:"is_main"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

// Matches reports whether the company satisfies a kind filter.
func (c *Company) Matches(kind CompanyKind) bool {
	switch kind {
	case CompanyRegular:
		return !c.IsMain
	case CompanyMain:
		return c.IsMain
	default:
		return true
	}
}
