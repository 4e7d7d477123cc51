package models

import "time"

type WorkSite struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Code      string     `gorm:"uniqueIndex;not null" json:"code"`
	Open      bool       `gorm:"default:true" json:"open"`
	StartDate *time.Time `gorm:"type:date" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Assigned users drive the non-admin site authorization check.
	Users []User `gorm:"many2many:work_site_users" json:"users,omitempty"`
}

func (WorkSite) TableName() string {
	return "work_sites"
}

// Ref is the joined id/name pair embedded in read responses.
type Ref struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// SiteRef returns the site as an id/name pair for joined views.
func (w *WorkSite) SiteRef() Ref {
	return Ref{ID: w.ID, Name: w.Name}
}
