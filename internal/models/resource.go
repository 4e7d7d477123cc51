package models

import "time"

// Resource types
const (
	ResourceWorker    = "worker"
	ResourceEquipment = "equipment"
)

// Resource is a worker or an equipment unit. It belongs to exactly one
// company; the company decides which rule set governs its time entries.
type Resource struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	CompanyID    uint      `gorm:"not null;index" json:"company_id"`
	ResourceType string    `gorm:"type:varchar(20);not null;default:'worker'" json:"resource_type"`
	Category     *string   `json:"category"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Company Company `gorm:"foreignKey:CompanyID" json:"company"`
}

func (Resource) TableName() string {
	return "resources"
}

// IsValid checks the stored fields.
func (r *Resource) IsValid() bool {
	if r.Name == "" {
		return false
	}
	if r.CompanyID == 0 {
		return false
	}
	if r.ResourceType != ResourceWorker && r.ResourceType != ResourceEquipment {
		return false
	}
	return true
}
