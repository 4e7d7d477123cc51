package models

import "time"

// Vacation is a resource's vacation period. EndDate nil means open-ended. No
// two periods for the same resource may overlap; the engine asserts this
// inside the insert transaction and surfaces a conflict.
type Vacation struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	ResourceID uint       `gorm:"not null;index" json:"resource_id"`
	StartDate  time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate    *time.Time `gorm:"type:date;check:chk_vacations_period,end_date IS NULL OR end_date >= start_date" json:"end_date"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Resource Resource `gorm:"foreignKey:ResourceID" json:"-"`
}

func (Vacation) TableName() string {
	return "vacations"
}

func (v *Vacation) GetID() uint { return v.ID }
func (v *Vacation) GetResourceID() uint { return v.ResourceID }
func (v *Vacation) GetStartDate() time.Time { return v.StartDate }
func (v *Vacation) GetEndDate() *time.Time { return v.EndDate }
func (v *Vacation) SetPeriod(start time.Time, end *time.Time) {
	v.StartDate = start
	v.EndDate = end
}
func (v *Vacation) SetResourceID(id uint) { v.ResourceID = id }
func (v *Vacation) ResourceRef() Ref { return Ref{ID: v.Resource.ID, Name: v.Resource.Name} }

// SickLeave mirrors Vacation for sick periods.
type SickLeave struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	ResourceID uint       `gorm:"not null;index" json:"resource_id"`
	StartDate  time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate    *time.Time `gorm:"type:date;check:chk_sick_leaves_period,end_date IS NULL OR end_date >= start_date" json:"end_date"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Resource Resource `gorm:"foreignKey:ResourceID" json:"-"`
}

func (SickLeave) TableName() string {
	return "sick_leaves"
}

func (s *SickLeave) GetID() uint { return s.ID }
func (s *SickLeave) GetResourceID() uint { return s.ResourceID }
func (s *SickLeave) GetStartDate() time.Time { return s.StartDate }
func (s *SickLeave) GetEndDate() *time.Time { return s.EndDate }
func (s *SickLeave) SetPeriod(start time.Time, end *time.Time) {
	s.StartDate = start
	s.EndDate = end
}
func (s *SickLeave) SetResourceID(id uint) { s.ResourceID = id }
func (s *SickLeave) ResourceRef() Ref { return Ref{ID: s.Resource.ID, Name: s.Resource.Name} }

// AbsenceRecord is what the generic absence engine needs from either variant.
type AbsenceRecord interface {
	GetID() uint
	GetResourceID() uint
	GetStartDate() time.Time
	GetEndDate() *time.Time
	SetPeriod(start time.Time, end *time.Time)
	SetResourceID(id uint)
	ResourceRef() Ref
}

// AbsenceView is the joined read shape shared by both variants.
type AbsenceView struct {
	ID        uint    `json:"id"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Resource  Ref     `json:"resource"`
}
