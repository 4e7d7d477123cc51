package models

import "time"

// CompanyAttendance is a reported headcount for a company on a site and date.
// Never created for the main company: its headcount is implicit from the
// schedule. One report per (site, company, date).
type CompanyAttendance struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	WorkSiteID   uint      `gorm:"not null;uniqueIndex:idx_company_attendance_day" json:"work_site_id"`
	CompanyID    uint      `gorm:"not null;uniqueIndex:idx_company_attendance_day" json:"company_id"`
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:idx_company_attendance_day" json:"date"`
	WorkersCount int       `gorm:"not null;default:0;check:chk_company_attendance_count,workers_count >= 0" json:"workers_count"`
	CreatedBy    uint      `gorm:"not null" json:"created_by"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	WorkSite WorkSite `gorm:"foreignKey:WorkSiteID" json:"-"`
	Company  Company  `gorm:"foreignKey:CompanyID" json:"-"`
}

func (CompanyAttendance) TableName() string {
	return "company_attendance"
}

func (a *CompanyAttendance) GetID() uint { return a.ID }
func (a *CompanyAttendance) GetWorkSiteID() uint { return a.WorkSiteID }
func (a *CompanyAttendance) GetPartyID() uint { return a.CompanyID }
func (a *CompanyAttendance) GetDate() time.Time { return a.Date }
func (a *CompanyAttendance) GetWorkersCount() int { return a.WorkersCount }
func (a *CompanyAttendance) SetWorkersCount(n int) { a.WorkersCount = n }
func (a *CompanyAttendance) GetCreatedBy() uint { return a.CreatedBy }
func (a *CompanyAttendance) PartyRef() Ref { return Ref{ID: a.Company.ID, Name: a.Company.Name} }
func (a *CompanyAttendance) SiteRef() Ref { return Ref{ID: a.WorkSite.ID, Name: a.WorkSite.Name} }

// ContractorAttendance is the subcontractor variant of the headcount report.
type ContractorAttendance struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	WorkSiteID   uint      `gorm:"not null;uniqueIndex:idx_contractor_attendance_day" json:"work_site_id"`
	ContractorID uint      `gorm:"not null;uniqueIndex:idx_contractor_attendance_day" json:"contractor_id"`
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:idx_contractor_attendance_day" json:"date"`
	WorkersCount int       `gorm:"not null;default:0;check:chk_contractor_attendance_count,workers_count >= 0" json:"workers_count"`
	CreatedBy    uint      `gorm:"not null" json:"created_by"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	WorkSite   WorkSite   `gorm:"foreignKey:WorkSiteID" json:"-"`
	Contractor Contractor `gorm:"foreignKey:ContractorID" json:"-"`
}

func (ContractorAttendance) TableName() string {
	return "contractor_attendance"
}

func (a *ContractorAttendance) GetID() uint { return a.ID }
func (a *ContractorAttendance) GetWorkSiteID() uint { return a.WorkSiteID }
func (a *ContractorAttendance) GetPartyID() uint { return a.ContractorID }
func (a *ContractorAttendance) GetDate() time.Time { return a.Date }
func (a *ContractorAttendance) GetWorkersCount() int { return a.WorkersCount }
func (a *ContractorAttendance) SetWorkersCount(n int) { a.WorkersCount = n }
func (a *ContractorAttendance) GetCreatedBy() uint { return a.CreatedBy }
func (a *ContractorAttendance) PartyRef() Ref {
	return Ref{ID: a.Contractor.ID, Name: a.Contractor.Name}
}
func (a *ContractorAttendance) SiteRef() Ref { return Ref{ID: a.WorkSite.ID, Name: a.WorkSite.Name} }

// AttendanceRecord is what the generic attendance engine needs from either
// variant.
type AttendanceRecord interface {
	GetID() uint
	GetWorkSiteID() uint
	GetPartyID() uint
	GetDate() time.Time
	GetWorkersCount() int
	SetWorkersCount(n int)
	GetCreatedBy() uint
	PartyRef() Ref
	SiteRef() Ref
}

// AttendanceView is the joined read shape shared by both variants.
type AttendanceView struct {
	ID           uint   `json:"id"`
	Date         string `json:"date"`
	WorkersCount int    `json:"workers_count"`
	CreatedBy    uint   `json:"created_by"`
	WorkSite     Ref    `json:"work_site"`
	Party        Ref    `json:"party"`
}
