package models

const (
	RoleUser  string = "user"
	RoleAdmin string = "admin"
)

type User struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Name         string `gorm:"not null" json:"name"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:'user'" json:"role"`
	Active       bool   `gorm:"default:true" json:"active"`

	WorkSites []WorkSite `gorm:"many2many:work_site_users" json:"work_sites,omitempty"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
