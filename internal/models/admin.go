package models

// Admin is a staff account with access to the review dashboard.
type Admin struct {
	BaseModel

	Email    string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	IsActive bool      `gorm:"default:true" json:"is_active"`
	Role     AdminRole `gorm:"size:20;not null" json:"role"`
}

func (Admin) TableName() string {
	return "admins"
}
