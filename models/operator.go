package models

// Operator 系统操作员账户
type Operator struct {
	BaseModel
	Username string `gorm:"type:varchar(50);unique;not null" json:"username"`
	Password string `gorm:"type:varchar(100);not null" json:"-"` // bcrypt哈希
	Role     string `gorm:"type:varchar(20);not null;default:'operator'" json:"role"`
	Email    string `gorm:"type:varchar(100)" json:"email,omitempty"`
}
