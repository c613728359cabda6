package models

// Device 机柜内设备（交换机、服务器等）
type Device struct {
	BaseModel
	CabinetID    uint   `gorm:"not null;index" json:"cabinet_id"`
	Name         string `gorm:"type:varchar(50);not null" json:"name"`
	Model        string `gorm:"type:varchar(100)" json:"model"`
	SerialNumber string `gorm:"type:varchar(50)" json:"serial_number"`
	PositionU    int    `json:"position_u"` // 安装起始U位
	Notes        string `gorm:"type:varchar(255)" json:"notes,omitempty"`
	IdentifierID *uint  `gorm:"index" json:"identifier_id,omitempty"`

	// Relations
	Cabinet    *Cabinet    `gorm:"foreignKey:CabinetID" json:"cabinet,omitempty"`
	Identifier *Identifier `gorm:"foreignKey:IdentifierID" json:"identifier,omitempty"`
	Panels     []Panel     `gorm:"foreignKey:DeviceID" json:"panels,omitempty"`
}
