package models

// Cabinet 机柜，属于某个机房
type Cabinet struct {
	BaseModel
	RoomID       uint   `gorm:"not null;index" json:"room_id"`
	Name         string `gorm:"type:varchar(50);not null" json:"name"`
	HeightU      int    `gorm:"default:42" json:"height_u"` // 机柜高度（U）
	Row          string `gorm:"type:varchar(20)" json:"row"`
	Notes        string `gorm:"type:varchar(255)" json:"notes,omitempty"`
	IdentifierID *uint  `gorm:"index" json:"identifier_id,omitempty"`

	// Relations
	Room       *Room       `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Identifier *Identifier `gorm:"foreignKey:IdentifierID" json:"identifier,omitempty"`
	Devices    []Device    `gorm:"foreignKey:CabinetID" json:"devices,omitempty"`
	Panels     []Panel     `gorm:"foreignKey:CabinetID" json:"panels,omitempty"`
}
