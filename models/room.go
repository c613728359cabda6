package models

// Room 机房
type Room struct {
	BaseModel
	Name         string `gorm:"type:varchar(50);not null" json:"name"`
	Site         string `gorm:"type:varchar(50)" json:"site"`
	Floor        string `gorm:"type:varchar(20)" json:"floor"`
	Notes        string `gorm:"type:varchar(255)" json:"notes,omitempty"`
	IdentifierID *uint  `gorm:"index" json:"identifier_id,omitempty"`

	// Relations
	Identifier *Identifier `gorm:"foreignKey:IdentifierID" json:"identifier,omitempty"`
	Cabinets   []Cabinet   `gorm:"foreignKey:RoomID" json:"cabinets,omitempty"`
}
