package models

// PanelType 面板类型
type PanelType string

const (
	// PanelTypePatch 配线面板
	PanelTypePatch PanelType = "patch"
	// PanelTypeDevice 设备自带端口面板
	PanelTypeDevice PanelType = "device"
)

// Panel 端口面板。端口只属于面板；面板挂在机柜上，
// 设备自带的面板同时关联设备。
type Panel struct {
	BaseModel
	CabinetID    uint      `gorm:"not null;index" json:"cabinet_id"`
	DeviceID     *uint     `gorm:"index" json:"device_id,omitempty"`
	Name         string    `gorm:"type:varchar(50);not null" json:"name"`
	Type         PanelType `gorm:"type:varchar(20);not null;default:'patch'" json:"type"`
	PositionU    int       `json:"position_u"`
	Notes        string    `gorm:"type:varchar(255)" json:"notes,omitempty"`
	IdentifierID *uint     `gorm:"index" json:"identifier_id,omitempty"`

	// Relations
	Cabinet    *Cabinet    `gorm:"foreignKey:CabinetID" json:"cabinet,omitempty"`
	Device     *Device     `gorm:"foreignKey:DeviceID" json:"device,omitempty"`
	Identifier *Identifier `gorm:"foreignKey:IdentifierID" json:"identifier,omitempty"`
	Ports      []Port      `gorm:"foreignKey:PanelID" json:"ports,omitempty"`
}
