package models

// PortStatus 端口业务状态
type PortStatus string

const (
	PortStatusAvailable PortStatus = "available"
	PortStatusOccupied  PortStatus = "occupied"
	PortStatusReserved  PortStatus = "reserved"
	PortStatusFaulty    PortStatus = "faulty"
)

// PortLinkStatus 端口物理连接状态
type PortLinkStatus string

const (
	PortLinkConnected    PortLinkStatus = "connected"
	PortLinkDisconnected PortLinkStatus = "disconnected"
)

// ConnectorType 端口物理接口类型
type ConnectorType string

const (
	ConnectorRJ45    ConnectorType = "RJ45"
	ConnectorSFP     ConnectorType = "SFP"
	ConnectorSFPPlus ConnectorType = "SFP_PLUS"
	ConnectorQSFP    ConnectorType = "QSFP"
	ConnectorQSFP28  ConnectorType = "QSFP28"
	ConnectorLC      ConnectorType = "LC"
	ConnectorSC      ConnectorType = "SC"
	ConnectorPower   ConnectorType = "POWER"
)

// Port 面板端口。业务状态为occupied当且仅当恰有一个线缆端点引用该端口。
type Port struct {
	BaseModel
	PanelID      uint           `gorm:"not null;uniqueIndex:idx_panel_port_number" json:"panel_id"`
	Number       int            `gorm:"not null;uniqueIndex:idx_panel_port_number" json:"number"`
	Label        string         `gorm:"type:varchar(50)" json:"label"`
	Status       PortStatus     `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	LinkStatus   PortLinkStatus `gorm:"type:varchar(20);not null;default:'disconnected'" json:"link_status"`
	Connector    ConnectorType  `gorm:"type:varchar(20);not null;default:'RJ45'" json:"connector"`
	ModuleID     *uint          `gorm:"index" json:"module_id,omitempty"`
	IdentifierID *uint          `gorm:"index" json:"identifier_id,omitempty"`

	// Relations
	Panel      *Panel             `gorm:"foreignKey:PanelID" json:"panel,omitempty"`
	Module     *TransceiverModule `gorm:"foreignKey:ModuleID" json:"module,omitempty"`
	Identifier *Identifier        `gorm:"foreignKey:IdentifierID" json:"identifier,omitempty"`
}
