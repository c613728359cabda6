package models

// CableType 线缆类型
type CableType string

const (
	CableTypeCat5e   CableType = "CAT5E"
	CableTypeCat6    CableType = "CAT6"
	CableTypeCat6a   CableType = "CAT6A"
	CableTypeFiberSM CableType = "FIBER_SM" // 单模光纤
	CableTypeFiberMM CableType = "FIBER_MM" // 多模光纤
	CableTypeDACSFP  CableType = "DAC_SFP"  // SFP直连铜缆
	CableTypeDACQSFP CableType = "DAC_QSFP" // QSFP直连铜缆
	CableTypePower   CableType = "POWER"
	CableTypeOther   CableType = "OTHER"
)

// CableStatus 线缆库存状态
type CableStatus string

const (
	// CableStatusInventoried 未完全接通（0端或1端在位）
	CableStatusInventoried CableStatus = "inventoried"
	// CableStatusInUse 两端都已接入端口
	CableStatusInUse CableStatus = "in_use"
)

// EndDesignation 线缆端别
type EndDesignation string

const (
	EndA EndDesignation = "A"
	EndB EndDesignation = "B"
)

// Cable 物理线缆，拥有0-2个端点
type Cable struct {
	BaseModel
	Type    CableType   `gorm:"type:varchar(20);not null" json:"type"`
	Label   string      `gorm:"type:varchar(50)" json:"label,omitempty"`
	LengthM *float64    `json:"length_m,omitempty"`
	Color   string      `gorm:"type:varchar(20)" json:"color,omitempty"`
	Notes   string      `gorm:"type:varchar(255)" json:"notes,omitempty"`
	Status  CableStatus `gorm:"type:varchar(20);not null;default:'inventoried'" json:"status"`

	// Relations
	Endpoints []CableEndpoint `gorm:"foreignKey:CableID;constraint:OnDelete:CASCADE" json:"endpoints,omitempty"`
}

// EndpointByEnd 返回指定端别的端点，不存在时返回nil
func (c *Cable) EndpointByEnd(end EndDesignation) *CableEndpoint {
	for i := range c.Endpoints {
		if c.Endpoints[i].End == end {
			return &c.Endpoints[i]
		}
	}
	return nil
}

// CableEndpoint 线缆的一个物理端。端点标识符与端点永久绑定，
// 改插端口不换标签；port_id为空表示该端未插入。
type CableEndpoint struct {
	BaseModel
	CableID      uint           `gorm:"not null;uniqueIndex:idx_cable_end" json:"cable_id"`
	End          EndDesignation `gorm:"type:varchar(1);not null;uniqueIndex:idx_cable_end" json:"end"`
	IdentifierID uint           `gorm:"not null;uniqueIndex" json:"identifier_id"`
	PortID       *uint          `gorm:"index" json:"port_id,omitempty"`

	// Relations
	Cable      *Cable      `gorm:"foreignKey:CableID" json:"cable,omitempty"`
	Identifier *Identifier `gorm:"foreignKey:IdentifierID" json:"identifier,omitempty"`
	Port       *Port       `gorm:"foreignKey:PortID" json:"port,omitempty"`
}
