package models

import "time"

// TopologyEventType 拓扑变更事件类型
type TopologyEventType string

const (
	TopologyEventEdgeUpsert TopologyEventType = "edge_upsert"
	TopologyEventEdgeDelete TopologyEventType = "edge_delete"
)

// TopologyEventStatus 事件投影状态
type TopologyEventStatus string

const (
	TopologyEventPending TopologyEventStatus = "pending"
	TopologyEventApplied TopologyEventStatus = "applied"
)

// TopologyEvent 拓扑变更outbox事件。与关系库写入同事务落盘，
// 由投影器幂等地回放到图镜像；失败的事件保留pending待重试。
type TopologyEvent struct {
	ID        uint                `gorm:"primaryKey" json:"id"`
	EventID   string              `gorm:"type:varchar(40);uniqueIndex;not null" json:"event_id"`
	Type      TopologyEventType   `gorm:"type:varchar(20);not null" json:"type"`
	Payload   string              `gorm:"type:text;not null" json:"payload"`
	Status    TopologyEventStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Attempts  int                 `gorm:"not null;default:0" json:"attempts"`
	AppliedAt *time.Time          `json:"applied_at,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// EdgeUpsertPayload edge_upsert事件载荷，携带镜像节点与边所需的全部展示属性
type EdgeUpsertPayload struct {
	CableID    uint   `json:"cable_id"`
	CableType  string `json:"cable_type"`
	CableColor string `json:"cable_color,omitempty"`
	CableLabel string `json:"cable_label,omitempty"`
	PortAID    uint   `json:"port_a_id"`
	PortALabel string `json:"port_a_label,omitempty"`
	PortBID    uint   `json:"port_b_id"`
	PortBLabel string `json:"port_b_label,omitempty"`
	PanelAID   uint   `json:"panel_a_id"`
	PanelAName string `json:"panel_a_name,omitempty"`
	PanelBID   uint   `json:"panel_b_id"`
	PanelBName string `json:"panel_b_name,omitempty"`
}

// EdgeDeletePayload edge_delete事件载荷
type EdgeDeletePayload struct {
	CableID  uint `json:"cable_id"`
	PortAID  uint `json:"port_a_id"`
	PortBID  uint `json:"port_b_id"`
	PanelAID uint `json:"panel_a_id"`
	PanelBID uint `json:"panel_b_id"`
}
