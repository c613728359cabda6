package models

import (
	"time"
)

// IdentifierState 表示短标识符的生命周期状态
type IdentifierState string

const (
	// IdentifierStateGenerated 已生成，尚未打印
	IdentifierStateGenerated IdentifierState = "generated"
	// IdentifierStatePrinted 已随打印批次输出为物理标签
	IdentifierStatePrinted IdentifierState = "printed"
	// IdentifierStateBound 已绑定到某个资产
	IdentifierStateBound IdentifierState = "bound"
	// IdentifierStateCancelled 已作废（终态）
	IdentifierStateCancelled IdentifierState = "cancelled"
)

// EntityKind 表示标识符可绑定的资产类型
type EntityKind string

const (
	EntityKindRoom          EntityKind = "ROOM"
	EntityKindCabinet       EntityKind = "CABINET"
	EntityKindDevice        EntityKind = "DEVICE"
	EntityKindPanel         EntityKind = "PANEL"
	EntityKindPort          EntityKind = "PORT"
	EntityKindCableEndpoint EntityKind = "CABLE_ENDPOINT"
)

// Identifier 短标识符池记录。所有资产类型共用同一个整数命名空间，
// 同一数值最多存在一条记录（作废记录保留，数值不再复用）。
type Identifier struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Value        int64           `gorm:"uniqueIndex;not null" json:"value"`
	State        IdentifierState `gorm:"type:varchar(20);not null;default:'generated';index" json:"state"`
	EntityKind   *EntityKind     `gorm:"type:varchar(30)" json:"entity_kind,omitempty"`
	EntityID     *uint           `json:"entity_id,omitempty"`
	PrintBatchID *uint           `gorm:"index" json:"print_batch_id,omitempty"`
	CancelReason string          `gorm:"type:varchar(255)" json:"cancel_reason,omitempty"`
	Note         string          `gorm:"type:varchar(255)" json:"note,omitempty"`
	PrintedAt    *time.Time      `json:"printed_at,omitempty"`
	BoundAt      *time.Time      `json:"bound_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relations
	PrintBatch *PrintBatch `gorm:"foreignKey:PrintBatchID" json:"print_batch,omitempty"`
}

// IsAvailable 判断标识符当前是否可被分配
func (i *Identifier) IsAvailable() bool {
	return i.State == IdentifierStateGenerated || i.State == IdentifierStatePrinted
}

// IdentifierSequence 标识符单调序列，全局仅一行。
// 取号必须在事务内对该行加锁后递增，保证并发分配不重号。
type IdentifierSequence struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NextValue int64     `gorm:"not null" json:"next_value"`
	UpdatedAt time.Time `json:"updated_at"`
}
