package models

import "time"

// PrintBatchStatus 表示打印批次状态
type PrintBatchStatus string

const (
	PrintBatchStatusPending   PrintBatchStatus = "pending"
	PrintBatchStatusCompleted PrintBatchStatus = "completed"
)

// PrintBatch 一次性生成并交付打印的一组标识符
type PrintBatch struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	Name           string           `gorm:"type:varchar(100);not null" json:"name"`
	RequestedCount int              `gorm:"not null" json:"requested_count"`
	Status         PrintBatchStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Requester      string           `gorm:"type:varchar(50)" json:"requester"`
	Notes          string           `gorm:"type:varchar(255)" json:"notes,omitempty"`
	FileRef        string           `gorm:"type:varchar(100)" json:"file_ref,omitempty"` // 导出文件引用
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	// Relations
	Identifiers []Identifier `gorm:"foreignKey:PrintBatchID" json:"identifiers,omitempty"`
}
