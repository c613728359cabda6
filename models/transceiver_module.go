package models

// ModuleStatus 光模块状态
type ModuleStatus string

const (
	ModuleStatusInUse    ModuleStatus = "in_use"
	ModuleStatusSpare    ModuleStatus = "spare"
	ModuleStatusFaulty   ModuleStatus = "faulty"
	ModuleStatusScrapped ModuleStatus = "scrapped"
)

// TransceiverModule 可插拔光模块，插入端口笼位后才能接光纤
type TransceiverModule struct {
	BaseModel
	Model        string       `gorm:"type:varchar(100);not null" json:"model"`
	SerialNumber string       `gorm:"type:varchar(50)" json:"serial_number"`
	FormFactor   string       `gorm:"type:varchar(20)" json:"form_factor"` // SFP, SFP+, QSFP28 ...
	Status       ModuleStatus `gorm:"type:varchar(20);not null;default:'spare'" json:"status"`
	Notes        string       `gorm:"type:varchar(255)" json:"notes,omitempty"`
}
