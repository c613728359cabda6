package services

import (
	"errors"

	"dcim-asset-service/config"
	"dcim-asset-service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InterfacePortService 定义端口服务接口
type InterfacePortService interface {
	GetPortsByPanel(panelID uint) ([]models.Port, error)
	GetPortByID(id uint) (*models.Port, error)
	CreatePort(port *models.Port, labelValue *int64) error
	UpdatePort(id uint, updates map[string]interface{}) (*models.Port, error)
	DeletePort(id uint) error
	FreePort(id uint) (*models.Port, error)
	AttachModule(portID uint, moduleID uint) (*models.Port, error)
	DetachModule(portID uint) (*models.Port, error)
}

// PortService 提供端口相关的服务
type PortService struct {
	DB          *gorm.DB
	Config      *config.Config
	Identifiers InterfaceIdentifierService
}

// NewPortService 创建一个新的端口服务
func NewPortService(db *gorm.DB, cfg *config.Config, identifiers InterfaceIdentifierService) InterfacePortService {
	return &PortService{
		DB:          db,
		Config:      cfg,
		Identifiers: identifiers,
	}
}

// 1 GetPortsByPanel 获取面板下的端口列表
func (s *PortService) GetPortsByPanel(panelID uint) ([]models.Port, error) {
	var ports []models.Port
	if err := s.DB.Where("panel_id = ?", panelID).
		Preload("Module").Preload("Identifier").
		Order("number ASC").Find(&ports).Error; err != nil {
		return nil, err
	}
	return ports, nil
}

// 2 GetPortByID 根据ID获取端口
func (s *PortService) GetPortByID(id uint) (*models.Port, error) {
	var port models.Port
	if err := s.DB.Preload("Panel.Cabinet.Room").Preload("Module").Preload("Identifier").
		First(&port, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortNotFound
		}
		return nil, err
	}
	return &port, nil
}

// 3 CreatePort 在面板上追加单个端口
func (s *PortService) CreatePort(port *models.Port, labelValue *int64) error {
	var panel models.Panel
	if err := s.DB.First(&panel, port.PanelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("面板不存在")
		}
		return err
	}

	if port.Status == "" {
		port.Status = models.PortStatusAvailable
	}
	if port.LinkStatus == "" {
		port.LinkStatus = models.PortLinkDisconnected
	}
	if port.Connector == "" {
		port.Connector = models.ConnectorRJ45
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(port).Error; err != nil {
			return err
		}
		if labelValue == nil {
			return nil
		}
		identifier, err := s.Identifiers.AllocateTx(tx, models.EntityKindPort, port.ID, labelValue)
		if err != nil {
			return err
		}
		port.IdentifierID = &identifier.ID
		return tx.Model(port).Update("identifier_id", identifier.ID).Error
	})
}

// 4 UpdatePort 更新端口信息（标签、状态等）
func (s *PortService) UpdatePort(id uint, updates map[string]interface{}) (*models.Port, error) {
	port, err := s.GetPortByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(port).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetPortByID(id)
}

// 5 DeletePort 删除端口。仍有线缆端点引用时拒绝删除。
func (s *PortService) DeletePort(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var port models.Port
		if err := tx.First(&port, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPortNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Model(&models.CableEndpoint{}).Where("port_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrPortStillReferenced
		}

		if port.IdentifierID != nil {
			if err := s.Identifiers.ReleaseByIDTx(tx, *port.IdentifierID); err != nil &&
				!errors.Is(err, ErrIdentifierNotBound) {
				return err
			}
		}
		return tx.Delete(&port).Error
	})
}

// 6 FreePort 将端口恢复为可用。
// 拆线（DeleteConnection）不会自动释放端口，必须由操作员确认现场
// 确实空出后显式调用本操作。仍有端点引用时拒绝。
func (s *PortService) FreePort(id uint) (*models.Port, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var port models.Port
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&port, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPortNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Model(&models.CableEndpoint{}).Where("port_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrPortStillReferenced
		}

		return tx.Model(&port).Updates(map[string]interface{}{
			"status":      models.PortStatusAvailable,
			"link_status": models.PortLinkDisconnected,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetPortByID(id)
}

// 7 AttachModule 将光模块插入端口笼位
func (s *PortService) AttachModule(portID uint, moduleID uint) (*models.Port, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var port models.Port
		if err := tx.First(&port, portID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPortNotFound
			}
			return err
		}
		if port.ModuleID != nil {
			return errors.New("端口已插有光模块")
		}

		var module models.TransceiverModule
		if err := tx.First(&module, moduleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("光模块不存在")
			}
			return err
		}
		if module.Status == models.ModuleStatusScrapped {
			return errors.New("光模块已报废，无法插入")
		}

		// 同一个模块不能同时插在两个端口上
		var inUse int64
		if err := tx.Model(&models.Port{}).Where("module_id = ?", moduleID).Count(&inUse).Error; err != nil {
			return err
		}
		if inUse > 0 {
			return errors.New("光模块已插在其他端口上")
		}

		if err := tx.Model(&port).Update("module_id", moduleID).Error; err != nil {
			return err
		}
		return tx.Model(&module).Update("status", models.ModuleStatusInUse).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetPortByID(portID)
}

// 8 DetachModule 从端口拔出光模块，模块回到备件状态
func (s *PortService) DetachModule(portID uint) (*models.Port, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var port models.Port
		if err := tx.First(&port, portID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPortNotFound
			}
			return err
		}
		if port.ModuleID == nil {
			return errors.New("端口未插光模块")
		}
		if port.Status == models.PortStatusOccupied {
			return errors.New("端口上仍有线缆，无法拔出光模块")
		}

		var module models.TransceiverModule
		if err := tx.First(&module, *port.ModuleID).Error; err != nil {
			return err
		}

		if err := tx.Model(&port).Update("module_id", nil).Error; err != nil {
			return err
		}
		if module.Status == models.ModuleStatusInUse {
			return tx.Model(&module).Update("status", models.ModuleStatusSpare).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetPortByID(portID)
}
