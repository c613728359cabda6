package services

import (
	"errors"

	"dcim-asset-service/config"
	"dcim-asset-service/models"

	"gorm.io/gorm"
)

// InterfacePanelService 定义面板服务接口
type InterfacePanelService interface {
	GetAllPanels() ([]models.Panel, error)
	GetPanelsByCabinet(cabinetID uint) ([]models.Panel, error)
	GetPanelByID(id uint) (*models.Panel, error)
	CreatePanel(panel *models.Panel, portCount int, connector models.ConnectorType, labelValue *int64) error
	UpdatePanel(id uint, updates map[string]interface{}) (*models.Panel, error)
	DeletePanel(id uint) error
}

// PanelService 提供面板相关的服务
type PanelService struct {
	DB          *gorm.DB
	Config      *config.Config
	Identifiers InterfaceIdentifierService
}

// NewPanelService 创建一个新的面板服务
func NewPanelService(db *gorm.DB, cfg *config.Config, identifiers InterfaceIdentifierService) InterfacePanelService {
	return &PanelService{
		DB:          db,
		Config:      cfg,
		Identifiers: identifiers,
	}
}

// 1 GetAllPanels 获取所有面板列表
func (s *PanelService) GetAllPanels() ([]models.Panel, error) {
	var panels []models.Panel
	if err := s.DB.Preload("Cabinet").Preload("Identifier").Find(&panels).Error; err != nil {
		return nil, err
	}
	return panels, nil
}

// 1.2 GetPanelsByCabinet 根据机柜获取面板列表
func (s *PanelService) GetPanelsByCabinet(cabinetID uint) ([]models.Panel, error) {
	var panels []models.Panel
	if err := s.DB.Where("cabinet_id = ?", cabinetID).Preload("Identifier").Find(&panels).Error; err != nil {
		return nil, err
	}
	return panels, nil
}

// 2 GetPanelByID 根据ID获取面板（含端口列表）
func (s *PanelService) GetPanelByID(id uint) (*models.Panel, error) {
	var panel models.Panel
	if err := s.DB.Preload("Cabinet.Room").Preload("Device").Preload("Identifier").
		Preload("Ports", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).First(&panel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("面板不存在")
		}
		return nil, err
	}
	return &panel, nil
}

// 3 CreatePanel 创建面板并批量开端口。
// portCount>0时按1..N编号创建端口，接口类型统一为connector。
func (s *PanelService) CreatePanel(panel *models.Panel, portCount int, connector models.ConnectorType, labelValue *int64) error {
	var cabinet models.Cabinet
	if err := s.DB.First(&cabinet, panel.CabinetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("机柜不存在")
		}
		return err
	}

	if connector == "" {
		connector = models.ConnectorRJ45
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(panel).Error; err != nil {
			return err
		}

		identifier, err := s.Identifiers.AllocateTx(tx, models.EntityKindPanel, panel.ID, labelValue)
		if err != nil {
			return err
		}
		panel.IdentifierID = &identifier.ID
		if err := tx.Model(panel).Update("identifier_id", identifier.ID).Error; err != nil {
			return err
		}

		if portCount > 0 {
			ports := make([]models.Port, portCount)
			for i := 0; i < portCount; i++ {
				ports[i] = models.Port{
					PanelID:    panel.ID,
					Number:     i + 1,
					Status:     models.PortStatusAvailable,
					LinkStatus: models.PortLinkDisconnected,
					Connector:  connector,
				}
			}
			if err := tx.Create(&ports).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// 4 UpdatePanel 更新面板信息
func (s *PanelService) UpdatePanel(id uint, updates map[string]interface{}) (*models.Panel, error) {
	panel, err := s.GetPanelByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(panel).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetPanelByID(id)
}

// 5 DeletePanel 删除面板。端口仍被占用时拒绝删除。
func (s *PanelService) DeletePanel(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var panel models.Panel
		if err := tx.First(&panel, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("面板不存在")
			}
			return err
		}

		var occupied int64
		if err := tx.Model(&models.Port{}).
			Where("panel_id = ? AND status = ?", id, models.PortStatusOccupied).
			Count(&occupied).Error; err != nil {
			return err
		}
		if occupied > 0 {
			return errors.New("面板下仍有被占用的端口，无法删除")
		}

		if err := tx.Where("panel_id = ?", id).Delete(&models.Port{}).Error; err != nil {
			return err
		}

		if panel.IdentifierID != nil {
			if err := s.Identifiers.ReleaseByIDTx(tx, *panel.IdentifierID); err != nil &&
				!errors.Is(err, ErrIdentifierNotBound) {
				return err
			}
		}
		return tx.Delete(&panel).Error
	})
}
