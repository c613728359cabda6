package services

import (
	"errors"

	"dcim-asset-service/config"
	"dcim-asset-service/models"

	"gorm.io/gorm"
)

// InterfaceCabinetService 定义机柜服务接口
type InterfaceCabinetService interface {
	GetAllCabinets() ([]models.Cabinet, error)
	GetCabinetsByRoom(roomID uint) ([]models.Cabinet, error)
	GetCabinetByID(id uint) (*models.Cabinet, error)
	CreateCabinet(cabinet *models.Cabinet, labelValue *int64) error
	UpdateCabinet(id uint, updates map[string]interface{}) (*models.Cabinet, error)
	DeleteCabinet(id uint) error
}

// CabinetService 提供机柜相关的服务
type CabinetService struct {
	DB          *gorm.DB
	Config      *config.Config
	Identifiers InterfaceIdentifierService
}

// NewCabinetService 创建一个新的机柜服务
func NewCabinetService(db *gorm.DB, cfg *config.Config, identifiers InterfaceIdentifierService) InterfaceCabinetService {
	return &CabinetService{
		DB:          db,
		Config:      cfg,
		Identifiers: identifiers,
	}
}

// 1 GetAllCabinets 获取所有机柜列表
func (s *CabinetService) GetAllCabinets() ([]models.Cabinet, error) {
	var cabinets []models.Cabinet
	if err := s.DB.Preload("Room").Preload("Identifier").Find(&cabinets).Error; err != nil {
		return nil, err
	}
	return cabinets, nil
}

// 1.2 GetCabinetsByRoom 根据机房获取机柜列表
func (s *CabinetService) GetCabinetsByRoom(roomID uint) ([]models.Cabinet, error) {
	var cabinets []models.Cabinet
	if err := s.DB.Where("room_id = ?", roomID).Preload("Identifier").Find(&cabinets).Error; err != nil {
		return nil, err
	}
	return cabinets, nil
}

// 2 GetCabinetByID 根据ID获取机柜
func (s *CabinetService) GetCabinetByID(id uint) (*models.Cabinet, error) {
	var cabinet models.Cabinet
	if err := s.DB.Preload("Room").Preload("Identifier").
		Preload("Devices").Preload("Panels").First(&cabinet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("机柜不存在")
		}
		return nil, err
	}
	return &cabinet, nil
}

// 3 CreateCabinet 创建机柜并分配池标识符
func (s *CabinetService) CreateCabinet(cabinet *models.Cabinet, labelValue *int64) error {
	var room models.Room
	if err := s.DB.First(&room, cabinet.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("机房不存在")
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cabinet).Error; err != nil {
			return err
		}
		identifier, err := s.Identifiers.AllocateTx(tx, models.EntityKindCabinet, cabinet.ID, labelValue)
		if err != nil {
			return err
		}
		cabinet.IdentifierID = &identifier.ID
		return tx.Model(cabinet).Update("identifier_id", identifier.ID).Error
	})
}

// 4 UpdateCabinet 更新机柜信息
func (s *CabinetService) UpdateCabinet(id uint, updates map[string]interface{}) (*models.Cabinet, error) {
	cabinet, err := s.GetCabinetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(cabinet).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetCabinetByID(id)
}

// 5 DeleteCabinet 删除机柜并释放其标识符
func (s *CabinetService) DeleteCabinet(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var cabinet models.Cabinet
		if err := tx.First(&cabinet, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("机柜不存在")
			}
			return err
		}

		var panelCount int64
		if err := tx.Model(&models.Panel{}).Where("cabinet_id = ?", id).Count(&panelCount).Error; err != nil {
			return err
		}
		var deviceCount int64
		if err := tx.Model(&models.Device{}).Where("cabinet_id = ?", id).Count(&deviceCount).Error; err != nil {
			return err
		}
		if panelCount > 0 || deviceCount > 0 {
			return errors.New("机柜下仍有设备或面板，无法删除")
		}

		if cabinet.IdentifierID != nil {
			if err := s.Identifiers.ReleaseByIDTx(tx, *cabinet.IdentifierID); err != nil &&
				!errors.Is(err, ErrIdentifierNotBound) {
				return err
			}
		}
		return tx.Delete(&cabinet).Error
	})
}
