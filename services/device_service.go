package services

import (
	"errors"

	"dcim-asset-service/config"
	"dcim-asset-service/models"

	"gorm.io/gorm"
)

// InterfaceDeviceService 定义设备服务接口
type InterfaceDeviceService interface {
	GetAllDevices() ([]models.Device, error)
	GetDevicesByCabinet(cabinetID uint) ([]models.Device, error)
	GetDeviceByID(id uint) (*models.Device, error)
	CreateDevice(device *models.Device, labelValue *int64) error
	UpdateDevice(id uint, updates map[string]interface{}) (*models.Device, error)
	DeleteDevice(id uint) error
}

// DeviceService 提供设备相关的服务
type DeviceService struct {
	DB          *gorm.DB
	Config      *config.Config
	Identifiers InterfaceIdentifierService
}

// NewDeviceService 创建一个新的设备服务
func NewDeviceService(db *gorm.DB, cfg *config.Config, identifiers InterfaceIdentifierService) InterfaceDeviceService {
	return &DeviceService{
		DB:          db,
		Config:      cfg,
		Identifiers: identifiers,
	}
}

// 1 GetAllDevices 获取所有设备列表
func (s *DeviceService) GetAllDevices() ([]models.Device, error) {
	var devices []models.Device
	if err := s.DB.Preload("Cabinet").Preload("Identifier").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// 1.2 GetDevicesByCabinet 根据机柜获取设备列表
func (s *DeviceService) GetDevicesByCabinet(cabinetID uint) ([]models.Device, error) {
	var devices []models.Device
	if err := s.DB.Where("cabinet_id = ?", cabinetID).Preload("Identifier").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// 2 GetDeviceByID 根据ID获取设备
func (s *DeviceService) GetDeviceByID(id uint) (*models.Device, error) {
	var device models.Device
	if err := s.DB.Preload("Cabinet.Room").Preload("Identifier").
		Preload("Panels").First(&device, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("设备不存在")
		}
		return nil, err
	}
	return &device, nil
}

// 3 CreateDevice 创建设备并分配池标识符
func (s *DeviceService) CreateDevice(device *models.Device, labelValue *int64) error {
	var cabinet models.Cabinet
	if err := s.DB.First(&cabinet, device.CabinetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("机柜不存在")
		}
		return err
	}

	// 验证序列号唯一性
	if device.SerialNumber != "" {
		var count int64
		if err := s.DB.Model(&models.Device{}).Where("serial_number = ?", device.SerialNumber).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("设备序列号已存在")
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(device).Error; err != nil {
			return err
		}
		identifier, err := s.Identifiers.AllocateTx(tx, models.EntityKindDevice, device.ID, labelValue)
		if err != nil {
			return err
		}
		device.IdentifierID = &identifier.ID
		return tx.Model(device).Update("identifier_id", identifier.ID).Error
	})
}

// 4 UpdateDevice 更新设备信息
func (s *DeviceService) UpdateDevice(id uint, updates map[string]interface{}) (*models.Device, error) {
	device, err := s.GetDeviceByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(device).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetDeviceByID(id)
}

// 5 DeleteDevice 删除设备并释放其标识符
func (s *DeviceService) DeleteDevice(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var device models.Device
		if err := tx.First(&device, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("设备不存在")
			}
			return err
		}

		var panelCount int64
		if err := tx.Model(&models.Panel{}).Where("device_id = ?", id).Count(&panelCount).Error; err != nil {
			return err
		}
		if panelCount > 0 {
			return errors.New("设备下仍有面板，无法删除")
		}

		if device.IdentifierID != nil {
			if err := s.Identifiers.ReleaseByIDTx(tx, *device.IdentifierID); err != nil &&
				!errors.Is(err, ErrIdentifierNotBound) {
				return err
			}
		}
		return tx.Delete(&device).Error
	})
}
