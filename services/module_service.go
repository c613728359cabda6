package services

import (
	"errors"

	"dcim-asset-service/config"
	"dcim-asset-service/models"

	"gorm.io/gorm"
)

// InterfaceModuleService 定义光模块服务接口
type InterfaceModuleService interface {
	GetAllModules() ([]models.TransceiverModule, error)
	GetModuleByID(id uint) (*models.TransceiverModule, error)
	CreateModule(module *models.TransceiverModule) error
	UpdateModule(id uint, updates map[string]interface{}) (*models.TransceiverModule, error)
	DeleteModule(id uint) error
}

// ModuleService 光模块台账
type ModuleService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewModuleService 创建一个新的光模块服务
func NewModuleService(db *gorm.DB, cfg *config.Config) InterfaceModuleService {
	return &ModuleService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllModules 获取所有光模块列表
func (s *ModuleService) GetAllModules() ([]models.TransceiverModule, error) {
	var modules []models.TransceiverModule
	if err := s.DB.Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

// 2 GetModuleByID 根据ID获取光模块
func (s *ModuleService) GetModuleByID(id uint) (*models.TransceiverModule, error) {
	var module models.TransceiverModule
	if err := s.DB.First(&module, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("光模块不存在")
		}
		return nil, err
	}
	return &module, nil
}

// 3 CreateModule 登记光模块
func (s *ModuleService) CreateModule(module *models.TransceiverModule) error {
	if module.Status == "" {
		module.Status = models.ModuleStatusSpare
	}
	if module.SerialNumber != "" {
		var count int64
		if err := s.DB.Model(&models.TransceiverModule{}).
			Where("serial_number = ?", module.SerialNumber).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("光模块序列号已存在")
		}
	}
	return s.DB.Create(module).Error
}

// 4 UpdateModule 更新光模块信息（含故障/报废状态流转）
func (s *ModuleService) UpdateModule(id uint, updates map[string]interface{}) (*models.TransceiverModule, error) {
	module, err := s.GetModuleByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(module).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetModuleByID(id)
}

// 5 DeleteModule 删除光模块。仍插在端口上时拒绝删除。
func (s *ModuleService) DeleteModule(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var module models.TransceiverModule
		if err := tx.First(&module, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("光模块不存在")
			}
			return err
		}

		var inUse int64
		if err := tx.Model(&models.Port{}).Where("module_id = ?", id).Count(&inUse).Error; err != nil {
			return err
		}
		if inUse > 0 {
			return errors.New("光模块仍插在端口上，无法删除")
		}
		return tx.Delete(&module).Error
	})
}
