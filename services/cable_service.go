package services

import (
	"errors"

	"dcim-asset-service/config"
	"dcim-asset-service/models"

	"gorm.io/gorm"
)

// InterfaceCableService 定义线缆查询服务接口。
// 线缆的创建与删除由连接服务负责，这里只提供台账读取与属性修正。
type InterfaceCableService interface {
	GetAllCables(query *models.PaginationQuery) ([]models.Cable, models.PaginationResult, error)
	GetCableByID(id uint) (*models.Cable, error)
	UpdateCable(id uint, updates map[string]interface{}) (*models.Cable, error)
}

// CableService 提供线缆台账相关的服务
type CableService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewCableService 创建一个新的线缆服务
func NewCableService(db *gorm.DB, cfg *config.Config) InterfaceCableService {
	return &CableService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllCables 分页获取线缆列表
func (s *CableService) GetAllCables(query *models.PaginationQuery) ([]models.Cable, models.PaginationResult, error) {
	if query.PageNum < 1 {
		query.PageNum = 1
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		query.PageSize = 20
	}

	var cables []models.Cable
	var total int64

	if err := s.DB.Model(&models.Cable{}).Count(&total).Error; err != nil {
		return nil, models.PaginationResult{}, err
	}

	order := "id ASC"
	if query.Desc {
		order = "id DESC"
	}
	offset := (query.PageNum - 1) * query.PageSize
	if err := s.DB.Preload("Endpoints.Identifier").Preload("Endpoints.Port").
		Order(order).Offset(offset).Limit(query.PageSize).
		Find(&cables).Error; err != nil {
		return nil, models.PaginationResult{}, err
	}

	return cables, models.NewPaginationResult(int(total), query.PageNum, query.PageSize), nil
}

// 2 GetCableByID 根据ID获取线缆（含两端端点与所插端口）
func (s *CableService) GetCableByID(id uint) (*models.Cable, error) {
	var cable models.Cable
	if err := s.DB.Preload("Endpoints.Identifier").
		Preload("Endpoints.Port.Panel").First(&cable, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCableNotFound
		}
		return nil, err
	}
	return &cable, nil
}

// 3 UpdateCable 修正线缆属性（类型、颜色、长度、备注）。
// 库存状态由连接流程维护，不允许在这里改。
func (s *CableService) UpdateCable(id uint, updates map[string]interface{}) (*models.Cable, error) {
	cable, err := s.GetCableByID(id)
	if err != nil {
		return nil, err
	}
	delete(updates, "status")
	if err := s.DB.Model(cable).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetCableByID(id)
}
