package services

import (
	"errors"

	"dcim-asset-service/config"
	"dcim-asset-service/models"

	"gorm.io/gorm"
)

// InterfaceRoomService 定义机房服务接口
type InterfaceRoomService interface {
	GetAllRooms() ([]models.Room, error)
	GetRoomByID(id uint) (*models.Room, error)
	CreateRoom(room *models.Room, labelValue *int64) error
	UpdateRoom(id uint, updates map[string]interface{}) (*models.Room, error)
	DeleteRoom(id uint) error
}

// RoomService 提供机房相关的服务
type RoomService struct {
	DB          *gorm.DB
	Config      *config.Config
	Identifiers InterfaceIdentifierService
}

// NewRoomService 创建一个新的机房服务
func NewRoomService(db *gorm.DB, cfg *config.Config, identifiers InterfaceIdentifierService) InterfaceRoomService {
	return &RoomService{
		DB:          db,
		Config:      cfg,
		Identifiers: identifiers,
	}
}

// 1 GetAllRooms 获取所有机房列表
func (s *RoomService) GetAllRooms() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Preload("Identifier").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// 2 GetRoomByID 根据ID获取机房
func (s *RoomService) GetRoomByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("Identifier").Preload("Cabinets").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("机房不存在")
		}
		return nil, err
	}
	return &room, nil
}

// 3 CreateRoom 创建机房并分配池标识符。
// labelValue非空表示操作员扫了预打印标签。
func (s *RoomService) CreateRoom(room *models.Room, labelValue *int64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		identifier, err := s.Identifiers.AllocateTx(tx, models.EntityKindRoom, room.ID, labelValue)
		if err != nil {
			return err
		}
		room.IdentifierID = &identifier.ID
		return tx.Model(room).Update("identifier_id", identifier.ID).Error
	})
}

// 4 UpdateRoom 更新机房信息
func (s *RoomService) UpdateRoom(id uint, updates map[string]interface{}) (*models.Room, error) {
	room, err := s.GetRoomByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(room).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetRoomByID(id)
}

// 5 DeleteRoom 删除机房并释放其标识符
func (s *RoomService) DeleteRoom(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("机房不存在")
			}
			return err
		}

		var cabinetCount int64
		if err := tx.Model(&models.Cabinet{}).Where("room_id = ?", id).Count(&cabinetCount).Error; err != nil {
			return err
		}
		if cabinetCount > 0 {
			return errors.New("机房下仍有机柜，无法删除")
		}

		if room.IdentifierID != nil {
			if err := s.Identifiers.ReleaseByIDTx(tx, *room.IdentifierID); err != nil &&
				!errors.Is(err, ErrIdentifierNotBound) {
				return err
			}
		}
		return tx.Delete(&room).Error
	})
}
