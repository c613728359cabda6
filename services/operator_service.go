package services

import (
	"errors"

	"dcim-asset-service/config"
	"dcim-asset-service/models"
	"dcim-asset-service/utils"

	"gorm.io/gorm"
)

// InterfaceOperatorService 定义操作员服务接口
type InterfaceOperatorService interface {
	Login(username, password string) (string, *models.Operator, error)
	GetOperatorByID(id uint) (*models.Operator, error)
	CreateOperator(operator *models.Operator, plainPassword string) error
	EnsureDefaultOperator() error
}

// OperatorService 提供操作员账户与登录服务
type OperatorService struct {
	DB     *gorm.DB
	Config *config.Config
	JWT    *JWTService
}

// NewOperatorService 创建一个新的操作员服务
func NewOperatorService(db *gorm.DB, cfg *config.Config, jwtService *JWTService) InterfaceOperatorService {
	return &OperatorService{
		DB:     db,
		Config: cfg,
		JWT:    jwtService,
	}
}

// 1 Login 校验用户名密码并签发令牌
func (s *OperatorService) Login(username, password string) (string, *models.Operator, error) {
	var operator models.Operator
	if err := s.DB.Where("username = ?", username).First(&operator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errors.New("用户名或密码错误")
		}
		return "", nil, err
	}
	if !utils.CheckPasswordHash(password, operator.Password) {
		return "", nil, errors.New("用户名或密码错误")
	}

	token, err := s.JWT.GenerateToken(operator.ID, operator.Username, operator.Role)
	if err != nil {
		return "", nil, err
	}
	return token, &operator, nil
}

// 2 GetOperatorByID 根据ID获取操作员
func (s *OperatorService) GetOperatorByID(id uint) (*models.Operator, error) {
	var operator models.Operator
	if err := s.DB.First(&operator, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("操作员不存在")
		}
		return nil, err
	}
	return &operator, nil
}

// 3 CreateOperator 创建操作员账户
func (s *OperatorService) CreateOperator(operator *models.Operator, plainPassword string) error {
	var count int64
	if err := s.DB.Model(&models.Operator{}).Where("username = ?", operator.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("用户名已存在")
	}

	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		return err
	}
	operator.Password = hashed
	if operator.Role == "" {
		operator.Role = "operator"
	}
	return s.DB.Create(operator).Error
}

// 4 EnsureDefaultOperator 启动时保证存在admin账户
func (s *OperatorService) EnsureDefaultOperator() error {
	var count int64
	if err := s.DB.Model(&models.Operator{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	config.Info("创建默认操作员账户 admin")
	return s.CreateOperator(&models.Operator{
		Username: "admin",
		Role:     "admin",
	}, s.Config.DefaultOperatorPassword)
}
