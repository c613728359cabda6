package container

import (
	"context"
	"log"
	"sync"
	"time"

	"dcim-asset-service/config"
	"dcim-asset-service/services"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService      *services.JWTService
	operatorService services.InterfaceOperatorService

	// 标识符池
	identifierService  services.InterfaceIdentifierService
	labelExportService services.InterfaceLabelExportService

	// 连接与拓扑
	topologyService   services.InterfaceTopologyService
	connectionService services.InterfaceConnectionService
	mqttEventService  services.InterfaceMQTTEventService

	// 资产台账服务
	roomService    services.InterfaceRoomService
	cabinetService services.InterfaceCabinetService
	deviceService  services.InterfaceDeviceService
	panelService   services.InterfacePanelService
	portService    services.InterfacePortService
	cableService   services.InterfaceCableService
	moduleService  services.InterfaceModuleService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，拓扑镜像查询将不可用", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)
	c.operatorService = services.NewOperatorService(c.db, c.config, c.jwtService)

	// 初始化标识符池
	c.identifierService = services.NewIdentifierService(c.db, c.config)
	c.labelExportService = services.NewLabelExportService(c.db, c.config, c.identifierService)

	// 初始化MQTT事件服务
	c.mqttEventService = services.NewMQTTEventService(c.config)
	if err := c.mqttEventService.Connect(); err != nil {
		log.Printf("MQTT服务连接失败: %v", err)
	}

	// 初始化拓扑镜像与连接引擎
	c.topologyService = services.NewTopologyService(c.db, c.config, c.redis)
	c.connectionService = services.NewConnectionService(c.db, c.config,
		c.identifierService, c.topologyService, c.mqttEventService)

	// 初始化资产台账服务
	c.roomService = services.NewRoomService(c.db, c.config, c.identifierService)
	c.cabinetService = services.NewCabinetService(c.db, c.config, c.identifierService)
	c.deviceService = services.NewDeviceService(c.db, c.config, c.identifierService)
	c.panelService = services.NewPanelService(c.db, c.config, c.identifierService)
	c.portService = services.NewPortService(c.db, c.config, c.identifierService)
	c.cableService = services.NewCableService(c.db, c.config)
	c.moduleService = services.NewModuleService(c.db, c.config)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "operator":
		return c.operatorService
	case "identifier":
		return c.identifierService
	case "label_export":
		return c.labelExportService
	case "topology":
		return c.topologyService
	case "connection":
		return c.connectionService
	case "mqtt_event":
		return c.mqttEventService
	case "room":
		return c.roomService
	case "cabinet":
		return c.cabinetService
	case "device":
		return c.deviceService
	case "panel":
		return c.panelService
	case "port":
		return c.portService
	case "cable":
		return c.cableService
	case "module":
		return c.moduleService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
