package routes

import (
	"dcim-asset-service/config"
	"dcim-asset-service/controllers"
	"dcim-asset-service/middleware"
	"dcim-asset-service/services/container"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	healthController := controllers.NewHealthCheckController()
	api.GET("/ping", healthController.Ping)

	// 认证路由
	api.POST("/auth/login", middleware.RateLimiter(), controllers.HandleJWTFunc(container, "login"))

	// 扫码导航入口。现场扫标签要快，不强制登录
	api.GET("/scan/:label", controllers.HandleIdentifierFunc(container, "scan"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateOperator())

	// 标识符池路由
	auth.Group("/identifiers").POST("/batch", controllers.HandleIdentifierFunc(container, "generateBatch"))
	auth.Group("/identifiers").POST("/allocate", controllers.HandleIdentifierFunc(container, "allocate"))
	auth.Group("/identifiers").POST("/bulk-cancel", controllers.HandleIdentifierFunc(container, "bulkCancel"))
	auth.Group("/identifiers").GET("/:value", controllers.HandleIdentifierFunc(container, "resolve"))
	auth.Group("/identifiers").POST("/:value/release", controllers.HandleIdentifierFunc(container, "release"))
	auth.Group("/identifiers").POST("/:value/cancel", controllers.HandleIdentifierFunc(container, "cancel"))

	// 打印批次路由
	auth.Group("/print-batches").GET("", controllers.HandlePrintBatchFunc(container, "getPrintBatches"))
	auth.Group("/print-batches").POST("", controllers.HandlePrintBatchFunc(container, "createPrintBatch"))
	auth.Group("/print-batches").GET("/:id", controllers.HandlePrintBatchFunc(container, "getPrintBatch"))
	auth.Group("/print-batches").GET("/:id/export", controllers.HandlePrintBatchFunc(container, "exportPrintBatch"))

	// 机房路由
	auth.Group("/rooms").GET("", controllers.HandleRoomFunc(container, "getRooms"))
	auth.Group("/rooms").GET("/:id", controllers.HandleRoomFunc(container, "getRoom"))
	auth.Group("/rooms").POST("", controllers.HandleRoomFunc(container, "createRoom"))
	auth.Group("/rooms").PUT("/:id", controllers.HandleRoomFunc(container, "updateRoom"))
	auth.Group("/rooms").DELETE("/:id", controllers.HandleRoomFunc(container, "deleteRoom"))

	// 机柜路由
	auth.Group("/cabinets").GET("", controllers.HandleCabinetFunc(container, "getCabinets"))
	auth.Group("/cabinets").GET("/:id", controllers.HandleCabinetFunc(container, "getCabinet"))
	auth.Group("/cabinets").POST("", controllers.HandleCabinetFunc(container, "createCabinet"))
	auth.Group("/cabinets").PUT("/:id", controllers.HandleCabinetFunc(container, "updateCabinet"))
	auth.Group("/cabinets").DELETE("/:id", controllers.HandleCabinetFunc(container, "deleteCabinet"))

	// 设备路由
	auth.Group("/devices").GET("", controllers.HandleDeviceFunc(container, "getDevices"))
	auth.Group("/devices").GET("/:id", controllers.HandleDeviceFunc(container, "getDevice"))
	auth.Group("/devices").POST("", controllers.HandleDeviceFunc(container, "createDevice"))
	auth.Group("/devices").PUT("/:id", controllers.HandleDeviceFunc(container, "updateDevice"))
	auth.Group("/devices").DELETE("/:id", controllers.HandleDeviceFunc(container, "deleteDevice"))

	// 面板路由
	auth.Group("/panels").GET("", controllers.HandlePanelFunc(container, "getPanels"))
	auth.Group("/panels").GET("/:id", controllers.HandlePanelFunc(container, "getPanel"))
	auth.Group("/panels").POST("", controllers.HandlePanelFunc(container, "createPanel"))
	auth.Group("/panels").PUT("/:id", controllers.HandlePanelFunc(container, "updatePanel"))
	auth.Group("/panels").DELETE("/:id", controllers.HandlePanelFunc(container, "deletePanel"))
	auth.Group("/panels").GET("/:id/ports", controllers.HandlePanelFunc(container, "getPanelPorts"))
	auth.Group("/panels").GET("/:id/topology", controllers.HandleConnectionFunc(container, "getNetworkTopology"))

	// 端口路由
	auth.Group("/ports").POST("", controllers.HandlePortFunc(container, "createPort"))
	auth.Group("/ports").GET("/:id", controllers.HandlePortFunc(container, "getPort"))
	auth.Group("/ports").PUT("/:id", controllers.HandlePortFunc(container, "updatePort"))
	auth.Group("/ports").DELETE("/:id", controllers.HandlePortFunc(container, "deletePort"))
	auth.Group("/ports").POST("/:id/free", controllers.HandlePortFunc(container, "freePort"))
	auth.Group("/ports").POST("/:id/module", controllers.HandlePortFunc(container, "attachModule"))
	auth.Group("/ports").DELETE("/:id/module", controllers.HandlePortFunc(container, "detachModule"))
	auth.Group("/ports").GET("/:id/connection", controllers.HandleConnectionFunc(container, "getPortConnection"))

	// 光模块路由
	auth.Group("/modules").GET("", controllers.HandleModuleFunc(container, "getModules"))
	auth.Group("/modules").GET("/:id", controllers.HandleModuleFunc(container, "getModule"))
	auth.Group("/modules").POST("", controllers.HandleModuleFunc(container, "createModule"))
	auth.Group("/modules").PUT("/:id", controllers.HandleModuleFunc(container, "updateModule"))
	auth.Group("/modules").DELETE("/:id", controllers.HandleModuleFunc(container, "deleteModule"))

	// 线缆与连接路由
	auth.Group("/cables").GET("", controllers.HandleCableFunc(container, "getCables"))
	auth.Group("/cables").GET("/:id", controllers.HandleCableFunc(container, "getCable"))
	auth.Group("/cables").PUT("/:id", controllers.HandleCableFunc(container, "updateCable"))
	auth.Group("/cables").DELETE("/:id/connection", controllers.HandleConnectionFunc(container, "deleteConnection"))
	auth.Group("/connections").POST("/full", controllers.HandleConnectionFunc(container, "createFullConnection"))
	auth.Group("/connections").POST("/single", controllers.HandleConnectionFunc(container, "connectSingleEnd"))
	auth.Group("/topology").POST("/sync", controllers.HandleConnectionFunc(container, "syncTopology"))
}
