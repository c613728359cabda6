package controllers

import (
	"strconv"

	"dcim-asset-service/internal/error/code"
	"dcim-asset-service/internal/error/response"
	"dcim-asset-service/services"
	"dcim-asset-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceConnectionController 定义连接控制器接口
type InterfaceConnectionController interface {
	CreateFullConnection()
	ConnectSingleEnd()
	DeleteConnection()
	GetPortConnection()
	GetNetworkTopology()
	SyncTopology()
}

// ConnectionController 处理线缆连接相关的请求
type ConnectionController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewConnectionController 创建一个新的连接控制器
func NewConnectionController(ctx *gin.Context, container *container.ServiceContainer) *ConnectionController {
	return &ConnectionController{
		Ctx:       ctx,
		Container: container,
	}
}

// FullConnectionRequest 一次接通两端的请求
type FullConnectionRequest struct {
	PortAID        uint                     `json:"port_a_id" binding:"required" example:"1"`
	PortBID        uint                     `json:"port_b_id" binding:"required" example:"2"`
	EndpointValueA int64                    `json:"endpoint_value_a" binding:"required" example:"1001"`
	EndpointValueB int64                    `json:"endpoint_value_b" binding:"required" example:"1002"`
	Attributes     services.CableAttributes `json:"attributes"`
}

// SingleEndRequest 现场逐端接线的请求
type SingleEndRequest struct {
	PortID        uint                      `json:"port_id" binding:"required" example:"1"`
	EndpointValue int64                     `json:"endpoint_value" binding:"required" example:"1001"`
	Attributes    *services.CableAttributes `json:"attributes,omitempty"`
}

// HandleConnectionFunc 返回一个处理连接请求的Gin处理函数
func HandleConnectionFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewConnectionController(ctx, container)

		switch method {
		case "createFullConnection":
			controller.CreateFullConnection()
		case "connectSingleEnd":
			controller.ConnectSingleEnd()
		case "deleteConnection":
			controller.DeleteConnection()
		case "getPortConnection":
			controller.GetPortConnection()
		case "getNetworkTopology":
			controller.GetNetworkTopology()
		case "syncTopology":
			controller.SyncTopology()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. CreateFullConnection 一次性接通两端
// @Summary 创建完整连接
// @Description 校验两个端口与线缆类型后，单事务建线、建两端端点并占用端口
// @Tags Connection
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body FullConnectionRequest true "两端端口、两端标识符数值、线缆属性"
// @Success 200 {object} models.Cable
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /connections/full [post]
func (c *ConnectionController) CreateFullConnection() {
	var req FullConnectionRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}
	if req.PortAID == req.PortBID {
		response.ParamError(c.Ctx, "两端不能是同一个端口")
		return
	}

	connectionService := c.Container.GetService("connection").(services.InterfaceConnectionService)
	cable, err := connectionService.CreateFullConnection(req.PortAID, req.PortBID,
		req.Attributes, req.EndpointValueA, req.EndpointValueB)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, cable)
}

// 2. ConnectSingleEnd 扫码逐端接线
// @Summary 单端接线
// @Description 扫标识符、扫端口后接通一端；标识符已绑定端点时按既有线缆续接
// @Tags Connection
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SingleEndRequest true "端口、端点标识符数值、可选线缆属性"
// @Success 200 {object} models.Cable
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /connections/single [post]
func (c *ConnectionController) ConnectSingleEnd() {
	var req SingleEndRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	connectionService := c.Container.GetService("connection").(services.InterfaceConnectionService)
	cable, err := connectionService.ConnectSingleEnd(req.PortID, req.EndpointValue, req.Attributes)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, cable)
}

// 3. DeleteConnection 拆除连接
// @Summary 删除连接
// @Description 删除线缆及其端点并释放端点标识符；端口状态保持不变，需另行确认释放
// @Tags Connection
// @Produce json
// @Security BearerAuth
// @Param id path int true "线缆ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /cables/{id}/connection [delete]
func (c *ConnectionController) DeleteConnection() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的线缆ID")
		return
	}

	connectionService := c.Container.GetService("connection").(services.InterfaceConnectionService)
	if err := connectionService.DeleteConnection(uint(id)); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{"cable_id": id, "deleted": true})
}

// 4. GetPortConnection 查询端口连接
// @Summary 查询端口连接
// @Description 返回端口所插线缆、对端端点及对端端口的完整定位上下文
// @Tags Connection
// @Produce json
// @Security BearerAuth
// @Param id path int true "端口ID"
// @Success 200 {object} services.PortConnection
// @Failure 404 {object} ErrorResponse
// @Router /ports/{id}/connection [get]
func (c *ConnectionController) GetPortConnection() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的端口ID")
		return
	}

	connectionService := c.Container.GetService("connection").(services.InterfaceConnectionService)
	connection, err := connectionService.GetPortConnection(uint(id))
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, connection)
}

// 5. GetNetworkTopology 查询面板可达拓扑
// @Summary 查询网络拓扑
// @Description 从拓扑镜像做广度优先遍历，返回限定深度内可达的面板与路径
// @Tags Connection
// @Produce json
// @Security BearerAuth
// @Param id path int true "起始面板ID"
// @Param depth query int false "最大跳数，默认为配置上限"
// @Success 200 {array} services.TopologyPath
// @Failure 404 {object} ErrorResponse
// @Router /panels/{id}/topology [get]
func (c *ConnectionController) GetNetworkTopology() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的面板ID")
		return
	}
	depth, _ := strconv.Atoi(c.Ctx.DefaultQuery("depth", "0"))

	connectionService := c.Container.GetService("connection").(services.InterfaceConnectionService)
	paths, err := connectionService.GetNetworkTopology(uint(id), depth)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"panel_id": id,
		"paths":    paths,
	})
}

// 6. SyncTopology 手动触发拓扑镜像同步
// @Summary 同步拓扑镜像
// @Description 重放未应用的拓扑事件，把Redis镜像追平关系库
// @Tags Connection
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /topology/sync [post]
func (c *ConnectionController) SyncTopology() {
	topologyService := c.Container.GetService("topology").(services.InterfaceTopologyService)
	applied, err := topologyService.SyncPending()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "同步失败: "+err.Error(), gin.H{"applied": applied})
		return
	}

	response.Success(c.Ctx, gin.H{"applied": applied})
}
