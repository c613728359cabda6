package controllers

import (
	"strconv"

	"dcim-asset-service/config"
	"dcim-asset-service/internal/error/code"
	"dcim-asset-service/internal/error/response"
	"dcim-asset-service/models"
	"dcim-asset-service/services"
	"dcim-asset-service/services/container"
	"dcim-asset-service/utils"

	"github.com/gin-gonic/gin"
)

// InterfaceIdentifierController 定义标识符池控制器接口
type InterfaceIdentifierController interface {
	GenerateBatch()
	Allocate()
	Resolve()
	Release()
	Cancel()
	BulkCancel()
	Scan()
}

// IdentifierController 处理标识符池相关的请求
type IdentifierController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewIdentifierController 创建一个新的标识符池控制器
func NewIdentifierController(ctx *gin.Context, container *container.ServiceContainer) *IdentifierController {
	return &IdentifierController{
		Ctx:       ctx,
		Container: container,
	}
}

// GenerateBatchRequest 批量生成请求
type GenerateBatchRequest struct {
	Count int    `json:"count" binding:"required" example:"100"`
	Note  string `json:"note" example:"三季度机房扩容"`
}

// AllocateRequest 分配请求。value为空走顺序取号，非空表示扫了预打印标签。
type AllocateRequest struct {
	EntityKind string `json:"entity_kind" binding:"required" example:"DEVICE"`
	EntityID   uint   `json:"entity_id" binding:"required" example:"1"`
	Value      *int64 `json:"value,omitempty" example:"1024"`
}

// CancelRequest 作废请求
type CancelRequest struct {
	Reason string `json:"reason" binding:"required" example:"标签纸破损"`
}

// BulkCancelRequest 批量作废请求
type BulkCancelRequest struct {
	Values []int64 `json:"values" binding:"required"`
	Reason string  `json:"reason" binding:"required" example:"整批打印事故"`
	Force  bool    `json:"force" example:"false"`
}

// HandleIdentifierFunc 返回一个处理标识符请求的Gin处理函数
func HandleIdentifierFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewIdentifierController(ctx, container)

		switch method {
		case "generateBatch":
			controller.GenerateBatch()
		case "allocate":
			controller.Allocate()
		case "resolve":
			controller.Resolve()
		case "release":
			controller.Release()
		case "cancel":
			controller.Cancel()
		case "bulkCancel":
			controller.BulkCancel()
		case "scan":
			controller.Scan()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// paramValue 解析路径中的标识符数值
func (c *IdentifierController) paramValue() (int64, bool) {
	value, err := strconv.ParseInt(c.Ctx.Param("value"), 10, 64)
	if err != nil || value < 1 {
		response.ParamError(c.Ctx, "无效的标识符数值")
		return 0, false
	}
	return value, true
}

// 1. GenerateBatch 批量生成标识符
// @Summary 批量生成标识符
// @Description 在池中预生成count个连续标识符，生成后即可打印
// @Tags Identifier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateBatchRequest true "生成数量与备注"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /identifiers/batch [post]
func (c *IdentifierController) GenerateBatch() {
	var req GenerateBatchRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	identifierService := c.Container.GetService("identifier").(services.InterfaceIdentifierService)
	identifiers, err := identifierService.GenerateBatch(req.Count, req.Note)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"count":       len(identifiers),
		"first_value": identifiers[0].Value,
		"last_value":  identifiers[len(identifiers)-1].Value,
		"identifiers": identifiers,
	})
}

// 2. Allocate 为资产分配标识符
// @Summary 分配标识符
// @Description 为指定资产分配标识符；提供value时绑定扫到的预打印标签
// @Tags Identifier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AllocateRequest true "资产类型、资产ID、可选的指定数值"
// @Success 200 {object} models.Identifier
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /identifiers/allocate [post]
func (c *IdentifierController) Allocate() {
	var req AllocateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	identifierService := c.Container.GetService("identifier").(services.InterfaceIdentifierService)
	identifier, err := identifierService.Allocate(models.EntityKind(req.EntityKind), req.EntityID, req.Value)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, identifier)
}

// 3. Resolve 查询标识符当前状态与绑定
// @Summary 解析标识符
// @Description 返回标识符的状态与绑定的资产
// @Tags Identifier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param value path int true "标识符数值"
// @Success 200 {object} services.IdentifierResolution
// @Failure 400 {object} ErrorResponse
// @Router /identifiers/{value} [get]
func (c *IdentifierController) Resolve() {
	value, ok := c.paramValue()
	if !ok {
		return
	}

	identifierService := c.Container.GetService("identifier").(services.InterfaceIdentifierService)
	resolution, err := identifierService.Resolve(value)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, resolution)
}

// 4. Release 解绑标识符并放回池中
// @Summary 释放标识符
// @Description 解除标识符与资产的绑定，数值回到可分配状态
// @Tags Identifier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param value path int true "标识符数值"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /identifiers/{value}/release [post]
func (c *IdentifierController) Release() {
	value, ok := c.paramValue()
	if !ok {
		return
	}

	identifierService := c.Container.GetService("identifier").(services.InterfaceIdentifierService)
	if err := identifierService.Release(value); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{"value": value, "state": models.IdentifierStateGenerated})
}

// 5. Cancel 作废单个标识符
// @Summary 作废标识符
// @Description 将未绑定的标识符标记为作废，作废不可逆
// @Tags Identifier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param value path int true "标识符数值"
// @Param request body CancelRequest true "作废原因"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /identifiers/{value}/cancel [post]
func (c *IdentifierController) Cancel() {
	value, ok := c.paramValue()
	if !ok {
		return
	}

	var req CancelRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	identifierService := c.Container.GetService("identifier").(services.InterfaceIdentifierService)
	if err := identifierService.Cancel(value, req.Reason); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{"value": value, "state": models.IdentifierStateCancelled})
}

// 6. BulkCancel 批量作废标识符
// @Summary 批量作废标识符
// @Description 批量作废；force为true时先解绑再作废已绑定的数值
// @Tags Identifier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BulkCancelRequest true "数值列表、原因、是否强制"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /identifiers/bulk-cancel [post]
func (c *IdentifierController) BulkCancel() {
	var req BulkCancelRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}
	if len(req.Values) == 0 {
		response.ParamError(c.Ctx, "数值列表不能为空")
		return
	}

	identifierService := c.Container.GetService("identifier").(services.InterfaceIdentifierService)
	cancelled, err := identifierService.BulkCancel(req.Values, req.Reason, req.Force)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"requested": len(req.Values),
		"cancelled": cancelled,
	})
}

// 7. Scan 扫码导航入口
// @Summary 扫码导航
// @Description 解析展示标签并返回其绑定资产的详情；线缆端点额外返回对端信息
// @Tags Identifier
// @Accept json
// @Produce json
// @Param label path string true "展示标签，如DC00001024"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /scan/{label} [get]
func (c *IdentifierController) Scan() {
	cfg := c.Container.GetService("config").(*config.Config)
	value, err := utils.ParseIdentifier(c.Ctx.Param("label"), cfg.LabelPrefix)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrLabelFormat, "无法解析标签: "+err.Error(), nil)
		return
	}

	identifierService := c.Container.GetService("identifier").(services.InterfaceIdentifierService)
	resolution, err := identifierService.Resolve(value)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	if !resolution.Exists {
		response.FailWithMessage(c.Ctx, code.ErrIdentifierNotFound, "标识符未登记", nil)
		return
	}
	if resolution.State != models.IdentifierStateBound || resolution.EntityKind == nil || resolution.EntityID == nil {
		response.Success(c.Ctx, gin.H{"resolution": resolution})
		return
	}

	entity, err := c.lookupEntity(*resolution.EntityKind, *resolution.EntityID)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"resolution": resolution,
		"entity":     entity,
	})
}

// lookupEntity 根据绑定的资产类型分发到对应服务
func (c *IdentifierController) lookupEntity(kind models.EntityKind, entityID uint) (interface{}, error) {
	switch kind {
	case models.EntityKindRoom:
		return c.Container.GetService("room").(services.InterfaceRoomService).GetRoomByID(entityID)
	case models.EntityKindCabinet:
		return c.Container.GetService("cabinet").(services.InterfaceCabinetService).GetCabinetByID(entityID)
	case models.EntityKindDevice:
		return c.Container.GetService("device").(services.InterfaceDeviceService).GetDeviceByID(entityID)
	case models.EntityKindPanel:
		return c.Container.GetService("panel").(services.InterfacePanelService).GetPanelByID(entityID)
	case models.EntityKindPort:
		return c.Container.GetService("port").(services.InterfacePortService).GetPortByID(entityID)
	case models.EntityKindCableEndpoint:
		return c.lookupCableEndpoint(entityID)
	default:
		return nil, nil
	}
}

// lookupCableEndpoint 线缆端点标签要回答"这根线另一头在哪"
func (c *IdentifierController) lookupCableEndpoint(endpointID uint) (interface{}, error) {
	var endpoint models.CableEndpoint
	if err := c.Container.GetDB().Preload("Cable").First(&endpoint, endpointID).Error; err != nil {
		return nil, err
	}

	if endpoint.PortID == nil {
		return gin.H{"endpoint": endpoint, "connection": nil}, nil
	}

	connectionService := c.Container.GetService("connection").(services.InterfaceConnectionService)
	connection, err := connectionService.GetPortConnection(*endpoint.PortID)
	if err != nil {
		return nil, err
	}
	return gin.H{"endpoint": endpoint, "connection": connection}, nil
}
