package controllers

import (
	"strconv"

	"dcim-asset-service/internal/error/code"
	"dcim-asset-service/internal/error/response"
	"dcim-asset-service/models"
	"dcim-asset-service/services"
	"dcim-asset-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfacePortController 定义端口控制器接口
type InterfacePortController interface {
	GetPort()
	CreatePort()
	UpdatePort()
	DeletePort()
	FreePort()
	AttachModule()
	DetachModule()
}

// PortController 处理端口相关的请求
type PortController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPortController 创建一个新的端口控制器
func NewPortController(ctx *gin.Context, container *container.ServiceContainer) *PortController {
	return &PortController{
		Ctx:       ctx,
		Container: container,
	}
}

// PortRequest 表示端口请求
type PortRequest struct {
	PanelID    uint   `json:"panel_id" binding:"required" example:"1"`
	Number     int    `json:"number" binding:"required" example:"1"`
	Label      string `json:"label" example:"GE0/0/1"`
	Connector  string `json:"connector" example:"SFP_PLUS"`
	Status     string `json:"status" example:"available"` // available, reserved, faulty
	LabelValue *int64 `json:"label_value,omitempty"`
}

// AttachModuleRequest 插入光模块请求
type AttachModuleRequest struct {
	ModuleID uint `json:"module_id" binding:"required" example:"1"`
}

// HandlePortFunc 返回一个处理端口请求的Gin处理函数
func HandlePortFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPortController(ctx, container)

		switch method {
		case "getPort":
			controller.GetPort()
		case "createPort":
			controller.CreatePort()
		case "updatePort":
			controller.UpdatePort()
		case "deletePort":
			controller.DeletePort()
		case "freePort":
			controller.FreePort()
		case "attachModule":
			controller.AttachModule()
		case "detachModule":
			controller.DetachModule()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// paramID 解析路径中的端口ID
func (c *PortController) paramID() (uint, bool) {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil || id < 1 {
		response.ParamError(c.Ctx, "无效的端口ID")
		return 0, false
	}
	return uint(id), true
}

// 1. GetPort 获取单个端口详情
// @Summary 获取端口详情
// @Tags Port
// @Produce json
// @Security BearerAuth
// @Param id path int true "端口ID"
// @Success 200 {object} models.Port
// @Failure 404 {object} ErrorResponse
// @Router /ports/{id} [get]
func (c *PortController) GetPort() {
	id, ok := c.paramID()
	if !ok {
		return
	}

	portService := c.Container.GetService("port").(services.InterfacePortService)
	port, err := portService.GetPortByID(id)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, port)
}

// 2. CreatePort 在面板上追加端口
// @Summary 创建端口
// @Tags Port
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param port body PortRequest true "端口信息"
// @Success 200 {object} models.Port
// @Failure 400 {object} ErrorResponse
// @Router /ports [post]
func (c *PortController) CreatePort() {
	var req PortRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	port := &models.Port{
		PanelID:   req.PanelID,
		Number:    req.Number,
		Label:     req.Label,
		Connector: models.ConnectorType(req.Connector),
		Status:    models.PortStatus(req.Status),
	}

	portService := c.Container.GetService("port").(services.InterfacePortService)
	if err := portService.CreatePort(port, req.LabelValue); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, port)
}

// 3. UpdatePort 更新端口信息
// @Summary 更新端口
// @Tags Port
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "端口ID"
// @Param port body PortRequest true "端口信息"
// @Success 200 {object} models.Port
// @Failure 404 {object} ErrorResponse
// @Router /ports/{id} [put]
func (c *PortController) UpdatePort() {
	id, ok := c.paramID()
	if !ok {
		return
	}

	var req PortRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"label": req.Label,
	}
	if req.Connector != "" {
		updates["connector"] = req.Connector
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	portService := c.Container.GetService("port").(services.InterfacePortService)
	port, err := portService.UpdatePort(id, updates)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, port)
}

// 4. DeletePort 删除端口
// @Summary 删除端口
// @Description 端口无线缆端点引用时删除
// @Tags Port
// @Produce json
// @Security BearerAuth
// @Param id path int true "端口ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /ports/{id} [delete]
func (c *PortController) DeletePort() {
	id, ok := c.paramID()
	if !ok {
		return
	}

	portService := c.Container.GetService("port").(services.InterfacePortService)
	if err := portService.DeletePort(id); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// 5. FreePort 显式释放端口
// @Summary 释放端口
// @Description 操作员确认现场空出后，将端口恢复为可用状态
// @Tags Port
// @Produce json
// @Security BearerAuth
// @Param id path int true "端口ID"
// @Success 200 {object} models.Port
// @Failure 400 {object} ErrorResponse
// @Router /ports/{id}/free [post]
func (c *PortController) FreePort() {
	id, ok := c.paramID()
	if !ok {
		return
	}

	portService := c.Container.GetService("port").(services.InterfacePortService)
	port, err := portService.FreePort(id)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, port)
}

// 6. AttachModule 插入光模块
// @Summary 插入光模块
// @Tags Port
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "端口ID"
// @Param request body AttachModuleRequest true "光模块ID"
// @Success 200 {object} models.Port
// @Failure 400 {object} ErrorResponse
// @Router /ports/{id}/module [post]
func (c *PortController) AttachModule() {
	id, ok := c.paramID()
	if !ok {
		return
	}

	var req AttachModuleRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	portService := c.Container.GetService("port").(services.InterfacePortService)
	port, err := portService.AttachModule(id, req.ModuleID)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, port)
}

// 7. DetachModule 拔出光模块
// @Summary 拔出光模块
// @Tags Port
// @Produce json
// @Security BearerAuth
// @Param id path int true "端口ID"
// @Success 200 {object} models.Port
// @Failure 400 {object} ErrorResponse
// @Router /ports/{id}/module [delete]
func (c *PortController) DetachModule() {
	id, ok := c.paramID()
	if !ok {
		return
	}

	portService := c.Container.GetService("port").(services.InterfacePortService)
	port, err := portService.DetachModule(id)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, port)
}
