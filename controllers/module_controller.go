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

// InterfaceModuleController 定义光模块控制器接口
type InterfaceModuleController interface {
	GetModules()
	GetModule()
	CreateModule()
	UpdateModule()
	DeleteModule()
}

// ModuleController 处理光模块台账相关的请求
type ModuleController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewModuleController 创建一个新的光模块控制器
func NewModuleController(ctx *gin.Context, container *container.ServiceContainer) *ModuleController {
	return &ModuleController{
		Ctx:       ctx,
		Container: container,
	}
}

// ModuleRequest 表示光模块请求
type ModuleRequest struct {
	Model        string `json:"model" binding:"required" example:"SFP-10G-SR"`
	SerialNumber string `json:"serial_number" example:"MOD2026080001"`
	FormFactor   string `json:"form_factor" example:"SFP+"`
	Status       string `json:"status" example:"spare"` // in_use, spare, faulty, scrapped
	Notes        string `json:"notes" example:""`
}

// HandleModuleFunc 返回一个处理光模块请求的Gin处理函数
func HandleModuleFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewModuleController(ctx, container)

		switch method {
		case "getModules":
			controller.GetModules()
		case "getModule":
			controller.GetModule()
		case "createModule":
			controller.CreateModule()
		case "updateModule":
			controller.UpdateModule()
		case "deleteModule":
			controller.DeleteModule()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetModules 获取所有光模块
// @Summary 获取光模块列表
// @Tags Module
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.TransceiverModule
// @Router /modules [get]
func (c *ModuleController) GetModules() {
	moduleService := c.Container.GetService("module").(services.InterfaceModuleService)
	modules, err := moduleService.GetAllModules()
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, modules)
}

// 2. GetModule 获取单个光模块详情
// @Summary 获取光模块详情
// @Tags Module
// @Produce json
// @Security BearerAuth
// @Param id path int true "光模块ID"
// @Success 200 {object} models.TransceiverModule
// @Failure 404 {object} ErrorResponse
// @Router /modules/{id} [get]
func (c *ModuleController) GetModule() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的光模块ID")
		return
	}

	moduleService := c.Container.GetService("module").(services.InterfaceModuleService)
	module, err := moduleService.GetModuleByID(uint(id))
	if err != nil {
		response.NotFound(c.Ctx, err.Error())
		return
	}
	response.Success(c.Ctx, module)
}

// 3. CreateModule 登记光模块
// @Summary 创建光模块
// @Tags Module
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param module body ModuleRequest true "光模块信息"
// @Success 200 {object} models.TransceiverModule
// @Failure 400 {object} ErrorResponse
// @Router /modules [post]
func (c *ModuleController) CreateModule() {
	var req ModuleRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	module := &models.TransceiverModule{
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		FormFactor:   req.FormFactor,
		Status:       models.ModuleStatus(req.Status),
		Notes:        req.Notes,
	}

	moduleService := c.Container.GetService("module").(services.InterfaceModuleService)
	if err := moduleService.CreateModule(module); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, module)
}

// 4. UpdateModule 更新光模块信息
// @Summary 更新光模块
// @Tags Module
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "光模块ID"
// @Param module body ModuleRequest true "光模块信息"
// @Success 200 {object} models.TransceiverModule
// @Failure 404 {object} ErrorResponse
// @Router /modules/{id} [put]
func (c *ModuleController) UpdateModule() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的光模块ID")
		return
	}

	var req ModuleRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"model":         req.Model,
		"serial_number": req.SerialNumber,
		"form_factor":   req.FormFactor,
		"notes":         req.Notes,
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	moduleService := c.Container.GetService("module").(services.InterfaceModuleService)
	module, err := moduleService.UpdateModule(uint(id), updates)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, module)
}

// 5. DeleteModule 删除光模块
// @Summary 删除光模块
// @Description 光模块未插在任何端口上时删除
// @Tags Module
// @Produce json
// @Security BearerAuth
// @Param id path int true "光模块ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /modules/{id} [delete]
func (c *ModuleController) DeleteModule() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的光模块ID")
		return
	}

	moduleService := c.Container.GetService("module").(services.InterfaceModuleService)
	if err := moduleService.DeleteModule(uint(id)); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}
