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

// InterfacePanelController 定义面板控制器接口
type InterfacePanelController interface {
	GetPanels()
	GetPanel()
	CreatePanel()
	UpdatePanel()
	DeletePanel()
	GetPanelPorts()
}

// PanelController 处理面板相关的请求
type PanelController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPanelController 创建一个新的面板控制器
func NewPanelController(ctx *gin.Context, container *container.ServiceContainer) *PanelController {
	return &PanelController{
		Ctx:       ctx,
		Container: container,
	}
}

// PanelRequest 表示面板请求
type PanelRequest struct {
	CabinetID  uint   `json:"cabinet_id" binding:"required" example:"1"`
	DeviceID   *uint  `json:"device_id,omitempty" example:"1"`
	Name       string `json:"name" binding:"required" example:"配线架A03-01"`
	Type       string `json:"type" example:"patch"` // patch, device
	PositionU  int    `json:"position_u" example:"40"`
	Notes      string `json:"notes" example:""`
	PortCount  int    `json:"port_count" example:"24"`
	Connector  string `json:"connector" example:"RJ45"`
	LabelValue *int64 `json:"label_value,omitempty" example:"1027"`
}

// HandlePanelFunc 返回一个处理面板请求的Gin处理函数
func HandlePanelFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPanelController(ctx, container)

		switch method {
		case "getPanels":
			controller.GetPanels()
		case "getPanel":
			controller.GetPanel()
		case "createPanel":
			controller.CreatePanel()
		case "updatePanel":
			controller.UpdatePanel()
		case "deletePanel":
			controller.DeletePanel()
		case "getPanelPorts":
			controller.GetPanelPorts()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetPanels 获取面板列表，可按机柜过滤
// @Summary 获取面板列表
// @Tags Panel
// @Produce json
// @Security BearerAuth
// @Param cabinet_id query int false "按机柜过滤"
// @Success 200 {array} models.Panel
// @Router /panels [get]
func (c *PanelController) GetPanels() {
	panelService := c.Container.GetService("panel").(services.InterfacePanelService)

	if cabinetIDStr := c.Ctx.Query("cabinet_id"); cabinetIDStr != "" {
		cabinetID, err := strconv.Atoi(cabinetIDStr)
		if err != nil {
			response.ParamError(c.Ctx, "无效的机柜ID")
			return
		}
		panels, err := panelService.GetPanelsByCabinet(uint(cabinetID))
		if err != nil {
			respondServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, panels)
		return
	}

	panels, err := panelService.GetAllPanels()
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, panels)
}

// 2. GetPanel 获取单个面板详情（含端口）
// @Summary 获取面板详情
// @Tags Panel
// @Produce json
// @Security BearerAuth
// @Param id path int true "面板ID"
// @Success 200 {object} models.Panel
// @Failure 404 {object} ErrorResponse
// @Router /panels/{id} [get]
func (c *PanelController) GetPanel() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的面板ID")
		return
	}

	panelService := c.Container.GetService("panel").(services.InterfacePanelService)
	panel, err := panelService.GetPanelByID(uint(id))
	if err != nil {
		response.NotFound(c.Ctx, err.Error())
		return
	}
	response.Success(c.Ctx, panel)
}

// 3. CreatePanel 创建面板并批量开端口
// @Summary 创建面板
// @Description 创建面板，port_count大于0时按1..N编号批量创建端口
// @Tags Panel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param panel body PanelRequest true "面板信息"
// @Success 200 {object} models.Panel
// @Failure 400 {object} ErrorResponse
// @Router /panels [post]
func (c *PanelController) CreatePanel() {
	var req PanelRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	panel := &models.Panel{
		CabinetID: req.CabinetID,
		DeviceID:  req.DeviceID,
		Name:      req.Name,
		PositionU: req.PositionU,
		Notes:     req.Notes,
	}
	switch req.Type {
	case "device":
		panel.Type = models.PanelTypeDevice
	default:
		panel.Type = models.PanelTypePatch
	}

	panelService := c.Container.GetService("panel").(services.InterfacePanelService)
	err := panelService.CreatePanel(panel, req.PortCount, models.ConnectorType(req.Connector), req.LabelValue)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, panel)
}

// 4. UpdatePanel 更新面板信息
// @Summary 更新面板
// @Tags Panel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "面板ID"
// @Param panel body PanelRequest true "面板信息"
// @Success 200 {object} models.Panel
// @Failure 404 {object} ErrorResponse
// @Router /panels/{id} [put]
func (c *PanelController) UpdatePanel() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的面板ID")
		return
	}

	var req PanelRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":       req.Name,
		"position_u": req.PositionU,
		"notes":      req.Notes,
	}

	panelService := c.Container.GetService("panel").(services.InterfacePanelService)
	panel, err := panelService.UpdatePanel(uint(id), updates)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, panel)
}

// 5. DeletePanel 删除面板
// @Summary 删除面板
// @Description 面板下无被占用端口时删除面板及其端口
// @Tags Panel
// @Produce json
// @Security BearerAuth
// @Param id path int true "面板ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /panels/{id} [delete]
func (c *PanelController) DeletePanel() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的面板ID")
		return
	}

	panelService := c.Container.GetService("panel").(services.InterfacePanelService)
	if err := panelService.DeletePanel(uint(id)); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// 6. GetPanelPorts 获取面板下的端口列表
// @Summary 获取面板端口
// @Tags Panel
// @Produce json
// @Security BearerAuth
// @Param id path int true "面板ID"
// @Success 200 {array} models.Port
// @Failure 404 {object} ErrorResponse
// @Router /panels/{id}/ports [get]
func (c *PanelController) GetPanelPorts() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的面板ID")
		return
	}

	portService := c.Container.GetService("port").(services.InterfacePortService)
	ports, err := portService.GetPortsByPanel(uint(id))
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, ports)
}
