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

// InterfaceCabinetController 定义机柜控制器接口
type InterfaceCabinetController interface {
	GetCabinets()
	GetCabinet()
	CreateCabinet()
	UpdateCabinet()
	DeleteCabinet()
}

// CabinetController 处理机柜相关的请求
type CabinetController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewCabinetController 创建一个新的机柜控制器
func NewCabinetController(ctx *gin.Context, container *container.ServiceContainer) *CabinetController {
	return &CabinetController{
		Ctx:       ctx,
		Container: container,
	}
}

// CabinetRequest 表示机柜请求
type CabinetRequest struct {
	RoomID     uint   `json:"room_id" binding:"required" example:"1"`
	Name       string `json:"name" binding:"required" example:"A03"`
	HeightU    int    `json:"height_u" example:"42"`
	Row        string `json:"row" example:"A排"`
	Notes      string `json:"notes" example:""`
	LabelValue *int64 `json:"label_value,omitempty" example:"1025"`
}

// HandleCabinetFunc 返回一个处理机柜请求的Gin处理函数
func HandleCabinetFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewCabinetController(ctx, container)

		switch method {
		case "getCabinets":
			controller.GetCabinets()
		case "getCabinet":
			controller.GetCabinet()
		case "createCabinet":
			controller.CreateCabinet()
		case "updateCabinet":
			controller.UpdateCabinet()
		case "deleteCabinet":
			controller.DeleteCabinet()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetCabinets 获取机柜列表，可按机房过滤
// @Summary 获取机柜列表
// @Tags Cabinet
// @Produce json
// @Security BearerAuth
// @Param room_id query int false "按机房过滤"
// @Success 200 {array} models.Cabinet
// @Router /cabinets [get]
func (c *CabinetController) GetCabinets() {
	cabinetService := c.Container.GetService("cabinet").(services.InterfaceCabinetService)

	if roomIDStr := c.Ctx.Query("room_id"); roomIDStr != "" {
		roomID, err := strconv.Atoi(roomIDStr)
		if err != nil {
			response.ParamError(c.Ctx, "无效的机房ID")
			return
		}
		cabinets, err := cabinetService.GetCabinetsByRoom(uint(roomID))
		if err != nil {
			respondServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, cabinets)
		return
	}

	cabinets, err := cabinetService.GetAllCabinets()
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, cabinets)
}

// 2. GetCabinet 获取单个机柜详情
// @Summary 获取机柜详情
// @Tags Cabinet
// @Produce json
// @Security BearerAuth
// @Param id path int true "机柜ID"
// @Success 200 {object} models.Cabinet
// @Failure 404 {object} ErrorResponse
// @Router /cabinets/{id} [get]
func (c *CabinetController) GetCabinet() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的机柜ID")
		return
	}

	cabinetService := c.Container.GetService("cabinet").(services.InterfaceCabinetService)
	cabinet, err := cabinetService.GetCabinetByID(uint(id))
	if err != nil {
		response.NotFound(c.Ctx, err.Error())
		return
	}
	response.Success(c.Ctx, cabinet)
}

// 3. CreateCabinet 创建机柜
// @Summary 创建机柜
// @Tags Cabinet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cabinet body CabinetRequest true "机柜信息"
// @Success 200 {object} models.Cabinet
// @Failure 400 {object} ErrorResponse
// @Router /cabinets [post]
func (c *CabinetController) CreateCabinet() {
	var req CabinetRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	cabinet := &models.Cabinet{
		RoomID:  req.RoomID,
		Name:    req.Name,
		HeightU: req.HeightU,
		Row:     req.Row,
		Notes:   req.Notes,
	}

	cabinetService := c.Container.GetService("cabinet").(services.InterfaceCabinetService)
	if err := cabinetService.CreateCabinet(cabinet, req.LabelValue); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, cabinet)
}

// 4. UpdateCabinet 更新机柜信息
// @Summary 更新机柜
// @Tags Cabinet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "机柜ID"
// @Param cabinet body CabinetRequest true "机柜信息"
// @Success 200 {object} models.Cabinet
// @Failure 404 {object} ErrorResponse
// @Router /cabinets/{id} [put]
func (c *CabinetController) UpdateCabinet() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的机柜ID")
		return
	}

	var req CabinetRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":     req.Name,
		"height_u": req.HeightU,
		"row":      req.Row,
		"notes":    req.Notes,
	}

	cabinetService := c.Container.GetService("cabinet").(services.InterfaceCabinetService)
	cabinet, err := cabinetService.UpdateCabinet(uint(id), updates)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, cabinet)
}

// 5. DeleteCabinet 删除机柜
// @Summary 删除机柜
// @Description 机柜下无设备与面板时删除并释放其标识符
// @Tags Cabinet
// @Produce json
// @Security BearerAuth
// @Param id path int true "机柜ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /cabinets/{id} [delete]
func (c *CabinetController) DeleteCabinet() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的机柜ID")
		return
	}

	cabinetService := c.Container.GetService("cabinet").(services.InterfaceCabinetService)
	if err := cabinetService.DeleteCabinet(uint(id)); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}
