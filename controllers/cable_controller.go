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

// InterfaceCableController 定义线缆控制器接口
type InterfaceCableController interface {
	GetCables()
	GetCable()
	UpdateCable()
}

// CableController 处理线缆台账相关的请求
type CableController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewCableController 创建一个新的线缆控制器
func NewCableController(ctx *gin.Context, container *container.ServiceContainer) *CableController {
	return &CableController{
		Ctx:       ctx,
		Container: container,
	}
}

// CableUpdateRequest 线缆属性修正请求
type CableUpdateRequest struct {
	Type    string   `json:"type" example:"FIBER_MM"`
	Label   string   `json:"label" example:"F-A03-B07-01"`
	Color   string   `json:"color" example:"orange"`
	Notes   string   `json:"notes" example:""`
	LengthM *float64 `json:"length_m,omitempty" example:"15"`
}

// HandleCableFunc 返回一个处理线缆请求的Gin处理函数
func HandleCableFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewCableController(ctx, container)

		switch method {
		case "getCables":
			controller.GetCables()
		case "getCable":
			controller.GetCable()
		case "updateCable":
			controller.UpdateCable()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetCables 分页获取线缆列表
// @Summary 获取线缆列表
// @Tags Cable
// @Produce json
// @Security BearerAuth
// @Param pageNum query int false "页码，默认为1"
// @Param pageSize query int false "每页条数，默认为20"
// @Success 200 {object} map[string]interface{}
// @Router /cables [get]
func (c *CableController) GetCables() {
	var query models.PaginationQuery
	if err := c.Ctx.ShouldBindQuery(&query); err != nil {
		response.ParamError(c.Ctx, "无效的分页参数: "+err.Error())
		return
	}

	cableService := c.Container.GetService("cable").(services.InterfaceCableService)
	cables, page, err := cableService.GetAllCables(&query)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": page,
		"data":       cables,
	})
}

// 2. GetCable 获取单根线缆详情
// @Summary 获取线缆详情
// @Tags Cable
// @Produce json
// @Security BearerAuth
// @Param id path int true "线缆ID"
// @Success 200 {object} models.Cable
// @Failure 404 {object} ErrorResponse
// @Router /cables/{id} [get]
func (c *CableController) GetCable() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的线缆ID")
		return
	}

	cableService := c.Container.GetService("cable").(services.InterfaceCableService)
	cable, err := cableService.GetCableByID(uint(id))
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, cable)
}

// 3. UpdateCable 修正线缆属性
// @Summary 更新线缆
// @Description 修正线缆的类型、颜色、长度等登记属性；库存状态不可改
// @Tags Cable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "线缆ID"
// @Param cable body CableUpdateRequest true "线缆属性"
// @Success 200 {object} models.Cable
// @Failure 404 {object} ErrorResponse
// @Router /cables/{id} [put]
func (c *CableController) UpdateCable() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的线缆ID")
		return
	}

	var req CableUpdateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Type != "" {
		updates["type"] = req.Type
	}
	if req.Label != "" {
		updates["label"] = req.Label
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if req.LengthM != nil {
		updates["length_m"] = *req.LengthM
	}

	cableService := c.Container.GetService("cable").(services.InterfaceCableService)
	cable, err := cableService.UpdateCable(uint(id), updates)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, cable)
}
