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

// InterfaceDeviceController 定义设备控制器接口
type InterfaceDeviceController interface {
	GetDevices()
	GetDevice()
	CreateDevice()
	UpdateDevice()
	DeleteDevice()
}

// DeviceController 处理设备相关的请求
type DeviceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDeviceController 创建一个新的设备控制器
func NewDeviceController(ctx *gin.Context, container *container.ServiceContainer) *DeviceController {
	return &DeviceController{
		Ctx:       ctx,
		Container: container,
	}
}

// DeviceRequest 表示设备请求
type DeviceRequest struct {
	CabinetID    uint   `json:"cabinet_id" binding:"required" example:"1"`
	Name         string `json:"name" binding:"required" example:"核心交换机1"`
	Model        string `json:"model" example:"S5735-L48T4S-A1"`
	SerialNumber string `json:"serial_number" example:"SN2026080001"`
	PositionU    int    `json:"position_u" example:"20"`
	Notes        string `json:"notes" example:""`
	LabelValue   *int64 `json:"label_value,omitempty" example:"1026"`
}

// HandleDeviceFunc 返回一个处理设备请求的Gin处理函数
func HandleDeviceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDeviceController(ctx, container)

		switch method {
		case "getDevices":
			controller.GetDevices()
		case "getDevice":
			controller.GetDevice()
		case "createDevice":
			controller.CreateDevice()
		case "updateDevice":
			controller.UpdateDevice()
		case "deleteDevice":
			controller.DeleteDevice()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetDevices 获取设备列表，可按机柜过滤
// @Summary 获取设备列表
// @Tags Device
// @Produce json
// @Security BearerAuth
// @Param cabinet_id query int false "按机柜过滤"
// @Success 200 {array} models.Device
// @Router /devices [get]
func (c *DeviceController) GetDevices() {
	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)

	if cabinetIDStr := c.Ctx.Query("cabinet_id"); cabinetIDStr != "" {
		cabinetID, err := strconv.Atoi(cabinetIDStr)
		if err != nil {
			response.ParamError(c.Ctx, "无效的机柜ID")
			return
		}
		devices, err := deviceService.GetDevicesByCabinet(uint(cabinetID))
		if err != nil {
			respondServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, devices)
		return
	}

	devices, err := deviceService.GetAllDevices()
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, devices)
}

// 2. GetDevice 获取单个设备详情
// @Summary 获取设备详情
// @Tags Device
// @Produce json
// @Security BearerAuth
// @Param id path int true "设备ID"
// @Success 200 {object} models.Device
// @Failure 404 {object} ErrorResponse
// @Router /devices/{id} [get]
func (c *DeviceController) GetDevice() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的设备ID")
		return
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	device, err := deviceService.GetDeviceByID(uint(id))
	if err != nil {
		response.NotFound(c.Ctx, err.Error())
		return
	}
	response.Success(c.Ctx, device)
}

// 3. CreateDevice 创建设备
// @Summary 创建设备
// @Tags Device
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param device body DeviceRequest true "设备信息"
// @Success 200 {object} models.Device
// @Failure 400 {object} ErrorResponse
// @Router /devices [post]
func (c *DeviceController) CreateDevice() {
	var req DeviceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	device := &models.Device{
		CabinetID:    req.CabinetID,
		Name:         req.Name,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		PositionU:    req.PositionU,
		Notes:        req.Notes,
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	if err := deviceService.CreateDevice(device, req.LabelValue); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, device)
}

// 4. UpdateDevice 更新设备信息
// @Summary 更新设备
// @Tags Device
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "设备ID"
// @Param device body DeviceRequest true "设备信息"
// @Success 200 {object} models.Device
// @Failure 404 {object} ErrorResponse
// @Router /devices/{id} [put]
func (c *DeviceController) UpdateDevice() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的设备ID")
		return
	}

	var req DeviceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":          req.Name,
		"model":         req.Model,
		"serial_number": req.SerialNumber,
		"position_u":    req.PositionU,
		"notes":         req.Notes,
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	device, err := deviceService.UpdateDevice(uint(id), updates)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, device)
}

// 5. DeleteDevice 删除设备
// @Summary 删除设备
// @Description 设备下无面板时删除并释放其标识符
// @Tags Device
// @Produce json
// @Security BearerAuth
// @Param id path int true "设备ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /devices/{id} [delete]
func (c *DeviceController) DeleteDevice() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的设备ID")
		return
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	if err := deviceService.DeleteDevice(uint(id)); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}
