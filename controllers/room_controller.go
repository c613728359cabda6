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

// InterfaceRoomController 定义机房控制器接口
type InterfaceRoomController interface {
	GetRooms()
	GetRoom()
	CreateRoom()
	UpdateRoom()
	DeleteRoom()
}

// RoomController 处理机房相关的请求
type RoomController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRoomController 创建一个新的机房控制器
func NewRoomController(ctx *gin.Context, container *container.ServiceContainer) *RoomController {
	return &RoomController{
		Ctx:       ctx,
		Container: container,
	}
}

// RoomRequest 表示机房请求
type RoomRequest struct {
	Name       string `json:"name" binding:"required" example:"A栋三层机房"`
	Site       string `json:"site" example:"A栋"`
	Floor      string `json:"floor" example:"3F"`
	Notes      string `json:"notes" example:""`
	LabelValue *int64 `json:"label_value,omitempty" example:"1024"` // 扫到的预打印标签数值
}

// HandleRoomFunc 返回一个处理机房请求的Gin处理函数
func HandleRoomFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRoomController(ctx, container)

		switch method {
		case "getRooms":
			controller.GetRooms()
		case "getRoom":
			controller.GetRoom()
		case "createRoom":
			controller.CreateRoom()
		case "updateRoom":
			controller.UpdateRoom()
		case "deleteRoom":
			controller.DeleteRoom()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetRooms 获取所有机房列表
// @Summary 获取所有机房
// @Tags Room
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Room
// @Router /rooms [get]
func (c *RoomController) GetRooms() {
	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	rooms, err := roomService.GetAllRooms()
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, rooms)
}

// 2. GetRoom 获取单个机房详情
// @Summary 获取机房详情
// @Tags Room
// @Produce json
// @Security BearerAuth
// @Param id path int true "机房ID"
// @Success 200 {object} models.Room
// @Failure 404 {object} ErrorResponse
// @Router /rooms/{id} [get]
func (c *RoomController) GetRoom() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的机房ID")
		return
	}

	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	room, err := roomService.GetRoomByID(uint(id))
	if err != nil {
		response.NotFound(c.Ctx, err.Error())
		return
	}
	response.Success(c.Ctx, room)
}

// 3. CreateRoom 创建机房
// @Summary 创建机房
// @Tags Room
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param room body RoomRequest true "机房信息"
// @Success 200 {object} models.Room
// @Failure 400 {object} ErrorResponse
// @Router /rooms [post]
func (c *RoomController) CreateRoom() {
	var req RoomRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	room := &models.Room{
		Name:  req.Name,
		Site:  req.Site,
		Floor: req.Floor,
		Notes: req.Notes,
	}

	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	if err := roomService.CreateRoom(room, req.LabelValue); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, room)
}

// 4. UpdateRoom 更新机房信息
// @Summary 更新机房
// @Tags Room
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "机房ID"
// @Param room body RoomRequest true "机房信息"
// @Success 200 {object} models.Room
// @Failure 404 {object} ErrorResponse
// @Router /rooms/{id} [put]
func (c *RoomController) UpdateRoom() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的机房ID")
		return
	}

	var req RoomRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":  req.Name,
		"site":  req.Site,
		"floor": req.Floor,
		"notes": req.Notes,
	}

	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	room, err := roomService.UpdateRoom(uint(id), updates)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, room)
}

// 5. DeleteRoom 删除机房
// @Summary 删除机房
// @Description 机房下无机柜时删除并释放其标识符
// @Tags Room
// @Produce json
// @Security BearerAuth
// @Param id path int true "机房ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /rooms/{id} [delete]
func (c *RoomController) DeleteRoom() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的机房ID")
		return
	}

	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	if err := roomService.DeleteRoom(uint(id)); err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}
