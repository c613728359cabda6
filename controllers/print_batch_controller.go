package controllers

import (
	"strconv"

	"dcim-asset-service/internal/error/code"
	"dcim-asset-service/internal/error/response"
	"dcim-asset-service/services"
	"dcim-asset-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfacePrintBatchController 定义打印批次控制器接口
type InterfacePrintBatchController interface {
	GetPrintBatches()
	GetPrintBatch()
	CreatePrintBatch()
	ExportPrintBatch()
}

// PrintBatchController 处理打印批次相关的请求
type PrintBatchController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPrintBatchController 创建一个新的打印批次控制器
func NewPrintBatchController(ctx *gin.Context, container *container.ServiceContainer) *PrintBatchController {
	return &PrintBatchController{
		Ctx:       ctx,
		Container: container,
	}
}

// PrintBatchRequest 创建打印批次请求
type PrintBatchRequest struct {
	Name      string `json:"name" binding:"required" example:"2026Q3机房扩容标签"`
	Count     int    `json:"count" binding:"required" example:"500"`
	Requester string `json:"requester" example:"zhang.wei"`
	Notes     string `json:"notes" example:"A栋三层新机柜"`
}

// HandlePrintBatchFunc 返回一个处理打印批次请求的Gin处理函数
func HandlePrintBatchFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPrintBatchController(ctx, container)

		switch method {
		case "getPrintBatches":
			controller.GetPrintBatches()
		case "getPrintBatch":
			controller.GetPrintBatch()
		case "createPrintBatch":
			controller.CreatePrintBatch()
		case "exportPrintBatch":
			controller.ExportPrintBatch()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetPrintBatches 获取所有打印批次
// @Summary 获取打印批次列表
// @Tags PrintBatch
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PrintBatch
// @Router /print-batches [get]
func (c *PrintBatchController) GetPrintBatches() {
	identifierService := c.Container.GetService("identifier").(services.InterfaceIdentifierService)
	batches, err := identifierService.GetAllPrintBatches()
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, batches)
}

// 2. GetPrintBatch 获取单个打印批次详情
// @Summary 获取打印批次详情
// @Tags PrintBatch
// @Produce json
// @Security BearerAuth
// @Param id path int true "批次ID"
// @Success 200 {object} models.PrintBatch
// @Failure 404 {object} ErrorResponse
// @Router /print-batches/{id} [get]
func (c *PrintBatchController) GetPrintBatch() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的批次ID")
		return
	}

	identifierService := c.Container.GetService("identifier").(services.InterfaceIdentifierService)
	batch, err := identifierService.GetPrintBatch(uint(id))
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, batch)
}

// 3. CreatePrintBatch 创建打印批次
// @Summary 创建打印批次
// @Description 生成count个新标识符并组成一个待打印批次
// @Tags PrintBatch
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PrintBatchRequest true "批次名称与数量"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /print-batches [post]
func (c *PrintBatchController) CreatePrintBatch() {
	var req PrintBatchRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	identifierService := c.Container.GetService("identifier").(services.InterfaceIdentifierService)
	batch, identifiers, err := identifierService.CreatePrintBatch(req.Name, req.Count, req.Requester, req.Notes)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	mqttService := c.Container.GetService("mqtt_event").(services.InterfaceMQTTEventService)
	if err := mqttService.PublishPrintBatchCreated(batch.ID, batch.Name, len(identifiers)); err != nil {
		// 通知失败不影响批次创建
		_ = err
	}

	response.Success(c.Ctx, gin.H{
		"batch":       batch,
		"count":       len(identifiers),
		"first_value": identifiers[0].Value,
		"last_value":  identifiers[len(identifiers)-1].Value,
	})
}

// 4. ExportPrintBatch 导出批次标签文件
// @Summary 导出打印批次
// @Description 生成xlsx标签清单并下载，同时将批次标记为完成
// @Tags PrintBatch
// @Produce application/octet-stream
// @Security BearerAuth
// @Param id path int true "批次ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Router /print-batches/{id}/export [get]
func (c *PrintBatchController) ExportPrintBatch() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的批次ID")
		return
	}

	exportService := c.Container.GetService("label_export").(services.InterfaceLabelExportService)
	path, err := exportService.ExportPrintBatch(uint(id))
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	c.Ctx.FileAttachment(path, "labels.xlsx")
}
