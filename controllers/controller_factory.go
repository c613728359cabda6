package controllers

import (
	"errors"

	"dcim-asset-service/internal/error/code"
	"dcim-asset-service/internal/error/response"
	"dcim-asset-service/services"
	"dcim-asset-service/services/container"

	"github.com/gin-gonic/gin"
)

// BaseController 是所有控制器的基础接口
type BaseController interface {
	// 获取服务容器
	GetContainer() *container.ServiceContainer
	// 获取Gin上下文
	GetContext() *gin.Context
}

// BaseControllerImpl 是控制器的基础实现
type BaseControllerImpl struct {
	Container *container.ServiceContainer
	Context   *gin.Context
}

// GetContainer 实现 BaseController 接口
func (c *BaseControllerImpl) GetContainer() *container.ServiceContainer {
	return c.Container
}

// GetContext 实现 BaseController 接口
func (c *BaseControllerImpl) GetContext() *gin.Context {
	return c.Context
}

// ControllerFactory 用于创建控制器的工厂
type ControllerFactory struct {
	Container *container.ServiceContainer
}

// NewControllerFactory 创建一个新的控制器工厂
func NewControllerFactory(container *container.ServiceContainer) *ControllerFactory {
	return &ControllerFactory{
		Container: container,
	}
}

// ErrorResponse 用于swagger文档的错误响应结构
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondServiceError 将业务层错误映射为统一错误码响应
func respondServiceError(ctx *gin.Context, err error) {
	var compatErr *services.CompatibilityError
	if errors.As(err, &compatErr) {
		response.FailWithMessage(ctx, code.ErrCableIncompatible, compatErr.Error(), gin.H{
			"reason":     compatErr.Reason,
			"cable_type": compatErr.CableType,
			"port_id":    compatErr.PortID,
			"connector":  compatErr.Connector,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrIdentifierNotFound):
		response.FailWithMessage(ctx, code.ErrIdentifierNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrIdentifierBound):
		response.FailWithMessage(ctx, code.ErrIdentifierBound, err.Error(), nil)
	case errors.Is(err, services.ErrIdentifierCancelled):
		response.FailWithMessage(ctx, code.ErrIdentifierCancelled, err.Error(), nil)
	case errors.Is(err, services.ErrIdentifierStillBound):
		response.FailWithMessage(ctx, code.ErrIdentifierStillBound, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidBatchCount):
		response.FailWithMessage(ctx, code.ErrInvalidBatchCount, err.Error(), nil)
	case errors.Is(err, services.ErrPortNotFound):
		response.FailWithMessage(ctx, code.ErrPortNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrPortUnavailable):
		response.FailWithMessage(ctx, code.ErrPortUnavailable, err.Error(), nil)
	case errors.Is(err, services.ErrPortNotConnected):
		response.FailWithMessage(ctx, code.ErrPortNotConnected, err.Error(), nil)
	case errors.Is(err, services.ErrPortStillReferenced):
		response.FailWithMessage(ctx, code.ErrPortStillReferenced, err.Error(), nil)
	case errors.Is(err, services.ErrCableNotFound):
		response.FailWithMessage(ctx, code.ErrCableNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrCableFullyConnected):
		response.FailWithMessage(ctx, code.ErrCableFullyConnected, err.Error(), nil)
	case errors.Is(err, services.ErrCableEndConflict):
		response.FailWithMessage(ctx, code.ErrAssetInvariant, err.Error(), nil)
	case errors.Is(err, services.ErrPrintBatchNotFound):
		response.FailWithMessage(ctx, code.ErrPrintBatchNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrPrintBatchCompleted):
		response.FailWithMessage(ctx, code.ErrPrintBatchCompleted, err.Error(), nil)
	default:
		response.FailWithMessage(ctx, code.ErrDatabase, err.Error(), nil)
	}
}
