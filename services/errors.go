package services

import (
	"errors"
	"fmt"

	"dcim-asset-service/models"
)

// 服务层错误。控制器按错误种类映射到internal/error/code中的错误码。
var (
	// ErrIdentifierNotFound 标识符不存在
	ErrIdentifierNotFound = errors.New("标识符不存在")
	// ErrIdentifierBound 标识符已绑定其他资产
	ErrIdentifierBound = errors.New("标识符已绑定其他资产")
	// ErrIdentifierCancelled 标识符已作废，不能再分配
	ErrIdentifierCancelled = errors.New("标识符已作废")
	// ErrIdentifierNotBound 标识符未处于绑定状态，无法释放
	ErrIdentifierNotBound = errors.New("标识符未处于绑定状态")
	// ErrIdentifierStillBound 标识符仍处于绑定状态，需先释放
	ErrIdentifierStillBound = errors.New("标识符仍处于绑定状态")
	// ErrInvalidBatchCount 批量生成数量不在允许范围内
	ErrInvalidBatchCount = errors.New("批量生成数量超出允许范围")

	// ErrPortNotFound 端口不存在
	ErrPortNotFound = errors.New("端口不存在")
	// ErrPortUnavailable 端口不处于可用状态
	ErrPortUnavailable = errors.New("端口不可用")
	// ErrPortNotConnected 端口没有线缆端点
	ErrPortNotConnected = errors.New("端口未接线")
	// ErrPortStillReferenced 端口仍被线缆端点引用
	ErrPortStillReferenced = errors.New("端口仍被线缆端点引用")

	// ErrCableNotFound 线缆不存在
	ErrCableNotFound = errors.New("线缆不存在")
	// ErrCableFullyConnected 线缆两端均已接入，无法再接
	ErrCableFullyConnected = errors.New("线缆两端均已接入")
	// ErrCableEndConflict 同一线缆出现重复端别（数据不一致，不应出现）
	ErrCableEndConflict = errors.New("线缆端别数据不一致")

	// ErrPrintBatchNotFound 打印批次不存在
	ErrPrintBatchNotFound = errors.New("打印批次不存在")
	// ErrPrintBatchCompleted 打印批次已完成
	ErrPrintBatchCompleted = errors.New("打印批次已完成")
)

// CompatibilityReason 兼容性校验失败的具体原因
type CompatibilityReason string

const (
	// ReasonMissingModule 端口缺少光模块
	ReasonMissingModule CompatibilityReason = "missing_module"
	// ReasonFaultyModule 端口光模块故障
	ReasonFaultyModule CompatibilityReason = "faulty_module"
	// ReasonScrappedModule 端口光模块已报废
	ReasonScrappedModule CompatibilityReason = "scrapped_module"
	// ReasonWrongConnector 端口接口类型不匹配
	ReasonWrongConnector CompatibilityReason = "wrong_connector"
)

// CompatibilityError 线缆类型与端口物理配置不兼容
type CompatibilityError struct {
	Reason    CompatibilityReason
	CableType models.CableType
	PortID    uint
	Connector models.ConnectorType
}

func (e *CompatibilityError) Error() string {
	return fmt.Sprintf("线缆类型 %s 与端口 %d (%s) 不兼容: %s",
		e.CableType, e.PortID, e.Connector, e.Reason)
}

// IsCompatibilityError 判断err是否为兼容性错误，是则返回具体错误
func IsCompatibilityError(err error) (*CompatibilityError, bool) {
	var ce *CompatibilityError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
