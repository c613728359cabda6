package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:      "成功",
	ErrUnknown:      "未知错误",
	ErrBind:         "请求参数绑定错误",
	ErrValidation:   "请求参数验证错误",
	ErrTokenInvalid: "无效的认证令牌",

	// 标识符相关错误码
	ErrIdentifierNotFound:   "标识符不存在",
	ErrIdentifierBound:      "标识符已绑定其他资产",
	ErrIdentifierCancelled:  "标识符已作废",
	ErrIdentifierStillBound: "标识符仍处于绑定状态，需先释放",
	ErrInvalidBatchCount:    "批量生成数量超出允许范围",
	ErrLabelFormat:          "标签格式不正确",

	// 端口相关错误码
	ErrPortNotFound:        "端口不存在",
	ErrPortUnavailable:     "端口不可用",
	ErrPortNotConnected:    "端口未接线",
	ErrPortStillReferenced: "端口仍被线缆端点引用",

	// 线缆相关错误码
	ErrCableNotFound:       "线缆不存在",
	ErrCableIncompatible:   "线缆类型与端口不兼容",
	ErrCableFullyConnected: "线缆两端均已接入",

	// 资产相关错误码
	ErrAssetNotFound:     "资产不存在",
	ErrAssetAlreadyExist: "资产已存在",
	ErrAssetInvariant:    "资产数据不一致",

	// 打印批次相关错误码
	ErrPrintBatchNotFound:  "打印批次不存在",
	ErrPrintBatchCompleted: "打印批次已完成",

	// 用户相关错误码
	ErrUserNotFound:          "用户不存在",
	ErrUserAlreadyExist:      "用户已存在",
	ErrUserPasswordIncorrect: "用户密码错误",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	// 标识符相关错误码
	ErrIdentifierNotFound:   StatusNotFound,
	ErrIdentifierBound:      StatusConflict,
	ErrIdentifierCancelled:  StatusConflict,
	ErrIdentifierStillBound: StatusBadRequest,
	ErrInvalidBatchCount:    StatusBadRequest,
	ErrLabelFormat:          StatusBadRequest,

	// 端口相关错误码
	ErrPortNotFound:        StatusNotFound,
	ErrPortUnavailable:     StatusConflict,
	ErrPortNotConnected:    StatusNotFound,
	ErrPortStillReferenced: StatusBadRequest,

	// 线缆相关错误码
	ErrCableNotFound:       StatusNotFound,
	ErrCableIncompatible:   StatusBadRequest,
	ErrCableFullyConnected: StatusConflict,

	// 资产相关错误码
	ErrAssetNotFound:     StatusNotFound,
	ErrAssetAlreadyExist: StatusBadRequest,
	ErrAssetInvariant:    StatusInternalServerError,

	// 打印批次相关错误码
	ErrPrintBatchNotFound:  StatusNotFound,
	ErrPrintBatchCompleted: StatusBadRequest,

	// 用户相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 根据错误码获取消息
func GetMessage(errorCode int) string {
	if message, ok := codeMessageMap[errorCode]; ok {
		return message
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus 根据错误码获取HTTP状态码
func GetStatus(errorCode int) int {
	if status, ok := codeStatusMap[errorCode]; ok {
		return status
	}
	return StatusInternalServerError
}
