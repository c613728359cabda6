package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusConflict - 409: 资源冲突.
	StatusConflict = 409
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 标识符相关错误码 (101xxx).
const (
	// ErrIdentifierNotFound - 404: 标识符不存在.
	ErrIdentifierNotFound int = iota + 101000
	// ErrIdentifierBound - 409: 标识符已绑定其他资产.
	ErrIdentifierBound
	// ErrIdentifierCancelled - 409: 标识符已作废.
	ErrIdentifierCancelled
	// ErrIdentifierStillBound - 400: 标识符仍处于绑定状态.
	ErrIdentifierStillBound
	// ErrInvalidBatchCount - 400: 批量生成数量超出允许范围.
	ErrInvalidBatchCount
	// ErrLabelFormat - 400: 标签格式不正确.
	ErrLabelFormat
)

// 端口相关错误码 (102xxx).
const (
	// ErrPortNotFound - 404: 端口不存在.
	ErrPortNotFound int = iota + 102000
	// ErrPortUnavailable - 409: 端口不可用.
	ErrPortUnavailable
	// ErrPortNotConnected - 404: 端口未接线.
	ErrPortNotConnected
	// ErrPortStillReferenced - 400: 端口仍被线缆端点引用.
	ErrPortStillReferenced
)

// 线缆相关错误码 (103xxx).
const (
	// ErrCableNotFound - 404: 线缆不存在.
	ErrCableNotFound int = iota + 103000
	// ErrCableIncompatible - 400: 线缆类型与端口不兼容.
	ErrCableIncompatible
	// ErrCableFullyConnected - 409: 线缆两端均已接入.
	ErrCableFullyConnected
)

// 资产相关错误码 (104xxx).
const (
	// ErrAssetNotFound - 404: 资产不存在.
	ErrAssetNotFound int = iota + 104000
	// ErrAssetAlreadyExist - 400: 资产已存在.
	ErrAssetAlreadyExist
	// ErrAssetInvariant - 500: 资产数据不一致.
	ErrAssetInvariant
)

// 打印批次相关错误码 (105xxx).
const (
	// ErrPrintBatchNotFound - 404: 打印批次不存在.
	ErrPrintBatchNotFound int = iota + 105000
	// ErrPrintBatchCompleted - 400: 打印批次已完成.
	ErrPrintBatchCompleted
)

// 用户相关错误码 (106xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 106000
	// ErrUserAlreadyExist - 400: 用户已存在.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 用户密码错误.
	ErrUserPasswordIncorrect
)

// 数据库相关错误码 (107xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 107000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
