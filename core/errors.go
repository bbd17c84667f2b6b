package core

import "fmt"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Dataset 错误：SOURCE_UNREADABLE, COLUMN_NOT_FOUND, CONCAT_FAILED
//   - Metrics 错误：DIVISION_BY_ZERO, NO_SIGNAL
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
//   - 其他领域错误
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "COLUMN_NOT_FOUND"）
	Message string // 错误消息
	Module  string // 模块名称（如 "dataset", "metrics", "store"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*DomainError)
	return ok
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorf 创建带格式化消息的领域错误
func NewDomainErrorf(module, code, format string, args ...any) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// 错误代码常量
const (
	// 通用错误代码
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误

	// Dataset 错误代码
	ErrorCodeSourceUnreadable = "SOURCE_UNREADABLE" // 数据源无法打开或解析初始化失败
	ErrorCodeColumnNotFound   = "COLUMN_NOT_FOUND"  // 投影列不存在
	ErrorCodeConcatFailed     = "CONCAT_FAILED"     // chunk 合并失败

	// Metrics 错误代码
	ErrorCodeDivisionByZero = "DIVISION_BY_ZERO" // 空输入导致除零，需要调用方守卫
	ErrorCodeNoSignal       = "NO_SIGNAL"        // precision 与 recall 同时为零，无信号哨兵
)

// 模块名称常量
const (
	ModuleDataset   = "dataset"   // 数据集读取模块
	ModuleMetrics   = "metrics"   // 排序评测模块
	ModuleTrainset  = "trainset"  // 训练集容器模块
	ModuleRecommend = "recommend" // 推荐生成模块
	ModuleStore     = "store"     // 存储模块
	ModuleEval      = "eval"      // 离线评测模块
)

// 通用错误检查函数

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	return hasCode(err, ErrorCodeNotSupported)
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool {
	return hasCode(err, ErrorCodeInvalidInput)
}

// IsSourceUnreadable 检查错误是否为 SOURCE_UNREADABLE
func IsSourceUnreadable(err error) bool {
	return hasCode(err, ErrorCodeSourceUnreadable)
}

// IsColumnNotFound 检查错误是否为 COLUMN_NOT_FOUND
func IsColumnNotFound(err error) bool {
	return hasCode(err, ErrorCodeColumnNotFound)
}

// IsConcatFailed 检查错误是否为 CONCAT_FAILED
func IsConcatFailed(err error) bool {
	return hasCode(err, ErrorCodeConcatFailed)
}

// IsDivisionByZero 检查错误是否为 DIVISION_BY_ZERO
func IsDivisionByZero(err error) bool {
	return hasCode(err, ErrorCodeDivisionByZero)
}

// IsNoSignal 检查错误是否为 NO_SIGNAL（F1 的无信号哨兵，区别于数值 0）
func IsNoSignal(err error) bool {
	return hasCode(err, ErrorCodeNoSignal)
}

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}
