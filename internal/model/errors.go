package model

import (
	"errors"
	"fmt"
)

// ErrorKind 错误类别
// 调用方按类别分支，不依赖错误文案
type ErrorKind string

const (
	ErrKindValidation     ErrorKind = "validation_failed"
	ErrKindRemoteCall     ErrorKind = "remote_call_failed"
	ErrKindStorageCorrupt ErrorKind = "storage_corrupt"
)

// AppError 带类别的业务错误
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError 创建校验错误
func NewValidationError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: ErrKindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewRemoteCallError 创建外部调用错误
func NewRemoteCallError(message string, err error) *AppError {
	return &AppError{Kind: ErrKindRemoteCall, Message: message, Err: err}
}

// NewStorageCorruptError 创建存储损坏错误
func NewStorageCorruptError(message string, err error) *AppError {
	return &AppError{Kind: ErrKindStorageCorrupt, Message: message, Err: err}
}

// IsKind 判断错误是否属于指定类别
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
