package ethrpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Standard JSON-RPC 2.0 error codes.
const (
	ParseErrorCode     = -32700
	InvalidRequestCode = -32600
	MethodNotFoundCode = -32601
	InvalidParamsCode  = -32602
	InternalErrorCode  = -32603
)

var (
	// ErrNode is matched by every error returned by the node in the JSON-RPC
	// error object, use errors.Is(err, ErrNode) to tell them from transport
	// problems.
	ErrNode = errors.New("node error")
	// ErrInsufficientFunds is matched by node errors reporting that the
	// sender can't pay for the transaction.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Error represents JSON-RPC 2.0 error object returned by the node.
type Error struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// NewError is an Error constructor that takes Error contents from its
// parameters.
func NewError(code int64, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Error implements the error interface, it returns the node message as is.
func (e *Error) Error() string {
	return e.Message
}

// Is allows to match Error against ErrNode and ErrInsufficientFunds with
// errors.Is. Other *Error values are matched by code and message.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNode:
		return true
	case ErrInsufficientFunds:
		return strings.Contains(strings.ToLower(e.Message), "insufficient funds")
	}
	var other *Error
	if errors.As(target, &other) {
		return e.Code == other.Code && e.Message == other.Message
	}
	return false
}

// Details returns the error message along with its code and data, suitable
// for logs.
func (e *Error) Details() string {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return fmt.Sprintf("%s (%d)", e.Message, e.Code)
	}
	return fmt.Sprintf("%s (%d) - %s", e.Message, e.Code, e.Data)
}
