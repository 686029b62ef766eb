package iface

//操作码, -1表示还未收到任何帧
type OpCode int

const (
	OpUnknown OpCode = -1

	OpContinuation OpCode = 0x0
	OpText         OpCode = 0x1
	OpBinary       OpCode = 0x2
	// 0x3 - 0x7 保留给后续数据帧

	OpClose OpCode = 0x8
	OpPing  OpCode = 0x9
	OpPong  OpCode = 0xa
	// 0xb - 0xf 保留给后续控制帧
)

//关闭状态码 RFC 6455 7.4.1
const (
	//还没有关闭码,或者close帧载荷为空
	CloseCodeAbsent = -1

	StatusNormalClosure     = 1000
	StatusGoingAway         = 1001
	StatusProtocolError     = 1002
	StatusUnsupportedData   = 1003
	// 1004 - 1006 保留,不能由本端生成,只能原样透传
	StatusInvalidPayload    = 1007
	StatusPolicyViolation   = 1008
	StatusMessageTooLarge   = 1009
	StatusExtensionRequired = 1010
	StatusServerError       = 1011
	// 1015 同样保留
)

// IsControl 控制帧 0x8 - 0xf
func IsControl(op OpCode) bool {
	return op >= 0x8 && op <= 0xf
}

// IsText IsText
func IsText(op OpCode) bool {
	return op == OpText
}

// IsBinary IsBinary
func IsBinary(op OpCode) bool {
	return op == OpBinary
}

// Describe 返回操作码的可读名称,未知值一律是UNKNOWN,不报错
func Describe(op OpCode) string {
	switch op {
	case OpContinuation:
		return "CONTINUATION"
	case OpText:
		return "TEXT"
	case OpBinary:
		return "BINARY"
	case OpClose:
		return "CLOSE"
	case OpPing:
		return "PING"
	case OpPong:
		return "PONG"
	default:
		return "UNKNOWN"
	}
}
