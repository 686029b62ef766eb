package iface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IsControl(t *testing.T) {
	//0x8 - 0xf 是控制帧,其他一律不是,包括负数与保留值
	for op := -20; op <= 0x20; op++ {
		want := op >= 0x8 && op <= 0xf
		assert.Equal(t, want, IsControl(OpCode(op)), "opcode %#x", op)
	}
}

func Test_IsText_IsBinary(t *testing.T) {
	assert.True(t, IsText(OpText))
	assert.True(t, IsBinary(OpBinary))
	for op := -20; op <= 0x20; op++ {
		if op != int(OpText) {
			assert.False(t, IsText(OpCode(op)))
		}
		if op != int(OpBinary) {
			assert.False(t, IsBinary(OpCode(op)))
		}
	}
}

func Test_Describe(t *testing.T) {
	assert.Equal(t, "CONTINUATION", Describe(OpContinuation))
	assert.Equal(t, "TEXT", Describe(OpText))
	assert.Equal(t, "BINARY", Describe(OpBinary))
	assert.Equal(t, "CLOSE", Describe(OpClose))
	assert.Equal(t, "PING", Describe(OpPing))
	assert.Equal(t, "PONG", Describe(OpPong))

	//未知值不报错,统一UNKNOWN
	assert.Equal(t, "UNKNOWN", Describe(OpUnknown))
	assert.Equal(t, "UNKNOWN", Describe(OpCode(0x3)))
	assert.Equal(t, "UNKNOWN", Describe(OpCode(0xb)))
	assert.Equal(t, "UNKNOWN", Describe(OpCode(-42)))
}

func Test_Direction_String(t *testing.T) {
	assert.Equal(t, "outgoing", DirOutgoing.String())
	assert.Equal(t, "incoming", DirIncoming.String())
}
