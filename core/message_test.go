package core

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wsproxy/codec"
	"wsproxy/iface"
)

type recordWriter struct {
	ops      []iface.OpCode
	fins     []bool
	payloads [][]byte
}

func (w *recordWriter) WriteFrame(op iface.OpCode, fin bool, payload []byte) error {
	w.ops = append(w.ops, op)
	w.fins = append(w.fins, fin)
	w.payloads = append(w.payloads, payload)
	return nil
}

func Test_message_empty(t *testing.T) {
	msg := NewMessage(1, iface.DirOutgoing, nil)
	assert.Equal(t, iface.OpUnknown, msg.Opcode())
	assert.Equal(t, iface.CloseCodeAbsent, msg.CloseCode())
	assert.False(t, msg.IsFinished())

	//一帧都没收到,载荷长度缺席
	_, ok := msg.PayloadLength()
	assert.False(t, ok)
	assert.Nil(t, msg.Payload())
}

func Test_message_fragmented_text(t *testing.T) {
	msg := NewMessage(1, iface.DirOutgoing, nil)

	msg.ProcessFrame(&iface.FrameData{OpCode: iface.OpText, Fin: false, Payload: []byte("He")})
	assert.False(t, msg.IsFinished())
	assert.Equal(t, iface.OpText, msg.Opcode())

	msg.ProcessFrame(&iface.FrameData{OpCode: iface.OpContinuation, Fin: true, Payload: []byte("llo")})
	assert.True(t, msg.IsFinished())

	//opcode由首帧固定,continuation不会覆盖
	assert.Equal(t, iface.OpText, msg.Opcode())
	assert.True(t, msg.IsText())
	assert.Equal(t, []byte("Hello"), msg.Payload())

	readable, err := msg.ReadablePayload()
	require.NoError(t, err)
	assert.Equal(t, "Hello", readable)

	n, ok := msg.PayloadLength()
	assert.True(t, ok)
	assert.Equal(t, 5, n)
}

func Test_message_close_code(t *testing.T) {
	msg := NewMessage(1, iface.DirIncoming, nil)
	//1000,网络字节序
	msg.ProcessFrame(&iface.FrameData{OpCode: iface.OpClose, Fin: true, Payload: []byte{0x03, 0xe8}})

	assert.True(t, msg.IsFinished())
	assert.Equal(t, 1000, msg.CloseCode())
	assert.Equal(t, "CLOSE", iface.Describe(msg.Opcode()))
	assert.True(t, msg.IsControl())
}

func Test_message_close_empty_payload(t *testing.T) {
	//空载荷的close合法,关闭码保持absent
	msg := NewMessage(1, iface.DirIncoming, nil)
	msg.ProcessFrame(&iface.FrameData{OpCode: iface.OpClose, Fin: true, Payload: nil})

	assert.True(t, msg.IsFinished())
	assert.Equal(t, iface.CloseCodeAbsent, msg.CloseCode())
}

func Test_message_close_reserved_code_passthrough(t *testing.T) {
	//保留区间的关闭码只提取不校验
	msg := NewMessage(1, iface.DirIncoming, nil)
	msg.ProcessFrame(&iface.FrameData{OpCode: iface.OpClose, Fin: true, Payload: []byte{0x03, 0xed}})
	assert.Equal(t, 1005, msg.CloseCode())
}

func Test_message_unknown_opcode(t *testing.T) {
	//保留opcode不拒绝,只是分类成UNKNOWN
	msg := NewMessage(1, iface.DirOutgoing, nil)
	msg.ProcessFrame(&iface.FrameData{OpCode: iface.OpCode(0x3), Fin: true, Payload: []byte("x")})

	assert.True(t, msg.IsFinished())
	assert.False(t, msg.IsText())
	assert.False(t, msg.IsBinary())
	assert.False(t, msg.IsControl())
	assert.Equal(t, "UNKNOWN", iface.Describe(msg.Opcode()))
}

func Test_message_append_after_finish_panics(t *testing.T) {
	msg := NewMessage(1, iface.DirOutgoing, nil)
	msg.ProcessFrame(&iface.FrameData{OpCode: iface.OpText, Fin: true, Payload: []byte("done")})

	assert.Panics(t, func() {
		msg.ProcessFrame(&iface.FrameData{OpCode: iface.OpContinuation, Fin: true, Payload: []byte("more")})
	})
}

func Test_message_forward_not_finished(t *testing.T) {
	msg := NewMessage(1, iface.DirOutgoing, nil)
	msg.ProcessFrame(&iface.FrameData{OpCode: iface.OpText, Fin: false, Payload: []byte("part")})

	//快速失败,不会阻塞等待
	err := msg.Forward(&recordWriter{})
	assert.ErrorIs(t, err, iface.ErrNotFinished)
}

func Test_message_forward(t *testing.T) {
	msg := NewMessage(1, iface.DirOutgoing, nil)
	msg.ProcessFrame(&iface.FrameData{OpCode: iface.OpText, Fin: false, Payload: []byte("He")})
	msg.ProcessFrame(&iface.FrameData{OpCode: iface.OpContinuation, Fin: true, Payload: []byte("llo")})

	w := &recordWriter{}
	require.NoError(t, msg.Forward(w))
	require.Len(t, w.ops, 1)
	assert.Equal(t, iface.OpText, w.ops[0])
	assert.True(t, w.fins[0])
	assert.Equal(t, []byte("Hello"), w.payloads[0])
}

func Test_message_readable_invalid(t *testing.T) {
	msg := NewMessage(1, iface.DirOutgoing, nil)
	msg.ProcessFrame(&iface.FrameData{OpCode: iface.OpBinary, Fin: true, Payload: []byte{0xff, 0xfe, 0x01}})

	_, err := msg.ReadablePayload()
	assert.ErrorIs(t, err, codec.ErrInvalidEncoding)
}

func Test_message_set_readable_payload(t *testing.T) {
	msg := NewMessage(1, iface.DirOutgoing, nil)
	msg.ProcessFrame(&iface.FrameData{OpCode: iface.OpText, Fin: true, Payload: []byte("original")})

	require.NoError(t, msg.SetReadablePayload("modified 修改"))
	assert.Equal(t, codec.Encode("modified 修改"), msg.Payload())

	readable, err := msg.ReadablePayload()
	require.NoError(t, err)
	assert.Equal(t, "modified 修改", readable)

	//改完还能照常转发
	w := &recordWriter{}
	require.NoError(t, msg.Forward(w))
	assert.Equal(t, codec.Encode("modified 修改"), w.payloads[0])
}

func Test_message_timestamp(t *testing.T) {
	clock := clockwork.NewFakeClock()
	msg := NewMessage(1, iface.DirOutgoing, clock)

	msg.ProcessFrame(&iface.FrameData{OpCode: iface.OpText, Fin: false, Payload: []byte("a")})
	first := msg.Timestamp()

	clock.Advance(time.Second)
	msg.ProcessFrame(&iface.FrameData{OpCode: iface.OpContinuation, Fin: true, Payload: []byte("b")})

	//完成前每帧都会刷新时间,完成后固定
	assert.Equal(t, first.Add(time.Second), msg.Timestamp())
}
