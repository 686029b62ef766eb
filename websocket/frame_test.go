package websocket

import (
	"net"
	"testing"

	"github.com/gobwas/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wsproxy/iface"
)

func Test_frame_unmask(t *testing.T) {
	raw := ws.NewTextFrame([]byte("hello"))
	raw = ws.MaskFrameInPlace(raw)

	f := &Frame{raw: raw}
	assert.Equal(t, iface.OpText, f.GetOpCode())
	assert.True(t, f.IsFin())
	//取载荷时解除掩码
	assert.Equal(t, []byte("hello"), f.GetPayload())
	//再取一次不会二次异或
	assert.Equal(t, []byte("hello"), f.GetPayload())
}

func Test_conn_read_masked_frame(t *testing.T) {
	p1, p2 := net.Pipe()
	defer p1.Close()
	defer p2.Close()

	go func() {
		raw := ws.NewTextFrame([]byte("from client"))
		raw = ws.MaskFrameInPlace(raw)
		_ = ws.WriteFrame(p2, raw)
	}()

	conn := NewConn(p1)
	fd, err := conn.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, iface.OpText, fd.OpCode)
	assert.True(t, fd.Fin)
	assert.Equal(t, []byte("from client"), fd.Payload)
}

func Test_conn_write_client_masks(t *testing.T) {
	p1, p2 := net.Pipe()
	defer p1.Close()
	defer p2.Close()

	conn := NewClientConn(p1)
	go func() {
		_ = conn.WriteFrame(iface.OpText, true, []byte("hi"))
	}()

	raw, err := ws.ReadFrame(p2)
	require.NoError(t, err)
	//客户端一侧写出的帧必须带掩码
	require.True(t, raw.Header.Masked)
	ws.Cipher(raw.Payload, raw.Header.Mask, 0)
	assert.Equal(t, []byte("hi"), raw.Payload)
}

func Test_conn_write_server_plain(t *testing.T) {
	p1, p2 := net.Pipe()
	defer p1.Close()
	defer p2.Close()

	conn := NewConn(p1)
	go func() {
		_ = conn.WriteFrame(iface.OpBinary, true, []byte{0x01, 0x02})
	}()

	raw, err := ws.ReadFrame(p2)
	require.NoError(t, err)
	assert.False(t, raw.Header.Masked)
	assert.Equal(t, []byte{0x01, 0x02}, raw.Payload)
}
