package websocket

import (
	"net"
	"sync"

	"github.com/gobwas/ws"

	"wsproxy/iface"
)

// WsConn 帧级连接,iface.IConn的RFC 6455实现
// 写帧加锁:读帧循环的转发与Push注入可能并发写同一个连接
type WsConn struct {
	net.Conn
	wmu    sync.Mutex
	client bool //作为客户端一侧使用时,写出帧要带掩码
}

func NewConn(conn net.Conn) *WsConn {
	return &WsConn{
		Conn: conn,
	}
}

// NewClientConn 面向上游服务端的连接,写出帧带掩码
func NewClientConn(conn net.Conn) *WsConn {
	return &WsConn{
		Conn:   conn,
		client: true,
	}
}

func (c *WsConn) ReadFrame() (*iface.FrameData, error) {
	f, err := ws.ReadFrame(c.Conn)
	if err != nil {
		return nil, err
	}
	frame := &Frame{raw: f}
	return frame.Data(), nil
}

func (c *WsConn) WriteFrame(opcode iface.OpCode, fin bool, payload []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	f := ws.NewFrame(ws.OpCode(opcode), fin, payload)
	if c.client {
		f = ws.MaskFrameInPlace(f)
	}
	return ws.WriteFrame(c.Conn, f)
}

func (c *WsConn) Flush() error {
	return nil
}
