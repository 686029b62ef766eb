package websocket

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gobwas/ws"
	"github.com/pkg/errors"

	"wsproxy/iface"
	"wsproxy/logger"
)

// Dialer 默认的上游拨号器,由gobwas完成握手
type Dialer struct {
}

func (d *Dialer) DialAndHandshake(dc iface.DialerContext) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dc.Timeout)
	defer cancel()
	conn, _, _, err := ws.Dial(ctx, dc.Address)
	if err != nil {
		return nil, errors.Wrapf(err, "dial upstream %s", dc.Address)
	}
	return conn, nil
}

// ClientOptions ClientOptions
type ClientOptions struct {
	Heartbeat time.Duration //心跳间隔
	ReadWait  time.Duration //读超时
	WriteWait time.Duration //写超时
}

// Client 终端侧的简单实现,示例和测试用来扮演被代理的客户端
type Client struct {
	sync.Mutex
	iface.IDialer
	once    sync.Once
	id      string
	conn    *WsConn
	state   int32
	options ClientOptions
}

// NewClient NewClient
func NewClient(id string, opts ClientOptions) *Client {
	if opts.WriteWait == 0 {
		opts.WriteWait = iface.DefaultWriteWait
	}
	return &Client{
		id:      id,
		options: opts,
		IDialer: &Dialer{},
	}
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) Connect(addr string) error {
	_, err := url.Parse(addr)
	if err != nil {
		return err
	}
	if !atomic.CompareAndSwapInt32(&c.state, 0, 1) {
		return fmt.Errorf("client has connected")
	}

	conn, err := c.DialAndHandshake(iface.DialerContext{
		ChannelID: c.id,
		Address:   addr,
		Timeout:   iface.DefaultHandshakeWait,
	})
	if err != nil {
		atomic.CompareAndSwapInt32(&c.state, 1, 0)
		return err
	}
	if conn == nil {
		return errors.New("conn is nil")
	}
	c.conn = NewClientConn(conn)

	if c.options.Heartbeat > 0 {
		go func() {
			err := c.heartloop()
			if err != nil {
				logger.Error("heartloop stopped ", err)
			}
		}()
	}
	return nil
}

// Read 读取下一帧
func (c *Client) Read() (*iface.FrameData, error) {
	if c.conn == nil {
		return nil, errors.New("connection is nil")
	}
	if c.options.ReadWait > 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.options.ReadWait))
	}
	fd, err := c.conn.ReadFrame()
	if err != nil {
		return nil, err
	}
	if fd.OpCode == iface.OpClose {
		return nil, errors.New("remote side closed the channel")
	}
	return fd, nil
}

// Send 发送一条文本消息
func (c *Client) Send(payload []byte) error {
	if atomic.LoadInt32(&c.state) == 0 {
		return fmt.Errorf("client is not connected")
	}
	if c.options.WriteWait > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.options.WriteWait))
	}
	return c.conn.WriteFrame(iface.OpText, true, payload)
}

// SendBinary 发送一条二进制消息
func (c *Client) SendBinary(payload []byte) error {
	if atomic.LoadInt32(&c.state) == 0 {
		return fmt.Errorf("client is not connected")
	}
	return c.conn.WriteFrame(iface.OpBinary, true, payload)
}

func (c *Client) Close() {
	c.once.Do(func() {
		if c.conn == nil {
			return
		}
		_ = c.conn.WriteFrame(iface.OpClose, true, nil)
		_ = c.conn.Close()
		atomic.CompareAndSwapInt32(&c.state, 1, 0)
	})
}

// SetDialer 替换握手逻辑
func (c *Client) SetDialer(dialer iface.IDialer) {
	c.IDialer = dialer
}

func (c *Client) heartloop() error {
	tick := time.NewTicker(c.options.Heartbeat)
	defer tick.Stop()
	for range tick.C {
		if err := c.ping(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) ping() error {
	logger.Tracef("%s send ping to server", c.id)
	return c.conn.WriteFrame(iface.OpPing, true, nil)
}
