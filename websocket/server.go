package websocket

import (
	"context"
	"encoding/binary"
	"net/http"
	"sync"
	"time"

	"github.com/gobwas/ws"
	"github.com/segmentio/ksuid"

	"wsproxy/core"
	"wsproxy/iface"
	"wsproxy/logger"
)

type ServerOptions struct {
	handshakewait time.Duration //上游握手超时
	readwait      time.Duration //读超时
	writewait     time.Duration //写超时
}

// Server 拦截式代理:接受客户端连接后连到上游,
// 两侧配成一条Channel,消息在转发前经过拦截器链
type Server struct {
	listen string
	target string //上游地址 ws://host:port/path
	iface.ServiceRegistration
	ChannelMap iface.IChannelMap
	Dialer     iface.IDialer
	observers  []iface.IMessageObserver
	once       sync.Once
	options    ServerOptions
	srv        *http.Server
}

// NewServer NewServer
func NewServer(listen, target string, service iface.ServiceRegistration) iface.IServer {
	return &Server{
		listen:              listen,
		target:              target,
		ServiceRegistration: service,
		options: ServerOptions{
			handshakewait: iface.DefaultHandshakeWait,
			readwait:      iface.DefaultReadWait,
			writewait:     iface.DefaultWriteWait,
		},
	}
}

func (s *Server) Start() error {
	mux := http.NewServeMux()
	log := logger.WithFields(logger.Fields{
		"module": "ws.server",
		"listen": s.listen,
		"target": s.target,
		"id":     s.ServiceID(),
	})
	if s.ChannelMap == nil {
		s.ChannelMap = core.NewChannels(100)
	}
	if s.Dialer == nil {
		s.Dialer = &Dialer{}
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		raw, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			//gobwas已经写回了失败响应
			log.Warn(err)
			return
		}
		client := NewConn(raw)

		id := ksuid.New().String()
		up, err := s.Dialer.DialAndHandshake(iface.DialerContext{
			ChannelID: id,
			Address:   s.target,
			Timeout:   s.options.handshakewait,
		})
		if err != nil {
			log.Warnf("dial upstream failed: %v", err)
			//上游不可达,告知客户端对端离开
			_ = client.WriteFrame(iface.OpClose, true, closePayload(iface.StatusGoingAway))
			_ = client.Close()
			return
		}
		upstream := NewClientConn(up)

		channel := core.NewChannel(id, client, upstream, s.observers)
		channel.SetWriteWait(s.options.writewait)
		channel.SetReadWait(s.options.readwait)
		s.ChannelMap.Add(channel)
		log.Infof("channel %s established", id)

		go func(channel iface.IChannel) {
			err := channel.Readloop()
			if err != nil {
				log.Info(err)
			}
			s.ChannelMap.Remove(channel.ID())
			_ = channel.Close()
			log.Infof("channel %s closed", channel.ID())
		}(channel)
	})

	s.srv = &http.Server{
		Addr:    s.listen,
		Handler: mux,
	}
	return s.srv.ListenAndServe()
}

// Push 向指定通道的上游方向注入一条文本消息
func (s *Server) Push(id string, dir iface.Direction, data []byte) error {
	ch, ok := s.ChannelMap.Get(id)
	if !ok {
		return iface.ErrChannelClosed
	}
	return ch.Push(dir, iface.OpText, data)
}

func (s *Server) Shutdown(ctx context.Context) error {
	log := logger.WithFields(logger.Fields{
		"module": "ws.server",
		"id":     s.ServiceID(),
	})
	s.once.Do(func() {
		defer func() {
			log.Infoln("shutdown")
		}()
		if s.ChannelMap != nil {
			for _, ch := range s.ChannelMap.All() {
				_ = ch.Close()
				select {
				case <-ctx.Done():
					return
				default:
				}
			}
		}
		if s.srv != nil {
			_ = s.srv.Shutdown(ctx)
		}
	})
	return nil
}

// AddObserver 追加消息拦截器,必须在Start之前调用
func (s *Server) AddObserver(obs iface.IMessageObserver) {
	s.observers = append(s.observers, obs)
}

// SetDialer 设置上游拨号器
func (s *Server) SetDialer(dialer iface.IDialer) {
	s.Dialer = dialer
}

// SetChannelMap SetChannelMap
func (s *Server) SetChannelMap(channels iface.IChannelMap) {
	s.ChannelMap = channels
}

// SetReadWait set read wait duration
func (s *Server) SetReadWait(readwait time.Duration) {
	s.options.readwait = readwait
}

// closePayload 关闭码转成网络字节序的两字节载荷
func closePayload(code int) []byte {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, uint16(code))
	return buf
}
