package iface

import (
	"context"
	"net"
	"time"
)

const (
	//上游握手超时
	DefaultHandshakeWait time.Duration = time.Second * 3
	//代理默认不设读超时,空闲断开交给上层配置
	DefaultReadWait  time.Duration = 0
	DefaultWriteWait time.Duration = time.Second * 10
)

//拦截式代理服务
type IServer interface {
	ServiceRegistration
	//追加消息拦截器
	AddObserver(IMessageObserver)
	//设置上游拨号器
	SetDialer(IDialer)
	//设置读超时
	SetReadWait(time.Duration)
	//设置连接管理器
	SetChannelMap(IChannelMap)

	Start() error
	//向指定通道注入消息(重放)
	Push(string, Direction, []byte) error
	Shutdown(context.Context) error
}

//上游拨号器,负责连接被代理的真实服务端并完成握手
type IDialer interface {
	DialAndHandshake(DialerContext) (net.Conn, error)
}

type DialerContext struct {
	ChannelID string
	Address   string
	Timeout   time.Duration
}

type IService interface {
	ServiceID() string
	ServiceName() string
	GetMeta() map[string]string
}
