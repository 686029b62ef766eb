package iface

import (
	"time"

	"github.com/pkg/errors"
)

var ErrChannelClosed = errors.New("channel is closed")

//被代理的一条WebSocket通道,成对持有客户端与上游两个连接
type IChannel interface {
	IAgent
	//关闭两侧连接
	Close() error
	//驱动两个方向的读帧循环,阻塞到通道结束
	Readloop() error
	// SetWriteWait 设置写超时
	SetWriteWait(time.Duration)
	SetReadWait(time.Duration)
}

//通知拦截器时暴露的通道视角
type IAgent interface {
	//通道id
	ID() string
	//向指定方向注入一条完整消息(重放)
	Push(Direction, OpCode, []byte) error
}
