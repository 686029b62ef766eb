package core

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"wsproxy/iface"
	"wsproxy/logger"
)

// Channel 一条被代理的WebSocket通道,成对持有客户端与上游两个连接
// 每个方向由唯一的读帧循环驱动消息组装:帧按到达顺序追加,
// 收到FIN后先通知拦截器,没被丢弃就转发到对端
type Channel struct {
	id       string
	client   iface.IConn //客户端一侧
	upstream iface.IConn //上游一侧

	//消息id,通道内单调递增,两个方向共用一个计数器
	seq       int64
	observers []iface.IMessageObserver
	clock     clockwork.Clock

	writewait time.Duration
	readwait  time.Duration
	once      sync.Once
	closed    iface.IEvent
}

func NewChannel(id string, client, upstream iface.IConn, observers []iface.IMessageObserver) iface.IChannel {
	return &Channel{
		id:        id,
		client:    client,
		upstream:  upstream,
		observers: observers,
		clock:     clockwork.NewRealClock(),
		writewait: iface.DefaultWriteWait,
		readwait:  iface.DefaultReadWait,
		closed:    NewEvent(),
	}
}

// NewChannelWithClock 测试用,注入假时钟
func NewChannelWithClock(id string, client, upstream iface.IConn, observers []iface.IMessageObserver, clock clockwork.Clock) iface.IChannel {
	ch := NewChannel(id, client, upstream, observers).(*Channel)
	ch.clock = clock
	return ch
}

func (ch *Channel) ID() string {
	return ch.id
}

// Readloop 同时驱动两个方向,任意一侧退出即整体关闭
func (ch *Channel) Readloop() error {
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		errs <- ch.readside(ch.client, ch.upstream, iface.DirOutgoing)
	}()
	go func() {
		defer wg.Done()
		errs <- ch.readside(ch.upstream, ch.client, iface.DirIncoming)
	}()
	err := <-errs
	_ = ch.Close()
	wg.Wait()
	return err
}

// readside 单方向读帧循环,消息组装的唯一写入方
func (ch *Channel) readside(src, dst iface.IConn, dir iface.Direction) error {
	log := logger.WithFields(logger.Fields{
		"module": "channel",
		"id":     ch.id,
		"dir":    dir.String(),
	})
	//还没收到FIN的数据消息
	var pending *Message
	for {
		if ch.readwait > 0 {
			_ = src.SetReadDeadline(ch.clock.Now().Add(ch.readwait))
		}
		fd, err := src.ReadFrame()
		if err != nil {
			return err
		}

		var msg *Message
		switch {
		case iface.IsControl(fd.OpCode):
			//控制帧可以穿插在分片消息之间,单独成一条消息
			msg = NewMessage(ch.nextID(), dir, ch.clock)
		case pending == nil:
			msg = NewMessage(ch.nextID(), dir, ch.clock)
			pending = msg
		default:
			msg = pending
		}

		msg.ProcessFrame(fd)
		if !msg.IsFinished() {
			continue
		}
		if msg == pending {
			pending = nil
		}

		if !ch.notify(msg) {
			log.Tracef("message %d dropped by observer", msg.ID())
			continue
		}
		if err := msg.Forward(dst); err != nil {
			return err
		}
		if err := dst.Flush(); err != nil {
			return err
		}
		if msg.Opcode() == iface.OpClose {
			log.Infof("close relayed, code %d", msg.CloseCode())
			return nil
		}
	}
}

// notify 依次通知拦截器,任何一个返回false就丢弃该消息
func (ch *Channel) notify(msg iface.IMessage) bool {
	forward := true
	for _, obs := range ch.observers {
		if !obs.OnMessage(ch, msg) {
			forward = false
		}
	}
	return forward
}

func (ch *Channel) nextID() int64 {
	return atomic.AddInt64(&ch.seq, 1)
}

// Push 向指定方向注入一条完整消息(重放)
// 注入的消息同样经过拦截器链
func (ch *Channel) Push(dir iface.Direction, op iface.OpCode, payload []byte) error {
	if ch.closed.HasFired() {
		return iface.ErrChannelClosed
	}
	dst := ch.upstream
	if dir == iface.DirIncoming {
		dst = ch.client
	}
	msg := NewMessage(ch.nextID(), dir, ch.clock)
	msg.ProcessFrame(&iface.FrameData{OpCode: op, Fin: true, Payload: payload})
	if !ch.notify(msg) {
		return nil
	}
	return msg.Forward(dst)
}

func (ch *Channel) Close() error {
	ch.once.Do(func() {
		ch.closed.Fire()
		_ = ch.client.Close()
		_ = ch.upstream.Close()
	})
	return nil
}

func (ch *Channel) SetWriteWait(t time.Duration) {
	ch.writewait = t
}

func (ch *Channel) SetReadWait(t time.Duration) {
	ch.readwait = t
}
