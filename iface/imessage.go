package iface

import (
	"time"

	"github.com/pkg/errors"
)

//消息未组装完成就请求转发
var ErrNotFinished = errors.New("message is not finished yet")

//消息方向
type Direction int

const (
	//服务端返回客户端
	DirIncoming Direction = iota
	//客户端发往服务端
	DirOutgoing
)

func (d Direction) String() string {
	if d == DirOutgoing {
		return "outgoing"
	}
	return "incoming"
}

//一条逻辑消息,由一个或多个帧组装而成
//组装期间只允许唯一的读帧流程访问,IsFinished为true之后整体只读,可并发读取
type IMessage interface {
	//通道内单调递增的消息id
	ID() int64
	Direction() Direction
	Opcode() OpCode
	//close消息的状态码,其他消息恒为CloseCodeAbsent
	CloseCode() int
	Timestamp() time.Time
	IsFinished() bool
	IsText() bool
	IsBinary() bool
	IsControl() bool
	//载荷字节数,还没有收到任何帧时第二个返回值为false
	PayloadLength() (int, bool)
	//原始未掩码载荷
	Payload() []byte
	//按UTF-8解码的载荷视图,非法编码返回codec.ErrInvalidEncoding
	ReadablePayload() (string, error)
	//整体替换载荷,消息已经转发之后修改不会影响已发出的数据
	SetReadablePayload(string) error
	//消息完成后把整条消息写入外发端,未完成直接返回ErrNotFinished
	Forward(IFrameWriter) error
}

//传输对象,与协议版本无关的只读快照,供UI/存储/日志消费
type MessageSnapshot struct {
	ID             int64     `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	OpCode         int       `json:"opcode"`
	ReadableOpCode string    `json:"readableOpcode"`
	Payload        string    `json:"payload"`
	IsOutgoing     bool      `json:"isOutgoing"`
	PayloadLength  int       `json:"payloadLength"`
}
