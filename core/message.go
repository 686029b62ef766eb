package core

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"wsproxy/codec"
	"wsproxy/iface"
)

// Message 单条WebSocket消息,由一个或多个帧组装而成
// 状态机: 空 -> 组装中(首帧固定opcode) -> 完成(收到FIN帧)
// 组装期间只能由唯一的读帧流程写入;finished用原子操作置位,
// 之后消息整体只读,任意goroutine都可以安全读取
type Message struct {
	id        int64
	direction iface.Direction
	clock     clockwork.Clock

	opcode    iface.OpCode
	closeCode int
	payload   *PayloadBuffer
	timestamp time.Time
	finished  int32
}

func NewMessage(id int64, direction iface.Direction, clock clockwork.Clock) *Message {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Message{
		id:        id,
		direction: direction,
		clock:     clock,
		opcode:    iface.OpUnknown,
		closeCode: iface.CloseCodeAbsent,
	}
}

// ProcessFrame 处理一帧:首帧固定opcode并接管载荷,后续帧追加
// FIN帧让消息进入完成态,close消息此时从载荷前两个字节取出关闭码
// 完成之后再调用属于编程错误,直接panic
func (m *Message) ProcessFrame(fd *iface.FrameData) {
	if m.IsFinished() {
		panic(fmt.Sprintf("message %d already finished, cannot process more frames", m.id))
	}
	if m.opcode == iface.OpUnknown {
		m.opcode = fd.OpCode
		m.payload = NewPayloadBuffer(fd.Payload)
	} else {
		m.payload.Append(fd.Payload)
	}
	m.timestamp = m.clock.Now()
	if fd.Fin {
		m.finish()
	}
}

func (m *Message) finish() {
	//close帧允许空载荷,这时关闭码保持absent
	if m.opcode == iface.OpClose && m.payload.Len() >= 2 {
		m.closeCode = int(binary.BigEndian.Uint16(m.payload.bytes()[:2]))
	}
	atomic.StoreInt32(&m.finished, 1)
}

func (m *Message) ID() int64 {
	return m.id
}

func (m *Message) Direction() iface.Direction {
	return m.direction
}

func (m *Message) Opcode() iface.OpCode {
	return m.opcode
}

// CloseCode 关闭码只做提取不做校验,保留区间的值原样透传
func (m *Message) CloseCode() int {
	return m.closeCode
}

func (m *Message) Timestamp() time.Time {
	return m.timestamp
}

func (m *Message) IsFinished() bool {
	return atomic.LoadInt32(&m.finished) == 1
}

func (m *Message) IsText() bool {
	return iface.IsText(m.opcode)
}

func (m *Message) IsBinary() bool {
	return iface.IsBinary(m.opcode)
}

func (m *Message) IsControl() bool {
	return iface.IsControl(m.opcode)
}

// PayloadLength 载荷字节数,一帧都没收到时第二个返回值为false
func (m *Message) PayloadLength() (int, bool) {
	if m.payload == nil {
		return 0, false
	}
	return m.payload.Len(), true
}

// Payload 原始未掩码载荷的拷贝
func (m *Message) Payload() []byte {
	if m.payload == nil {
		return nil
	}
	return m.payload.Snapshot()
}

// ReadablePayload 按UTF-8解码的载荷视图
// 调用方应该只对文本消息使用,不过对任何opcode机制上都有定义
func (m *Message) ReadablePayload() (string, error) {
	if m.payload == nil {
		return "", nil
	}
	return codec.Decode(m.payload.bytes(), 0, m.payload.Len())
}

// SetReadablePayload 重新编码给定文本并整体替换载荷
// 消息已经转发之后再修改,不会对已发出的数据有任何追溯效果
func (m *Message) SetReadablePayload(s string) error {
	if m.payload == nil {
		m.payload = NewPayloadBuffer(codec.Encode(s))
		return nil
	}
	m.payload.Replace(codec.Encode(s))
	return nil
}

// Forward 把整条消息作为单个FIN帧写入外发端
// 未完成的消息直接返回ErrNotFinished(快速失败,不等待)
func (m *Message) Forward(w iface.IFrameWriter) error {
	if !m.IsFinished() {
		return iface.ErrNotFinished
	}
	return w.WriteFrame(m.opcode, true, m.Payload())
}

func (m *Message) String() string {
	return fmt.Sprintf("Message#%d", m.id)
}
