package websocket

import (
	"wsproxy/iface"

	"github.com/gobwas/ws"
)

//RFC 6455 (draft 13) 帧的包装,取载荷时负责解除掩码
type Frame struct {
	raw ws.Frame
}

func (f *Frame) SetOpCode(code iface.OpCode) {
	f.raw.Header.OpCode = ws.OpCode(code)
}

func (f *Frame) GetOpCode() iface.OpCode {
	return iface.OpCode(f.raw.Header.OpCode)
}

func (f *Frame) IsFin() bool {
	return f.raw.Header.Fin
}

func (f *Frame) SetPayload(payload []byte) {
	f.raw.Payload = payload
}

// GetPayload 返回解除掩码后的原始载荷
func (f *Frame) GetPayload() []byte {
	if f.raw.Header.Masked {
		ws.Cipher(f.raw.Payload, f.raw.Header.Mask, 0)
		f.raw.Header.Masked = false
	}
	return f.raw.Payload
}

// Data 转成与协议版本无关的帧数据,交给消息引擎
func (f *Frame) Data() *iface.FrameData {
	return &iface.FrameData{
		OpCode:  f.GetOpCode(),
		Fin:     f.raw.Header.Fin,
		Payload: f.GetPayload(),
	}
}
