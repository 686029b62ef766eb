package core

import "wsproxy/iface"

// ToSnapshot 生成与协议版本无关的只读快照,供UI/存储/日志消费
// 任何时刻调用都安全:未完成的消息给出占位值,绝不修改源消息
func ToSnapshot(m iface.IMessage) iface.MessageSnapshot {
	snap := iface.MessageSnapshot{
		ID:             m.ID(),
		Timestamp:      m.Timestamp(),
		OpCode:         int(m.Opcode()),
		ReadableOpCode: iface.Describe(m.Opcode()),
		IsOutgoing:     m.Direction() == iface.DirOutgoing,
	}

	// TODO: 二进制消息走十六进制呈现,目前和文本一样经过UTF-8解码
	payload, err := m.ReadablePayload()
	if err != nil {
		//解码失败统一归一成空串,下游不用处理空指针
		payload = ""
	}
	snap.Payload = payload

	if n, ok := m.PayloadLength(); ok {
		snap.PayloadLength = n
	}
	return snap
}
