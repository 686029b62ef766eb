package core

// PayloadBuffer 消息载荷缓冲区
// 首帧直接接管传入的切片,不复制;后续追加走append的倍增扩容,
// 多帧累积的总复制开销是摊还线性的,不会每帧整体重分配
type PayloadBuffer struct {
	buf []byte
}

func NewPayloadBuffer(first []byte) *PayloadBuffer {
	return &PayloadBuffer{buf: first}
}

// Append 追加一帧载荷,保留已写入的全部字节
func (b *PayloadBuffer) Append(p []byte) {
	b.buf = append(b.buf, p...)
}

func (b *PayloadBuffer) Len() int {
	return len(b.buf)
}

// Snapshot 返回已写入字节的等长拷贝,不泄露冗余容量
func (b *PayloadBuffer) Snapshot() []byte {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}

// Replace 整体替换载荷
func (b *PayloadBuffer) Replace(p []byte) {
	b.buf = p
}

// bytes 内部视图,只给同包的只读路径用,避免多余拷贝
func (b *PayloadBuffer) bytes() []byte {
	return b.buf
}
