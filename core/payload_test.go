package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_payload_takes_ownership(t *testing.T) {
	first := []byte("head")
	buf := NewPayloadBuffer(first)
	assert.Equal(t, 4, buf.Len())
	//首帧不复制,改原切片能看得到
	first[0] = 'H'
	assert.Equal(t, []byte("Head"), buf.Snapshot())
}

func Test_payload_append(t *testing.T) {
	buf := NewPayloadBuffer([]byte("He"))
	buf.Append([]byte("l"))
	buf.Append([]byte("lo"))
	assert.Equal(t, 5, buf.Len())
	assert.Equal(t, []byte("Hello"), buf.Snapshot())
}

func Test_payload_snapshot_exact(t *testing.T) {
	buf := NewPayloadBuffer(nil)
	for i := 0; i < 100; i++ {
		buf.Append([]byte{byte(i)})
	}
	snap := buf.Snapshot()
	//等长拷贝,不泄露冗余容量
	assert.Equal(t, 100, len(snap))
	assert.Equal(t, 100, cap(snap))

	//拷贝与内部缓冲互不影响
	snap[0] = 0xff
	assert.Equal(t, byte(0), buf.Snapshot()[0])
}

func Test_payload_many_small_appends(t *testing.T) {
	//多帧小块追加,内容完整,顺序不乱
	const frames = 2000
	chunk := []byte("abc")
	buf := NewPayloadBuffer(nil)
	for i := 0; i < frames; i++ {
		buf.Append(chunk)
	}
	assert.Equal(t, frames*len(chunk), buf.Len())
	assert.Equal(t, bytes.Repeat(chunk, frames), buf.Snapshot())
}

func Test_payload_replace(t *testing.T) {
	buf := NewPayloadBuffer([]byte("old payload"))
	buf.Replace([]byte("new"))
	assert.Equal(t, []byte("new"), buf.Snapshot())
	assert.Equal(t, 3, buf.Len())
}
