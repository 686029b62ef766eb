package codec

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

//ErrInvalidEncoding 字节序列不是合法的UTF-8
var ErrInvalidEncoding = errors.New("bytes are no valid UTF-8")

// Decode 把 [offset, offset+length) 区间严格校验后解码成字符串
// 超长编码、代理区码点、截断的多字节序列一律报ErrInvalidEncoding,绝不替换成U+FFFD
// 无状态,可被任意多个调用方并发使用
func Decode(b []byte, offset, length int) (string, error) {
	if offset < 0 || length < 0 || offset+length > len(b) {
		return "", errors.Errorf("decode range [%d:%d] out of bounds, len %d", offset, offset+length, len(b))
	}
	sub := b[offset : offset+length]
	if !utf8.Valid(sub) {
		return "", ErrInvalidEncoding
	}
	return string(sub), nil
}

// DecodeAll Decode整个切片
func DecodeAll(b []byte) (string, error) {
	return Decode(b, 0, len(b))
}

// Encode 字符串编码为UTF-8字节,对合法文本总是成功
func Encode(s string) []byte {
	return []byte(s)
}
