package codec

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_roundtrip(t *testing.T) {
	cases := []string{
		"",
		"hello",
		"你好, websocket",
		"héllo wörld",
		"emoji \U0001F600 ok",
	}
	for _, want := range cases {
		got, err := DecodeAll(Encode(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func Test_decode_invalid(t *testing.T) {
	cases := map[string][]byte{
		"lone continuation":  {0x80},
		"truncated two byte": {0xc2},
		"truncated three":    {0xe2, 0x82},
		"overlong slash":     {0xc0, 0xaf},
		"surrogate half":     {0xed, 0xa0, 0x80},
		"invalid in middle":  {'h', 'i', 0xff, 'x'},
	}
	for name, b := range cases {
		_, err := DecodeAll(b)
		assert.ErrorIs(t, err, ErrInvalidEncoding, name)
	}
}

func Test_decode_range(t *testing.T) {
	b := []byte("--hello--")
	got, err := Decode(b, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	//越界
	_, err = Decode(b, 2, 100)
	assert.Error(t, err)
	_, err = Decode(b, -1, 3)
	assert.Error(t, err)
}

func Test_decode_concurrent(t *testing.T) {
	//无共享状态,随便并发
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				got, err := DecodeAll(Encode("并发解码"))
				if err != nil || got != "并发解码" {
					t.Error("concurrent decode failed")
					return
				}
			}
		}()
	}
	wg.Wait()
}
