package observer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"wsproxy/iface"
)

//按方向与操作码统计经过代理的消息
var (
	messageTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wsproxy",
		Name:      "message_total",
		Help:      "intercepted websocket messages",
	}, []string{"direction", "opcode"})

	payloadBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wsproxy",
		Name:      "payload_bytes_total",
		Help:      "intercepted websocket payload bytes",
	}, []string{"direction"})
)

type Metrics struct {
}

func NewMetrics() iface.IMessageObserver {
	return &Metrics{}
}

func (m *Metrics) OnMessage(agent iface.IAgent, msg iface.IMessage) bool {
	dir := msg.Direction().String()
	messageTotal.WithLabelValues(dir, iface.Describe(msg.Opcode())).Inc()
	if n, ok := msg.PayloadLength(); ok {
		payloadBytes.WithLabelValues(dir).Add(float64(n))
	}
	return true
}
