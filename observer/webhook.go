package observer

import (
	"time"

	"github.com/go-resty/resty/v2"

	"wsproxy/core"
	"wsproxy/iface"
	"wsproxy/logger"
)

// Webhook 把完成的消息快照POST到外部地址
// 投递是异步的,失败只记日志,不影响转发
type Webhook struct {
	url string
	cli *resty.Client
}

func NewWebhook(url string) iface.IMessageObserver {
	return &Webhook{
		url: url,
		cli: resty.New().SetTimeout(time.Second * 3),
	}
}

func (w *Webhook) OnMessage(agent iface.IAgent, msg iface.IMessage) bool {
	snap := core.ToSnapshot(msg)
	channelID := agent.ID()
	go func() {
		_, err := w.cli.R().
			SetHeader("Content-Type", "application/json").
			SetHeader("X-Channel-Id", channelID).
			SetBody(snap).
			Post(w.url)
		if err != nil {
			logger.WithFields(logger.Fields{
				"module": "webhook",
				"id":     channelID,
			}).Warn(err)
		}
	}()
	return true
}
