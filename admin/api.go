package admin

import (
	"github.com/kataras/iris/v12"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wsproxy/iface"
)

// NewApp 管理端API,截获消息的查看入口(UI边界)
//   GET /channels              在线通道id列表
//   GET /messages/{channel}    某通道截获的消息快照
//   GET /metrics               prometheus指标
func NewApp(channels iface.IChannelMap, store iface.IMessageStorage) *iris.Application {
	app := iris.New()

	app.Get("/health", func(ctx iris.Context) {
		_, _ = ctx.WriteString("ok")
	})

	app.Get("/metrics", iris.FromStd(promhttp.Handler()))

	app.Get("/channels", func(ctx iris.Context) {
		ids := make([]string, 0)
		for _, ch := range channels.All() {
			ids = append(ids, ch.ID())
		}
		_, _ = ctx.JSON(ids)
	})

	app.Get("/messages/{channel}", func(ctx iris.Context) {
		if store == nil {
			ctx.StatusCode(iris.StatusNotImplemented)
			_, _ = ctx.WriteString("no storage configured")
			return
		}
		channelID := ctx.Params().Get("channel")
		limit := ctx.URLParamInt64Default("limit", 100)
		list, err := store.List(channelID, limit)
		if err != nil {
			ctx.StatusCode(iris.StatusInternalServerError)
			_, _ = ctx.WriteString(err.Error())
			return
		}
		_, _ = ctx.JSON(list)
	})

	return app
}
