package proxy

import (
	"context"

	redis "github.com/go-redis/redis/v7"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"wsproxy/admin"
	"wsproxy/container"
	"wsproxy/core"
	"wsproxy/iface"
	"wsproxy/logger"
	"wsproxy/naming"
	"wsproxy/observer"
	"wsproxy/storage"
	"wsproxy/websocket"
)

// ServerStartOptions ServerStartOptions
type ServerStartOptions struct {
	config string
}

// NewServerStartCmd creates a new proxy start command
func NewServerStartCmd(ctx context.Context, version string) *cobra.Command {
	opts := &ServerStartOptions{}

	cmd := &cobra.Command{
		Use:   "proxy",
		Short: "Start a websocket intercepting proxy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunServerStart(ctx, opts, version)
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.config, "config", "c", "./proxy/conf.yaml", "Config file")
	return cmd
}

// RunServerStart 组装拦截器链与存储后启动代理
func RunServerStart(ctx context.Context, opts *ServerStartOptions, version string) error {
	config, err := Init(opts.config)
	if err != nil {
		return err
	}
	_ = logger.Init(logger.Settings{
		Name:     config.ServiceName,
		Level:    config.LogLevel,
		RootPath: config.LogPath,
	})

	service := naming.NewEntry(config.ServiceID, config.ServiceName, "ws",
		config.PublicAddress, config.PublicPort)

	srv := websocket.NewServer(config.Listen, config.Target, service)

	channels := core.NewChannels(100)
	srv.SetChannelMap(channels)

	//拦截器链:指标 -> 存储 -> webhook
	srv.AddObserver(observer.NewMetrics())

	var store iface.IMessageStorage
	if config.MySQLDSN != "" {
		store, err = storage.NewMySQLStorage(config.MySQLDSN, config.SnowflakeNode)
		if err != nil {
			return errors.Wrap(err, "open mysql storage")
		}
	} else if config.RedisAddr != "" {
		cli := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		if err := cli.Ping().Err(); err != nil {
			return errors.Wrap(err, "ping redis")
		}
		store = storage.NewRedisStorage(cli)
	}
	if store != nil {
		srv.AddObserver(observer.NewStore(store))
	}
	if config.WebhookURL != "" {
		srv.AddObserver(observer.NewWebhook(config.WebhookURL))
	}

	if config.ConsulURL != "" {
		ns, err := naming.NewNaming(config.ConsulURL)
		if err != nil {
			return err
		}
		container.SetServiceNaming(ns)
	}

	//管理端
	if config.MonitorListen != "" {
		app := admin.NewApp(channels, store)
		go func() {
			if err := app.Listen(config.MonitorListen); err != nil {
				logger.WithError(err).Error("admin api stopped")
			}
		}()
	}

	if err := container.Init(srv); err != nil {
		return err
	}
	return container.Start()
}
