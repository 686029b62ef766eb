package proxy

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
	"github.com/spf13/viper"

	"wsproxy/logger"
)

// Config 代理服务配置
type Config struct {
	ServiceID     string `mapstructure:"service_id"`
	ServiceName   string `mapstructure:"service_name"`
	Listen        string `mapstructure:"listen"`
	Target        string `mapstructure:"target"`
	PublicAddress string `mapstructure:"public_address"`
	PublicPort    int    `mapstructure:"public_port"`
	MonitorListen string `mapstructure:"monitor_listen"`
	ConsulURL     string `mapstructure:"consul_url"`
	RedisAddr     string `mapstructure:"redis_addr"`
	MySQLDSN      string `mapstructure:"mysql_dsn"`
	WebhookURL    string `mapstructure:"webhook_url"`
	LogLevel      string `mapstructure:"log_level"`
	LogPath       string `mapstructure:"log_path"`
	SnowflakeNode int64  `mapstructure:"snowflake_node"`
}

// Init 先读配置文件,再用WSPROXY_前缀的环境变量覆盖
func Init(file string) (*Config, error) {
	viper.SetConfigFile(file)

	var config Config
	if err := viper.ReadInConfig(); err != nil {
		logger.Warn(err)
	} else {
		if err := viper.Unmarshal(&config); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process("wsproxy", &config); err != nil {
		return nil, err
	}

	if config.Target == "" {
		return nil, errors.New("target is required")
	}
	if config.ServiceID == "" {
		localID := ksuid.New().String()
		config.ServiceID = "proxy_" + localID[:5]
	}
	if config.ServiceName == "" {
		config.ServiceName = "wsproxy"
	}
	if config.Listen == "" {
		config.Listen = ":8080"
	}
	if config.LogLevel == "" {
		config.LogLevel = "debug"
	}
	logger.Info(config)
	return &config, nil
}
