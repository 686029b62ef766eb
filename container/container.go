package container

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"

	"wsproxy/iface"
	"wsproxy/logger"
)

const (
	stateUninitialized = iota
	stateInitialized
	stateStarted
	stateClosed
)

// Container 托管代理服务的生命周期:初始化、注册、启动、退出时注销
type Container struct {
	Srv    iface.IServer
	Naming iface.Naming
	state  uint32
}

var log = logger.WithField("module", "container")

// Default Container
var c = &Container{}

// Default Default
func Default() *Container {
	return c
}

func Init(srv iface.IServer) error {
	if !atomic.CompareAndSwapUint32(&c.state, stateUninitialized, stateInitialized) {
		return errors.New("container already initialized")
	}
	c.Srv = srv
	return nil
}

// SetServiceNaming SetServiceNaming
func SetServiceNaming(naming iface.Naming) {
	c.Naming = naming
}

func Start() error {
	if c.Srv == nil {
		return errors.New("server is nil")
	}
	if !atomic.CompareAndSwapUint32(&c.state, stateInitialized, stateStarted) {
		return errors.New("container already started")
	}
	if c.Naming != nil {
		if err := c.Naming.Register(c.Srv); err != nil {
			return err
		}
	}
	log.Infoln("container started")
	return c.Srv.Start()
}

func Shutdown(ctx context.Context) error {
	if !atomic.CompareAndSwapUint32(&c.state, stateStarted, stateClosed) {
		return errors.New("container is not started")
	}
	if c.Naming != nil {
		_ = c.Naming.Deregister(c.Srv.ServiceID())
	}
	err := c.Srv.Shutdown(ctx)
	log.Infoln("container shutdown")
	return err
}
