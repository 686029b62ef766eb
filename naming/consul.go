package naming

import (
	"sync"
	"time"

	"github.com/hashicorp/consul/api"
	"github.com/pkg/errors"

	"wsproxy/iface"
	"wsproxy/logger"
)

const (
	KeyProtocol  = "protocol"
	KeyHealthURL = "health_url"
)

// Naming 基于consul的服务注册与发现
type Naming struct {
	sync.RWMutex
	cli    *api.Client
	watchs map[string]*Watch
}

type Watch struct {
	Service   string
	Callback  func([]iface.ServiceRegistration)
	WaitIndex uint64
	Quit      chan struct{}
}

func NewNaming(consulURL string) (iface.Naming, error) {
	conf := api.DefaultConfig()
	conf.Address = consulURL
	cli, err := api.NewClient(conf)
	if err != nil {
		return nil, err
	}
	return &Naming{
		cli:    cli,
		watchs: make(map[string]*Watch, 1),
	}, nil
}

func (n *Naming) Register(s iface.ServiceRegistration) error {
	reg := &api.AgentServiceRegistration{
		ID:      s.ServiceID(),
		Name:    s.ServiceName(),
		Address: s.PublicAddress(),
		Port:    s.PublicPort(),
		Tags:    s.GetTags(),
		Meta:    s.GetMeta(),
	}
	if reg.Meta == nil {
		reg.Meta = make(map[string]string)
	}
	reg.Meta[KeyProtocol] = s.GetProtocol()

	//配置了健康检查地址就挂上http检查
	if healthURL, ok := reg.Meta[KeyHealthURL]; ok && healthURL != "" {
		reg.Check = &api.AgentServiceCheck{
			HTTP:                           healthURL,
			Timeout:                        "1s",
			Interval:                       "10s",
			DeregisterCriticalServiceAfter: "20s",
		}
	}

	err := n.cli.Agent().ServiceRegister(reg)
	return errors.Wrap(err, "consul register")
}

func (n *Naming) Deregister(serviceID string) error {
	return n.cli.Agent().ServiceDeregister(serviceID)
}

func (n *Naming) Find(name string, tags ...string) ([]iface.ServiceRegistration, error) {
	services, _, err := n.load(name, 0, tags...)
	return services, err
}

func (n *Naming) load(name string, waitIndex uint64, tags ...string) ([]iface.ServiceRegistration, *api.QueryMeta, error) {
	opts := &api.QueryOptions{
		UseCache:  true,
		MaxAge:    time.Minute,
		WaitIndex: waitIndex,
	}
	tag := ""
	if len(tags) > 0 {
		tag = tags[0]
	}
	entries, meta, err := n.cli.Health().Service(name, tag, true, opts)
	if err != nil {
		return nil, meta, err
	}
	services := make([]iface.ServiceRegistration, 0, len(entries))
	for _, entry := range entries {
		if entry.Service == nil {
			continue
		}
		services = append(services, &DefaultService{
			Id:       entry.Service.ID,
			Name:     entry.Service.Service,
			Address:  entry.Service.Address,
			Port:     entry.Service.Port,
			Protocol: entry.Service.Meta[KeyProtocol],
			Tags:     entry.Service.Tags,
			Meta:     entry.Service.Meta,
		})
	}
	return services, meta, nil
}

// Subscribe 阻塞查询监听服务变化,回调在独立goroutine执行
func (n *Naming) Subscribe(serviceName string, callback func([]iface.ServiceRegistration)) error {
	n.Lock()
	defer n.Unlock()
	if _, ok := n.watchs[serviceName]; ok {
		return errors.New("serviceName has been watched")
	}
	w := &Watch{
		Service:  serviceName,
		Callback: callback,
		Quit:     make(chan struct{}),
	}
	n.watchs[serviceName] = w

	go n.watchLoop(w)
	return nil
}

func (n *Naming) watchLoop(w *Watch) {
	log := logger.WithFields(logger.Fields{
		"module":  "naming",
		"service": w.Service,
	})
	for {
		select {
		case <-w.Quit:
			return
		default:
		}
		services, meta, err := n.load(w.Service, w.WaitIndex)
		if err != nil {
			log.Warn(err)
			time.Sleep(time.Second * 3)
			continue
		}
		if meta.LastIndex == w.WaitIndex {
			continue
		}
		w.WaitIndex = meta.LastIndex
		w.Callback(services)
	}
}

func (n *Naming) Unsubscribe(serviceName string) error {
	n.Lock()
	defer n.Unlock()
	w, ok := n.watchs[serviceName]
	if !ok {
		return nil
	}
	close(w.Quit)
	delete(n.watchs, serviceName)
	return nil
}
