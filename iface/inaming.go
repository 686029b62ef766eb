package iface

type Naming interface {

	//注册
	Register(service ServiceRegistration) error
	//注销
	Deregister(string) error
	//服务发现
	Find(serviceName string, tags ...string) ([]ServiceRegistration, error)
	//订阅
	Subscribe(serviceName string, callback func(services []ServiceRegistration)) error
	//退订
	Unsubscribe(serviceName string) error
}

type ServiceRegistration interface {
	IService
	//ip or domain
	PublicAddress() string
	PublicPort() int
	DialURL() string
	GetProtocol() string
	GetTags() []string
	String() string
}
