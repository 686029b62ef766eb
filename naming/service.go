package naming

import (
	"fmt"

	"wsproxy/iface"
)

// DefaultService 服务注册信息的默认实现
type DefaultService struct {
	Id       string
	Name     string
	Address  string
	Port     int
	Protocol string
	Tags     []string
	Meta     map[string]string
}

func NewEntry(id, name, protocol, address string, port int) iface.ServiceRegistration {
	return &DefaultService{
		Id:       id,
		Name:     name,
		Address:  address,
		Port:     port,
		Protocol: protocol,
	}
}

func (s *DefaultService) ServiceID() string {
	return s.Id
}

func (s *DefaultService) ServiceName() string {
	return s.Name
}

func (s *DefaultService) PublicAddress() string {
	return s.Address
}

func (s *DefaultService) PublicPort() int {
	return s.Port
}

func (s *DefaultService) DialURL() string {
	return fmt.Sprintf("%s://%s:%d", s.GetProtocol(), s.Address, s.Port)
}

func (s *DefaultService) GetProtocol() string {
	if s.Protocol == "" {
		return "ws"
	}
	return s.Protocol
}

func (s *DefaultService) GetTags() []string {
	return s.Tags
}

func (s *DefaultService) GetMeta() map[string]string {
	return s.Meta
}

func (s *DefaultService) String() string {
	return fmt.Sprintf("Id:%s,Name:%s,Address:%s,Port:%d,Tags:%v,Meta:%v",
		s.Id, s.Name, s.Address, s.Port, s.Tags, s.Meta)
}
