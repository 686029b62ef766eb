package iface

//消息拦截器,消息组装完成后依次通知
//返回false表示丢弃该消息,不再转发
//回调里拿到的消息已经finished,可以安全地并发读取
type IMessageObserver interface {
	OnMessage(IAgent, IMessage) bool
}
