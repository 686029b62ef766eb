package iface

//消息快照存储,UI与重放的数据来源
type IMessageStorage interface {
	Save(channelID string, snap MessageSnapshot) error
	List(channelID string, limit int64) ([]MessageSnapshot, error)
}
