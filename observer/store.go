package observer

import (
	"wsproxy/core"
	"wsproxy/iface"
	"wsproxy/logger"
)

// Store 把完成的消息快照写入存储,供管理端查询
type Store struct {
	storage iface.IMessageStorage
}

func NewStore(storage iface.IMessageStorage) iface.IMessageObserver {
	return &Store{storage: storage}
}

func (s *Store) OnMessage(agent iface.IAgent, msg iface.IMessage) bool {
	err := s.storage.Save(agent.ID(), core.ToSnapshot(msg))
	if err != nil {
		logger.WithFields(logger.Fields{
			"module": "store",
			"id":     agent.ID(),
		}).Warn(err)
	}
	return true
}
