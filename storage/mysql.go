package storage

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"wsproxy/iface"
)

// MessageRecord 落库的消息快照
type MessageRecord struct {
	ID             int64  `gorm:"primaryKey"`
	ChannelID      string `gorm:"size:64;index"`
	MessageID      int64
	OpCode         int
	ReadableOpCode string `gorm:"size:16"`
	Payload        string
	IsOutgoing     bool
	PayloadLength  int
	Timestamp      time.Time
}

type MySQLStorage struct {
	db   *gorm.DB
	node *snowflake.Node
}

// NewMySQLStorage nodeID用于snowflake主键,多实例部署时各自配置
func NewMySQLStorage(dsn string, nodeID int64) (iface.IMessageStorage, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&MessageRecord{}); err != nil {
		return nil, err
	}
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &MySQLStorage{
		db:   db,
		node: node,
	}, nil
}

func (s *MySQLStorage) Save(channelID string, snap iface.MessageSnapshot) error {
	rec := &MessageRecord{
		ID:             s.node.Generate().Int64(),
		ChannelID:      channelID,
		MessageID:      snap.ID,
		OpCode:         snap.OpCode,
		ReadableOpCode: snap.ReadableOpCode,
		Payload:        snap.Payload,
		IsOutgoing:     snap.IsOutgoing,
		PayloadLength:  snap.PayloadLength,
		Timestamp:      snap.Timestamp,
	}
	return s.db.Create(rec).Error
}

func (s *MySQLStorage) List(channelID string, limit int64) ([]iface.MessageSnapshot, error) {
	var recs []MessageRecord
	tx := s.db.Where("channel_id = ?", channelID).Order("id desc")
	if limit > 0 {
		tx = tx.Limit(int(limit))
	}
	if err := tx.Find(&recs).Error; err != nil {
		return nil, err
	}
	result := make([]iface.MessageSnapshot, 0, len(recs))
	for _, rec := range recs {
		result = append(result, iface.MessageSnapshot{
			ID:             rec.MessageID,
			Timestamp:      rec.Timestamp,
			OpCode:         rec.OpCode,
			ReadableOpCode: rec.ReadableOpCode,
			Payload:        rec.Payload,
			IsOutgoing:     rec.IsOutgoing,
			PayloadLength:  rec.PayloadLength,
		})
	}
	return result, nil
}
