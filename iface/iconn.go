package iface

import "net"

//连接,帧级读写
type IConn interface {
	net.Conn
	IFrameReader
	IFrameWriter
	Flush() error
}
