package iface

//单个帧的数据,由具体协议版本的解析器产出
//Payload已经解除掩码,引擎层看不到任何线格式细节
type FrameData struct {
	OpCode  OpCode
	Fin     bool
	Payload []byte
}

//帧解析器,不同协议草案各有实现,注入到消息引擎
type IFrameReader interface {
	ReadFrame() (*FrameData, error)
}

//帧写入器
type IFrameWriter interface {
	WriteFrame(OpCode, bool, []byte) error
}
