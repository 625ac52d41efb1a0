package keystore

// 密钥库配置默认值
const (
	// defaultType 默认使用文件后端
	defaultType = TypeFile

	// defaultPath 默认密钥库文件路径
	defaultPath = "./data/keystore/custody.keystore"

	// defaultInitialKeyCount 内存后端默认生成的密钥数量
	defaultInitialKeyCount = 5
)
