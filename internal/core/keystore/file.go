package keystore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"

	"github.com/weisyn/custody/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/custody/internal/core/infrastructure/crypto/keypair"
	"github.com/weisyn/custody/pkg/interfaces/infrastructure/log"
)

const (
	// FilePermissions 密钥库文件权限
	FilePermissions fs.FileMode = 0o600
	// DirectoryPermissions 密钥库所在目录权限
	DirectoryPermissions fs.FileMode = 0o700
)

// FileBasedKeystore 以 JSON 字符串数组持久化的密钥库
//
// 文件内容为 base64(flag || secret) 字符串数组，按地址升序排列。
// 每次 AddKey 都会先写入完整密钥集，写入成功后才更新内存。
type FileBasedKeystore struct {
	keys   keySet
	path   string
	logger log.Logger
}

// LoadOrCreate 从 path 加载密钥库；文件不存在时返回空密钥库
//
// path 为空时返回不落盘的密钥库，Save 为空操作。
func LoadOrCreate(path string, logger log.Logger) (*FileBasedKeystore, error) {
	if logger == nil {
		logger = noopLogger{}
	}
	ks := &FileBasedKeystore{
		keys:   make(keySet),
		path:   path,
		logger: logger,
	}
	if path == "" {
		return ks, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Infof("密钥库文件不存在，创建空密钥库: %s", path)
		return ks, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrStorageIO, path, err)
	}

	var encoded []string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStorageCorrupt, path, err)
	}

	for i, s := range encoded {
		kp, err := keypair.DecodeBase64(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: entry %d: %v", ErrStorageCorrupt, path, i, err)
		}
		ks.keys[address.FromKeyPair(kp)] = kp
	}

	logger.Infof("密钥库加载成功: path=%s, keys=%d", path, len(ks.keys))
	return ks, nil
}

// Sign 使用地址对应的密钥签名
func (ks *FileBasedKeystore) Sign(addr address.Address, msg []byte) (keypair.Signature, error) {
	return ks.keys.sign(addr, msg)
}

// AddKey 写入包含新密钥的完整密钥集，成功后再提交到内存
func (ks *FileBasedKeystore) AddKey(kp keypair.KeyPair) error {
	if kp == nil {
		return ErrNilKeyPair
	}
	addr := address.FromKeyPair(kp)

	candidate := maps.Clone(ks.keys)
	candidate[addr] = kp
	if err := ks.write(candidate); err != nil {
		return err
	}

	ks.keys = candidate
	ks.logger.Debugf("密钥已保存: address=%s, scheme=%s", addr, kp.Scheme())
	return nil
}

// Keys 返回全部公钥，按地址升序
func (ks *FileBasedKeystore) Keys() []keypair.PublicKey {
	return ks.keys.publicKeys()
}

// KeyPairs 返回全部密钥对，按地址升序
func (ks *FileBasedKeystore) KeyPairs() []keypair.KeyPair {
	addrs := ks.keys.sortedAddresses()
	kps := make([]keypair.KeyPair, 0, len(addrs))
	for _, addr := range addrs {
		kps = append(kps, ks.keys[addr])
	}
	return kps
}

// SetPath 设置持久化路径，不会触发读写
func (ks *FileBasedKeystore) SetPath(path string) {
	ks.path = path
}

// Path 返回持久化路径
func (ks *FileBasedKeystore) Path() string {
	return ks.path
}

// Save 将当前密钥集写入文件；未设置路径时为空操作
func (ks *FileBasedKeystore) Save() error {
	return ks.write(ks.keys)
}

// write 序列化密钥集并通过临时文件 + rename 覆盖目标文件
func (ks *FileBasedKeystore) write(keys keySet) error {
	if ks.path == "" {
		return nil
	}

	encoded := make([]string, 0, len(keys))
	for _, addr := range keys.sortedAddresses() {
		encoded = append(encoded, keys[addr].EncodeBase64())
	}
	data, err := json.MarshalIndent(encoded, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrStorageIO, err)
	}

	if err := writeFileAtomic(ks.path, data); err != nil {
		keystoreSaveFailures.Inc()
		ks.logger.Errorf("保存密钥库失败 %s: %v", ks.path, err)
		return fmt.Errorf("%w: %v", ErrStorageIO, err)
	}

	ks.logger.Debugf("密钥库保存成功: path=%s, keys=%d", ks.path, len(keys))
	return nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirectoryPermissions); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(FilePermissions); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

var _ AccountKeystore = (*FileBasedKeystore)(nil)
