package keystore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// typeKind 后端种类
type typeKind uint8

const (
	kindUnset typeKind = iota
	kindFile
	kindInMem
)

// ErrUnsetType 未指定后端类型
var ErrUnsetType = errors.New("keystore type not set")

// Type 后端选择器：File(path) 或 InMem(initialKeyCount)
type Type struct {
	kind  typeKind
	path  string
	count int
}

// FileType 选择文件后端
func FileType(path string) Type {
	return Type{kind: kindFile, path: path}
}

// InMemType 选择内存后端，构造时生成 n 个确定性密钥
func InMemType(n int) Type {
	return Type{kind: kindInMem, count: n}
}

// IsFile 是否为文件后端
func (t Type) IsFile() bool { return t.kind == kindFile }

// IsInMem 是否为内存后端
func (t Type) IsInMem() bool { return t.kind == kindInMem }

// Path 文件后端路径
func (t Type) Path() string { return t.path }

// InitialKeyCount 内存后端初始密钥数量
func (t Type) InitialKeyCount() int { return t.count }

// Init 构造后端并返回绑定该后端的 Keystore
func (t Type) Init(opts ...Option) (*Keystore, error) {
	o := buildOptions(opts)

	var backend AccountKeystore
	switch t.kind {
	case kindFile:
		fileKs, err := LoadOrCreate(t.path, o.logger)
		if err != nil {
			return nil, err
		}
		backend = fileKs
	case kindInMem:
		backend = NewInMemKeystore(t.count)
	default:
		return nil, ErrUnsetType
	}

	o.logger.Infof("密钥库初始化完成: %s", strings.ReplaceAll(strings.TrimSpace(t.String()), "\n", ", "))
	return New(backend, opts...), nil
}

// String 返回展示格式
func (t Type) String() string {
	switch t.kind {
	case kindFile:
		return displayFile(t.path)
	case kindInMem:
		return displayInMem()
	default:
		return "Keystore Type : Unset\n"
	}
}

func displayFile(path string) string {
	return fmt.Sprintf("Keystore Type : File\nKeystore Path : %q", path)
}

func displayInMem() string {
	return "Keystore Type : InMem\n"
}

// String 返回绑定后端的展示格式
func (k *Keystore) String() string {
	switch b := k.backend.(type) {
	case *FileBasedKeystore:
		return displayFile(b.Path())
	case *InMemKeystore:
		return displayInMem()
	default:
		return fmt.Sprintf("Keystore Type : %T\n", b)
	}
}

type typeJSON struct {
	File  *string `json:"File,omitempty"`
	InMem *int    `json:"InMem,omitempty"`
}

// MarshalJSON 编码为 {"File":"<path>"} 或 {"InMem":<n>}
func (t Type) MarshalJSON() ([]byte, error) {
	switch t.kind {
	case kindFile:
		return json.Marshal(typeJSON{File: &t.path})
	case kindInMem:
		return json.Marshal(typeJSON{InMem: &t.count})
	default:
		return nil, ErrUnsetType
	}
}

// UnmarshalJSON 解码 {"File":"<path>"} 或 {"InMem":<n>}
func (t *Type) UnmarshalJSON(data []byte) error {
	var v typeJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode keystore type: %w", err)
	}
	switch {
	case v.File != nil && v.InMem != nil:
		return errors.New("decode keystore type: both File and InMem set")
	case v.File != nil:
		*t = FileType(*v.File)
	case v.InMem != nil:
		if *v.InMem < 0 {
			return fmt.Errorf("decode keystore type: negative InMem count %d", *v.InMem)
		}
		*t = InMemType(*v.InMem)
	default:
		return ErrUnsetType
	}
	return nil
}
