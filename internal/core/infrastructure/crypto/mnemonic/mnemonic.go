// Package mnemonic 提供 BIP39 助记词的生成、校验与种子派生
package mnemonic

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// Strength 助记词强度（熵位数）
type Strength int

const (
	// Words12 12个助记词 (128 bits 熵)
	Words12 Strength = 128
	// Words15 15个助记词 (160 bits 熵)
	Words15 Strength = 160
	// Words18 18个助记词 (192 bits 熵)
	Words18 Strength = 192
	// Words21 21个助记词 (224 bits 熵)
	Words21 Strength = 224
	// Words24 24个助记词 (256 bits 熵)
	Words24 Strength = 256
)

// ErrInvalidMnemonic 助记词无效
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// WordCount 返回该强度对应的单词数量
func (s Strength) WordCount() int {
	return (int(s) + int(s)/32) / 11
}

// Valid 是否为 BIP39 支持的强度
func (s Strength) Valid() bool {
	switch s {
	case Words12, Words15, Words18, Words21, Words24:
		return true
	}
	return false
}

// Manager 助记词管理器（英文词表）
type Manager struct {
	wordSet map[string]struct{}
	rng     io.Reader
}

// NewManager 创建助记词管理器，熵来源为 crypto/rand
func NewManager() *Manager {
	return NewManagerWithReader(rand.Reader)
}

// NewManagerWithReader 使用指定熵源创建助记词管理器
func NewManagerWithReader(rng io.Reader) *Manager {
	words := bip39.GetWordList()
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return &Manager{wordSet: set, rng: rng}
}

// Generate 生成指定强度的助记词
func (m *Manager) Generate(strength Strength) (string, error) {
	if !strength.Valid() {
		return "", fmt.Errorf("invalid mnemonic strength: %d, must be 128, 160, 192, 224, or 256", strength)
	}

	entropy := make([]byte, int(strength)/8)
	defer wipe(entropy)
	if _, err := io.ReadFull(m.rng, entropy); err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return phrase, nil
}

// FromEntropy 从指定熵生成助记词
func (m *Manager) FromEntropy(entropy []byte) (string, error) {
	if len(entropy) < 16 || len(entropy) > 32 || len(entropy)%4 != 0 {
		return "", errors.New("entropy must be 16, 20, 24, 28, or 32 bytes")
	}
	return bip39.NewMnemonic(entropy)
}

// Validate 校验助记词（词表与校验和）
func (m *Manager) Validate(phrase string) bool {
	phrase = Normalize(phrase)
	if phrase == "" {
		return false
	}
	return bip39.IsMnemonicValid(phrase)
}

// ValidateWithDetails 校验助记词并返回说明
func (m *Manager) ValidateWithDetails(phrase string) (bool, string) {
	phrase = Normalize(phrase)
	if phrase == "" {
		return false, "助记词不能为空"
	}

	words := strings.Split(phrase, " ")
	switch len(words) {
	case 12, 15, 18, 21, 24:
	default:
		return false, fmt.Sprintf("助记词数量无效: %d，应为 12, 15, 18, 21 或 24", len(words))
	}

	for i, word := range words {
		if _, ok := m.wordSet[word]; !ok {
			return false, fmt.Sprintf("第 %d 个单词 '%s' 不在 BIP39 词表中", i+1, word)
		}
	}

	if !bip39.IsMnemonicValid(phrase) {
		return false, "校验和验证失败，请检查助记词是否正确"
	}
	return true, "助记词有效"
}

// ToSeed 将助记词转换为 64 字节种子 (PBKDF2-HMAC-SHA512)
func (m *Manager) ToSeed(phrase, passphrase string) ([]byte, error) {
	if ok, reason := m.ValidateWithDetails(phrase); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMnemonic, reason)
	}
	return bip39.NewSeed(Normalize(phrase), passphrase), nil
}

// WordCount 获取助记词单词数量
func (m *Manager) WordCount(phrase string) int {
	return len(strings.Fields(phrase))
}

// Normalize 去除首尾空白并将连续空白合并为单个空格，统一为小写
func Normalize(phrase string) string {
	return strings.ToLower(strings.Join(strings.Fields(phrase), " "))
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
