package address

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/weisyn/custody/internal/core/infrastructure/crypto/keypair"
)

// testPublicKey 0x00..0x1f 的 32 字节 Ed25519 公钥
func testPublicKey(t *testing.T) keypair.PublicKey {
	t.Helper()
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i)
	}
	pk, err := keypair.NewPublicKey(keypair.Ed25519, raw)
	if err != nil {
		t.Fatalf("构造公钥失败: %v", err)
	}
	return pk
}

func TestFromPublicKey_KnownVector(t *testing.T) {
	// SHA3-256(0x00 || 00..1f)[:20]
	expected := "0xe103e8ef6449460b0cf540d1d2b11d0a6069d348"

	addr := FromPublicKey(testPublicKey(t))
	if addr.String() != expected {
		t.Errorf("地址不匹配:\n期望: %s\n实际: %s", expected, addr.String())
	}
}

func TestFromPublicKey_Deterministic(t *testing.T) {
	for _, scheme := range []keypair.SignatureScheme{keypair.Ed25519, keypair.Secp256k1, keypair.Secp256r1} {
		kp, err := keypair.Generate(scheme, nil)
		if err != nil {
			t.Fatalf("生成密钥失败: %v", err)
		}

		first := FromPublicKey(kp.Public())
		second := FromKeyPair(kp)
		if first != second {
			t.Errorf("%s: 同一公钥推导出不同地址: %s != %s", scheme, first, second)
		}
		if first.IsZero() {
			t.Errorf("%s: 推导出零地址", scheme)
		}
	}
}

func TestFromPublicKey_FlagMatters(t *testing.T) {
	// 相同字节、不同方案应得到不同地址
	a := FromPublicKey(testPublicKey(t))

	kp, err := keypair.Generate(keypair.Secp256k1, nil)
	if err != nil {
		t.Fatalf("生成密钥失败: %v", err)
	}
	b := FromPublicKey(kp.Public())
	if a == b {
		t.Error("不同公钥推导出相同地址")
	}
}

func TestParse(t *testing.T) {
	valid := "0xe103e8ef6449460b0cf540d1d2b11d0a6069d348"

	testCases := []struct {
		input       string
		shouldValid bool
		description string
	}{
		{valid, true, "带前缀的地址"},
		{strings.TrimPrefix(valid, "0x"), true, "不带前缀的地址"},
		{strings.ToUpper(strings.TrimPrefix(valid, "0x")), true, "大写十六进制"},
		{"", false, "空地址"},
		{"0x1234", false, "太短的地址"},
		{"0x" + strings.Repeat("zz", 20), false, "非十六进制字符"},
		{valid + "00", false, "太长的地址"},
	}

	for _, tc := range testCases {
		addr, err := Parse(tc.input)
		if tc.shouldValid {
			if err != nil {
				t.Errorf("%s: 应该有效但解析失败: %v", tc.description, err)
				continue
			}
			if addr.String() != valid {
				t.Errorf("%s: 解析结果不一致: %s", tc.description, addr)
			}
		} else if err == nil {
			t.Errorf("%s: 应该无效但解析通过", tc.description)
		}
	}
}

func TestAddress_TextRoundTrip(t *testing.T) {
	addr := FromPublicKey(testPublicKey(t))

	data, err := json.Marshal(map[string]Address{"address": addr})
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}

	var decoded map[string]Address
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}
	if decoded["address"] != addr {
		t.Errorf("地址往返不一致: %s != %s", decoded["address"], addr)
	}
}

func TestFromBytes(t *testing.T) {
	if _, err := FromBytes(make([]byte, 19)); err == nil {
		t.Error("19 字节应被拒绝")
	}

	addr := FromPublicKey(testPublicKey(t))
	again, err := FromBytes(addr.Bytes())
	if err != nil {
		t.Fatalf("字节转地址失败: %v", err)
	}
	if again.Compare(addr) != 0 {
		t.Errorf("字节往返不一致")
	}
}
