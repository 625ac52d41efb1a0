package keystore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keystoreconfig "github.com/weisyn/custody/internal/config/keystore"
)

func TestType_String(t *testing.T) {
	assert.Equal(t, "Keystore Type : File\nKeystore Path : \"/tmp/custody.keystore\"", FileType("/tmp/custody.keystore").String())
	assert.Equal(t, "Keystore Type : InMem\n", InMemType(3).String())
	assert.Equal(t, "Keystore Type : Unset\n", Type{}.String())
}

func TestType_Accessors(t *testing.T) {
	ft := FileType("a.keystore")
	assert.True(t, ft.IsFile())
	assert.False(t, ft.IsInMem())
	assert.Equal(t, "a.keystore", ft.Path())

	mt := InMemType(4)
	assert.True(t, mt.IsInMem())
	assert.Equal(t, 4, mt.InitialKeyCount())
}

func TestType_JSON(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		json string
	}{
		{"file", FileType("/data/custody.keystore"), `{"File":"/data/custody.keystore"}`},
		{"in-mem", InMemType(3), `{"InMem":3}`},
		{"in-mem zero", InMemType(0), `{"InMem":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.typ)
			require.NoError(t, err)
			assert.JSONEq(t, tt.json, string(data))

			var decoded Type
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tt.typ, decoded)
		})
	}
}

func TestType_JSONInvalid(t *testing.T) {
	for _, input := range []string{`{}`, `{"File":"a","InMem":1}`, `{"InMem":-2}`, `"File"`} {
		var decoded Type
		assert.Error(t, json.Unmarshal([]byte(input), &decoded), input)
	}

	_, err := json.Marshal(Type{})
	assert.Error(t, err)
}

func TestType_Init(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custody.keystore")
		ks, err := FileType(path).Init()
		require.NoError(t, err)
		assert.IsType(t, &FileBasedKeystore{}, ks.Backend())
		assert.Equal(t, FileType(path).String(), ks.String())
	})

	t.Run("in-mem", func(t *testing.T) {
		ks, err := InMemType(2).Init()
		require.NoError(t, err)
		assert.IsType(t, &InMemKeystore{}, ks.Backend())
		assert.Len(t, ks.Keys(), 2)
		assert.Equal(t, "Keystore Type : InMem\n", ks.String())
	})

	t.Run("unset", func(t *testing.T) {
		_, err := Type{}.Init()
		assert.ErrorIs(t, err, ErrUnsetType)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custody.keystore")
		require.NoError(t, os.WriteFile(path, []byte(`["bad"]`), 0o600))
		_, err := FileType(path).Init()
		assert.ErrorIs(t, err, ErrStorageCorrupt)
	})
}

func TestTypeFromOptions(t *testing.T) {
	assert.Equal(t, FileType("/k"), TypeFromOptions(&keystoreconfig.KeystoreOptions{Type: keystoreconfig.TypeFile, Path: "/k"}))
	assert.Equal(t, InMemType(7), TypeFromOptions(&keystoreconfig.KeystoreOptions{Type: keystoreconfig.TypeMemory, InitialKeyCount: 7}))
	assert.Equal(t, Type{}, TypeFromOptions(&keystoreconfig.KeystoreOptions{Type: "hsm"}))
	assert.Equal(t, Type{}, TypeFromOptions(nil))
}
