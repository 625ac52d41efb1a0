package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"", FormatJSON, false},
		{"PRETTY", FormatPretty, false},
		{" table ", FormatTable, false},
		{"text", FormatText, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintRecord_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON, &buf)

	require.NoError(t, f.PrintRecord(NewRecord("address", "0xabc", "scheme", "ed25519")))

	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]string{"address": "0xabc", "scheme": "ed25519"}, got)
}

func TestPrintRecord_Text(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatText, &buf)

	require.NoError(t, f.PrintRecord(NewRecord("address", "0xabc", "scheme", "ed25519")))
	assert.Equal(t, "address: 0xabc\nscheme: ed25519\n", buf.String())
}

func TestPrintRecords_Table(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatTable, &buf)

	records := []Record{
		NewRecord("address", "0x01", "scheme", "ed25519"),
		NewRecord("address", "0x02", "scheme", ""),
	}
	require.NoError(t, f.PrintRecords(records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ADDRESS", "SCHEME"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0x01", "ed25519"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"0x02", "-"}, strings.Fields(lines[2]))
}

func TestPrintRecords_EmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON, &buf)

	require.NoError(t, f.PrintRecords(nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestPrint_Pretty(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatPretty, &buf)

	require.NoError(t, f.Print(map[string]int{"count": 2}))
	assert.Equal(t, "{\n  \"count\": 2\n}\n", buf.String())
}

func TestLogMessages(t *testing.T) {
	var out, logs bytes.Buffer
	f := NewFormatter(FormatJSON, &out)
	f.SetLogWriter(&logs)

	f.PrintSuccess("done")
	f.PrintWarning("careful")
	f.PrintInfo("fyi")
	assert.Contains(t, logs.String(), "done")
	assert.Contains(t, logs.String(), "careful")
	assert.Contains(t, logs.String(), "fyi")
	assert.Empty(t, out.String())

	logs.Reset()
	f.SetSilent(true)
	f.PrintInfo("hidden")
	f.PrintError(errors.New("boom"))
	assert.NotContains(t, logs.String(), "hidden")
	assert.Contains(t, logs.String(), "boom")
}
