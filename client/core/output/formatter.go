// Package output 提供命令行输出格式化
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
)

// Format 输出格式
type Format string

const (
	// FormatJSON JSON格式（默认）
	FormatJSON Format = "json"
	// FormatPretty 美化JSON格式
	FormatPretty Format = "pretty"
	// FormatTable 表格格式
	FormatTable Format = "table"
	// FormatText 纯文本格式
	FormatText Format = "text"
)

// ParseFormat 解析输出格式名称
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatPretty, FormatTable, FormatText:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("未知的输出格式: %q，应为 json|pretty|table|text", name)
	}
}

// Record 一条输出记录，列顺序由 Columns 决定
type Record struct {
	Columns []string
	Values  map[string]string
}

// NewRecord 按 key, value 交替的参数创建记录
func NewRecord(kv ...string) Record {
	r := Record{Values: make(map[string]string, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		r.Columns = append(r.Columns, kv[i])
		r.Values[kv[i]] = kv[i+1]
	}
	return r
}

// MarshalJSON 按字段输出为 JSON 对象
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Values)
}

// Formatter 输出格式化器
type Formatter struct {
	format    Format
	writer    io.Writer // 数据输出（JSON/表格等）
	logWriter io.Writer // 提示输出（Info/Success/Error等）
	silent    bool
}

// NewFormatter 创建格式化器
func NewFormatter(format Format, writer io.Writer) *Formatter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Formatter{
		format:    format,
		writer:    writer,
		logWriter: os.Stderr, // 提示写 stderr，避免污染 JSON
	}
}

// SetLogWriter 设置提示输出目标（默认 stderr）
func (f *Formatter) SetLogWriter(writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	f.logWriter = writer
}

// SetSilent 设置静默模式
func (f *Formatter) SetSilent(silent bool) {
	f.silent = silent
}

// Format 返回当前输出格式
func (f *Formatter) Format() Format {
	return f.format
}

// PrintRecord 输出单条记录
func (f *Formatter) PrintRecord(r Record) error {
	switch f.format {
	case FormatTable:
		return f.printKeyValueTable(r)
	case FormatText:
		for _, col := range r.Columns {
			if _, err := fmt.Fprintf(f.writer, "%s: %s\n", col, r.Values[col]); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		return nil
	default:
		return f.printJSON(r)
	}
}

// PrintRecords 输出多条记录，列取第一条记录的列
func (f *Formatter) PrintRecords(records []Record) error {
	switch f.format {
	case FormatTable:
		return f.printRecordTable(records)
	case FormatText:
		for _, r := range records {
			values := make([]string, len(r.Columns))
			for i, col := range r.Columns {
				values[i] = r.Values[col]
			}
			if _, err := fmt.Fprintln(f.writer, strings.Join(values, " ")); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		return nil
	default:
		if records == nil {
			records = []Record{}
		}
		return f.printJSON(records)
	}
}

// Print 输出任意可 JSON 序列化的数据
func (f *Formatter) Print(data interface{}) error {
	switch f.format {
	case FormatText:
		if _, err := fmt.Fprintf(f.writer, "%v\n", data); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	default:
		return f.printJSON(data)
	}
}

// printJSON 打印JSON格式，table 格式下无法表格化的数据降级为美化JSON
func (f *Formatter) printJSON(data interface{}) error {
	var out []byte
	var err error
	if f.format == FormatJSON {
		out, err = json.Marshal(data)
	} else {
		out, err = json.MarshalIndent(data, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := fmt.Fprintln(f.writer, string(out)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// printKeyValueTable 两列: Key | Value
func (f *Formatter) printKeyValueTable(r Record) error {
	tw := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "KEY\tVALUE"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, col := range r.Columns {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", col, r.Values[col]); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}

// printRecordTable 多行表格
func (f *Formatter) printRecordTable(records []Record) error {
	if len(records) == 0 {
		return nil
	}

	columns := slices.Clone(records[0].Columns)
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = strings.ToUpper(col)
	}

	tw := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		values := make([]string, len(columns))
		for i, col := range columns {
			if v, ok := r.Values[col]; ok && v != "" {
				values[i] = v
			} else {
				values[i] = "-"
			}
		}
		if _, err := fmt.Fprintln(tw, strings.Join(values, "\t")); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}

// PrintSuccess 打印成功消息
func (f *Formatter) PrintSuccess(message string) {
	f.printLog("✅ ", message)
}

// PrintWarning 打印警告消息
func (f *Formatter) PrintWarning(message string) {
	f.printLog("⚠️  ", message)
}

// PrintInfo 打印信息消息
func (f *Formatter) PrintInfo(message string) {
	f.printLog("ℹ️  ", message)
}

// PrintError 打印错误消息，静默模式下同样输出
func (f *Formatter) PrintError(err error) {
	_, _ = fmt.Fprintf(f.logWriter, "❌ Error: %v\n", err)
}

func (f *Formatter) printLog(prefix, message string) {
	if f.silent {
		return
	}
	_, _ = fmt.Fprintf(f.logWriter, "%s%s\n", prefix, message)
}
