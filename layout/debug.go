package layout

import (
	"io"
	"os"

	json "github.com/json-iterator/go"
)

// MarshalDebugJSON 将构建结果编码为缩进 JSON，便于调试或可视化。
func MarshalDebugJSON(res *Result) ([]byte, error) {
	return json.MarshalIndent(res, "", "  ")
}

// WriteDebugJSON 将构建结果写入 path。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := MarshalDebugJSON(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// EncodeDebugJSON 将构建结果写到 w，末尾带换行。
func EncodeDebugJSON(w io.Writer, res *Result) error {
	data, err := MarshalDebugJSON(res)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
