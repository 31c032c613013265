package preview

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将预览布局输出为 JSON，便于调试或可视化。
func WriteDebugJSON(layout *Layout, path string) error {
	if layout == nil {
		return nil
	}
	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
