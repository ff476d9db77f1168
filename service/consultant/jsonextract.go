package consultant

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject 从模型的自由文本回复中提取JSON对象并解析到out
//
// 截取首个 '{' 到最后一个 '}' 之间的贪婪片段。这是尽力而为的启发式：
// 模型在回复里输出多个JSON块时可能截错范围，上游模型的输出格式没有
// 契约保证，调用方必须按失败降级处理，不要试图收紧解析规则。
func ExtractJSONObject(text string, out any) error {
	start := strings.Index(text, "{")
	if start == -1 {
		return fmt.Errorf("no json object found in model output")
	}

	end := strings.LastIndex(text, "}")
	if end <= start {
		return fmt.Errorf("no json object found in model output")
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), out); err != nil {
		return fmt.Errorf("failed to parse json from model output: %v", err)
	}
	return nil
}
