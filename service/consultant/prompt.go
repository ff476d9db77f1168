package consultant

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

var (
	//go:embed prompts/plain_response.txt
	plainResponsePrompt string

	//go:embed prompts/tabular_interpret.txt
	tabularInterpretPrompt string

	//go:embed prompts/tabular_format.txt
	tabularFormatPrompt string

	//go:embed prompts/search_interpret.txt
	searchInterpretPrompt string

	//go:embed prompts/search_format.txt
	searchFormatPrompt string
)

func renderPrompt(promptText string, data any) (string, error) {
	tmpl, err := template.New("prompt").Parse(promptText)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt template: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %v", err)
	}
	return buf.String(), nil
}

// interpretEnvelope 意图解析时模型应输出的JSON外层结构
type interpretEnvelope struct {
	NeedsAPICall bool   `json:"needs_api_call"`
	Action       string `json:"action"`
}
