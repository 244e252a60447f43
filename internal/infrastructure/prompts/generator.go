package prompts

import (
	"bytes"
	"text/template"
)

type interpretPromptData struct {
	Task string
}

// GenerateInterpretPrompt renders the user prompt asking the model to turn
// a raw task into structured intent fields.
func GenerateInterpretPrompt(task string) (string, error) {
	tmpl, err := template.New("interpret").Parse(interpretUserTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, interpretPromptData{Task: task}); err != nil {
		return "", err
	}

	return buf.String(), nil
}
