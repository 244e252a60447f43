package prompts

import (
	_ "embed"
)

//go:embed interpret_system.txt
var InterpretSystemPrompt string

//go:embed interpret_user.txt
var interpretUserTemplate string
