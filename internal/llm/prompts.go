package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/menu_system.txt
	menuSystemPrompt string
	//go:embed prompts/menu_user.txt
	menuUserPrompt string
	//go:embed prompts/fix_json.txt
	fixJSONPrompt string
)

// SystemPrompt returns the system message for menu analysis.
func SystemPrompt() string {
	return strings.TrimSpace(menuSystemPrompt)
}

// UserPrompt returns the text that accompanies the menu image.
func UserPrompt() string {
	return strings.TrimSpace(menuUserPrompt)
}

// FixJSONPrompt returns a repair request for raw model output.
func FixJSONPrompt(raw string) string {
	return strings.TrimSpace(fixJSONPrompt) + "\n" + raw
}
