package image

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// maxPromptInName is how many characters of the sanitized prompt go into a
// file name.
const maxPromptInName = 15

var unsafeChars = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

// SanitizePrompt replaces spaces and path separators with underscores and
// keeps at most the first 15 characters. Distinct prompts can share a result.
func SanitizePrompt(prompt string) string {
	return string(lo.Subset([]rune(unsafeChars.Replace(prompt)), 0, maxPromptInName))
}

// Filename is the name an image for model and prompt is saved under.
func Filename(model, prompt string) string {
	return fmt.Sprintf("pollinations_%s_%s.png", model, SanitizePrompt(prompt))
}
