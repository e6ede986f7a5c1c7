package tools

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"slidegen/internal/llmtool"
)

type WritingRequest struct {
	Content string `json:"content"`
	Command string `json:"command"`
}

const writingChunkRunes = 32

const expandSuffix = "（补充示例与细节说明）"

var polishReplacer = strings.NewReplacer("重要", "关键", "很好", "出色", "提高", "提升")

// Rewrite applies command to content the way the demo tool does: "精简"
// condenses to the leading sentences, "扩写" expands every sentence, and any
// other command substitutes stronger wording.
func Rewrite(content, command string) string {
	switch {
	case strings.Contains(command, "精简"):
		keep := max(1, int(math.Ceil(float64(utf8.RuneCountInString(content))*0.4/20)))
		sentences := splitSentences(collapseSpace(content))
		return strings.Join(sentences[:min(keep, len(sentences))], "")
	case strings.Contains(command, "扩写"):
		var b strings.Builder
		for _, s := range splitSentences(content) {
			if s = strings.TrimSpace(s); s != "" {
				b.WriteString(s)
				b.WriteString(expandSuffix)
			}
		}
		return b.String()
	}
	return polishReplacer.Replace(content)
}

// splitSentences cuts after every sentence terminator, keeping it.
func splitSentences(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		switch r {
		case '。', '！', '？', '!', '?', '.':
			end := i + utf8.RuneLen(r)
			out = append(out, s[start:end])
			start = end
		}
	}
	if start < len(s) || len(out) == 0 {
		out = append(out, s[start:])
	}
	return out
}

func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				b.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// ChunkRunes splits s into pieces of at most size runes.
func ChunkRunes(s string, size int) []string {
	if size <= 0 {
		size = writingChunkRunes
	}
	runes := []rune(s)
	out := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		out = append(out, string(runes[start:min(start+size, len(runes))]))
	}
	return out
}

// Writing streams the rewritten text.
func (t *Tools) Writing(ctx context.Context, req WritingRequest, emit Emit) error {
	command := orDefault(req.Command, defaultCommand)
	if t.client == nil {
		return t.emitAll(ctx, ChunkRunes(Rewrite(req.Content, command), writingChunkRunes), emit)
	}
	prompt, err := writingPrompt(req.Content, command)
	if err != nil {
		return err
	}
	return t.stream(ctx, PhaseWriting, prompt, emit)
}

func writingPrompt(content, command string) (string, error) {
	spec := llmtool.StructuredPromptSpec{
		Purpose: fmt.Sprintf("Rewrite the text as instructed: %s.", command),
		Input:   map[string]string{"text": content, "instruction": command},
		Rules: []string{
			"Keep the language of the original text.",
			"Keep facts and names unchanged.",
		},
		OutputFormat: "The rewritten text only.",
	}
	return llmtool.RenderStructuredPrompt(llmtool.ApplyPresets(spec, llmtool.PresetPlainText()))
}
