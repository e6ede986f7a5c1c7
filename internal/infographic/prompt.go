package infographic

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"slidegen/internal/llmtool"
	"slidegen/internal/util/jsonutil"
)

var kindNames = map[Kind]string{
	KindList:       "list",
	KindComparison: "comparison",
	KindTimeline:   "timeline",
	KindMindmap:    "mind map",
}

// languageInstructions is matched case-sensitively against the requested
// language. Languages not listed get no extra instruction.
var languageInstructions = map[string]string{
	"中文":      "使用简洁的中文表达，避免冗长的从句",
	"English": "Use concise English, prefer active voice",
	"日本語":     "簡潔な日本語表現を使用してください",
}

// lengthRange is the target length of a generated slot, in characters,
// derived from the example's own length n.
type lengthRange struct {
	slack int
	floor int
}

var (
	titleRange    = lengthRange{slack: 3, floor: 5}
	subtitleRange = lengthRange{slack: 5, floor: 5}
	bodyRange     = lengthRange{slack: 20, floor: 50}
)

func (r lengthRange) bounds(example string) (int, int) {
	n := utf8.RuneCountInString(example)
	return max(n-r.slack, r.floor), n + r.slack
}

// GeneratePrompt builds the instruction sent to the text generator for a
// template. The output depends only on its arguments.
func GeneratePrompt(st Structure, example Data, topic, language string) string {
	kind := kindNames[st.Kind]
	if kind == "" {
		kind = string(st.Kind)
	}

	exampleJSON, err := jsonutil.MarshalNoEscapeIndent(example, "", "  ")
	if err != nil {
		exampleJSON = []byte("{}")
	}

	var s llmtool.Sections
	s.Add("ROLE", "You are a professional infographic designer who writes structured visual content for a given topic.")
	s.Add("TASK", fmt.Sprintf("Using the template structure and the user topic below, write the content of a %s infographic.", kind))
	s.AddList("TEMPLATE", []string{
		"Infographic type: " + kind,
		"Language: " + language,
		fmt.Sprintf("Item count: %d", st.ItemCount),
	})
	s.Add("EXAMPLE", "```json\n"+string(exampleJSON)+"\n```\n\n"+llmtool.FormatList([]string{
		`The "notes" field is the generation rule for this template. Follow it strictly.`,
		`The other fields (title, subtitle, body, items) are sample content. Use them only as a reference for style and length.`,
		`Do not include a "notes" field in your output.`,
	}))
	s.Add("TOPIC", topic)
	s.Add("REQUIREMENTS", requirements(st, example, language))
	s.AddList("RELEVANCE", []string{
		fmt.Sprintf("Every piece of content must relate directly to the topic %q.", topic),
		"Keep the style and structure of the example, but the content must be entirely different from it.",
		"Match the example's register: use domain terminology for a specialist topic and plain language for a general one.",
	})
	s.Add("OUTPUT_FORMAT", outputFormat(st))
	return s.String()
}

func requirements(st Structure, example Data, language string) string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf("%d. ", len(lines)+1)+fmt.Sprintf(format, args...))
	}
	if st.HasTitle && example.Title != "" {
		lo, hi := titleRange.bounds(example.Title)
		add("title: follow the example's style, %d to %d characters.", lo, hi)
	}
	if st.HasSubtitle && example.Subtitle != "" {
		lo, hi := subtitleRange.bounds(example.Subtitle)
		add("subtitle: follow the example's style, %d to %d characters.", lo, hi)
	}
	if st.HasBody && example.Body != "" {
		lo, hi := bodyRange.bounds(example.Body)
		add("body: match the example's level of detail, %d to %d characters.", lo, hi)
	}
	add("items: exactly %d items, each shaped as follows:", st.ItemCount)

	var b strings.Builder
	b.WriteString(strings.Join(lines, "\n"))
	for _, line := range itemShapeLines(st) {
		b.WriteString("\n   - ")
		b.WriteString(line)
	}
	if instr, ok := languageInstructions[language]; ok {
		b.WriteString("\n\nLanguage: ")
		b.WriteString(instr)
	}
	return b.String()
}

func itemShapeLines(st Structure) []string {
	switch st.Kind {
	case KindComparison:
		return []string{
			"left: the left side of the comparison (follow the example's style)",
			"right: the right side of the comparison (follow the example's style)",
		}
	case KindTimeline:
		return []string{
			`year: a year or point in time (follow the example's format, such as "2024-01" or "2024 Q1")`,
			"event: what happened (match the example's level of detail)",
		}
	}
	if st.Kind == KindList && st.HasItemTitle {
		return []string{
			"title: the item heading (follow the example's style)",
			"text: the item description (match the example's level of detail)",
		}
	}
	return []string{"a short string (match the example's length and style)"}
}

func outputFormat(st Structure) string {
	var b strings.Builder
	b.WriteString("Return strict JSON only, with keys in the order title, subtitle, body, items. ")
	b.WriteString("Omit keys the template does not use. Do not add any text before or after the JSON and do not wrap it in code fences.\n\n")
	b.WriteString("{")
	if st.HasTitle {
		b.WriteString("\n  \"title\": \"a title for the topic\",")
	}
	if st.HasSubtitle {
		b.WriteString("\n  \"subtitle\": \"a subtitle for the topic\",")
	}
	if st.HasBody {
		b.WriteString("\n  \"body\": \"an introduction to the topic\",")
	}
	b.WriteString("\n  \"items\": [")
	switch {
	case st.Kind == KindComparison:
		b.WriteString("\n    {\"left\": \"left 1\", \"right\": \"right 1\"},\n    {\"left\": \"left 2\", \"right\": \"right 2\"},")
	case st.Kind == KindTimeline:
		b.WriteString("\n    {\"year\": \"2024-01\", \"event\": \"event 1\"},\n    {\"year\": \"2024-06\", \"event\": \"event 2\"},")
	case st.Kind == KindList && st.HasItemTitle:
		b.WriteString("\n    {\"title\": \"item 1 title\", \"text\": \"item 1 description\"},\n    {\"title\": \"item 2 title\", \"text\": \"item 2 description\"},")
	default:
		b.WriteString("\n    \"item 1\",\n    \"item 2\",")
	}
	fmt.Fprintf(&b, "\n    ... (%d in total)\n  ]\n}", st.ItemCount)
	return b.String()
}
