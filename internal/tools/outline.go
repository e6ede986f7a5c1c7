package tools

import (
	"context"
	"fmt"
	"strings"

	"slidegen/internal/llmtool"
)

type OutlineRequest struct {
	Content  string `json:"content"`
	Language string `json:"language"`
}

var outlineSections = []struct {
	title   string
	bullets [3]string
}{
	{"背景与概述", [3]string{"定义/范围", "发展历程", "适用场景"}},
	{"核心要点", [3]string{"关键指标", "方法/流程", "成败因素"}},
	{"案例与实践", [3]string{"典型案例", "实施步骤", "效果评估"}},
	{"挑战与对策", [3]string{"主要挑战", "风险控制", "改进建议"}},
	{"总结与展望", [3]string{"核心结论", "落地路径", "未来趋势"}},
}

// OutlineLines returns the demo markdown outline for topic, one line per
// element. Section headings carry a leading blank line.
func OutlineLines(topic string) []string {
	lines := []string{"# " + orDefault(topic, defaultTopic)}
	for _, sec := range outlineSections {
		lines = append(lines, "\n## "+sec.title, "### "+sec.title+"要点")
		for _, b := range sec.bullets {
			lines = append(lines, "- "+b)
		}
	}
	return lines
}

// Outline streams a markdown outline, one line per chunk in demo mode.
func (t *Tools) Outline(ctx context.Context, req OutlineRequest, emit Emit) error {
	language := orDefault(req.Language, defaultLanguage)
	topic := orDefault(req.Content, defaultTopic)
	if t.client == nil {
		lines := OutlineLines(topic)
		chunks := make([]string, len(lines))
		for i, l := range lines {
			chunks[i] = l + "\n"
		}
		return t.emitAll(ctx, chunks, emit)
	}
	prompt, err := outlinePrompt(topic, language)
	if err != nil {
		return err
	}
	return t.stream(ctx, PhaseOutline, prompt, emit)
}

func outlinePrompt(topic, language string) (string, error) {
	spec := llmtool.StructuredPromptSpec{
		Purpose:    "Write a presentation outline in markdown.",
		Background: "Each level-2 section becomes a group of slides; its bullets become slide items.",
		Input:      map[string]string{"topic": topic},
		Rules: []string{
			"Start with one line \"# <title>\".",
			"Write 4 to 6 sections as \"## <section>\", each followed by one \"### <heading>\" line.",
			"Give every section 3 to 5 bullets as \"- <point>\".",
		},
		OutputFormat: "Markdown only.",
		Language:     fmt.Sprintf("Write in %s.", language),
		Examples:     []llmtool.PromptExample{{OutputJSON: strings.Join(OutlineLines("Topic")[:6], "\n")}},
	}
	return llmtool.RenderStructuredPrompt(llmtool.ApplyPresets(spec, llmtool.PresetPlainText()))
}

// Outline is a parsed markdown outline.
type Outline struct {
	Title    string
	Sections []Section
}

type Section struct {
	Title   string
	Bullets []string
}

// ParseOutline reads "# title", "## section" and "- bullet" lines; anything
// else is ignored, as are bullets before the first section.
func ParseOutline(md string) Outline {
	out := Outline{Title: defaultTitle}
	var current *Section
	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
		case strings.HasPrefix(line, "# "):
			out.Title = strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, "## "):
			out.Sections = append(out.Sections, Section{Title: strings.TrimSpace(line[3:])})
			current = &out.Sections[len(out.Sections)-1]
		case strings.HasPrefix(line, "- ") && current != nil:
			current.Bullets = append(current.Bullets, strings.TrimSpace(line[2:]))
		}
	}
	return out
}
