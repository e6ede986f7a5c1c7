package llmtool

// PromptPreset holds reusable constraints and rules for structured prompts.
type PromptPreset struct {
	Constraints []string
	Rules       []string
}

// ApplyPresets prepends preset constraints/rules to a structured prompt spec.
func ApplyPresets(spec StructuredPromptSpec, presets ...PromptPreset) StructuredPromptSpec {
	if len(presets) == 0 {
		return spec
	}
	var merged PromptPreset
	for _, p := range presets {
		merged.Constraints = append(merged.Constraints, p.Constraints...)
		merged.Rules = append(merged.Rules, p.Rules...)
	}
	spec.Constraints = append(merged.Constraints, spec.Constraints...)
	spec.Rules = append(merged.Rules, spec.Rules...)
	return spec
}

// PresetStrictJSON asks for bare JSON objects that follow the listed fields.
func PresetStrictJSON() PromptPreset {
	return PromptPreset{
		Constraints: []string{
			"Every object must be valid JSON on its own.",
			"Use only the fields listed under output; omit optional ones you do not need.",
			"No markdown, code fences, comments, or trailing commas.",
		},
	}
}

// PresetPlainText keeps streamed text output free of wrappers.
func PresetPlainText() PromptPreset {
	return PromptPreset{
		Constraints: []string{
			"Return only the requested text; no preamble, explanation, or code fences.",
		},
	}
}
