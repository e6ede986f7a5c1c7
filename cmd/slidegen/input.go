package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"slidegen/internal/infographic"
	"slidegen/internal/slide"
)

// readDocument returns the JSON form of a JSON or YAML file. "-" reads stdin,
// which is sniffed: anything not starting with '{' or '[' is taken as YAML.
func readDocument(path string, stdin io.Reader) ([]byte, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !isYAML(path, raw) {
		return raw, nil
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}
	return out, nil
}

func isYAML(path string, raw []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	case ".json":
		return false
	}
	s := strings.TrimSpace(string(raw))
	return s != "" && s[0] != '{' && s[0] != '['
}

func loadTemplate(path string, stdin io.Reader) (slide.Slide, error) {
	b, err := readDocument(path, stdin)
	if err != nil {
		return slide.Slide{}, err
	}
	var s slide.Slide
	if err := json.Unmarshal(b, &s); err != nil {
		return slide.Slide{}, fmt.Errorf("decode template %s: %w", path, err)
	}
	return s, nil
}

func loadData(path string, stdin io.Reader) (infographic.Data, error) {
	b, err := readDocument(path, stdin)
	if err != nil {
		return infographic.Data{}, err
	}
	var d infographic.Data
	if err := json.Unmarshal(b, &d); err != nil {
		return infographic.Data{}, fmt.Errorf("decode data %s: %w", path, err)
	}
	return d, nil
}
