package questionbank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/geoquiz/internal/quiz"
)

// Format is a question set file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks a Format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported question set file extension %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// setFile is the on-disk representation of a Set.
type setFile struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Questions   []questionFile `json:"questions" yaml:"questions"`
}

type questionFile struct {
	Text   string `json:"text" yaml:"text"`
	Answer bool   `json:"answer" yaml:"answer"`
}

// fileSchema is the JSON Schema every set file must satisfy.
var fileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":        map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text":   map[string]any{"type": "string", "minLength": 1},
					"answer": map[string]any{"type": "boolean"},
				},
				"required":             []any{"text", "answer"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"name", "questions"},
	"additionalProperties": false,
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func setSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants plain decoded JSON values, not Go literals.
		defBytes, err := json.Marshal(fileSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://question-set.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// Parse decodes a question set, validates it against the file schema and
// the set rules, and returns it. The returned set has no ID or Source.
func Parse(data []byte, format Format) (*Set, error) {
	raw, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode question set: %w", err)
	}
	schema, err := setSchema()
	if err != nil {
		return nil, fmt.Errorf("compile question set schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("question set does not match schema: %w", err)
	}

	var f setFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode question set: %w", err)
	}

	set := &Set{
		Name:        f.Name,
		Description: f.Description,
		Questions:   make([]quiz.Question, len(f.Questions)),
	}
	for i, q := range f.Questions {
		set.Questions[i] = quiz.Question{Text: strings.TrimSpace(q.Text), Answer: q.Answer}
	}
	if err := Validate(set); err != nil {
		return nil, err
	}
	return set, nil
}

// toJSON normalizes YAML input to JSON so one schema serves both formats.
func toJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		out, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("convert yaml to json: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown question set format %q", format)
	}
}

// LoadFile reads and parses a question set file.
func LoadFile(path string) (*Set, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	set, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	set.Source = SourceFile
	return set, nil
}

// Marshal encodes a set in the given format.
func Marshal(s *Set, format Format) ([]byte, error) {
	f := setFile{
		Name:        s.Name,
		Description: s.Description,
		Questions:   make([]questionFile, len(s.Questions)),
	}
	for i, q := range s.Questions {
		f.Questions[i] = questionFile{Text: q.Text, Answer: q.Answer}
	}

	switch format {
	case FormatJSON:
		return json.MarshalIndent(f, "", "  ")
	case FormatYAML:
		return yaml.Marshal(f)
	default:
		return nil, fmt.Errorf("unknown question set format %q", format)
	}
}

// WriteFile writes s to path, choosing the format from the extension.
func WriteFile(path string, s *Set) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(s, format)
	if err != nil {
		return fmt.Errorf("encode question set: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
