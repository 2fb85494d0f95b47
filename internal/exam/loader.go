package exam

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// CurrentFormatVersion is the question-set document version this build writes and reads.
// Documents with the same major version are accepted.
const CurrentFormatVersion = "v1.0.0"

const defaultPoints = 1

//go:embed questionset.schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// ValidationError lists every problem found in a question-set document.
type ValidationError struct {
	Source   string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid question set %s: %s", e.Source, strings.Join(e.Problems, "; "))
}

type document struct {
	Name             string        `json:"name"`
	Title            string        `json:"title"`
	FormatVersion    string        `json:"format_version"`
	TimeLimitMinutes int           `json:"time_limit_minutes"`
	Questions        []questionDoc `json:"questions"`
}

type questionDoc struct {
	ID            int      `json:"id"`
	Image         string   `json:"image"`
	Points        *int     `json:"points"`
	Kind          string   `json:"kind"`
	Options       []string `json:"options"`
	Answer        string   `json:"answer"`
	CorrectOption int      `json:"correct_option"`
}

// LoadFile reads a YAML or JSON question-set file.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question set: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes a question-set document. JSON input is accepted as YAML.
// source names the document in error messages.
func Parse(source string, data []byte) (*Set, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}

	// Round-trip through JSON so the schema sees plain JSON values.
	js, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", source, err)
	}
	var inst any
	if err := json.Unmarshal(js, &inst); err != nil {
		return nil, fmt.Errorf("convert %s: %w", source, err)
	}

	sch, err := questionSetSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(inst); err != nil {
		return nil, &ValidationError{Source: source, Problems: []string{err.Error()}}
	}

	var doc document
	if err := json.Unmarshal(js, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	return doc.toSet(source)
}

func questionSetSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			schemaErr = fmt.Errorf("parse question set schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://questionset.json"
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(url)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile question set schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

func (d document) toSet(source string) (*Set, error) {
	var problems []string

	if !semver.IsValid(d.FormatVersion) {
		problems = append(problems, fmt.Sprintf("format_version %q is not a semantic version", d.FormatVersion))
	} else if semver.Major(d.FormatVersion) != semver.Major(CurrentFormatVersion) {
		problems = append(problems, fmt.Sprintf("format_version %s is not supported (want %s.x)",
			d.FormatVersion, semver.Major(CurrentFormatVersion)))
	}

	set := &Set{
		Name:      d.Name,
		Title:     d.Title,
		Version:   semver.Canonical(d.FormatVersion),
		TimeLimit: time.Duration(d.TimeLimitMinutes) * time.Minute,
	}
	if set.Title == "" {
		set.Title = d.Name
	}

	for i, qd := range d.Questions {
		if qd.ID != i+1 {
			problems = append(problems, fmt.Sprintf("question #%d has id %d, ids must run 1..N in order", i+1, qd.ID))
		}
		kind, err := ParseKind(qd.Kind)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		q := Question{
			ID:       qd.ID,
			ImageRef: qd.Image,
			Points:   defaultPoints,
			Kind:     kind,
		}
		if qd.Points != nil {
			q.Points = *qd.Points
		}
		switch kind {
		case SingleChoice:
			q.Options = qd.Options
			q.CorrectChoice = qd.CorrectOption
			if qd.CorrectOption >= len(qd.Options) {
				problems = append(problems, fmt.Sprintf("question %d: correct_option %d out of range (%d options)",
					qd.ID, qd.CorrectOption, len(qd.Options)))
			}
		case FreeText:
			if len(qd.Options) > 0 {
				problems = append(problems, fmt.Sprintf("question %d: text questions take no options", qd.ID))
			}
			q.CorrectText = qd.Answer
		}
		set.Questions = append(set.Questions, q)
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Source: source, Problems: problems}
	}
	return set, nil
}
