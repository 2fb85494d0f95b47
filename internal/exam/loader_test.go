package exam

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
name: warmup
title: Warm-up
format_version: v1.2.0
time_limit_minutes: 15
questions:
  - id: 1
    image: warmup/01.png
    kind: text
    answer: "42"
  - id: 2
    image: warmup/02.png
    kind: choice
    points: 3
    options: [red, green, blue]
    correct_option: 2
`

func TestParse_YAML(t *testing.T) {
	set, err := Parse("sample.yaml", []byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "warmup", set.Name)
	assert.Equal(t, "Warm-up", set.Title)
	assert.Equal(t, "v1.2.0", set.Version)
	assert.Equal(t, 15*time.Minute, set.TimeLimit)
	require.Equal(t, 2, set.Len())

	q1, ok := set.Question(1)
	require.True(t, ok)
	assert.Equal(t, FreeText, q1.Kind)
	assert.Equal(t, "42", q1.CorrectText)
	assert.Equal(t, 1, q1.Points, "points default to 1")

	q2, ok := set.Question(2)
	require.True(t, ok)
	assert.Equal(t, SingleChoice, q2.Kind)
	assert.Equal(t, "blue", q2.CorrectLabel())
	assert.Equal(t, 3, q2.Points)
	assert.Equal(t, 4, set.MaxScore())
}

func TestParse_JSON(t *testing.T) {
	doc := `{"name":"j","format_version":"v1","questions":[{"id":1,"image":"a.png","kind":"text","answer":"x"}]}`
	set, err := Parse("j.json", []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "j", set.Title, "title falls back to name")
	assert.Equal(t, "v1.0.0", set.Version)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing questions", `{"name":"x","format_version":"v1.0.0"}`},
		{"choice without options", `{"name":"x","format_version":"v1.0.0","questions":[{"id":1,"image":"a","kind":"choice","correct_option":0}]}`},
		{"text without answer", `{"name":"x","format_version":"v1.0.0","questions":[{"id":1,"image":"a","kind":"text"}]}`},
		{"unknown field", `{"name":"x","format_version":"v1.0.0","questions":[{"id":1,"image":"a","kind":"text","answer":"b","hint":"c"}]}`},
		{"future major version", `{"name":"x","format_version":"v2.0.0","questions":[{"id":1,"image":"a","kind":"text","answer":"b"}]}`},
		{"ids out of order", `{"name":"x","format_version":"v1.0.0","questions":[{"id":2,"image":"a","kind":"text","answer":"b"}]}`},
		{"correct option out of range", `{"name":"x","format_version":"v1.0.0","questions":[{"id":1,"image":"a","kind":"choice","options":["a","b"],"correct_option":5}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("doc", []byte(tt.doc))
			require.Error(t, err)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "want *ValidationError, got %T", err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	set, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	set := Default()
	require.Equal(t, 50, set.Len())
	assert.Equal(t, 60*time.Minute, set.TimeLimit)
	assert.Equal(t, 100, set.MaxScore())

	for _, id := range []int{11, 12, 13, 50} {
		q, ok := set.Question(id)
		require.True(t, ok)
		assert.Equal(t, SingleChoice, q.Kind, "question %d", id)
		assert.Equal(t, id%4, q.CorrectChoice)
		assert.Len(t, q.Options, 4)
	}

	q1, _ := set.Question(1)
	assert.Equal(t, FreeText, q1.Kind)
	assert.Equal(t, "riddle1/riddle1_01.jfjf", q1.ImageRef)
	assert.Equal(t, "サンプル解答", q1.CorrectLabel())
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{FreeText, SingleChoice} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("essay")
	assert.Error(t, err)
}
