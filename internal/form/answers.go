package form

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oreline/careers-api/internal/models"
	"gopkg.in/yaml.v3"
)

// LoadAnswers reads a YAML answers file into an application. The file is the
// whole form state: a list it omits is empty, not a template entry. Unknown
// keys are rejected so typos do not silently drop answers.
func LoadAnswers(path string) (*models.Application, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open answers file: %w", err)
	}
	defer f.Close()

	return DecodeAnswers(f)
}

// DecodeAnswers is LoadAnswers for an already open document
func DecodeAnswers(r io.Reader) (*models.Application, error) {
	var app models.Application
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&app); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode answers: %w", err)
	}
	return &app, nil
}
