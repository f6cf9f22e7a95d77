package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	yaml "github.com/goccy/go-yaml"
)

type Valid interface {
	Validate() error
}

// DatasetSource yields the sample a histogram is built from.
type DatasetSource interface {
	Valid
	Values() ([]float64, error)
}

type DatasetCfgStub struct {
	Type    string
	Classes int
	Title   string
	XLabel  string `yaml:"x_label"`
	YLabel  string `yaml:"y_label"`
	// Table also builds a frequency distribution table scene.
	Table bool
}

type DatasetCfg struct {
	DatasetCfgStub
	Source DatasetSource
}

type InlineDatasetCfg struct {
	Samples []float64 `yaml:"values"`
}

// FileDatasetCfg reads numbers separated by whitespace or commas.
type FileDatasetCfg struct {
	Path CfgPath
}

func (d *DatasetCfg) UnmarshalYAML(b []byte) error {
	err := yaml.Unmarshal(b, &d.DatasetCfgStub)
	if err != nil {
		return err
	}

	switch d.Type {
	case "", "inline":
		d.Type = "inline"
		cfg := InlineDatasetCfg{}
		d.Source = &cfg
		return yaml.Unmarshal(b, &cfg)
	case "file":
		cfg := FileDatasetCfg{}
		d.Source = &cfg
		return yaml.Unmarshal(b, &cfg)
	default:
		return fmt.Errorf("unknown dataset type: %s", d.Type)
	}
}

func (d *DatasetCfg) Validate() error {
	if d.Classes < 0 {
		return fmt.Errorf("classes must be nonnegative")
	}
	if d.Source == nil {
		return fmt.Errorf("dataset type must be specified")
	}
	return d.Source.Validate()
}

func (s *InlineDatasetCfg) Validate() error {
	if len(s.Samples) == 0 {
		return fmt.Errorf("an inline dataset needs at least one value")
	}
	return nil
}

func (s *InlineDatasetCfg) Values() ([]float64, error) {
	return s.Samples, nil
}

func (s *FileDatasetCfg) Validate() error {
	if s.Path == "" {
		return fmt.Errorf("path to the dataset file must be specified")
	}
	return nil
}

func (s *FileDatasetCfg) Values() ([]float64, error) {
	raw, err := os.ReadFile(s.Path.String())
	if err != nil {
		return nil, fmt.Errorf("could not read dataset: %w", err)
	}
	fields := strings.FieldsFunc(string(raw), func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	values := make([]float64, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%s value %d: %w", s.Path, i+1, err)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%s holds no values", s.Path)
	}
	return values, nil
}
