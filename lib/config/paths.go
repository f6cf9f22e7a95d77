package config

import (
	"path/filepath"

	yaml "github.com/goccy/go-yaml"
)

// CfgPath is a file path from the config. Relative paths are taken
// relative to the directory of the config file.
type CfgPath string

// unmarshalBase is the directory of the file Parse is decoding.
var unmarshalBase string

func (c *CfgPath) UnmarshalYAML(b []byte) error {
	var path string
	if err := yaml.Unmarshal(b, &path); err != nil {
		return err
	}
	if path == "" || filepath.IsAbs(path) || unmarshalBase == "" {
		*c = CfgPath(path)
		return nil
	}
	*c = CfgPath(filepath.Join(unmarshalBase, path))
	return nil
}

func (c CfgPath) String() string {
	return string(c)
}
