package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Load reads overrides from a TOML file. A missing file is not an
// error; it yields empty overrides so startup proceeds on defaults.
func Load(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Overrides{}, nil
		}
		return Overrides{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return parse(path, data)
}

// Parse decodes overrides from raw TOML data.
func Parse(data []byte) (Overrides, error) {
	return parse("<data>", data)
}

func parse(source string, data []byte) (Overrides, error) {
	var ov Overrides
	if err := toml.Unmarshal(data, &ov); err != nil {
		return Overrides{}, &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}
	return ov, nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
