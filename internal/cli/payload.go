package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// printJSON writes v to stdout as indented JSON
func (a *app) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.opts.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult prints v unless the call that produced it failed
func (a *app) printResult(v interface{}, err error) error {
	if err != nil {
		return err
	}
	return a.printJSON(v)
}

// printMessage wraps a plain acknowledgement so stdout stays JSON
func (a *app) printMessage(msg string) error {
	return a.printJSON(map[string]string{"message": msg})
}

// readPayload decodes a request body from a YAML or JSON file.
// ".json" files are decoded as JSON, anything else as YAML.
func readPayload(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
