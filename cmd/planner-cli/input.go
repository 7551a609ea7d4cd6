package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/sma-timetable-dss/internal/dto"
)

// readRequest loads constraints from a YAML or JSON document. "-" reads stdin.
func readRequest(path string, stdin io.Reader) (dto.GenerateOptionsRequest, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return dto.GenerateOptionsRequest{}, fmt.Errorf("read constraints: %w", err)
	}
	return decodeRequest(raw)
}

// decodeRequest accepts YAML (and therefore JSON). Scalars are coerced weakly so
// spreadsheet exports with quoted numbers still load.
func decodeRequest(raw []byte) (dto.GenerateOptionsRequest, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return dto.GenerateOptionsRequest{}, fmt.Errorf("parse constraints: %w", err)
	}
	if doc == nil {
		return dto.GenerateOptionsRequest{}, fmt.Errorf("constraints document is empty")
	}

	var req dto.GenerateOptionsRequest
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &req,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return dto.GenerateOptionsRequest{}, err
	}
	if err := decoder.Decode(doc); err != nil {
		return dto.GenerateOptionsRequest{}, fmt.Errorf("decode constraints: %w", err)
	}
	return req, nil
}
