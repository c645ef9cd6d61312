package catalog

import (
	"encoding/json"
	"os"

	"github.com/mitchellh/mapstructure"
)

// InputFromJson reads a raw catalog from a JSON file. The file is decoded
// loosely first and then mapped onto the typed input, so unknown keys are
// ignored rather than rejected.
func InputFromJson(file string) (Input, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Input{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Input{}, err
	}

	var input Input
	if err := mapstructure.Decode(inputJson, &input); err != nil {
		return Input{}, err
	}

	return input, nil
}

// CatalogFromJson is a shorthand for InputFromJson followed by New
func CatalogFromJson(file string) (*Catalog, error) {
	input, err := InputFromJson(file)
	if err != nil {
		return nil, err
	}
	return New(input)
}
