package units

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// definitionsFile is the YAML layout accepted by LoadDefinitions:
//
//	units:
//	  - name: furlong
//	    definition: 660 ft
//	    aliases: [furlongs]
type definitionsFile struct {
	Units []Definition `yaml:"units"`
}

// LoadDefinitions decodes unit definitions from YAML. An empty document
// yields no definitions.
func LoadDefinitions(r io.Reader) ([]Definition, error) {
	var f definitionsFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode unit definitions: %w", err)
	}
	return f.Units, nil
}

// DefineAll registers defs in order and stops at the first failure.
func (r *Registry) DefineAll(defs []Definition) error {
	for _, def := range defs {
		if err := r.Define(def); err != nil {
			return err
		}
	}
	return nil
}
