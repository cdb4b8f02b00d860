package crm

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed mappings.yaml
var mappingsYAML []byte

// FieldMapping maps local lead attributes to a provider's property names.
type FieldMapping struct {
	Contact    map[string]string `yaml:"contact"`
	Enrichment map[string]string `yaml:"enrichment"`
}

func loadMappings() (map[string]FieldMapping, error) {
	mappings := make(map[string]FieldMapping)
	if err := yaml.Unmarshal(mappingsYAML, &mappings); err != nil {
		return nil, fmt.Errorf("parse crm mappings: %w", err)
	}
	return mappings, nil
}

// mapFields translates local attribute names to remote property names,
// dropping attributes absent from the record.
func mapFields(mapping FieldMapping, record map[string]any) map[string]any {
	fields := make(map[string]any, len(mapping.Contact)+len(mapping.Enrichment))
	for _, section := range []map[string]string{mapping.Contact, mapping.Enrichment} {
		for local, remote := range section {
			value, ok := record[local]
			if !ok || value == nil {
				continue
			}
			fields[remote] = value
		}
	}
	return fields
}
