package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// AliasMap renames raw BenchVue header channel names ("116 (Vdc)- EGSE7V")
// to friendly ones. Channels without an entry keep their raw name.
type AliasMap map[string]string

// LoadAliases reads the channel alias map from a YAML file. An empty
// filename yields an empty map.
func LoadAliases(filename string) (AliasMap, error) {
	if filename == "" {
		return AliasMap{}, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	aliases := AliasMap{}
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, err
	}
	return aliases, nil
}
