package ids

import (
	_ "embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed schema.yaml
var schemaYAML []byte

// FieldInfo is the data-dictionary record for one canonical path.
type FieldInfo struct {
	Path          string   `yaml:"-"`
	DataType      string   `yaml:"data_type"`
	Coordinates   []string `yaml:"coordinates"`
	Documentation string   `yaml:"documentation"`
}

// ImplicitCoordinate marks a coordinate that is a plain 1..N index with
// no backing data.
const ImplicitCoordinate = "1...N"

type dictionary struct {
	Version string               `yaml:"version"`
	Paths   map[string]FieldInfo `yaml:"paths"`
}

var dict dictionary

func init() {
	if err := yaml.Unmarshal(schemaYAML, &dict); err != nil {
		panic(fmt.Sprintf("ids: embedded dictionary is invalid: %v", err))
	}
	for p, info := range dict.Paths {
		info.Path = p
		dict.Paths[p] = info
	}
}

// DictionaryVersion returns the version of the embedded data
// dictionary subset.
func DictionaryVersion() string { return dict.Version }

var indexRe = regexp.MustCompile(`\[\d+\]`)

// canonical rewrites concrete array indices to the wildcard form used
// by the dictionary, e.g. time_slice[2] -> time_slice[:].
func canonical(path string) string {
	return indexRe.ReplaceAllString(path, "[:]")
}

// Info looks up the data-dictionary record for a dotted path. Trailing
// or embedded numeric indices are normalized to the wildcard form.
// Unknown paths fail with UnknownPathError.
func Info(path string) (FieldInfo, error) {
	info, ok := dict.Paths[canonical(path)]
	if !ok {
		return FieldInfo{}, UnknownPathError{Path: path}
	}
	return info, nil
}
