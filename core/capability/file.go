package capability

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileEnabled is an EnabledLookup backed by a YAML document of the form
//
//	providers:
//	  openai: true
//	  gemini: false
//
// The file is read once by [LoadFileEnabled]; ids missing from it are disabled.
type FileEnabled struct {
	flags map[string]bool
}

type enabledFile struct {
	Providers map[string]bool `yaml:"providers"`
}

// LoadFileEnabled reads the enabled flags from path.
func LoadFileEnabled(path string) (*FileEnabled, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading enabled providers file: %w", err)
	}
	return ParseFileEnabled(data)
}

// ParseFileEnabled decodes the enabled flags from YAML bytes.
func ParseFileEnabled(data []byte) (*FileEnabled, error) {
	var f enabledFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding enabled providers: %w", err)
	}
	if f.Providers == nil {
		f.Providers = map[string]bool{}
	}
	return &FileEnabled{flags: f.Providers}, nil
}

func (f *FileEnabled) IsEnabled(_ context.Context, providerID string) (bool, error) {
	return f.flags[providerID], nil
}
