package config

import (
	"fmt"
	"os"
)

// Template returns a commented TOML file holding the default configuration.
func Template() string {
	return defaultTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(defaultTemplate), 0o600)
}

const defaultTemplate = `# spinesniff configuration

[detector]
# atlas entries must end with this suffix
atlas_suffix = ".atlas"
# companion suffixes; a companion named exactly like the atlas base is binary
text_suffix = ".json"
binary_suffix = ".skel"
max_alias_hops = 16

[metrics]
enabled = true

[logging]
level = "info"
timestamp = true
no_color = false
`
