// Package registry associates generated schema files with YAML file glob
// patterns in the editor settings consumed by yaml-language-server.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/takumiyoshikawa/ddschema/internal/store"
)

// settingsKey is the mapping owned by the redhat.vscode-yaml extension.
const settingsKey = "yaml.schemas"

// ErrUnregisterable signals that the settings file exists but is not
// valid JSON. Callers fall back to printing manual instructions instead
// of clobbering user data.
var ErrUnregisterable = errors.New("settings file is not valid JSON")

// Associations builds the schema-path to glob-pattern mapping for the
// given integrations. Each glob template is instantiated once per
// integration name.
func Associations(st *store.Store, integrations []string, globs []string) map[string][]string {
	assoc := make(map[string][]string, len(integrations))
	for _, name := range integrations {
		patterns := make([]string, 0, len(globs))
		for _, g := range globs {
			patterns = append(patterns, fmt.Sprintf(g, name))
		}
		assoc[filepath.ToSlash(st.Path(name))] = patterns
	}
	return assoc
}

// Register writes the associations under yaml.schemas in the settings
// file, preserving all unrelated keys. A missing file is created; each
// schema path's entry is replaced in full.
func Register(settingsPath string, assoc map[string][]string) error {
	data, err := os.ReadFile(settingsPath)
	if os.IsNotExist(err) {
		data = []byte("{}\n")
	} else if err != nil {
		return fmt.Errorf("reading settings file: %w", err)
	}

	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: %s", ErrUnregisterable, settingsPath)
	}

	paths := make([]string, 0, len(assoc))
	for p := range assoc {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		key := escapeKey(settingsKey) + "." + escapeKey(p)
		data, err = sjson.SetBytes(data, key, assoc[p])
		if err != nil {
			return fmt.Errorf("updating %s: %w", settingsKey, err)
		}
	}

	if dir := filepath.Dir(settingsPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating settings directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(settingsPath, data, 0o600); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

// ManualInstructions renders the snippet a user can paste into their
// settings file when automatic registration is not possible.
func ManualInstructions(assoc map[string][]string) string {
	block, err := json.MarshalIndent(map[string]map[string][]string{settingsKey: assoc}, "", "  ")
	if err != nil {
		block = []byte("{}")
	}
	snippet := strings.TrimSuffix(strings.TrimPrefix(string(block), "{\n"), "\n}")

	var sb strings.Builder
	sb.WriteString("Could not update the settings file automatically.\n")
	sb.WriteString("Add the following to .vscode/settings.json by hand:\n\n")
	sb.WriteString(snippet)
	sb.WriteString("\n")
	return sb.String()
}

// escapeKey quotes path metacharacters so literal keys such as
// "yaml.schemas" and "schema_files/disk.json" survive the sjson path
// syntax.
func escapeKey(key string) string {
	var sb strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
