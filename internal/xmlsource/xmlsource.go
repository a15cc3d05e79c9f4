// Package xmlsource finds and reads introspection XML for a validation run.
package xmlsource

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dyluth/lockstep/pkg/introspect"
)

// EnvXMLPath overrides every other way of locating the XML.
const EnvXMLPath = "LOCKSTEP_XML_PATH"

// DefaultDirs are tried relative to the working directory when no path is
// given. A later entry that exists wins over an earlier one.
var DefaultDirs = []string{"xml", "XML"}

// NoLocationError indicates that no XML location was given and none of the
// default directories exist.
type NoLocationError struct {
	Tried []string
}

func (e *NoLocationError) Error() string {
	quoted := make([]string, len(e.Tried))
	for i, p := range e.Tried {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return fmt.Sprintf("no XML path provided and no default XML directory found in %s", strings.Join(quoted, " or "))
}

// Locate returns the XML file or directory to load.
// Precedence: the EnvXMLPath variable, then explicit, then DefaultDirs under cwd.
func Locate(explicit string, lookupEnv func(string) (string, bool), cwd string) (string, error) {
	if lookupEnv != nil {
		if p, ok := lookupEnv(EnvXMLPath); ok && p != "" {
			return p, nil
		}
	}

	if explicit != "" {
		return explicit, nil
	}

	var (
		found string
		tried []string
	)
	for _, dir := range DefaultDirs {
		candidate := filepath.Join(cwd, dir)
		tried = append(tried, candidate)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			found = candidate
		}
	}
	if found == "" {
		return "", &NoLocationError{Tried: tried}
	}
	return found, nil
}

// Load reads a single XML file, or every *.xml entry of a directory sorted
// by name. Subdirectories are not descended into.
func Load(p string) ([]introspect.Source, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read XML path: %w", err)
	}

	if !info.IsDir() {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read XML file: %w", err)
		}
		return []introspect.Source{{ID: p, Text: string(data)}}, nil
	}

	sources, err := LoadFS(os.DirFS(p), ".")
	if err != nil {
		return nil, err
	}
	for i := range sources {
		sources[i].ID = filepath.Join(p, filepath.FromSlash(sources[i].ID))
	}
	return sources, nil
}

// LoadFS reads every *.xml entry of dir in fsys, sorted by name. Source IDs
// are slash-separated paths within fsys.
func LoadFS(fsys fs.FS, dir string) ([]introspect.Source, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read XML directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".xml" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	sources := make([]introspect.Source, 0, len(names))
	for _, name := range names {
		id := path.Join(dir, name)
		data, err := fs.ReadFile(fsys, id)
		if err != nil {
			return nil, fmt.Errorf("failed to read XML file %s: %w", id, err)
		}
		sources = append(sources, introspect.Source{ID: id, Text: string(data)})
	}
	return sources, nil
}
