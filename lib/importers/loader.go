package importers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gertd/go-pluralize"
	"github.com/pkg/errors"

	"github.com/pescuma/taxis/lib/common"
	"github.com/pescuma/taxis/lib/consoles"
	"github.com/pescuma/taxis/lib/model"
	"github.com/pescuma/taxis/lib/topology"
	"github.com/pescuma/taxis/lib/utils"
)

// Loader reads the raw sources. Every failure is returned as a *model.SourceReadError.
type Loader struct {
	console consoles.Console
	plurals *pluralize.Client
}

func NewLoader(console consoles.Console) *Loader {
	return &Loader{
		console: console,
		plurals: pluralize.NewClient(),
	}
}

func (l *Loader) LoadTable(source string, path string) (*Table, error) {
	table, err := ReadTable(path)
	if err != nil {
		return nil, model.NewSourceReadError(source, path, err)
	}

	l.console.Printf("%v: loaded %v\n", source, common.Count(l.plurals, len(table.Rows), "row"))

	return table, nil
}

// LoadJSON reads a JSON document and returns it unchanged.
func (l *Loader) LoadJSON(source string, path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.NewSourceReadError(source, path, err)
	}

	if !json.Valid(data) {
		return nil, model.NewSourceReadError(source, path, errors.New("invalid JSON"))
	}

	l.console.Printf("%v: loaded JSON document\n", source)

	return json.RawMessage(data), nil
}

func (l *Loader) LoadTopology(source string, path string) (*topology.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.NewSourceReadError(source, path, err)
	}

	doc, err := topology.Parse(data)
	if err != nil {
		return nil, model.NewSourceReadError(source, path, err)
	}

	l.console.Printf("%v: loaded %v\n", source, common.Count(l.plurals, len(doc.ListFeatures()), "feature"))

	return doc, nil
}

// ScanFiles lists the files under <dir>/<areaID>/, keyed by area id, with paths relative to
// dir using forward slashes. A missing dir has no files.
func (l *Loader) ScanFiles(source string, dir string) (map[string][]string, error) {
	result := map[string][]string{}

	exists, err := utils.FileExists(dir)
	if err != nil {
		return nil, model.NewSourceReadError(source, dir, err)
	}
	if !exists {
		l.console.Printf("%v: %v does not exist, skipping\n", source, utils.TruncateFilename(dir))
		return result, nil
	}

	matches, err := doublestar.Glob(os.DirFS(dir), "*/**", doublestar.WithFilesOnly())
	if err != nil {
		return nil, model.NewSourceReadError(source, dir, err)
	}

	for _, m := range matches {
		id, _, ok := strings.Cut(m, "/")
		if !ok || strings.HasPrefix(filepath.Base(m), ".") {
			continue
		}

		result[id] = append(result[id], m)
	}

	for _, files := range result {
		sort.Strings(files)
	}

	l.console.Printf("%v: found %v in %v\n", source,
		common.Count(l.plurals, len(matches), "file"),
		common.Count(l.plurals, len(result), "folder"))

	return result, nil
}
