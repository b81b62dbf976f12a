package workspace

import (
	"path/filepath"

	"github.com/pescuma/taxis/lib/metadata"
	"github.com/pescuma/taxis/lib/timeseries"
)

const (
	TaxisSource      = "taxis"
	PopulationSource = "population"
	DormidasSource   = "dormidas"
)

// Options is the resolved configuration of a build. File names are relative to DataDir
// unless absolute.
type Options struct {
	DataDir   string
	ExportDir string

	AreasFile         string
	AbbreviationsFile string
	MetadataFile      string
	TaxisFile         string
	PopulationFile    string
	DormidasFile      string
	NationalFile      string
	TopologyFile      string
	FilesDir          string

	TopologyKey   string
	Backfill      []string
	CarryPastLast bool
	Delimiter     string

	Sqlite   string
	Envelope bool
	Quiet    bool
}

func DefaultOptions() Options {
	return Options{
		DataDir:           "data",
		ExportDir:         "export",
		AreasFile:         "areas.csv",
		AbbreviationsFile: "abbreviations.csv",
		MetadataFile:      "metadata.csv",
		TaxisFile:         "taxis.csv",
		PopulationFile:    "population.csv",
		DormidasFile:      "dormidas.csv",
		NationalFile:      "national-dormidas.json",
		TopologyFile:      "areas.topojson",
		FilesDir:          "files",
		TopologyKey:       "id",
		Backfill:          []string{TaxisSource, PopulationSource, DormidasSource},
		CarryPastLast:     timeseries.DefaultPolicy.CarryPastLast,
		Delimiter:         metadata.DefaultDelimiter,
		Envelope:          true,
	}
}

func (o *Options) path(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(o.DataDir, file)
}

func (o *Options) backfills(source string) bool {
	for _, s := range o.Backfill {
		if s == source {
			return true
		}
	}
	return false
}
