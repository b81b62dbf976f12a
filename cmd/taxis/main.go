package main

import (
	"github.com/alecthomas/kong"

	"github.com/pescuma/taxis/lib/consoles"
	"github.com/pescuma/taxis/lib/model"
	"github.com/pescuma/taxis/lib/workspace"
)

var cli struct {
	sourceFlags

	Build BuildCmd `cmd:"" default:"1" help:"Load the sources, reconcile them and write the artifacts."`
	Show  ShowCmd  `cmd:"" help:"Load the sources and print the area hierarchy."`
}

type sourceFlags struct {
	Data   string `default:"./data" env:"TAXIS_DATA" type:"path" help:"Folder with the input files."`
	Export string `default:"./export" env:"TAXIS_EXPORT" type:"path" help:"Folder where the artifacts are written."`

	Areas         string `default:"areas.csv" env:"TAXIS_AREAS" help:"Areas file (id,name,type,parent)."`
	Abbreviations string `default:"abbreviations.csv" env:"TAXIS_ABBREVIATIONS" help:"Display names file (id,name,abbreviation)."`
	Metadata      string `default:"metadata.csv" env:"TAXIS_METADATA" help:"Metadata file (id,fields...)."`
	Taxis         string `default:"taxis.csv" env:"TAXIS_TAXIS" help:"Taxis time series."`
	Population    string `default:"population.csv" env:"TAXIS_POPULATION" help:"Population time series."`
	Dormidas      string `default:"dormidas.csv" env:"TAXIS_DORMIDAS" help:"Overnight stays time series."`
	National      string `default:"national-dormidas.json" env:"TAXIS_NATIONAL" help:"National overnight stays aggregate."`
	Topology      string `default:"areas.topojson" env:"TAXIS_TOPOLOGY" help:"Geometry of the areas."`
	Files         string `default:"files" env:"TAXIS_FILES" help:"Folder with one sub folder of files per area."`

	TopologyKey   string   `default:"id" env:"TAXIS_TOPOLOGY_KEY" help:"Feature field used to find the area of a geometry."`
	Backfill      []string `default:"taxis,population,dormidas" env:"TAXIS_BACKFILL" help:"Time series whose gaps are filled with the last known value."`
	CarryPastLast bool     `default:"true" negatable:"" env:"TAXIS_CARRY_PAST_LAST" help:"Also fill the years after the last value of an area."`
	Delimiter     string   `default:"|" env:"TAXIS_DELIMITER" help:"Separator of multi-value metadata fields."`

	Sqlite   string `env:"TAXIS_SQLITE" type:"path" help:"Also write a sqlite snapshot of the areas to this file."`
	Envelope bool   `default:"true" negatable:"" env:"TAXIS_ENVELOPE" help:"Wrap artifacts with their description."`
	Quiet    bool   `short:"q" env:"TAXIS_QUIET" help:"Don't show progress bars."`
}

func (f *sourceFlags) options() workspace.Options {
	return workspace.Options{
		DataDir:           f.Data,
		ExportDir:         f.Export,
		AreasFile:         f.Areas,
		AbbreviationsFile: f.Abbreviations,
		MetadataFile:      f.Metadata,
		TaxisFile:         f.Taxis,
		PopulationFile:    f.Population,
		DormidasFile:      f.Dormidas,
		NationalFile:      f.National,
		TopologyFile:      f.Topology,
		FilesDir:          f.Files,
		TopologyKey:       f.TopologyKey,
		Backfill:          f.Backfill,
		CarryPastLast:     f.CarryPastLast,
		Delimiter:         f.Delimiter,
		Sqlite:            f.Sqlite,
		Envelope:          f.Envelope,
		Quiet:             f.Quiet,
	}
}

type context struct {
	ws *workspace.Workspace
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("taxis"),
		kong.Description("Builds the datasets about taxis in Portugal."),
		kong.ShortUsageOnError(),
		kong.Configuration(kong.JSON, "taxis.json", "~/.taxis.json"),
	)

	ws := workspace.NewWorkspace(cli.options(), consoles.NewStdOutConsole())

	err := ctx.Run(&context{
		ws: ws,
	})
	if code := exitStatus(err); code == exitInvalidInput {
		ctx.Errorf("invalid input, nothing was written: %v", err)
		ctx.Exit(code)
	}
	ctx.FatalIfErrorf(err)
}

const (
	exitOK           = 0
	exitFailed       = 1
	exitInvalidInput = 2
)

// exitStatus tells missing or inconsistent sources apart from other failures.
func exitStatus(err error) int {
	switch {
	case err == nil:
		return exitOK
	case model.IsFatal(err):
		return exitInvalidInput
	default:
		return exitFailed
	}
}
