package workspace

import (
	"github.com/gertd/go-pluralize"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"

	"github.com/pescuma/taxis/lib/common"
	"github.com/pescuma/taxis/lib/consoles"
	"github.com/pescuma/taxis/lib/exports"
	"github.com/pescuma/taxis/lib/hierarchy"
	"github.com/pescuma/taxis/lib/importers"
	"github.com/pescuma/taxis/lib/metadata"
	"github.com/pescuma/taxis/lib/model"
	"github.com/pescuma/taxis/lib/storages"
	"github.com/pescuma/taxis/lib/storages/files"
	"github.com/pescuma/taxis/lib/storages/orm"
	"github.com/pescuma/taxis/lib/timeseries"
	"github.com/pescuma/taxis/lib/utils"
)

type Workspace struct {
	console consoles.Console
	opts    Options
	plurals *pluralize.Client
}

func NewWorkspace(opts Options, console consoles.Console) *Workspace {
	return &Workspace{
		console: console,
		opts:    opts,
		plurals: pluralize.NewClient(),
	}
}

func (w *Workspace) Console() consoles.Console {
	return w.console
}

func (w *Workspace) Options() Options {
	return w.opts
}

// Build loads every source, reconciles them and writes the artifacts. Nothing is written
// when loading or reconciling fails.
func (w *Workspace) Build() error {
	sources, err := w.Load()
	if err != nil {
		return err
	}

	areas, err := w.Reconcile(sources)
	if err != nil {
		return err
	}

	err = w.Export(areas, sources)
	if err != nil {
		return err
	}

	w.console.Printf("Done!\n")
	return nil
}

type loadTask struct {
	name string
	run  func(l *importers.Loader, s *Sources) error
}

// Load reads all sources concurrently. The first failure aborts the load.
func (w *Workspace) Load() (*Sources, error) {
	o := &w.opts
	result := &Sources{
		TimeSeries:   map[string]*importers.Table{},
		TopologyPath: o.path(o.TopologyFile),
	}

	table := func(source string, file string, target **importers.Table) loadTask {
		return loadTask{source, func(l *importers.Loader, _ *Sources) (err error) {
			*target, err = l.LoadTable(source, o.path(file))
			return
		}}
	}

	var taxis, population, dormidas *importers.Table

	tasks := []loadTask{
		table("areas", o.AreasFile, &result.Areas),
		table("abbreviations", o.AbbreviationsFile, &result.Abbreviations),
		table("metadata", o.MetadataFile, &result.Metadata),
		table(TaxisSource, o.TaxisFile, &taxis),
		table(PopulationSource, o.PopulationFile, &population),
		table(DormidasSource, o.DormidasFile, &dormidas),
		{"files", func(l *importers.Loader, s *Sources) (err error) {
			s.Files, err = l.ScanFiles("files", o.path(o.FilesDir))
			return
		}},
		{"national", func(l *importers.Loader, s *Sources) (err error) {
			s.National, err = l.LoadJSON("national", o.path(o.NationalFile))
			return
		}},
		{"topology", func(l *importers.Loader, s *Sources) (err error) {
			s.Topology, err = l.LoadTopology("topology", s.TopologyPath)
			return
		}},
	}

	w.console.Printf("Loading %v...\n", common.Count(w.plurals, len(tasks), "source"))

	bar := w.newProgressBar(len(tasks))
	loader := importers.NewLoader(w.console)

	_, err := utils.ParallelFor(tasks, func(t loadTask) (string, error) {
		bar.Describe(utils.TruncateFilename(t.name))
		err := t.run(loader, result)
		_ = bar.Add(1)
		return t.name, err
	}, utils.ParallelOptions{Routines: len(tasks)}).Wait()
	_ = bar.Close()
	if err != nil {
		return nil, err
	}

	result.TimeSeries[TaxisSource] = taxis
	result.TimeSeries[PopulationSource] = population
	result.TimeSeries[DormidasSource] = dormidas

	return result, nil
}

// Reconcile builds the hierarchy and attaches metadata and time series to every area.
func (w *Workspace) Reconcile(sources *Sources) ([]*model.EnrichedArea, error) {
	hier, err := hierarchy.Build(hierarchy.Input{
		Areas:         sources.Areas.Rows,
		Abbreviations: sources.Abbreviations.Rows,
		Files:         sources.Files,
	}, hierarchy.DefaultColumns)
	if err != nil {
		return nil, err
	}

	for _, t := range hier.Types() {
		w.console.Printf("Found %v\n", common.Count(w.plurals, len(hier.ListByType(t)), t.String()))
	}

	areas := lo.Map(hier.List(), func(a *model.Area, _ int) *model.EnrichedArea {
		return model.NewEnrichedArea(a)
	})

	idColumn := hierarchy.DefaultColumns.ID

	multi := metadata.GetMultiValueFields(sources.Metadata.Header, sources.Metadata.Rows, w.opts.Delimiter)
	rows := metadata.NormalizeMultiValueFields(sources.Metadata.Rows, multi, w.opts.Delimiter)
	areas = metadata.Join(areas, metadata.FromRows(rows, idColumn))

	policy := timeseries.Policy{CarryPastLast: w.opts.CarryPastLast}

	var records [][]model.Record
	for _, source := range []string{TaxisSource, PopulationSource, DormidasSource} {
		table, ok := sources.TimeSeries[source]
		if !ok || table == nil {
			return nil, errors.Errorf("time series %v was not loaded", source)
		}

		rs := timeseries.Prepare(source, table.Header, table.Rows, idColumn)
		if w.opts.backfills(source) {
			rs = timeseries.Backfill(rs, policy)
		}

		w.console.Printf("%v: %v\n", source, common.Count(w.plurals, len(rs), "record"))
		records = append(records, rs)
	}

	return timeseries.Join(areas, timeseries.Concat(records...)), nil
}

// Export assembles every artifact and only then writes them, to all configured storages.
func (w *Workspace) Export(areas []*model.EnrichedArea, sources *Sources) error {
	artifacts, err := exports.Assemble(exports.Input{
		Areas:     areas,
		Aggregate: sources.National,
		Topology:  sources.Topology,
		JoinKey:   w.opts.TopologyKey,
	})
	if err != nil {
		return err
	}

	ss, err := w.openStorages()
	if err != nil {
		return err
	}
	defer func() {
		for _, s := range ss {
			_ = s.Close()
		}
	}()

	for _, s := range ss {
		for _, a := range artifacts {
			err = s.WriteDocument(a.Name, utils.IIf(a.Raw, "", a.Description), a.Payload)
			if err != nil {
				return err
			}
		}

		if sources.TopologyPath != "" {
			err = s.CopyFile(exports.TopologyFile, sources.TopologyPath)
			if err != nil {
				return err
			}
		}

		err = s.WriteAreas(areas)
		if err != nil {
			return err
		}
	}

	return nil
}

func (w *Workspace) openStorages() ([]storages.Storage, error) {
	var result []storages.Storage

	fs, err := files.NewFilesStorage(w.opts.ExportDir, files.Options{Envelope: w.opts.Envelope}, w.console)
	if err != nil {
		return nil, err
	}
	result = append(result, fs)

	if w.opts.Sqlite != "" {
		file, err := utils.PathAbs(w.opts.Sqlite)
		if err != nil {
			return nil, err
		}

		db, err := orm.NewGormStorage(orm.WithSqlite(file), w.console)
		if err != nil {
			_ = fs.Close()
			return nil, errors.Wrapf(err, "error opening %v", file)
		}
		result = append(result, db)
	}

	return result, nil
}

func (w *Workspace) newProgressBar(total int) *progressbar.ProgressBar {
	if w.opts.Quiet {
		return utils.NewSilentProgressBar(total)
	}
	return utils.NewProgressBar(total)
}
