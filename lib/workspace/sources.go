package workspace

import (
	"encoding/json"

	"github.com/pescuma/taxis/lib/importers"
	"github.com/pescuma/taxis/lib/topology"
)

// Sources holds every raw input of a build, as read from disk.
type Sources struct {
	Areas         *importers.Table
	Abbreviations *importers.Table
	Metadata      *importers.Table
	TimeSeries    map[string]*importers.Table
	Files         map[string][]string
	National      json.RawMessage
	Topology      *topology.Document
	TopologyPath  string
}
