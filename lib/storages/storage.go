package storages

import (
	"github.com/pescuma/taxis/lib/model"
)

// Storage receives the results of a build.
type Storage interface {
	// WriteDocument stores payload as JSON. An empty description writes the payload as is.
	WriteDocument(name string, description string, payload any) error
	// CopyFile stores the contents of src, unchanged, as name.
	CopyFile(name string, src string) error
	WriteAreas(areas []*model.EnrichedArea) error

	Close() error
}
