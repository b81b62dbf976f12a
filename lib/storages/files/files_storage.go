package files

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/pescuma/taxis/lib/consoles"
	"github.com/pescuma/taxis/lib/model"
	"github.com/pescuma/taxis/lib/storages"
)

type Options struct {
	// Envelope wraps described documents in {"meta": ..., "data": ...}.
	Envelope bool
}

type filesStorage struct {
	mutex   sync.Mutex
	dir     string
	opts    Options
	console consoles.Console
	now     func() time.Time
}

func NewFilesStorage(dir string, opts Options, console consoles.Console) (storages.Storage, error) {
	err := os.MkdirAll(dir, 0o700)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating export dir %v", dir)
	}

	return &filesStorage{
		dir:     dir,
		opts:    opts,
		console: console,
		now:     time.Now,
	}, nil
}

type envelopeMeta struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Generated   time.Time `json:"generated"`
}

type envelope struct {
	Meta envelopeMeta `json:"meta"`
	Data any          `json:"data"`
}

func (s *filesStorage) WriteDocument(name string, description string, payload any) error {
	if s.opts.Envelope && description != "" {
		payload = envelope{
			Meta: envelopeMeta{
				Title:       strings.TrimSuffix(name, filepath.Ext(name)),
				Description: description,
				Generated:   s.now().UTC().Truncate(time.Second),
			},
			Data: payload,
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrapf(err, "error serializing %v", name)
	}

	return s.write(name, data)
}

func (s *filesStorage) CopyFile(name string, src string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, "error reading %v", src)
	}

	return s.write(name, data)
}

func (s *filesStorage) write(name string, data []byte) error {
	file := filepath.Join(s.dir, name)

	err := os.WriteFile(file, data, 0o600)
	if err != nil {
		return errors.Wrapf(err, "error writing %v", file)
	}

	s.mutex.Lock()
	s.console.Printf("Wrote %v (%v)\n", name, humanize.Bytes(uint64(len(data))))
	s.mutex.Unlock()

	return nil
}

func (s *filesStorage) WriteAreas([]*model.EnrichedArea) error {
	return nil
}

func (s *filesStorage) Close() error {
	return nil
}
