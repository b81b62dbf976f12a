package importers

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/pescuma/taxis/lib/model"
)

const bom = "\ufeff"

// Table is a parsed CSV file. Header keeps the column order of the file.
type Table struct {
	Header []string
	Rows   []model.Row
}

func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseTable(f)
}

// ParseTable reads a CSV with a header line. Blank lines are skipped. Columns missing from a
// short row are absent from its Row, which is not the same as an empty cell.
func ParseTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("empty file")
	}
	if err != nil {
		return nil, errors.Wrap(err, "error reading header")
	}

	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	result := &Table{
		Header: header,
		Rows:   []model.Row{},
	}

	for {
		line, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if isBlank(line) {
			continue
		}

		row := make(model.Row, len(header))
		for i, column := range header {
			if i < len(line) {
				row[column] = line[i]
			}
		}

		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

func isBlank(line []string) bool {
	for _, v := range line {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
