package model

// Row is one parsed line of a tabular source, keyed by header.
type Row map[string]string

func (r Row) Get(column string) string {
	return r[column]
}
