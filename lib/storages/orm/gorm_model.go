package orm

import (
	"time"

	"github.com/pescuma/taxis/lib/model"
)

type sqlTable interface {
	CacheKey() string
}

type sqlArea struct {
	ID           string `gorm:"primaryKey"`
	Name         string
	Abbreviation string
	Type         string       `gorm:"index"`
	ParentID     string       `gorm:"index"`
	Children     []string     `gorm:"serializer:json"`
	Files        []string     `gorm:"serializer:json"`
	Meta         model.Fields `gorm:"serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (sqlArea) TableName() string {
	return "areas"
}

func newSqlArea(a *model.EnrichedArea) *sqlArea {
	return &sqlArea{
		ID:           a.ID,
		Name:         a.Name,
		Abbreviation: a.Abbreviation,
		Type:         a.Type.String(),
		ParentID:     a.ParentID,
		Children:     encodeList(a.Children),
		Files:        encodeList(a.Files),
		Meta:         encodeFields(a.Meta),
	}
}

func (s *sqlArea) CacheKey() string {
	return s.ID
}

type sqlRecord struct {
	AreaID    string `gorm:"primaryKey"`
	Year      int    `gorm:"primaryKey"`
	Indicator string `gorm:"primaryKey"`
	Value     *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (sqlRecord) TableName() string {
	return "records"
}

func newSqlRecords(a *model.EnrichedArea) []*sqlRecord {
	var result []*sqlRecord
	for _, d := range a.Data {
		for _, indicator := range d.Indicators() {
			result = append(result, &sqlRecord{
				AreaID:    a.ID,
				Year:      d.Year,
				Indicator: indicator,
				Value:     encodeValue(d.Values[indicator]),
			})
		}
	}
	return result
}

func (s *sqlRecord) CacheKey() string {
	return compositeKey(s.AreaID, s.Indicator) + "\n" + encodeYear(s.Year)
}
