package orm

import (
	"log"
	"os"
	"reflect"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/pescuma/taxis/lib/consoles"
	"github.com/pescuma/taxis/lib/model"
	"github.com/pescuma/taxis/lib/storages"
)

type gormStorage struct {
	mutex   sync.Mutex
	db      *gorm.DB
	console consoles.Console

	sqlAreas   map[string]*sqlArea
	sqlRecords map[string]*sqlRecord
}

// NewGormStorage opens a relational snapshot of the enriched areas.
func NewGormStorage(d gorm.Dialector, console consoles.Console) (storages.Storage, error) {
	l := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(d, &gorm.Config{
		Logger: l,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error opening snapshot database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "error opening snapshot database")
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&sqlArea{}, &sqlRecord{})
	if err != nil {
		return nil, errors.Wrap(err, "error creating snapshot tables")
	}

	result := &gormStorage{
		db:         db,
		console:    console,
		sqlAreas:   map[string]*sqlArea{},
		sqlRecords: map[string]*sqlRecord{},
	}

	err = result.loadCaches()
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *gormStorage) loadCaches() error {
	var areas []*sqlArea
	err := s.db.Find(&areas).Error
	if err != nil {
		return errors.Wrap(err, "error loading areas")
	}
	addList(&s.sqlAreas, areas)

	var records []*sqlRecord
	err = s.db.Find(&records).Error
	if err != nil {
		return errors.Wrap(err, "error loading records")
	}
	addList(&s.sqlRecords, records)

	return nil
}

func (s *gormStorage) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}

func (s *gormStorage) WriteDocument(string, string, any) error {
	return nil
}

func (s *gormStorage) CopyFile(string, string) error {
	return nil
}

// WriteAreas upserts the areas and their time series. Rows that did not change are not written.
func (s *gormStorage) WriteAreas(areas []*model.EnrichedArea) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sqlAreas := prepareChanges(areas, newSqlArea, &s.sqlAreas)

	var sqlRecords []*sqlRecord
	for _, a := range areas {
		for _, r := range newSqlRecords(a) {
			if prepareChange(&s.sqlRecords, r) {
				sqlRecords = append(sqlRecords, r)
			}
		}
	}

	now := time.Now().Local()
	db := s.db.Session(&gorm.Session{
		NowFunc:         func() time.Time { return now },
		CreateBatchSize: 300,
	})

	if len(sqlAreas) > 0 {
		err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&sqlAreas).Error
		if err != nil {
			return errors.Wrap(err, "error writing areas")
		}
	}

	if len(sqlRecords) > 0 {
		err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&sqlRecords).Error
		if err != nil {
			return errors.Wrap(err, "error writing records")
		}
	}

	s.console.Printf("Snapshot: %v areas and %v records changed\n", len(sqlAreas), len(sqlRecords))

	return nil
}

// loadAreas reads the snapshot back.
func (s *gormStorage) loadAreas() ([]*model.EnrichedArea, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var areas []*sqlArea
	err := s.db.Order("id").Find(&areas).Error
	if err != nil {
		return nil, errors.Wrap(err, "error loading areas")
	}

	var records []*sqlRecord
	err = s.db.Order("area_id, year, indicator").Find(&records).Error
	if err != nil {
		return nil, errors.Wrap(err, "error loading records")
	}

	byArea := map[string][]*sqlRecord{}
	for _, r := range records {
		byArea[r.AreaID] = append(byArea[r.AreaID], r)
	}

	result := make([]*model.EnrichedArea, 0, len(areas))
	for _, sa := range areas {
		t, err := model.ParseAreaType(sa.Type)
		if err != nil {
			return nil, err
		}

		a := model.NewArea(sa.ID, sa.Name, t, sa.ParentID)
		a.Abbreviation = sa.Abbreviation
		a.Children = append(a.Children, sa.Children...)
		a.Files = sa.Files

		ea := model.NewEnrichedArea(a)
		if sa.Meta != nil {
			ea.Meta = sa.Meta
		}

		for _, r := range byArea[sa.ID] {
			if len(ea.Data) == 0 || ea.Data[len(ea.Data)-1].Year != r.Year {
				ea.Data = append(ea.Data, model.NewDataPoint(r.Year))
			}
			ea.Data[len(ea.Data)-1].Values[r.Indicator] = decodeValue(r.Value)
		}

		result = append(result, ea)
	}

	return result, nil
}

func addList[T sqlTable](target *map[string]T, toAdd []T) {
	for _, v := range toAdd {
		(*target)[v.CacheKey()] = v
	}
}

func prepareChanges[S sqlTable, M any](models []M, toSql func(M) S, cache *map[string]S) []S {
	var result []S
	for _, m := range models {
		s := toSql(m)
		if prepareChange(cache, s) {
			result = append(result, s)
		}
	}
	return result
}

func prepareChange[T sqlTable](byID *map[string]T, n T) bool {
	o, ok := (*byID)[n.CacheKey()]
	if ok {
		ro := reflect.Indirect(reflect.ValueOf(o))
		rn := reflect.Indirect(reflect.ValueOf(n))

		rn.FieldByName("CreatedAt").Set(ro.FieldByName("CreatedAt"))
		rn.FieldByName("UpdatedAt").Set(ro.FieldByName("UpdatedAt"))
	}

	if reflect.DeepEqual(n, o) {
		return false
	} else {
		(*byID)[n.CacheKey()] = n
		return true
	}
}
