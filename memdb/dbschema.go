package memdb

import (
	"fmt"

	hcmemdb "github.com/hashicorp/go-memdb"
)

// PK is a mandatory index for all tables at hc/go-memdb.
const PK = "id"

type (
	// UnixTime used as timestamp at ArchiveMark
	UnixTime = int64

	// TableSchema synonym for replacing original type at code
	TableSchema = hcmemdb.TableSchema
)

type (
	dataType  = string
	fieldName = string
	indexName = string
)

// Relation ties a field of the origin data type to an index of a related
// data type. How a relation is enforced depends on the map it is placed in.
type Relation struct {
	OriginalDataTypeFieldName     fieldName
	RelatedDataType               dataType
	RelatedDataTypeFieldIndexName indexName
}

type DBSchema struct {
	Tables map[string]*TableSchema
	// checked at Insert: the related record must exist and not be archived
	// (or be archived with the mark passed to Archive)
	MandatoryForeignKeys map[dataType][]Relation
	// checked at Delete and Archive: deleting fails while any related
	// record is still active
	CheckingRelations map[dataType][]Relation
}

func (s *DBSchema) Validate() error {
	if err := (&hcmemdb.DBSchema{Tables: s.Tables}).Validate(); err != nil {
		return fmt.Errorf("%w:%s", ErrInvalidSchema, err)
	}
	for _, rels := range []map[dataType][]Relation{s.MandatoryForeignKeys, s.CheckingRelations} {
		if err := s.validateRelations(rels); err != nil {
			return fmt.Errorf("%w:%s", ErrInvalidSchema, err)
		}
	}
	for table, fks := range s.MandatoryForeignKeys {
		for _, fk := range fks {
			if fk.RelatedDataTypeFieldIndexName != PK {
				return fmt.Errorf("%w:invalid RelatedDataTypeFieldIndexName %q in FK of table %q",
					ErrInvalidSchema, fk.RelatedDataTypeFieldIndexName, table)
			}
		}
	}
	return nil
}

// validateRelations checks that every relation points at an existing table
// index backed by a string-ish indexer.
func (s *DBSchema) validateRelations(rels map[dataType][]Relation) error {
	for table, rs := range rels {
		if _, ok := s.Tables[table]; !ok {
			return fmt.Errorf("table %q is absent in DBSchema", table)
		}
		for _, r := range rs {
			ts, ok := s.Tables[r.RelatedDataType]
			if !ok {
				return fmt.Errorf("related table %q is absent in DBSchema", r.RelatedDataType)
			}
			index, ok := ts.Indexes[r.RelatedDataTypeFieldIndexName]
			if !ok {
				return fmt.Errorf("index %q not found at table %q, passed as relation to field %q of table %q",
					r.RelatedDataTypeFieldIndexName, r.RelatedDataType, r.OriginalDataTypeFieldName, table)
			}
			switch index.Indexer.(type) {
			case *hcmemdb.StringFieldIndex, *hcmemdb.UUIDFieldIndex:
			default:
				return fmt.Errorf("index %q at table %q has inappropriate type (allowed: StringFieldIndex, UUIDFieldIndex)",
					r.RelatedDataTypeFieldIndexName, r.RelatedDataType)
			}
		}
	}
	return nil
}

func MergeDBSchemas(schemas ...*DBSchema) (*DBSchema, error) {
	tables := map[string]*hcmemdb.TableSchema{}

	for i := range schemas {
		for name, table := range schemas[i].Tables {
			if _, found := tables[name]; found {
				return nil, fmt.Errorf("%w:table %q already there", ErrMergeSchema, name)
			}
			tables[name] = table
		}
	}

	mergeRelations := func(pick func(*DBSchema) map[dataType][]Relation) map[dataType][]Relation {
		allRels := map[dataType][]Relation{}
		for _, schema := range schemas {
			for name, rels := range pick(schema) {
				allRels[name] = append(allRels[name], rels...)
			}
		}
		return allRels
	}

	result := DBSchema{
		Tables:               tables,
		MandatoryForeignKeys: mergeRelations(func(s *DBSchema) map[dataType][]Relation { return s.MandatoryForeignKeys }),
		CheckingRelations:    mergeRelations(func(s *DBSchema) map[dataType][]Relation { return s.CheckingRelations }),
	}

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("%w:%s", ErrMergeSchema, err.Error())
	}
	return &result, nil
}
