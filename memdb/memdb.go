package memdb

import (
	"fmt"
	"reflect"

	hcmemdb "github.com/hashicorp/go-memdb"
	multierror "github.com/hashicorp/go-multierror"
)

var (
	ErrForeignKey       = fmt.Errorf("foreign key error")
	ErrNotEmptyRelation = fmt.Errorf("not empty relation error")
	ErrNotArchivable    = fmt.Errorf("not archivable object")
	ErrInvalidSchema    = fmt.Errorf("invalid DBSchema")
	ErrMergeSchema      = fmt.Errorf("merging DBSchema")
	ErrNotPtr           = fmt.Errorf("not pointer passed")
)

type MemDB struct {
	*hcmemdb.MemDB

	schema *DBSchema
}

type Txn struct {
	*hcmemdb.Txn

	schema *DBSchema
}

func NewMemDB(schema *DBSchema) (*MemDB, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	db, err := hcmemdb.NewMemDB(&hcmemdb.DBSchema{Tables: schema.Tables})
	if err != nil {
		return nil, err
	}
	return &MemDB{
		MemDB:  db,
		schema: schema,
	}, nil
}

func (m *MemDB) Txn(write bool) *Txn {
	mTxn := m.MemDB.Txn(write)
	if write {
		mTxn.TrackChanges()
	}
	return &Txn{Txn: mTxn, schema: m.schema}
}

func (t *Txn) Insert(table string, objPtr interface{}) error {
	return t.insert(table, objPtr, ActiveRecordMark)
}

// insert provides Insert operation into memdb with checking MandatoryForeignKeys;
// insertion is successful if related records exist and aren't archived,
// or are archived with suitable marks
func (t *Txn) insert(table string, objPtr interface{}, allowedArchiveMark ArchiveMark) error {
	err := t.checkForeignKeys(table, objPtr, allowedArchiveMark)
	if err != nil {
		return fmt.Errorf("insert %#v: %w", objPtr, err)
	}
	return t.Txn.Insert(table, objPtr)
}

func (t *Txn) Delete(table string, objPtr interface{}) error {
	err := t.checkCheckingRelations(table, objPtr)
	if err != nil {
		return fmt.Errorf("delete:%w", err)
	}
	err = t.Txn.Delete(table, objPtr)
	if err != nil {
		return fmt.Errorf("delete:%w", err)
	}
	return nil
}

// Archive soft-deletes a record: marks it and re-inserts. Fails while any
// checking relation still holds an active record.
func (t *Txn) Archive(table string, objPtr interface{}, archiveMark ArchiveMark) error {
	a, ok := objPtr.(Archivable)
	if !ok {
		return fmt.Errorf("%w:%#v", ErrNotArchivable, objPtr)
	}
	err := t.checkCheckingRelations(table, objPtr)
	if err != nil {
		return fmt.Errorf("archive:%w", err)
	}
	a.Archive(archiveMark)
	err = t.insert(table, objPtr, archiveMark)
	if err != nil {
		return fmt.Errorf("archive:%w", err)
	}
	return nil
}

func (t *Txn) Restore(table string, objPtr interface{}) error {
	a, ok := objPtr.(Archivable)
	if !ok {
		return fmt.Errorf("%w:%#v", ErrNotArchivable, objPtr)
	}
	a.Restore()
	err := t.Insert(table, objPtr)
	if err != nil {
		return fmt.Errorf("restore:%w", err)
	}
	return nil
}

func (t *Txn) checkForeignKeys(table string, objPtr interface{}, allowedArchiveMark ArchiveMark) error {
	keys := t.schema.MandatoryForeignKeys[table]
	return t.processRelations(keys, objPtr, t.checkForeignKey(allowedArchiveMark), ErrForeignKey)
}

func (t *Txn) checkForeignKey(allowedArchiveMark ArchiveMark) func(checkedFieldValue interface{}, key Relation) error {
	return func(checkedFieldValue interface{}, key Relation) error {
		relatedRecord, err := t.First(key.RelatedDataType, key.RelatedDataTypeFieldIndexName, checkedFieldValue)
		if err != nil {
			return fmt.Errorf("getting related record:%w", err)
		}
		if relatedRecord == nil {
			return fmt.Errorf("FK violation: %q not found at table %q at index %q",
				checkedFieldValue, key.RelatedDataType, key.RelatedDataTypeFieldIndexName)
		}
		a, ok := relatedRecord.(Archivable)
		if !ok {
			if ActiveRecordMark.Equals(allowedArchiveMark) {
				return nil // related record is not archivable and exists, no need to check
			}
			return fmt.Errorf("%w related record %#v is not archivable", ErrNotArchivable, relatedRecord)
		}
		if a.Archived() && !a.Equals(allowedArchiveMark) {
			return fmt.Errorf("FK violation: %q not found at table %q at index %q",
				checkedFieldValue, key.RelatedDataType, key.RelatedDataTypeFieldIndexName)
		}
		return nil
	}
}

func (t *Txn) checkCheckingRelations(table string, objPtr interface{}) error {
	rels := t.schema.CheckingRelations[table]
	return t.processRelations(rels, objPtr, t.checkRelationShouldBeEmpty, ErrNotEmptyRelation)
}

// processRelations implements the main loop of relation checking:
// for each relation, relationHandler is executed against the origin field value
func (t *Txn) processRelations(relations []Relation, objPtr interface{},
	relationHandler func(originObjectFieldValue interface{}, key Relation) error,
	relationHandlerError error) error {
	valueIface := reflect.ValueOf(objPtr)
	if valueIface.Type().Kind() != reflect.Ptr {
		return fmt.Errorf("%w: obj `%s`", ErrNotPtr, valueIface.Type())
	}
	var allErrs *multierror.Error
	for _, key := range relations {
		field := valueIface.Elem().FieldByName(key.OriginalDataTypeFieldName)
		if !field.IsValid() {
			return fmt.Errorf("obj `%s` does not have the field `%s`", valueIface.Type(), key.OriginalDataTypeFieldName)
		}
		if err := relationHandler(field.Interface(), key); err != nil {
			allErrs = multierror.Append(allErrs, err)
		}
	}
	if err := allErrs.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w:%s", relationHandlerError, err.Error())
	}
	return nil
}

func (t *Txn) checkRelationShouldBeEmpty(checkedFieldValue interface{}, key Relation) error {
	iter, err := t.Get(key.RelatedDataType, key.RelatedDataTypeFieldIndexName, checkedFieldValue)
	if err != nil {
		return fmt.Errorf("getting related records:%w", err)
	}
	for {
		relatedRecord := iter.Next()
		if relatedRecord == nil {
			return nil
		}
		a, ok := relatedRecord.(Archivable)
		if !ok {
			return fmt.Errorf("got not archivable object: by key value %q found at table %q by index %q",
				checkedFieldValue, key.RelatedDataType, key.RelatedDataTypeFieldIndexName)
		}
		if a.NotArchived() {
			return fmt.Errorf("relation should be empty: %q found at table %q by index %q",
				checkedFieldValue, key.RelatedDataType, key.RelatedDataTypeFieldIndexName)
		}
	}
}
