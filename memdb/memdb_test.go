package memdb

import (
	"testing"

	hcmemdb "github.com/hashicorp/go-memdb"
	"github.com/stretchr/testify/require"
)

const (
	parentType           = "parent"
	childType            = "child"
	parentTypeForeignKey = "parent_uuid"

	u1 = "00000000-0000-4000-8000-000000000001"
	u2 = "00000000-0000-4000-8000-000000000002"
)

type parent struct {
	UUID       string
	Identifier string

	ArchiveMark
}

type child struct {
	UUID       string
	ParentUUID string

	ArchiveMark
}

func testTables() map[string]*TableSchema {
	return map[string]*TableSchema{
		parentType: {
			Name: parentType,
			Indexes: map[string]*hcmemdb.IndexSchema{
				PK: {
					Name:    PK,
					Unique:  true,
					Indexer: &hcmemdb.UUIDFieldIndex{Field: "UUID"},
				},
			},
		},
		childType: {
			Name: childType,
			Indexes: map[string]*hcmemdb.IndexSchema{
				PK: {
					Name:    PK,
					Unique:  true,
					Indexer: &hcmemdb.UUIDFieldIndex{Field: "UUID"},
				},
				parentTypeForeignKey: {
					Name:    parentTypeForeignKey,
					Indexer: &hcmemdb.StringFieldIndex{Field: "ParentUUID"},
				},
			},
		},
	}
}

func prepareTxn(t *testing.T) *Txn {
	schema := &DBSchema{
		Tables: testTables(),
		MandatoryForeignKeys: map[dataType][]Relation{
			childType: {{
				OriginalDataTypeFieldName: "ParentUUID", RelatedDataType: parentType, RelatedDataTypeFieldIndexName: PK,
			}},
		},
		CheckingRelations: map[dataType][]Relation{
			parentType: {{
				OriginalDataTypeFieldName: "UUID", RelatedDataType: childType, RelatedDataTypeFieldIndexName: parentTypeForeignKey,
			}},
		},
	}
	db, err := NewMemDB(schema)
	require.NoError(t, err)
	return db.Txn(true)
}

func prepareTxnWithParent(t *testing.T) (*Txn, *parent) {
	txn := prepareTxn(t)
	p := &parent{UUID: u1, Identifier: "parent1"}
	err := txn.Insert(parentType, p)
	require.NoError(t, err)
	return txn, p
}

func Test_InsertOK(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	ch := &child{UUID: u2, ParentUUID: p.UUID}

	err := txn.Insert(childType, ch)

	require.NoError(t, err)
	raw, err := txn.First(childType, PK, u2)
	require.NoError(t, err)
	require.Equal(t, ch, raw)
}

func Test_InsertFailForeignKey(t *testing.T) {
	txn := prepareTxn(t)
	ch := &child{UUID: u2, ParentUUID: u1}

	err := txn.Insert(childType, ch)

	require.ErrorIs(t, err, ErrForeignKey)
}

func Test_InsertFailForeignKeyOnArchivedParent(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	require.NoError(t, txn.Archive(parentType, p, NewArchiveMark()))
	ch := &child{UUID: u2, ParentUUID: p.UUID}

	err := txn.Insert(childType, ch)

	require.ErrorIs(t, err, ErrForeignKey)
}

func Test_DeleteOK(t *testing.T) {
	txn, p := prepareTxnWithParent(t)

	err := txn.Delete(parentType, p)

	require.NoError(t, err)
	raw, err := txn.First(parentType, PK, p.UUID)
	require.NoError(t, err)
	require.Empty(t, raw)
}

func Test_DeleteFailNotEmptyRelation(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	require.NoError(t, txn.Insert(childType, &child{UUID: u2, ParentUUID: p.UUID}))

	err := txn.Delete(parentType, p)

	require.ErrorIs(t, err, ErrNotEmptyRelation)
}

func Test_ArchiveOK(t *testing.T) {
	txn, p := prepareTxnWithParent(t)

	err := txn.Archive(parentType, p, NewArchiveMark())

	require.NoError(t, err)
	raw, err := txn.First(parentType, PK, p.UUID)
	require.NoError(t, err)
	require.True(t, raw.(*parent).Archived())
}

func Test_ArchiveFailNotEmptyRelation(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	require.NoError(t, txn.Insert(childType, &child{UUID: u2, ParentUUID: p.UUID}))

	err := txn.Archive(parentType, p, NewArchiveMark())

	require.ErrorIs(t, err, ErrNotEmptyRelation)
}

func Test_ArchiveOKAfterChildArchived(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	ch := &child{UUID: u2, ParentUUID: p.UUID}
	require.NoError(t, txn.Insert(childType, ch))
	require.NoError(t, txn.Archive(childType, ch, NewArchiveMark()))

	err := txn.Archive(parentType, p, NewArchiveMark())

	require.NoError(t, err)
}

func Test_RestoreOK(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	require.NoError(t, txn.Archive(parentType, p, NewArchiveMark()))

	err := txn.Restore(parentType, p)

	require.NoError(t, err)
	raw, err := txn.First(parentType, PK, p.UUID)
	require.NoError(t, err)
	require.True(t, raw.(*parent).NotArchived())
}

func Test_MergeDBSchemasFailOnDoubledTable(t *testing.T) {
	s1 := &DBSchema{Tables: testTables()}
	s2 := &DBSchema{Tables: map[string]*TableSchema{
		parentType: testTables()[parentType],
	}}

	_, err := MergeDBSchemas(s1, s2)

	require.ErrorIs(t, err, ErrMergeSchema)
}
