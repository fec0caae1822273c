package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/regdesk/regdesk/memdb"
	"github.com/regdesk/regdesk/uuid"
)

func NewResourceVersion() string {
	return uuid.New()
}

func GetSchema() (*memdb.DBSchema, error) {
	return memdb.MergeDBSchemas(
		TeamSchema(),
		ParticipantSchema(),
		SeatCounterSchema(),
	)
}

// stringIndexer is a shorthand for the one-field string indexes the
// tables here are built from.
func stringIndexer(name, field string) *hcmemdb.IndexSchema {
	return &hcmemdb.IndexSchema{
		Name:    name,
		Indexer: &hcmemdb.StringFieldIndex{Field: field, Lowercase: true},
	}
}
