package repo

import (
	"github.com/regdesk/regdesk/io"
	"github.com/regdesk/regdesk/model"
)

// RestoreHandlers wires every table to its repository Sync during journal
// replay at startup.
func RestoreHandlers() map[string]io.RestoreFunc {
	return map[string]io.RestoreFunc{
		model.TeamType: func(txn *io.MemoryStoreTxn, rec io.Record) error {
			return NewTeamRepository(txn).Sync(rec)
		},
		model.ParticipantType: func(txn *io.MemoryStoreTxn, rec io.Record) error {
			return NewParticipantRepository(txn).Sync(rec)
		},
		model.SeatCounterType: func(txn *io.MemoryStoreTxn, rec io.Record) error {
			return NewSeatCounterRepository(txn).Sync(rec)
		},
	}
}
