package model

const SeatCounterType = "seat_counter" // also, memdb schema name

// SeatCounterUUID is the fixed id of the single counter record.
const SeatCounterUUID = "00000000-0000-0000-0000-000000000001"

// SeatCounter allocates sequential walk-in seat numbers during
// attendance marking. There is exactly one record of this type.
type SeatCounter struct {
	UUID           string `json:"uuid"` // PK
	Version        string `json:"resource_version"`
	LastSeatNumber int64  `json:"last_seat_number"`

	UpdatedAt UnixTime `json:"updated_at"`
}

func (c *SeatCounter) ObjType() string {
	return SeatCounterType
}

func (c *SeatCounter) ObjId() string {
	return c.UUID
}
