package model

import "github.com/regdesk/regdesk/memdb"

type TeamUUID = string
type ParticipantUUID = string

type UnixTime = memdb.UnixTime
