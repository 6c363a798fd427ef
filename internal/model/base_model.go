package model

import (
	"github.com/google/uuid"
)

// assignId gives a new row its key before insert. Ids are generated in Go so
// the same models migrate on Postgres and SQLite.
func assignId(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
