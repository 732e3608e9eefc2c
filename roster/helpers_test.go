package roster

import "github.com/google/uuid"

func newID() PlayerID {
	return uuid.New()
}
