package roster

import "errors"

var (
	ErrUnknownPlayer    = errors.New("roster: unknown player")
	ErrSpectator        = errors.New("roster: spectators cannot be partnered")
	ErrSelfPartner      = errors.New("roster: a player cannot partner themselves")
	ErrNotAuthoritative = errors.New("roster: registry is not authoritative")
	ErrAuthoritative    = errors.New("roster: authoritative registry does not accept snapshots")
	ErrRosterFull       = errors.New("roster: roster is full")
	ErrInvalidSlot      = errors.New("roster: invalid lobby slot")
)
