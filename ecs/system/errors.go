package system

import "errors"

var (
	ErrNoPhysicsWorld   = errors.New("system: world has no physics")
	ErrNoBody           = errors.New("system: entity has no physics body")
	ErrNotAuthority     = errors.New("system: world is not authoritative")
	ErrNoController     = errors.New("system: entity has no controller")
	ErrNoPawn           = errors.New("system: entity is not a pawn")
	ErrPawnPossessed    = errors.New("system: pawn already possessed")
	ErrNoMountPoint     = errors.New("system: parent has no such mount point")
	ErrNoWeapon         = errors.New("system: no usable weapon")
	ErrWeaponOwned      = errors.New("system: weapon already owned")
	ErrSwapAborted      = errors.New("system: control swap aborted")
	ErrSpawnUnavailable = errors.New("system: spawn prerequisites not met")
)
