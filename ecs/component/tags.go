package component

// CharacterTag marks a lower-body character.
type CharacterTag struct{}

var CharacterTagComponent = NewComponent[CharacterTag]()

// UpperBodyTag marks an upper-body pawn.
type UpperBodyTag struct{}

var UpperBodyTagComponent = NewComponent[UpperBodyTag]()

// SpawnPoint marks a place characters appear.
type SpawnPoint struct {
	Index int
}

var SpawnPointComponent = NewComponent[SpawnPoint]()
