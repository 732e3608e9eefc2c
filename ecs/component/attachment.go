package component

import "github.com/jakecoffman/cp"

// Owner points a sub-object (weapon, limb prop) at the entity it belongs to.
type Owner struct {
	Entity uint64
}

var OwnerComponent = NewComponent[Owner]()

// Attachment pins an entity to a named socket on Parent.
type Attachment struct {
	Parent uint64
	Socket string
}

var AttachmentComponent = NewComponent[Attachment]()

// MountPoints are named sockets local to the body's centre of gravity.
type MountPoints struct {
	Sockets map[string]cp.Vector
}

// Socket returns the local offset of name.
func (m *MountPoints) Socket(name string) (cp.Vector, bool) {
	if m == nil {
		return cp.Vector{}, false
	}
	v, ok := m.Sockets[name]
	return v, ok
}

var MountPointsComponent = NewComponent[MountPoints]()

const (
	SocketHeadMount = "head_mount"
	SocketHandR     = "hand_r"
	SocketHandL     = "hand_l"
)
