package auth

type Capability uint8

const (
	CreateBook Capability = iota + 1
	UpdateBook
	DeleteBook
	ManageOwnFavorites
)

func (c Capability) String() string {
	switch c {
	case CreateBook:
		return "CreateBook"
	case UpdateBook:
		return "UpdateBook"
	case DeleteBook:
		return "DeleteBook"
	case ManageOwnFavorites:
		return "ManageOwnFavorites"
	default:
		return "Unknown"
	}
}

const DefaultAdminGroup = "admin"

type rule func(Identity) bool

// Policy decides capabilities. Reads are public and never reach it.
type Policy struct {
	adminGroup string
	rules      map[Capability]rule
}

func NewPolicy(adminGroup string) *Policy {
	if adminGroup == "" {
		adminGroup = DefaultAdminGroup
	}
	p := &Policy{adminGroup: adminGroup}
	isAdmin := func(id Identity) bool { return id.InGroup(p.adminGroup) }
	p.rules = map[Capability]rule{
		CreateBook:         isAdmin,
		UpdateBook:         isAdmin,
		DeleteBook:         isAdmin,
		ManageOwnFavorites: func(Identity) bool { return true },
	}
	return p
}

func (p *Policy) AdminGroup() string {
	return p.adminGroup
}

// Authorize denies anonymous callers and unknown capabilities.
func (p *Policy) Authorize(id Identity, c Capability) bool {
	if id.IsAnonymous() {
		return false
	}
	r, ok := p.rules[c]
	if !ok {
		return false
	}
	return r(id)
}
