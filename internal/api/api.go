package api

import "context"

// Backend tags name the two wire-protocol implementations a configuration
// can select.
const (
	BackendREST   = "rest"
	BackendXMLRPC = "xmlrpc"
)

// Credentials holds the authentication material for a backend. Username
// and password must be supplied together; a token is an alternative to
// both and is only honored by backends that support token auth.
type Credentials struct {
	Username string
	Password string
	Token    string
}

// HasBasic reports whether a username/password pair is configured.
func (c Credentials) HasBasic() bool {
	return c.Username != "" && c.Password != ""
}

// HasToken reports whether a token is configured.
func (c Credentials) HasToken() bool {
	return c.Token != ""
}

// Validate checks the credential combination. Both backends call this
// before doing anything else.
func (c Credentials) Validate() error {
	if (c.Username != "" && c.Password == "") || (c.Password != "" && c.Username == "") {
		return &ConfigError{
			Reason: "you must provide both a username and a password or a token",
		}
	}
	if c.HasBasic() && c.HasToken() {
		return &ConfigError{
			Reason: "you must provide either a username and password or a token, not both",
		}
	}
	return nil
}

// PatchFilter narrows a PatchList call. String fields are user intent in
// human-readable form; each backend resolves or passes them through
// according to its own capabilities.
type PatchFilter struct {
	// Project is a project linkname. The XML-RPC backend resolves it to a
	// numeric ID by exact match; REST passes it through.
	Project string
	// Submitter and Delegate are name-or-email substrings, resolved to
	// person IDs by the XML-RPC backend only. They are mutually exclusive.
	Submitter string
	Delegate  string
	// State is a state display name. The XML-RPC backend resolves it by
	// case-insensitive prefix match; REST slugifies it instead.
	State    string
	Archived *bool
	MsgID    string
	Name     string
	Hash     string
	// MaxCount limits results to the first n (positive) or last n
	// (negative) patches.
	MaxCount int
}

// PatchUpdate describes a mutation applied by PatchSet. Zero-valued
// fields are left untouched on the server.
type PatchUpdate struct {
	State     string
	Archived  *bool
	CommitRef string
}

// CheckCreateRequest describes a new check to attach to a patch.
type CheckCreateRequest struct {
	Context     string
	State       CheckState
	TargetURL   string
	Description string
}

// API is the unified facade over the two Patchwork wire protocols. Detail
// getters return (nil, nil) when the record legitimately does not exist,
// so callers can tell "nothing there" from "the call failed". Operations
// a backend cannot perform return a NotSupportedError.
type API interface {
	ProjectList(ctx context.Context, search string) ([]Project, error)
	ProjectGet(ctx context.Context, id int) (*Project, error)

	PersonList(ctx context.Context, search string) ([]Person, error)
	PersonGet(ctx context.Context, id int) (*Person, error)

	PatchList(ctx context.Context, filter PatchFilter) ([]Patch, error)
	PatchGet(ctx context.Context, id int) (*Patch, error)
	PatchGetByHash(ctx context.Context, hash string) (*Patch, error)
	PatchGetByProjectHash(ctx context.Context, project, hash string) (*Patch, error)
	// PatchGetMbox returns the patch mail content and the filename the
	// server suggests for saving it.
	PatchGetMbox(ctx context.Context, id int) (mbox, filename string, err error)
	PatchGetDiff(ctx context.Context, id int) (string, error)
	// PatchSet mutates a patch and returns the updated record when the
	// backend provides one. A server-side no-op yields ErrNotUpdated.
	PatchSet(ctx context.Context, id int, update PatchUpdate) (*Patch, error)

	StateList(ctx context.Context, search string) ([]State, error)
	StateGet(ctx context.Context, id int) (*State, error)

	// CheckList lists checks. patchID 0 means "all patches", which only
	// the XML-RPC backend supports; user "" means any user.
	CheckList(ctx context.Context, patchID int, user string) ([]Check, error)
	CheckGet(ctx context.Context, patchID, checkID int) (*Check, error)
	CheckCreate(ctx context.Context, patchID int, req CheckCreateRequest) error
}
