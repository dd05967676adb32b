package api

// Project is a patch-tracking project as both backends report it.
type Project struct {
	ID       int
	LinkName string
	Name     string
}

// Person is a patch submitter identity.
type Person struct {
	ID    int
	Email string
	// Name falls back to Email when the server has no display name.
	Name string
	// User is the associated account name, empty if none.
	User string
}

// Patch is the canonical patch record. Every field is always present;
// values the server omits are coerced to their zero value so callers can
// treat the record as fixed-shape.
type Patch struct {
	ID        int
	Date      string
	Filename  string
	MsgID     string
	Name      string
	Project   string
	ProjectID int
	State     string
	// StateID is 0 under the REST backend, which does not expose state
	// identifiers on patch records.
	StateID     int
	Archived    bool
	Submitter   string
	SubmitterID int
	Delegate    string
	DelegateID  int
	CommitRef   string
	Hash        string
}

// State is a patch workflow state. Only the XML-RPC backend can list or
// fetch these; the REST API does not expose them as a resource.
type State struct {
	ID   int
	Name string
}

// CheckState is the outcome reported by a CI check.
type CheckState string

const (
	CheckStatePending CheckState = "pending"
	CheckStateSuccess CheckState = "success"
	CheckStateWarning CheckState = "warning"
	CheckStateFail    CheckState = "fail"
)

// Check is a CI result attached to a patch.
type Check struct {
	ID          int
	Date        string
	Patch       string
	PatchID     int
	User        string
	UserID      int
	State       CheckState
	TargetURL   string
	Description string
	Context     string
}

// Field is one key/value pair of a canonical record, used for detail
// output. Keys match the historical wire names so scripted consumers of
// `pwclient info` keep working.
type Field struct {
	Key   string
	Value string
}
