package rest

import (
	"github.com/getpatchwork/pwclient/internal/api"
)

// Wire shapes for the REST API. Each record type carries nested
// sub-objects that the canonical representation flattens into scalars;
// the canonical() methods are the single place that reshaping happens.

type wireProject struct {
	ID       int    `json:"id"`
	LinkName string `json:"linkname"`
	// Older servers spell the field with an underscore.
	LinkNameAlt string `json:"link_name"`
	Name        string `json:"name"`
}

func (w *wireProject) canonical() *api.Project {
	linkname := w.LinkName
	if linkname == "" {
		linkname = w.LinkNameAlt
	}
	return &api.Project{
		ID:       w.ID,
		LinkName: linkname,
		Name:     w.Name,
	}
}

// wireUser is an account reference, embedded in patches (delegate),
// checks and people.
type wireUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// wirePerson is a submitter identity: a mail address with an optional
// display name and an optional linked account.
type wirePerson struct {
	ID    int       `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	User  *wireUser `json:"user"`
}

func (w *wirePerson) canonical() *api.Person {
	name := w.Name
	if name == "" {
		name = w.Email
	}
	user := ""
	if w.User != nil {
		user = w.User.Username
	}
	return &api.Person{
		ID:    w.ID,
		Email: w.Email,
		Name:  name,
		User:  user,
	}
}

// formatPerson renders a person reference the way the legacy API does:
// "Name <email>" when a display name exists, the bare email otherwise,
// and "" for an absent reference.
func formatPerson(p *wirePerson) string {
	if p == nil {
		return ""
	}
	if p.Name != "" {
		return p.Name + " <" + p.Email + ">"
	}
	return p.Email
}

type wirePatch struct {
	ID        int          `json:"id"`
	Date      string       `json:"date"`
	Filename  string       `json:"filename"`
	MsgID     string       `json:"msgid"`
	Name      string       `json:"name"`
	State     string       `json:"state"`
	Archived  bool         `json:"archived"`
	CommitRef string       `json:"commit_ref"`
	Hash      string       `json:"hash"`
	Project   *wireProject `json:"project"`
	Submitter *wirePerson  `json:"submitter"`
	Delegate  *wireUser    `json:"delegate"`
	Mbox      string       `json:"mbox"`
	Diff      string       `json:"diff"`
}

// canonical flattens the nested patch representation. A patch without an
// embedded project or submitter does not match the documented response
// shape and is reported as an error rather than a half-filled record.
func (w *wirePatch) canonical() (*api.Patch, error) {
	if w.Project == nil || w.Submitter == nil {
		return nil, &api.APIError{
			Operation: "normalize patch",
			Message:   "response is missing the embedded project or submitter object",
		}
	}

	p := &api.Patch{
		ID:          w.ID,
		Date:        w.Date,
		Filename:    w.Filename,
		MsgID:       w.MsgID,
		Name:        w.Name,
		Project:     w.Project.Name,
		ProjectID:   w.Project.ID,
		State:       w.State,
		StateID:     0, // not exposed by the REST API
		Archived:    w.Archived,
		Submitter:   formatPerson(w.Submitter),
		SubmitterID: w.Submitter.ID,
		CommitRef:   w.CommitRef,
		Hash:        w.Hash,
	}
	if w.Delegate != nil {
		p.Delegate = w.Delegate.Username
		p.DelegateID = w.Delegate.ID
	}
	return p, nil
}

type wireCheck struct {
	ID          int       `json:"id"`
	Date        string    `json:"date"`
	User        *wireUser `json:"user"`
	State       string    `json:"state"`
	TargetURL   string    `json:"target_url"`
	Description string    `json:"description"`
	Context     string    `json:"context"`
}

// canonical builds a check record. The REST check response does not
// repeat its patch, so the patch the lookup was scoped to is passed in.
func (w *wireCheck) canonical(patch *api.Patch) *api.Check {
	c := &api.Check{
		ID:          w.ID,
		Date:        w.Date,
		Patch:       patch.Name,
		PatchID:     patch.ID,
		State:       api.CheckState(w.State),
		TargetURL:   w.TargetURL,
		Description: w.Description,
		Context:     w.Context,
	}
	if w.User != nil {
		c.User = w.User.Username
		c.UserID = w.User.ID
	}
	return c
}
