package xmlrpc

import (
	"fmt"
	"strconv"

	"github.com/getpatchwork/pwclient/internal/api"
)

// Wire shapes for the XML-RPC API. Fields are declared as any so that a
// malformed response surfaces as an explicit error instead of a zero
// value. Binary blobs never reach these structs: binaryTextTransport
// rewrites them into UTF-8 strings before the response is decoded.

// asString decodes a wire value into text; an absent value is the empty
// string.
func asString(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		return "", fmt.Errorf("unexpected type %T for string field", v)
	}
}

// asInt decodes a wire identifier. A non-numeric value is a hard
// failure, never a silent zero.
func asInt(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("non-numeric identifier %q", n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unexpected type %T for identifier field", v)
	}
}

// asBool decodes a wire boolean, accepting the integer encoding some
// servers use.
func asBool(v any) (bool, error) {
	switch b := v.(type) {
	case nil:
		return false, nil
	case bool:
		return b, nil
	case int64:
		return b != 0, nil
	case int:
		return b != 0, nil
	default:
		return false, fmt.Errorf("unexpected type %T for boolean field", v)
	}
}

type xmlProject struct {
	ID       any `xmlrpc:"id"`
	LinkName any `xmlrpc:"linkname"`
	Name     any `xmlrpc:"name"`
}

// empty reports whether the server returned the empty struct it uses
// for unknown identifiers.
func (w *xmlProject) empty() bool { return w.ID == nil }

func (w *xmlProject) canonical() (*api.Project, error) {
	p := &api.Project{}
	var err error
	if p.ID, err = asInt(w.ID); err != nil {
		return nil, normalizeErr("project", err)
	}
	if p.LinkName, err = asString(w.LinkName); err != nil {
		return nil, normalizeErr("project", err)
	}
	if p.Name, err = asString(w.Name); err != nil {
		return nil, normalizeErr("project", err)
	}
	return p, nil
}

type xmlPerson struct {
	ID    any `xmlrpc:"id"`
	Email any `xmlrpc:"email"`
	Name  any `xmlrpc:"name"`
	User  any `xmlrpc:"user"`
}

func (w *xmlPerson) empty() bool { return w.ID == nil }

func (w *xmlPerson) canonical() (*api.Person, error) {
	p := &api.Person{}
	var err error
	if p.ID, err = asInt(w.ID); err != nil {
		return nil, normalizeErr("person", err)
	}
	if p.Email, err = asString(w.Email); err != nil {
		return nil, normalizeErr("person", err)
	}
	if p.Name, err = asString(w.Name); err != nil {
		return nil, normalizeErr("person", err)
	}
	if p.User, err = asString(w.User); err != nil {
		return nil, normalizeErr("person", err)
	}
	if p.Name == "" {
		p.Name = p.Email
	}
	return p, nil
}

type xmlState struct {
	ID   any `xmlrpc:"id"`
	Name any `xmlrpc:"name"`
}

func (w *xmlState) empty() bool { return w.ID == nil }

func (w *xmlState) canonical() (*api.State, error) {
	s := &api.State{}
	var err error
	if s.ID, err = asInt(w.ID); err != nil {
		return nil, normalizeErr("state", err)
	}
	if s.Name, err = asString(w.Name); err != nil {
		return nil, normalizeErr("state", err)
	}
	return s, nil
}

type xmlPatch struct {
	ID          any `xmlrpc:"id"`
	Date        any `xmlrpc:"date"`
	Filename    any `xmlrpc:"filename"`
	MsgID       any `xmlrpc:"msgid"`
	Name        any `xmlrpc:"name"`
	Project     any `xmlrpc:"project"`
	ProjectID   any `xmlrpc:"project_id"`
	State       any `xmlrpc:"state"`
	StateID     any `xmlrpc:"state_id"`
	Archived    any `xmlrpc:"archived"`
	Submitter   any `xmlrpc:"submitter"`
	SubmitterID any `xmlrpc:"submitter_id"`
	Delegate    any `xmlrpc:"delegate"`
	DelegateID  any `xmlrpc:"delegate_id"`
	CommitRef   any `xmlrpc:"commit_ref"`
	Hash        any `xmlrpc:"hash"`
}

func (w *xmlPatch) empty() bool { return w.ID == nil }

func (w *xmlPatch) canonical() (*api.Patch, error) {
	p := &api.Patch{}
	var err error
	if p.ID, err = asInt(w.ID); err != nil {
		return nil, normalizeErr("patch", err)
	}
	if p.Date, err = asString(w.Date); err != nil {
		return nil, normalizeErr("patch", err)
	}
	if p.Filename, err = asString(w.Filename); err != nil {
		return nil, normalizeErr("patch", err)
	}
	if p.MsgID, err = asString(w.MsgID); err != nil {
		return nil, normalizeErr("patch", err)
	}
	if p.Name, err = asString(w.Name); err != nil {
		return nil, normalizeErr("patch", err)
	}
	if p.Project, err = asString(w.Project); err != nil {
		return nil, normalizeErr("patch", err)
	}
	if p.ProjectID, err = asInt(w.ProjectID); err != nil {
		return nil, normalizeErr("patch", err)
	}
	if p.State, err = asString(w.State); err != nil {
		return nil, normalizeErr("patch", err)
	}
	if p.StateID, err = asInt(w.StateID); err != nil {
		return nil, normalizeErr("patch", err)
	}
	if p.Archived, err = asBool(w.Archived); err != nil {
		return nil, normalizeErr("patch", err)
	}
	if p.Submitter, err = asString(w.Submitter); err != nil {
		return nil, normalizeErr("patch", err)
	}
	if p.SubmitterID, err = asInt(w.SubmitterID); err != nil {
		return nil, normalizeErr("patch", err)
	}
	if p.Delegate, err = asString(w.Delegate); err != nil {
		return nil, normalizeErr("patch", err)
	}
	if p.DelegateID, err = asInt(w.DelegateID); err != nil {
		return nil, normalizeErr("patch", err)
	}
	if p.CommitRef, err = asString(w.CommitRef); err != nil {
		return nil, normalizeErr("patch", err)
	}
	if p.Hash, err = asString(w.Hash); err != nil {
		return nil, normalizeErr("patch", err)
	}
	return p, nil
}

type xmlCheck struct {
	ID          any `xmlrpc:"id"`
	Date        any `xmlrpc:"date"`
	Patch       any `xmlrpc:"patch"`
	PatchID     any `xmlrpc:"patch_id"`
	User        any `xmlrpc:"user"`
	UserID      any `xmlrpc:"user_id"`
	State       any `xmlrpc:"state"`
	TargetURL   any `xmlrpc:"target_url"`
	Description any `xmlrpc:"description"`
	Context     any `xmlrpc:"context"`
}

func (w *xmlCheck) empty() bool { return w.ID == nil }

func (w *xmlCheck) canonical() (*api.Check, error) {
	c := &api.Check{}
	var err error
	if c.ID, err = asInt(w.ID); err != nil {
		return nil, normalizeErr("check", err)
	}
	if c.Date, err = asString(w.Date); err != nil {
		return nil, normalizeErr("check", err)
	}
	if c.Patch, err = asString(w.Patch); err != nil {
		return nil, normalizeErr("check", err)
	}
	if c.PatchID, err = asInt(w.PatchID); err != nil {
		return nil, normalizeErr("check", err)
	}
	if c.User, err = asString(w.User); err != nil {
		return nil, normalizeErr("check", err)
	}
	if c.UserID, err = asInt(w.UserID); err != nil {
		return nil, normalizeErr("check", err)
	}
	var state string
	if state, err = asString(w.State); err != nil {
		return nil, normalizeErr("check", err)
	}
	c.State = api.CheckState(state)
	if c.TargetURL, err = asString(w.TargetURL); err != nil {
		return nil, normalizeErr("check", err)
	}
	if c.Description, err = asString(w.Description); err != nil {
		return nil, normalizeErr("check", err)
	}
	if c.Context, err = asString(w.Context); err != nil {
		return nil, normalizeErr("check", err)
	}
	return c, nil
}

func normalizeErr(entity string, err error) error {
	return &api.APIError{
		Operation: "normalize " + entity,
		Message:   err.Error(),
	}
}
