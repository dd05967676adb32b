package api

import "strconv"

// Fields returns the patch as ordered key/value pairs, sorted by key.
// Identifier fields that are unknown (0) render as empty strings, matching
// the behavior of backends that do not expose them.
func (p *Patch) Fields() []Field {
	return []Field{
		{"archived", strconv.FormatBool(p.Archived)},
		{"commit_ref", p.CommitRef},
		{"date", p.Date},
		{"delegate", p.Delegate},
		{"delegate_id", zeroableID(p.DelegateID)},
		{"filename", p.Filename},
		{"hash", p.Hash},
		{"id", strconv.Itoa(p.ID)},
		{"msgid", p.MsgID},
		{"name", p.Name},
		{"project", p.Project},
		{"project_id", strconv.Itoa(p.ProjectID)},
		{"state", p.State},
		{"state_id", zeroableID(p.StateID)},
		{"submitter", p.Submitter},
		{"submitter_id", strconv.Itoa(p.SubmitterID)},
	}
}

// Fields returns the check as ordered key/value pairs, sorted by key.
func (c *Check) Fields() []Field {
	return []Field{
		{"context", c.Context},
		{"date", c.Date},
		{"description", c.Description},
		{"id", strconv.Itoa(c.ID)},
		{"patch", c.Patch},
		{"patch_id", strconv.Itoa(c.PatchID)},
		{"state", string(c.State)},
		{"target_url", c.TargetURL},
		{"user", c.User},
		{"user_id", zeroableID(c.UserID)},
	}
}

func zeroableID(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}
