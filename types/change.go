package types

// Action is a single low-level operation planned for a resource
type Action string

const (
	ActionNoOp   Action = "no-op"
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"

	// ActionOther marks action values this tool does not know about.
	// Plans from newer Terraform releases must still summarize.
	ActionOther Action = "other"
)

// ResourceChange is one planned mutation to one resource.
// The decoder expands compound plan actions (delete-then-create,
// create-then-delete) into the ordered two-element action list.
type ResourceChange struct {
	Addr    string   `json:"addr,omitempty"`
	Actions []Action `json:"actions"`
}

// HasAction reports whether the change includes the given action
func (rc ResourceChange) HasAction(a Action) bool {
	for _, action := range rc.Actions {
		if action == a {
			return true
		}
	}
	return false
}
