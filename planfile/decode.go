// Package planfile decodes binary Terraform plan artifacts.
//
// A plan artifact is a zip container whose "tfplan" entry holds a
// protobuf message in Terraform's planproto schema. The summarizer
// only needs the plan version and the action of each resource change,
// so this package walks the wire format directly with protowire
// instead of carrying generated bindings for the full schema.
package planfile

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/mkarlsen/plansum/types"
)

// SupportedVersion is the plan file format version this tool reads
const SupportedVersion = 3

// Field numbers from Terraform's planproto schema. Everything not
// listed here is skipped with wire-type-aware consumption.
const (
	fieldPlanVersion         = 1
	fieldPlanResourceChanges = 3
	fieldPlanResourceDrift   = 18
	fieldPlanDeferredChanges = 26

	fieldResourceChangeAddr   = 13
	fieldResourceChangeChange = 4

	fieldChangeAction = 1
)

// Action enum values from planproto. Value 4 is unassigned upstream.
const (
	actionNoOp             = 0
	actionCreate           = 1
	actionRead             = 2
	actionUpdate           = 3
	actionDelete           = 5
	actionDeleteThenCreate = 6
	actionCreateThenDelete = 7
)

var (
	// ErrUnsupportedVersion means the artifact uses a plan file format
	// version other than SupportedVersion.
	ErrUnsupportedVersion = errors.New("unsupported plan file version")

	// ErrDeferredChanges means the plan contains deferred resource
	// changes, which cannot be counted meaningfully.
	ErrDeferredChanges = errors.New("plan contains deferred changes")
)

// DecodeError reports a plan artifact that could not be decoded
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode plan %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Plan is the subset of a decoded plan artifact the summarizer needs
type Plan struct {
	Version       uint64
	Changes       []types.ResourceChange
	Drift         []types.ResourceChange
	DeferredCount int
}

// Decode parses raw planproto bytes. Unknown fields are skipped and
// unknown action values decode to ActionOther, so plans written by
// newer Terraform releases still summarize. Truncated or malformed
// input fails as a whole.
func Decode(data []byte) (*Plan, error) {
	plan := &Plan{}

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("malformed plan message: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldPlanVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("malformed version field: %w", protowire.ParseError(n))
			}
			plan.Version = v
			data = data[n:]

		case num == fieldPlanResourceChanges && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("malformed resource change: %w", protowire.ParseError(n))
			}
			rc, err := decodeResourceChange(msg)
			if err != nil {
				return nil, err
			}
			plan.Changes = append(plan.Changes, rc)
			data = data[n:]

		case num == fieldPlanResourceDrift && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("malformed drift entry: %w", protowire.ParseError(n))
			}
			rc, err := decodeResourceChange(msg)
			if err != nil {
				return nil, err
			}
			plan.Drift = append(plan.Drift, rc)
			data = data[n:]

		case num == fieldPlanDeferredChanges && typ == protowire.BytesType:
			_, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("malformed deferred change: %w", protowire.ParseError(n))
			}
			plan.DeferredCount++
			data = data[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("malformed field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}

	return plan, nil
}

// Validate gates decoded plans the summarizer refuses to count
func (p *Plan) Validate() error {
	if p.Version != SupportedVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrUnsupportedVersion, p.Version, SupportedVersion)
	}
	if p.DeferredCount > 0 {
		return fmt.Errorf("%w: %d entries", ErrDeferredChanges, p.DeferredCount)
	}
	return nil
}

// decodeResourceChange parses one ResourceInstanceChange sub-message
func decodeResourceChange(data []byte) (types.ResourceChange, error) {
	var rc types.ResourceChange

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return rc, fmt.Errorf("malformed resource change message: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldResourceChangeAddr && typ == protowire.BytesType:
			addr, n := protowire.ConsumeString(data)
			if n < 0 {
				return rc, fmt.Errorf("malformed resource address: %w", protowire.ParseError(n))
			}
			rc.Addr = addr
			data = data[n:]

		case num == fieldResourceChangeChange && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return rc, fmt.Errorf("malformed change message: %w", protowire.ParseError(n))
			}
			actions, err := decodeChange(msg)
			if err != nil {
				return rc, err
			}
			rc.Actions = actions
			data = data[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return rc, fmt.Errorf("malformed resource change field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}

	return rc, nil
}

// decodeChange parses a Change sub-message into its action list
func decodeChange(data []byte) ([]types.Action, error) {
	var actions []types.Action

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("malformed change message: %w", protowire.ParseError(n))
		}
		data = data[n:]

		if num == fieldChangeAction && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("malformed action field: %w", protowire.ParseError(n))
			}
			actions = append(actions, expandAction(v)...)
			data = data[n:]
			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, data)
		if n < 0 {
			return nil, fmt.Errorf("malformed change field %d: %w", num, protowire.ParseError(n))
		}
		data = data[n:]
	}

	return actions, nil
}

// expandAction maps a planproto action value to the ordered action
// list. Compound actions expand to their two steps in execution order.
func expandAction(v uint64) []types.Action {
	switch v {
	case actionNoOp:
		return []types.Action{types.ActionNoOp}
	case actionCreate:
		return []types.Action{types.ActionCreate}
	case actionRead:
		return []types.Action{types.ActionRead}
	case actionUpdate:
		return []types.Action{types.ActionUpdate}
	case actionDelete:
		return []types.Action{types.ActionDelete}
	case actionDeleteThenCreate:
		return []types.Action{types.ActionDelete, types.ActionCreate}
	case actionCreateThenDelete:
		return []types.Action{types.ActionCreate, types.ActionDelete}
	default:
		return []types.Action{types.ActionOther}
	}
}
