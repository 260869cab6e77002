package schema

import (
	"fmt"

	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// Policy decides the delete action of relationships declared with
// ActionDefault. Relationships declared restrict or cascade keep their
// declared action regardless of policy.
type Policy struct {
	Default Action
}

// PolicyFor maps a configured policy name to a Policy. An empty name selects
// cascade.
func PolicyFor(name string) (Policy, error) {
	switch name {
	case "", types.DeleteCascade:
		return Policy{Default: ActionCascade}, nil
	case types.DeleteRestrict:
		return Policy{Default: ActionRestrict}, nil
	default:
		return Policy{}, fmt.Errorf("%w: %q", types.ErrDeletePolicy, name)
	}
}

// Resolve returns the effective action for fk.
func (p Policy) Resolve(fk ForeignKey) Action {
	if fk.OnDelete != ActionDefault {
		return fk.OnDelete
	}
	if p.Default == ActionRestrict {
		return ActionRestrict
	}
	return ActionCascade
}

// Classify splits the relationships referencing the named table into those
// that block a delete and those that cascade it. Both slices keep
// declaration order.
func (s *Schema) Classify(name string, p Policy) (restrict, cascade []ForeignKey) {
	for _, fk := range s.Incoming(name) {
		switch p.Resolve(fk) {
		case ActionRestrict:
			restrict = append(restrict, fk)
		default:
			cascade = append(cascade, fk)
		}
	}
	return restrict, cascade
}
