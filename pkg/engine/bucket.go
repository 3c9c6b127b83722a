package engine

import (
	"github.com/katpally123/attendance-dashboard/pkg/config"
	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

// BucketOther tags people no bucket claims.
const BucketOther = "Other"

// Bucketer assigns each person to at most one department bucket.
type Bucketer struct {
	order  []string
	claim  []string
	member map[string]func(schema.EnrichedPerson) bool
}

// NewBucketer compiles the department definitions in settings into membership
// predicates:
//   - a bucket claims a person whose department id is in its dept_ids
//   - area-restricted buckets also require an exact management area match
//   - dept ids of a bucket that subtracts from another are removed from the other
//
// Remaining overlaps are settled by the claim order: the first bucket that
// claims a person wins, so the result is always a partition.
func NewBucketer(settings config.Settings) *Bucketer {
	subtracted := make(map[string]map[string]struct{})
	for _, def := range settings.Departments {
		for _, target := range def.SubtractsFrom {
			if subtracted[target] == nil {
				subtracted[target] = make(map[string]struct{})
			}
			for _, id := range def.DeptIDs {
				subtracted[target][id] = struct{}{}
			}
		}
	}

	b := &Bucketer{
		order:  settings.Buckets(),
		member: make(map[string]func(schema.EnrichedPerson) bool, len(settings.Departments)),
	}
	for name, def := range settings.Departments {
		b.member[name] = membership(def, subtracted[name])
	}

	claimed := make(map[string]struct{}, len(settings.ClaimOrder))
	for _, name := range settings.ClaimOrder {
		if _, ok := b.member[name]; ok {
			b.claim = append(b.claim, name)
			claimed[name] = struct{}{}
		}
	}
	// Buckets missing from the claim order claim last, in display order.
	for _, name := range b.order {
		if _, ok := claimed[name]; !ok {
			b.claim = append(b.claim, name)
		}
	}

	return b
}

func membership(def config.BucketDef, excluded map[string]struct{}) func(schema.EnrichedPerson) bool {
	ids := make(map[string]struct{}, len(def.DeptIDs))
	for _, id := range def.DeptIDs {
		if _, skip := excluded[id]; !skip {
			ids[id] = struct{}{}
		}
	}
	area := def.ManagementAreaID

	return func(p schema.EnrichedPerson) bool {
		if _, ok := ids[p.DepartmentID]; !ok {
			return false
		}
		return area == "" || p.ManagementAreaID == area
	}
}

// Order returns the bucket names in display order.
func (b *Bucketer) Order() []string {
	return append([]string(nil), b.order...)
}

// Assign returns the bucket that claims p, or BucketOther.
func (b *Bucketer) Assign(p schema.EnrichedPerson) string {
	for _, name := range b.claim {
		if b.member[name](p) {
			return name
		}
	}
	return BucketOther
}

// Partition groups people by bucket. Every configured bucket has an entry,
// possibly empty; unclaimed people are returned separately.
func (b *Bucketer) Partition(people []schema.EnrichedPerson) (groups map[string][]schema.EnrichedPerson, other []schema.EnrichedPerson) {
	groups = make(map[string][]schema.EnrichedPerson, len(b.order))
	for _, name := range b.order {
		groups[name] = nil
	}
	for _, p := range people {
		name := b.Assign(p)
		if name == BucketOther {
			other = append(other, p)
			continue
		}
		groups[name] = append(groups[name], p)
	}
	return groups, other
}
