package cohort

import (
	"fmt"
	"sort"
)

// Cohort maps individual IDs to their records.
//
// The map form (rather than a slice) is deliberate: every downstream result
// is keyed by individual ID, so nothing relies on positional ordering, which
// matters once per-individual solves complete out of order.
type Cohort map[string]*Record

// New builds a cohort from records, rejecting duplicate IDs.
func New(records ...*Record) (Cohort, error) {
	c := make(Cohort, len(records))
	for _, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("nil record")
		}
		if _, dup := c[rec.ID]; dup {
			return nil, fmt.Errorf("duplicate individual ID %q", rec.ID)
		}
		c[rec.ID] = rec
	}

	return c, nil
}

// IDs returns the individual IDs in sorted order for deterministic output.
func (c Cohort) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Validate validates every record in the cohort.
func (c Cohort) Validate() error {
	for id, rec := range c {
		if rec == nil {
			return fmt.Errorf("individual %s: nil record", id)
		}
		if id != rec.ID {
			return fmt.Errorf("individual %s: record carries mismatched ID %q", id, rec.ID)
		}
		if err := rec.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Filter returns the sub-cohort of records satisfying keep.
// The records themselves are shared, not copied.
func (c Cohort) Filter(keep func(*Record) bool) Cohort {
	out := make(Cohort)
	for id, rec := range c {
		if keep(rec) {
			out[id] = rec
		}
	}

	return out
}

// Group names a study subset of the cohort.
type Group string

const (
	GroupAll             Group = "all"
	GroupWomen           Group = "women"
	GroupMen             Group = "men"
	GroupDidNotKnow      Group = "did_not_know"
	GroupMayHaveKnown    Group = "may_have_known"
	GroupWomenDidNotKnow Group = "women_did_not_know"
	GroupMenDidNotKnow   Group = "men_did_not_know"
)

// Groups lists all recognized group names.
func Groups() []Group {
	return []Group{
		GroupAll,
		GroupWomen,
		GroupMen,
		GroupDidNotKnow,
		GroupMayHaveKnown,
		GroupWomenDidNotKnow,
		GroupMenDidNotKnow,
	}
}

// Subset returns the sub-cohort for a named study group.
//
// The "did not know" groups keep individuals who were unaware of their well's
// arsenic level when the biomarker was sampled; "may have known" keeps the
// complement.
func (c Cohort) Subset(g Group) (Cohort, error) {
	switch g {
	case GroupAll:
		return c, nil
	case GroupWomen:
		return c.Filter(func(r *Record) bool { return r.Sex == SexFemale }), nil
	case GroupMen:
		return c.Filter(func(r *Record) bool { return r.Sex == SexMale }), nil
	case GroupDidNotKnow:
		return c.Filter(func(r *Record) bool { return !r.KnewWellArsenic }), nil
	case GroupMayHaveKnown:
		return c.Filter(func(r *Record) bool { return r.KnewWellArsenic }), nil
	case GroupWomenDidNotKnow:
		return c.Filter(func(r *Record) bool { return r.Sex == SexFemale && !r.KnewWellArsenic }), nil
	case GroupMenDidNotKnow:
		return c.Filter(func(r *Record) bool { return r.Sex == SexMale && !r.KnewWellArsenic }), nil
	default:
		return nil, fmt.Errorf("unknown cohort group %q", g)
	}
}
