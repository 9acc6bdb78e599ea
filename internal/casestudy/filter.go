package casestudy

// RevisionFilter answers whether a revision belongs to a case study. It holds
// a reference to the case study, so revisions included after the filter was
// created are accepted as well.
type RevisionFilter struct {
	cs *CaseStudy
}

// RevisionFilter returns a filter that only allows revisions of this case study
func (c *CaseStudy) RevisionFilter() RevisionFilter {
	return RevisionFilter{cs: c}
}

// Allows reports whether revision is part of the case study
func (f RevisionFilter) Allows(revision string) bool {
	return f.cs.HasRevision(revision)
}

// AsFunc returns the filter as a plain predicate
func (f RevisionFilter) AsFunc() func(string) bool {
	return f.Allows
}
