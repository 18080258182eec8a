package ena

// Reference points at a registry entity (study, sample or experiment) either
// by its registry accession or by a submitter-chosen refname. At least one
// of the two must be set; the accession wins when both are available.
type Reference struct {
	Accession string
	Refname   string
}

// IsZero reports whether the reference resolves to nothing.
func (r Reference) IsZero() bool {
	return r.Accession == "" && r.Refname == ""
}

// apply sets the resolved reference attribute on a reference element
// (STUDY_REF, SAMPLE_DESCRIPTOR, EXPERIMENT_REF). A reference that resolves
// to nothing is a validation error, never an attribute-less element.
func (r Reference) apply(e *Element, field string) error {
	if r.Accession != "" {
		e.SetAttr("accession", r.Accession)
		return nil
	}
	if r.Refname != "" {
		e.SetAttr("refname", r.Refname)
		return nil
	}
	return &ValidationError{Field: field, Reason: "requires an accession or a refname"}
}
