package ena

// Taxonomy is the authoritative taxonomy of the organism a sample belongs
// to. It is sourced from the organism record, not from the free-form
// payload: taxonomy is curator data, not submitter input.
type Taxonomy struct {
	TaxonID        string
	ScientificName string
	CommonName     string
}

// SampleInput is everything needed to build one SAMPLE document.
type SampleInput struct {
	Alias     string
	Accession string
	Taxonomy  Taxonomy
	Payload   Payload
}

// injectedDefaults are appended to SAMPLE_ATTRIBUTES, in this order, for any
// key the payload does not already supply. Injection is idempotent: a
// payload-supplied value wins and no duplicate is added.
func (c Codec) injectedDefaults() []Attr {
	return []Attr{
		{Name: checklistKey, Value: c.ChecklistID},
		{Name: projectNameKey, Value: c.ProjectName},
		{Name: institutionKey, Value: notProvided},
	}
}

// SampleXML builds a SAMPLE_SET document for one sample.
func (c Codec) SampleXML(in SampleInput) (string, error) {
	if in.Alias == "" {
		return "", &ValidationError{Field: "alias", Reason: "must not be empty"}
	}

	payload := in.Payload
	if payload == nil {
		payload = Payload{}
	}

	root := NewElement("SAMPLE_SET")
	sample := root.Child("SAMPLE")
	c.entityAttrs(sample, in.Alias, in.Accession)

	identifiers(sample, in.Accession, in.Alias)

	title := payload.text("title")
	if title == "" {
		title = in.Alias
	}
	sample.TextChild("TITLE", title)

	name := sample.Child("SAMPLE_NAME")
	name.TextChild("TAXON_ID", in.Taxonomy.TaxonID)
	name.TextChild("SCIENTIFIC_NAME", in.Taxonomy.ScientificName)
	name.TextChild("COMMON_NAME", in.Taxonomy.CommonName)

	if payload.has("description") {
		sample.TextChild("DESCRIPTION", payload.text("description"))
	}

	attrs := sample.Child("SAMPLE_ATTRIBUTES")
	supplied := map[string]bool{}
	// Taxonomy keys are authoritative in SAMPLE_NAME and must not reappear
	// as attributes.
	for _, key := range payload.sortedKeys("title", "description", "taxon_id", "scientific_name", "common_name") {
		supplied[key] = true
		appendSampleAttribute(attrs, key, coerce(payload[key]))
	}
	for _, def := range c.injectedDefaults() {
		if supplied[def.Name] {
			continue
		}
		appendSampleAttribute(attrs, def.Name, def.Value)
	}

	return root.Render(), nil
}

func appendSampleAttribute(attrs *Element, tag, value string) {
	attr := attrs.Child("SAMPLE_ATTRIBUTE")
	attr.TextChild("TAG", tag)
	attr.TextChild("VALUE", value)
	if tag == latitudeKey || tag == longitudeKey {
		attr.TextChild("UNITS", geoUnits)
	}
}
