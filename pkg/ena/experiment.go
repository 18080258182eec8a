package ena

// ExperimentInput is everything needed to build one EXPERIMENT document.
// StudyRef and SampleRef must each resolve to an accession or a refname.
type ExperimentInput struct {
	Alias     string
	Accession string
	StudyRef  Reference
	SampleRef Reference
	Payload   Payload
}

// libraryKeys are the LIBRARY_DESCRIPTOR children carrying payload values,
// in their fixed schema order.
var libraryKeys = []struct {
	element string
	payload string
}{
	{"LIBRARY_NAME", "library_name"},
	{"LIBRARY_STRATEGY", "library_strategy"},
	{"LIBRARY_SOURCE", "library_source"},
	{"LIBRARY_SELECTION", "library_selection"},
	{"LIBRARY_CONSTRUCTION_PROTOCOL", "library_construction_protocol"},
	{"INSERT_SIZE", "insert_size"},
}

// ExperimentXML builds an EXPERIMENT_SET document for one experiment.
func (c Codec) ExperimentXML(in ExperimentInput) (string, error) {
	if in.Alias == "" {
		return "", &ValidationError{Field: "alias", Reason: "must not be empty"}
	}

	payload := in.Payload
	if payload == nil {
		payload = Payload{}
	}

	if !payload.has("platform") {
		return "", &ValidationError{Field: "platform", Reason: "is required"}
	}

	root := NewElement("EXPERIMENT_SET")
	experiment := root.Child("EXPERIMENT")
	c.entityAttrs(experiment, in.Alias, in.Accession)

	identifiers(experiment, in.Accession, in.Alias)

	title := payload.text("title")
	if title == "" {
		title = in.Alias
	}
	experiment.TextChild("TITLE", title)

	if err := in.StudyRef.apply(experiment.Child("STUDY_REF"), "study reference"); err != nil {
		return "", err
	}

	design := experiment.Child("DESIGN")
	design.TextChild("DESIGN_DESCRIPTION", payload.text("design_description"))
	if err := in.SampleRef.apply(design.Child("SAMPLE_DESCRIPTOR"), "sample reference"); err != nil {
		return "", err
	}

	library := design.Child("LIBRARY_DESCRIPTOR")
	for _, key := range libraryKeys {
		if payload.has(key.payload) {
			library.TextChild(key.element, payload.text(key.payload))
		}
	}
	layout := library.Child("LIBRARY_LAYOUT")
	if payload.text("library_layout") == "PAIRED" {
		paired := layout.Child("PAIRED")
		if payload.has("nominal_length") {
			paired.SetAttr("NOMINAL_LENGTH", payload.text("nominal_length"))
		}
	} else {
		layout.Child("SINGLE")
	}

	platform := experiment.Child("PLATFORM")
	instrument := platform.Child(payload.text("platform"))
	instrument.TextChild("INSTRUMENT_MODEL", payload.text("instrument_model"))

	if nested, ok := payload["attributes"].(map[string]interface{}); ok && len(nested) > 0 {
		attrPayload := Payload(nested)
		keys := attrPayload.sortedKeys()
		if len(keys) > 0 {
			attrs := experiment.Child("EXPERIMENT_ATTRIBUTES")
			for _, key := range keys {
				attr := attrs.Child("EXPERIMENT_ATTRIBUTE")
				attr.TextChild("TAG", key)
				attr.TextChild("VALUE", coerce(attrPayload[key]))
			}
		}
	}

	return root.Render(), nil
}
