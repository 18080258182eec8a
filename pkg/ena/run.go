package ena

// RunInput is one RUN element of a RUN_SET document. ExperimentRef must
// resolve to an accession or a refname.
type RunInput struct {
	Alias         string
	Accession     string
	ExperimentRef Reference
	Payload       Payload
}

// fileAttrs are the DATA_BLOCK/FILES/FILE attributes sourced from the
// payload, in their fixed serialization order. checksum_method is fixed to
// MD5 and emitted only alongside a checksum.
var fileAttrs = []struct {
	attr    string
	payload string
}{
	{"filename", "filename"},
	{"filetype", "filetype"},
	{"checksum", "checksum"},
}

// RunSetXML builds a RUN_SET document. Callers batch all runs for one
// experiment into a single document; a set with no runs is a validation
// error.
func (c Codec) RunSetXML(runs []RunInput) (string, error) {
	if len(runs) == 0 {
		return "", &ValidationError{Field: "runs", Reason: "must not be empty"}
	}

	root := NewElement("RUN_SET")
	for _, in := range runs {
		if in.Alias == "" {
			return "", &ValidationError{Field: "alias", Reason: "must not be empty"}
		}

		payload := in.Payload
		if payload == nil {
			payload = Payload{}
		}

		run := root.Child("RUN")
		c.entityAttrs(run, in.Alias, in.Accession)

		identifiers(run, in.Accession, in.Alias)

		if err := in.ExperimentRef.apply(run.Child("EXPERIMENT_REF"), "experiment reference"); err != nil {
			return "", err
		}

		file := run.Child("DATA_BLOCK").Child("FILES").Child("FILE")
		for _, key := range fileAttrs {
			if !payload.has(key.payload) {
				continue
			}
			file.SetAttr(key.attr, payload.text(key.payload))
			if key.attr == "checksum" {
				file.SetAttr("checksum_method", checksumMethod)
			}
		}
	}

	return root.Render(), nil
}
