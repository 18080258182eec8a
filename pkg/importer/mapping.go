package importer

import "github.com/atol-data/metadata-broker/pkg/model"

// Field-mapping tables from external provider field names to the internal
// submission keys. Only keys present in the mapping AND present in the
// payload are copied into submission_json; missing keys are simply absent,
// never defaulted at staging time (defaults are the codec's job).

var sampleMapping = map[string]string{
	"title":               "title",
	"description":         "description",
	"lifestage":           "lifestage",
	"sex":                 "sex",
	"tissue":              "organism part",
	"latitude":            "geographic location (latitude)",
	"longitude":           "geographic location (longitude)",
	"collection_date":     "collection date",
	"collector":           "collected_by",
	"collection_location": "geographic location (region and locality)",
	"country":             "geographic location (country and/or sea)",
	"habitat":             "habitat",
	"voucher_id":          "specimen_voucher",
	"specimen_custodian":  "sample custodian",
}

var experimentMapping = map[string]string{
	"title":                         "title",
	"description":                   "design_description",
	"library_id":                    "library_name",
	"library_type":                  "library_strategy",
	"library_source":                "library_source",
	"library_selection":             "library_selection",
	"library_construction_protocol": "library_construction_protocol",
	"insert_size_range":             "insert_size",
	"library_layout":                "library_layout",
	"nominal_length":                "nominal_length",
	"sequencing_platform":           "platform",
	"sequencing_model":              "instrument_model",
}

var readMapping = map[string]string{
	"file_name": "filename",
	"file_type": "filetype",
	"md5":       "checksum",
}

func mappingFor(kind model.Kind) map[string]string {
	switch kind {
	case model.KindSample:
		return sampleMapping
	case model.KindExperiment:
		return experimentMapping
	case model.KindRead:
		return readMapping
	default:
		// Organisms and assemblies are tracked but not staged from bulk
		// data; they have no mapping table.
		return nil
	}
}

// DeriveSubmission copies payload values through the kind's static mapping
// table. A nil result means the kind has no mapping and no staging row
// should be created.
func DeriveSubmission(kind model.Kind, payload map[string]interface{}) map[string]interface{} {
	mapping := mappingFor(kind)
	if mapping == nil {
		return nil
	}

	submission := map[string]interface{}{}
	for external, internal := range mapping {
		if value, ok := payload[external]; ok {
			submission[internal] = value
		}
	}
	return submission
}
