package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atol-data/metadata-broker/pkg/model"
)

func TestDeriveSubmissionSample(t *testing.T) {
	payload := map[string]interface{}{
		"lifestage":             "adult",
		"latitude":              -35.28,
		"organism_grouping_key": "amborella",
		"unmapped":              "dropped",
	}

	submission := DeriveSubmission(model.KindSample, payload)
	require.NotNil(t, submission)

	assert.Equal(t, "adult", submission["lifestage"])
	assert.Equal(t, -35.28, submission["geographic location (latitude)"])
	assert.NotContains(t, submission, "organism_grouping_key")
	assert.NotContains(t, submission, "unmapped")

	// Keys absent from the payload are absent, not defaulted.
	assert.NotContains(t, submission, "collection date")
}

func TestDeriveSubmissionExperimentRenamesFields(t *testing.T) {
	submission := DeriveSubmission(model.KindExperiment, map[string]interface{}{
		"library_type":        "WGS",
		"sequencing_platform": "ILLUMINA",
		"sequencing_model":    "Illumina NovaSeq 6000",
	})
	require.NotNil(t, submission)

	assert.Equal(t, "WGS", submission["library_strategy"])
	assert.Equal(t, "ILLUMINA", submission["platform"])
	assert.Equal(t, "Illumina NovaSeq 6000", submission["instrument_model"])
}

func TestDeriveSubmissionUnstagedKinds(t *testing.T) {
	assert.Nil(t, DeriveSubmission(model.KindOrganism, map[string]interface{}{"taxon_id": "1"}))
	assert.Nil(t, DeriveSubmission(model.KindAssembly, map[string]interface{}{"name": "asm1"}))
}
