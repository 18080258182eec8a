package ena

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTaxonomy = Taxonomy{
	TaxonID:        "13333",
	ScientificName: "Amborella trichopoda",
	CommonName:     "amborella",
}

func TestSampleXMLBasic(t *testing.T) {
	codec := NewCodec()
	doc, err := codec.SampleXML(SampleInput{
		Alias:    "102.100.100/12345",
		Taxonomy: testTaxonomy,
		Payload: Payload{
			"title":           "Amborella leaf sample",
			"description":     "leaf tissue",
			"lifestage":       "adult",
			"collection date": "2023-04-01",
		},
	})
	require.NoError(t, err)
	mustParse(t, doc)

	assert.Contains(t, doc, `<SAMPLE alias="102.100.100/12345" center_name="AToL" broker_name="AToL">`)
	assert.Contains(t, doc, "<SUBMITTER_ID>102.100.100/12345</SUBMITTER_ID>")
	assert.Contains(t, doc, "<TITLE>Amborella leaf sample</TITLE>")
	assert.Contains(t, doc, "<TAXON_ID>13333</TAXON_ID>")
	assert.Contains(t, doc, "<SCIENTIFIC_NAME>Amborella trichopoda</SCIENTIFIC_NAME>")
	assert.Contains(t, doc, "<COMMON_NAME>amborella</COMMON_NAME>")
	assert.Contains(t, doc, "<DESCRIPTION>leaf tissue</DESCRIPTION>")

	// No accession resolved yet: no accession attribute, no PRIMARY_ID.
	assert.NotContains(t, doc, "accession=")
	assert.NotContains(t, doc, "PRIMARY_ID")

	// Reserved keys never leak into the attribute list.
	assert.NotContains(t, doc, "<TAG>title</TAG>")
	assert.NotContains(t, doc, "<TAG>description</TAG>")
	assert.Contains(t, doc, "<TAG>lifestage</TAG>")
}

func TestSampleXMLTaxonomyKeysStayInSampleName(t *testing.T) {
	codec := NewCodec()
	doc, err := codec.SampleXML(SampleInput{
		Alias:    "102.100.100/12345",
		Taxonomy: testTaxonomy,
		Payload: Payload{
			"taxon_id":        "99999",
			"scientific_name": "Wrongus nameus",
			"common_name":     "wrong",
			"lifestage":       "adult",
		},
	})
	require.NoError(t, err)
	mustParse(t, doc)

	// SAMPLE_NAME carries the resolved taxonomy; payload copies of the
	// taxonomy keys never become SAMPLE_ATTRIBUTEs.
	assert.Contains(t, doc, "<TAXON_ID>13333</TAXON_ID>")
	assert.NotContains(t, doc, "<TAG>taxon_id</TAG>")
	assert.NotContains(t, doc, "<TAG>scientific_name</TAG>")
	assert.NotContains(t, doc, "<TAG>common_name</TAG>")
	assert.NotContains(t, doc, "99999")
	assert.NotContains(t, doc, "Wrongus nameus")
	assert.Contains(t, doc, "<TAG>lifestage</TAG>")
}

func TestSampleXMLAccession(t *testing.T) {
	codec := NewCodec()
	doc, err := codec.SampleXML(SampleInput{
		Alias:     "102.100.100/12345",
		Accession: "ERS0000001",
		Taxonomy:  testTaxonomy,
	})
	require.NoError(t, err)
	mustParse(t, doc)

	assert.Contains(t, doc, `accession="ERS0000001"`)
	assert.Contains(t, doc, "<PRIMARY_ID>ERS0000001</PRIMARY_ID>")
}

func TestSampleXMLTitleDefaultsToAlias(t *testing.T) {
	codec := NewCodec()
	doc, err := codec.SampleXML(SampleInput{
		Alias:    "sample-77",
		Taxonomy: testTaxonomy,
	})
	require.NoError(t, err)
	assert.Contains(t, doc, "<TITLE>sample-77</TITLE>")
}

func TestSampleXMLSkipsNullValues(t *testing.T) {
	codec := NewCodec()
	doc, err := codec.SampleXML(SampleInput{
		Alias:    "sample-77",
		Taxonomy: testTaxonomy,
		Payload: Payload{
			"lifestage": nil,
			"sex":       "female",
		},
	})
	require.NoError(t, err)
	mustParse(t, doc)

	assert.NotContains(t, doc, "lifestage")
	assert.Contains(t, doc, "<TAG>sex</TAG>")
}

func TestSampleXMLChecklistInjection(t *testing.T) {
	codec := NewCodec()

	t.Run("injected when absent", func(t *testing.T) {
		doc, err := codec.SampleXML(SampleInput{Alias: "s", Taxonomy: testTaxonomy})
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(doc, "<TAG>ENA-CHECKLIST</TAG>"))
		assert.Contains(t, doc, "<VALUE>ERC000053</VALUE>")
		assert.Equal(t, 1, strings.Count(doc, "<TAG>project name</TAG>"))
		assert.Equal(t, 1, strings.Count(doc, "<TAG>collecting institution</TAG>"))
		assert.Contains(t, doc, "<VALUE>not provided</VALUE>")
	})

	t.Run("payload value wins", func(t *testing.T) {
		doc, err := codec.SampleXML(SampleInput{
			Alias:    "s",
			Taxonomy: testTaxonomy,
			Payload:  Payload{"ENA-CHECKLIST": "ERC000011"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(doc, "<TAG>ENA-CHECKLIST</TAG>"))
		assert.Contains(t, doc, "<VALUE>ERC000011</VALUE>")
		assert.NotContains(t, doc, "ERC000053")
	})
}

func TestSampleXMLGeographicUnits(t *testing.T) {
	codec := NewCodec()
	doc, err := codec.SampleXML(SampleInput{
		Alias:    "s",
		Taxonomy: testTaxonomy,
		Payload: Payload{
			"geographic location (latitude)":  -35.28,
			"geographic location (longitude)": 149.13,
			"lifestage":                       "adult",
		},
	})
	require.NoError(t, err)
	mustParse(t, doc)

	assert.Equal(t, 2, strings.Count(doc, "<UNITS>DD</UNITS>"))
	assert.Contains(t, doc, "<VALUE>-35.28</VALUE>")
	assert.Contains(t, doc, "<VALUE>149.13</VALUE>")
}

func TestSampleXMLDeterministic(t *testing.T) {
	codec := NewCodec()
	input := SampleInput{
		Alias:    "s",
		Taxonomy: testTaxonomy,
		Payload: Payload{
			"zulu":     "z",
			"alpha":    "a",
			"mike":     "m",
			"november": 11,
			"bravo":    true,
		},
	}

	first, err := codec.SampleXML(input)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		next, err := codec.SampleXML(input)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}

	// Payload attributes come out sorted, defaults appended after.
	alpha := strings.Index(first, "<TAG>alpha</TAG>")
	zulu := strings.Index(first, "<TAG>zulu</TAG>")
	checklist := strings.Index(first, "<TAG>ENA-CHECKLIST</TAG>")
	assert.Less(t, alpha, zulu)
	assert.Less(t, zulu, checklist)
}

func TestSampleXMLRequiresAlias(t *testing.T) {
	codec := NewCodec()
	_, err := codec.SampleXML(SampleInput{Taxonomy: testTaxonomy})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "alias", verr.Field)
}
