package benchmark

import (
	"fmt"
	"testing"

	"github.com/atol-data/metadata-broker/pkg/ena"
)

func samplePayload() ena.Payload {
	return ena.Payload{
		"title":                                 "Litoria fallax liver tissue",
		"lifestage":                             "adult",
		"sex":                                   "female",
		"organism part":                         "liver",
		"geographic location (latitude)":        "-27.4698",
		"geographic location (longitude)":       "153.0251",
		"collection date":                       "2024-11-02",
		"collected_by":                          "Field Team 3",
		"geographic location (country and/or sea)": "Australia",
		"habitat":          "coastal swamp",
		"specimen_voucher": "AM R.183556",
	}
}

func BenchmarkSampleXML(b *testing.B) {
	codec := ena.NewCodec()
	input := ena.SampleInput{
		Alias:     "102.100.100/12345",
		Accession: "SAMEA112233",
		Taxonomy: ena.Taxonomy{
			TaxonID:        "104968",
			ScientificName: "Litoria fallax",
			CommonName:     "Eastern dwarf tree frog",
		},
		Payload: samplePayload(),
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := codec.SampleXML(input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRunSetXML(b *testing.B) {
	codec := ena.NewCodec()

	experimentRef := ena.Reference{Refname: "bpa-pkg-3001"}
	runs := make([]ena.RunInput, 0, 50)
	for i := 0; i < 50; i++ {
		runs = append(runs, ena.RunInput{
			Alias:         fmt.Sprintf("bpa-ds-%04d", i),
			ExperimentRef: experimentRef,
			Payload: ena.Payload{
				"filename": fmt.Sprintf("run%04d_R1.fastq.gz", i),
				"filetype": "fastq",
				"checksum": "d41d8cd98f00b204e9800998ecf8427e",
			},
		})
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := codec.RunSetXML(runs); err != nil {
			b.Fatal(err)
		}
	}
}
