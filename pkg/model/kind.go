package model

//go:generate go run github.com/dmarkham/enumer -type Kind -trimprefix Kind -transform lower -json -sql -output kind.gen.go

// Kind identifies which source-record table a submission or fetched row
// refers to.
type Kind int

const (
	KindOrganism Kind = iota
	KindSample
	KindExperiment
	KindRead
	KindAssembly
)
