package config

// Specification of requested output layout.
// ENUM(fragment, document)
type OutputLayout int

func (o OutputLayout) Standalone() bool {
	return o == OutputLayoutDocument
}
