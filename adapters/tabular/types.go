package tabular

// RawTable is the raw, untyped result of reading a tabular file: a header
// row and positional string cells, before any validation or derivation.
type RawTable struct {
	Headers []string
	Rows    [][]string
}
