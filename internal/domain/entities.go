package domain

// Token is one lexical unit flowing through a token stream.
// Position and byte offsets belong to the producer; filters only replace Text.
type Token struct {
	Text      string `json:"text"`
	Position  int    `json:"position"`
	StartByte int    `json:"start"`
	EndByte   int    `json:"end"`
}

// FilterStats counts what a single filter instance has seen.
type FilterStats struct {
	Pulled  int `json:"pulled"`
	Emitted int `json:"emitted"`
}

// Dropped returns the number of pulled tokens that were not emitted.
func (s FilterStats) Dropped() int {
	return s.Pulled - s.Emitted
}

type FileResult struct {
	Path          string `json:"path"`
	TokensRead    int    `json:"tokens_read"`
	TokensWritten int    `json:"tokens_written"`
	TokensDropped int    `json:"tokens_dropped"`
}
