package domain

// ExtractionOutcome is the full record of one completion-gateway call. It is
// always produced, whether or not the call went anywhere: config problems and
// transport failures land here instead of propagating as errors.
//
// Words is in the model's ranking order, deduplicated, and every entry has been
// re-validated locally. OK reflects the HTTP status only; a 2xx response that
// yields zero usable words is still OK.
type ExtractionOutcome struct {
	OK           bool
	StatusCode   int
	Words        []string
	RawBody      string
	TimingMs     int64
	RequestURL   string
	Model        string
	Endpoint     string
	RequestID    string
	ErrorMessage string
}
