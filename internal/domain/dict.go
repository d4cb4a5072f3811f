package domain

// ProviderKind identifies a vocabulary-notebook service. The numeric values
// match the dict_type configuration option.
type ProviderKind int

const (
	ProviderYoudao  ProviderKind = 1
	ProviderEudic   ProviderKind = 2
	ProviderShanbay ProviderKind = 3
)

func (k ProviderKind) String() string {
	switch k {
	case ProviderYoudao:
		return "youdao"
	case ProviderEudic:
		return "eudic"
	case ProviderShanbay:
		return "shanbay"
	default:
		return "unknown"
	}
}

// DictionaryTarget names where extracted words should be written. NotebookID
// is only meaningful for Eudic.
type DictionaryTarget struct {
	Provider   ProviderKind
	Credential string
	NotebookID string
}

// WriteOutcome is the per-word result of a dictionary write.
type WriteOutcome struct {
	Word    string
	OK      bool
	Message string
}

// FailedWord pairs a word with the reason its write was rejected.
type FailedWord struct {
	Word   string
	Reason string
}

// BatchReport aggregates write outcomes in input (ranking) order.
type BatchReport struct {
	Success []string
	Failed  []FailedWord
}

// Add records a single outcome into the report.
func (r *BatchReport) Add(o WriteOutcome) {
	if o.OK {
		r.Success = append(r.Success, o.Word)
		return
	}
	r.Failed = append(r.Failed, FailedWord{Word: o.Word, Reason: o.Message})
}
