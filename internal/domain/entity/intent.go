package entity

type OutputKind string

const (
	OutputList          OutputKind = "list"
	OutputSummary       OutputKind = "summary"
	OutputNumericSeries OutputKind = "numeric-series"
)

// Intent is the structured interpretation of a natural-language task.
type Intent struct {
	Subject    string
	WebsiteURL string
	Count      int // 0 means no explicit item count was requested
	Kind       OutputKind
}

// IntentOutcome tags how the intent was obtained: parsed from the model
// reply, or degraded to the whole task string when the reply was unusable.
type IntentOutcome struct {
	Intent   Intent
	Fallback bool
	RawReply string
}
