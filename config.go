package ttree

// Config holds configuration for an evaluation session.
type Config struct {
	Debug         bool
	Approved      Severity // faults above this ceiling abort the batch
	Indent        string
	SectionMarker string
	LineEnd       string
}

// DefaultConfig returns the default configuration: the strictest
// escalation ceiling and the serializer format existing consumers
// expect.
func DefaultConfig() *Config {
	return &Config{
		Debug:         false,
		Approved:      SeverityWarning,
		Indent:        DefaultIndent,
		SectionMarker: DefaultSectionMarker,
		LineEnd:       DefaultLineEnd,
	}
}
