package ttree

// DiagnosticLog is the ordered, most-recent-first record of faults raised
// during a session. It grows only by appends during evaluation and is
// never pruned by the engine; hosts inspect it after the fact.
type DiagnosticLog struct {
	records []string
}

// Push appends a record as the most recent entry.
func (dl *DiagnosticLog) Push(record string) {
	dl.records = append(dl.records, record)
}

// Records returns the log, most recent first.
func (dl *DiagnosticLog) Records() []string {
	out := make([]string, len(dl.records))
	for i, r := range dl.records {
		out[len(dl.records)-1-i] = r
	}
	return out
}

// Len returns the number of records.
func (dl *DiagnosticLog) Len() int {
	return len(dl.records)
}
