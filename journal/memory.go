package journal

// Memory accumulates records in process. It is the canonical sink for
// tests and for callers that assemble their own reports.
type Memory struct {
	Trades    []TradeRecord
	Summaries []PositionSummary
	Runs      []RunStats
}

func (m *Memory) RecordTrade(t TradeRecord) error {
	m.Trades = append(m.Trades, t)
	return nil
}

func (m *Memory) RecordSummary(s PositionSummary) error {
	m.Summaries = append(m.Summaries, s)
	return nil
}

func (m *Memory) RecordRun(r RunStats) error {
	m.Runs = append(m.Runs, r)
	return nil
}

func (m *Memory) Close() error { return nil }

// Discard drops every record.
type Discard struct{}

func (Discard) RecordTrade(TradeRecord) error       { return nil }
func (Discard) RecordSummary(PositionSummary) error { return nil }
func (Discard) RecordRun(RunStats) error            { return nil }
func (Discard) Close() error                        { return nil }

// Multi fans records out to several recorders, stopping at the first
// error. Close closes every recorder and returns the first error seen.
type Multi []Recorder

func (m Multi) RecordTrade(t TradeRecord) error {
	for _, r := range m {
		if err := r.RecordTrade(t); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) RecordSummary(s PositionSummary) error {
	for _, r := range m {
		if err := r.RecordSummary(s); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) RecordRun(rs RunStats) error {
	for _, r := range m {
		if err := r.RecordRun(rs); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Close() error {
	var first error
	for _, r := range m {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// WithRun stamps every record with the run ID before forwarding.
func WithRun(rec Recorder, runID string) Recorder {
	return runTagger{rec: rec, runID: runID}
}

type runTagger struct {
	rec   Recorder
	runID string
}

func (t runTagger) RecordTrade(r TradeRecord) error {
	r.RunID = t.runID
	return t.rec.RecordTrade(r)
}

func (t runTagger) RecordSummary(s PositionSummary) error {
	s.RunID = t.runID
	return t.rec.RecordSummary(s)
}

func (t runTagger) RecordRun(r RunStats) error {
	r.RunID = t.runID
	return t.rec.RecordRun(r)
}

func (t runTagger) Close() error { return t.rec.Close() }
