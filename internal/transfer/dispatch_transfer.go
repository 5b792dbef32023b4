package transfer

// BatchResult reports one dispatcher run.
type BatchResult struct {
	Posted  int `json:"posted"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Eligible is the number of posts that went through a publish decision.
func (r BatchResult) Eligible() int {
	return r.Posted + r.Failed
}

// AllFailed reports whether the run had eligible work and produced zero
// successful transitions. This is the only condition under which a batch as a
// whole is reported as unhealthy; individual failures never change the
// outcome for the others.
func (r BatchResult) AllFailed() bool {
	return r.Eligible() > 0 && r.Posted == 0
}
