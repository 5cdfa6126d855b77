package core

// Metrics receives workflow events worth counting.
type Metrics interface {
	GroupCreated(subject string)
	UploadAdded(subject string)
	SubmissionAccepted(subject string)
	SubmissionRejected(subject, reason string)
	GradeSaved(subject string)
}

// NopMetrics discards every event.
type NopMetrics struct{}

var _ Metrics = NopMetrics{}

func (NopMetrics) GroupCreated(string)               {}
func (NopMetrics) UploadAdded(string)                {}
func (NopMetrics) SubmissionAccepted(string)         {}
func (NopMetrics) SubmissionRejected(string, string) {}
func (NopMetrics) GradeSaved(string)                 {}
