package classify

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithTransferPolicy overrides the governing transfer-rule policy, e.g.
// for tests or a future rule revision.
func WithTransferPolicy(p TransferPolicy) Option {
	return func(c *Classifier) {
		if p.PreCutoffDays > 0 && p.PostCutoffDays > 0 && !p.Cutoff.IsZero() {
			c.policy = p
		}
	}
}
