package analysis

import (
	tpd "github.com/gofhir/tpd"
)

// classify fills the derived classification columns of one joined
// observation: culture membership, pending under the active policy, and
// the day bucket for pending rows.
func (a *Analyzer) classify(o *tpd.JoinedObservation) {
	_, o.Culture = a.cultureSet[o.LabCode]

	// Only observations that joined and have a computable delay are
	// classifiable; this is where NaN delays drop out under both
	// policies.
	if !o.HasDelay() {
		o.Pending = false
		return
	}

	switch a.opts.Policy {
	case tpd.PolicyStatus:
		o.Pending = o.Status != "" && o.Status != tpd.StatusFinal
	default:
		o.Pending = o.DelayDays > 0
	}

	if o.Pending {
		o.BucketLabel = tpd.BucketFor(o.DelayDays).String()
	}
}

// category returns the distribution category of a pending observation:
// the Cultures/Other split under PolicyDelay, the status value under
// PolicyStatus.
func (a *Analyzer) category(o *tpd.JoinedObservation) string {
	if a.opts.Policy == tpd.PolicyStatus {
		return o.Status
	}
	if o.Culture {
		return tpd.CategoryCultures
	}
	return tpd.CategoryOther
}
