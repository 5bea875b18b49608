package scoring

import (
	"github.com/trueinsight/reviewtrust/internal/domain"
	"github.com/trueinsight/reviewtrust/internal/policy"
)

// LowActivityMax is the highest lifetime review count reported as low
// reviewer activity.
const LowActivityMax = 1

// Decide applies the category threshold to probability. Suspicious verdicts
// get explanatory reasons; genuine ones get none. Reasons never change the
// decision.
func Decide(rules policy.Rules, probability float64, fv domain.FeatureVector) (bool, []string) {
	if !rules.Suspicious(probability) {
		return false, []string{}
	}
	return true, Reasons(fv)
}

// Reasons lists the rule signals present in fv, or the model fallback when
// none are.
func Reasons(fv domain.FeatureVector) []string {
	var reasons []string
	if fv.DuplicateFlag {
		reasons = append(reasons, domain.ReasonDuplicate)
	}
	if fv.BurstFlag {
		reasons = append(reasons, domain.ReasonBurst)
	}
	if fv.UserReviewCount <= LowActivityMax {
		reasons = append(reasons, domain.ReasonLowActivity)
	}
	if len(reasons) == 0 {
		reasons = []string{domain.ReasonModel}
	}
	return reasons
}
