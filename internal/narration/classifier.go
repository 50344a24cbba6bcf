// Package narration classifies free-text statement narrations into a
// counterparty name and a description.
//
// Two projections of the same narration are exposed and must not be mixed:
// Classifier produces the display pair (counterparty name, description),
// and UPIKey produces the coarse key that per-counterparty spending is
// grouped by.
package narration

import "strings"

// Classification is the outcome of classifying one narration. Nil fields
// are absent.
type Classification struct {
	Rule             string
	CounterpartyName *string
	Description      *string
}

// Rule is one pattern → extractor pair. Rules are pure functions of the
// narration text.
type Rule interface {
	Name() string
	Match(narration string) bool
	Extract(narration string) Classification
}

// Classifier evaluates rules in order; the first match wins.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a Classifier over rules. With no rules it uses
// DefaultRules.
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Rules returns the rules in evaluation order.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Classify returns the classification from the first matching rule. An
// empty narration, or one no rule matches, classifies as fallback with both
// fields absent.
func (c *Classifier) Classify(narration string) Classification {
	if narration == "" {
		return Classification{Rule: RuleFallback}
	}
	for _, r := range c.rules {
		if r.Match(narration) {
			return r.Extract(narration)
		}
	}
	return Classification{Rule: RuleFallback}
}

// UPIKey returns the coarse counterparty key: the text before the first
// "@", split on "-", second segment, trimmed. Nil when there are fewer
// than two segments or the segment is blank.
func UPIKey(narration string) *string {
	prefix, _, _ := strings.Cut(narration, "@")
	segments := strings.Split(prefix, "-")
	if len(segments) < 2 {
		return nil
	}
	return present(strings.TrimSpace(segments[1]))
}
