package narration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		narration   string
		rule        string
		counterpart *string
		description *string
	}{
		{
			name:        "upi",
			narration:   "UPI-JOHN DOE-johndoe@bank-1234-Payment",
			rule:        RuleUPI,
			counterpart: ptr("JOHN DOE"),
		},
		{
			name:        "upi without name field",
			narration:   "UPI-",
			rule:        RuleUPI,
			counterpart: nil,
		},
		{
			name:        "pos",
			narration:   "POS 1234 AMAZON RETAIL",
			rule:        RulePOS,
			counterpart: ptr("AMAZON"),
			description: ptr("AMAZON RETAIL"),
		},
		{
			name:      "pos with too few tokens",
			narration: "POS 1234",
			rule:      RulePOS,
		},
		{
			name:        "neft",
			narration:   "NEFT-HDFC0001-ACME CORP-INV2024-REF",
			rule:        RuleWire,
			counterpart: ptr("ACME CORP"),
			description: ptr("INV2024"),
		},
		{
			name:        "rtgs anywhere in text",
			narration:   "BY RTGS-SBIN000-GLOBEX-SALARY",
			rule:        RuleWire,
			counterpart: ptr("GLOBEX"),
			description: ptr("GLOBEX"),
		},
		{
			name:        "wire with two fields",
			narration:   "NEFT-REFUND",
			rule:        RuleWire,
			description: ptr("REFUND"),
		},
		{
			name:        "cash deposit",
			narration:   "CASH DEPOSIT BY - RAHUL KUMAR - BRANCH123",
			rule:        RuleCashDeposit,
			counterpart: ptr("RAHUL KUMAR"),
			description: ptr("BRANCH123"),
		},
		{
			name:        "cash deposit without branch",
			narration:   "CASH DEPOSIT BY - RAHUL KUMAR",
			rule:        RuleCashDeposit,
			counterpart: ptr("RAHUL KUMAR"),
		},
		{
			name:        "fallback without dash",
			narration:   "CREDIT INTEREST CAPITALISED",
			rule:        RuleFallback,
			description: ptr("CREDIT INTEREST CAPITALISED"),
		},
		{
			name:        "fallback takes last segment",
			narration:   "ATM WDL-ATM CASH 1234-MG ROAD",
			rule:        RuleFallback,
			description: ptr("MG ROAD"),
		},
		{
			name:      "fallback trailing dash",
			narration: "CHQ PAID-",
			rule:      RuleFallback,
		},
		{
			name:      "empty narration",
			narration: "",
			rule:      RuleFallback,
		},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.narration)
			assert.Equal(t, tt.rule, got.Rule)
			assert.Equal(t, tt.counterpart, got.CounterpartyName)
			assert.Equal(t, tt.description, got.Description)
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// Both UPI and NEFT match; UPI is evaluated first.
	got := NewClassifier().Classify("UPI-NEFT PAYEE-x@y-1-z")
	assert.Equal(t, RuleUPI, got.Rule)
	assert.Equal(t, ptr("NEFT PAYEE"), got.CounterpartyName)
}

type staticRule struct{ name string }

func (r staticRule) Name() string       { return r.name }
func (r staticRule) Match(n string) bool { return n == "SALARY" }
func (r staticRule) Extract(string) Classification {
	return Classification{Rule: r.name, CounterpartyName: ptr("EMPLOYER")}
}

func TestNewClassifier_CustomRules(t *testing.T) {
	c := NewClassifier(append([]Rule{staticRule{name: "salary"}}, DefaultRules()...)...)
	assert.Len(t, c.Rules(), 6)

	got := c.Classify("SALARY")
	assert.Equal(t, "salary", got.Rule)
	assert.Equal(t, ptr("EMPLOYER"), got.CounterpartyName)

	assert.Equal(t, RulePOS, c.Classify("POS 1 SHOP").Rule)
}

func TestNewClassifier_NoMatch(t *testing.T) {
	c := NewClassifier(staticRule{name: "salary"})
	got := c.Classify("something else")
	assert.Equal(t, RuleFallback, got.Rule)
	assert.Nil(t, got.CounterpartyName)
	assert.Nil(t, got.Description)
}

func TestDefaultRules_Order(t *testing.T) {
	var names []string
	for _, r := range DefaultRules() {
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{RuleUPI, RulePOS, RuleWire, RuleCashDeposit, RuleFallback}, names)
}

func TestUPIKey(t *testing.T) {
	tests := []struct {
		narration string
		want      *string
	}{
		{"UPI-JOHN DOE-johndoe@okbank-123456-Payment", ptr("JOHN DOE")},
		{"UPI-SWIGGY-swiggy@icici-777-Food", ptr("SWIGGY")},
		{"NEFT-HDFC0001-ACME CORP-INV2024-REF", ptr("HDFC0001")},
		{"CASH DEPOSIT BY - RAHUL KUMAR - BRANCH123", ptr("RAHUL KUMAR")},
		{"ATM WDL-ATM CASH 1234-MG ROAD", ptr("ATM CASH 1234")},
		{"a@b-c-d", nil},
		{"POS 1234 AMAZON RETAIL", nil},
		{"UPI- -x@y", nil},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UPIKey(tt.narration), "narration %q", tt.narration)
	}
}

func TestUPIKey_DiffersFromClassifier(t *testing.T) {
	n := "NEFT-HDFC0001-ACME CORP-INV2024-REF"
	assert.Equal(t, ptr("HDFC0001"), UPIKey(n))
	assert.Equal(t, ptr("ACME CORP"), NewClassifier().Classify(n).CounterpartyName)
}
