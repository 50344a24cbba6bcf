package narration

import "strings"

// Rule names.
const (
	RuleUPI         = "upi"
	RulePOS         = "pos"
	RuleWire        = "wire"
	RuleCashDeposit = "cash_deposit"
	RuleFallback    = "fallback"
)

// UpiRule handles UPI transfers: "UPI-<name>-<handle>@<bank>-<ref>-<note>".
type UpiRule struct{}

func (UpiRule) Name() string { return RuleUPI }

func (UpiRule) Match(n string) bool { return strings.HasPrefix(n, "UPI-") }

func (UpiRule) Extract(n string) Classification {
	fields := strings.Split(n, "-")
	return Classification{
		Rule:             RuleUPI,
		CounterpartyName: field(fields, 1),
	}
}

// PosRule handles card payments: "POS <card> <merchant words...>".
type PosRule struct{}

func (PosRule) Name() string { return RulePOS }

func (PosRule) Match(n string) bool { return strings.HasPrefix(n, "POS") }

func (PosRule) Extract(n string) Classification {
	tokens := strings.Split(n, " ")
	c := Classification{Rule: RulePOS}
	if len(tokens) >= 3 {
		c.CounterpartyName = present(tokens[2])
		c.Description = present(strings.Join(tokens[2:], " "))
	}
	return c
}

// WireRule handles NEFT and RTGS transfers:
// "NEFT-<ifsc>-<name>-<description>-<ref>".
type WireRule struct{}

func (WireRule) Name() string { return RuleWire }

func (WireRule) Match(n string) bool {
	return strings.Contains(n, "RTGS") || strings.Contains(n, "NEFT")
}

func (WireRule) Extract(n string) Classification {
	fields := strings.Split(n, "-")
	c := Classification{Rule: RuleWire}
	if len(fields) >= 3 {
		c.CounterpartyName = present(fields[2])
		c.Description = present(fields[len(fields)-2])
	} else {
		c.Description = present(fields[len(fields)-1])
	}
	return c
}

// CashDepositRule handles branch cash deposits:
// "CASH DEPOSIT BY - <name> - <branch>".
type CashDepositRule struct{}

func (CashDepositRule) Name() string { return RuleCashDeposit }

func (CashDepositRule) Match(n string) bool { return strings.HasPrefix(n, "CASH DEPOSIT BY") }

func (CashDepositRule) Extract(n string) Classification {
	fields := strings.Split(n, "-")
	c := Classification{
		Rule:             RuleCashDeposit,
		CounterpartyName: present(strings.TrimSpace(fieldValue(fields, 1))),
	}
	if len(fields) >= 3 {
		c.Description = present(strings.TrimSpace(fields[len(fields)-1]))
	}
	return c
}

// FallbackRule matches everything. The description is the text after the
// final "-", or the whole narration.
type FallbackRule struct{}

func (FallbackRule) Name() string { return RuleFallback }

func (FallbackRule) Match(string) bool { return true }

func (FallbackRule) Extract(n string) Classification {
	desc := n
	if i := strings.LastIndex(n, "-"); i >= 0 {
		desc = n[i+1:]
	}
	return Classification{Rule: RuleFallback, Description: present(desc)}
}

// DefaultRules returns the built-in rules in evaluation order.
func DefaultRules() []Rule {
	return []Rule{UpiRule{}, PosRule{}, WireRule{}, CashDepositRule{}, FallbackRule{}}
}

func fieldValue(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func field(fields []string, i int) *string {
	return present(fieldValue(fields, i))
}

// present returns nil for the empty string.
func present(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
