package queryadapter

import (
	"strings"

	"go.llib.dev/asyncquery/pkg/errorkit"
)

// Policy restricts what an adapter's views are allowed to do.
type Policy uint8

const (
	// AllowSyncEnumeration lets callers enumerate a view synchronously through ViewOf.Sync.
	AllowSyncEnumeration Policy = 1 << iota
	// AllowInlineExecution lets a view iterate its source on the consumer's goroutine.
	// Without it, the source is iterated on a background goroutine.
	AllowInlineExecution

	DisallowAll Policy = 0
	AllowAll           = AllowSyncEnumeration | AllowInlineExecution
)

const ErrInvalidPolicy errorkit.Error = "invalid query adapter policy"

var policyNames = []struct {
	policy Policy
	name   string
}{
	{AllowSyncEnumeration, "allow-sync-enumeration"},
	{AllowInlineExecution, "allow-inline-execution"},
}

func (p Policy) Has(o Policy) bool { return p&o == o }

func (p Policy) valid() bool { return p&^AllowAll == 0 }

func (p Policy) String() string {
	switch p {
	case DisallowAll:
		return "disallow-all"
	case AllowAll:
		return "allow-all"
	}
	var names []string
	for _, pn := range policyNames {
		if p.Has(pn.policy) {
			names = append(names, pn.name)
		}
	}
	if !p.valid() {
		names = append(names, "invalid")
	}
	return strings.Join(names, "|")
}

// ParsePolicy reads a policy from its String form.
// Flags can be combined with "|" or ",".
func ParsePolicy(raw string) (Policy, error) {
	var p Policy
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == '|' || r == ',' })
	if len(fields) == 0 {
		return DisallowAll, ErrInvalidPolicy.F("empty policy")
	}
parsing:
	for _, field := range fields {
		field = strings.ToLower(strings.TrimSpace(field))
		switch field {
		case "allow-all":
			p |= AllowAll
			continue parsing
		case "disallow-all":
			continue parsing
		}
		for _, pn := range policyNames {
			if pn.name == field {
				p |= pn.policy
				continue parsing
			}
		}
		return DisallowAll, ErrInvalidPolicy.F("%q", field)
	}
	return p, nil
}
