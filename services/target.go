package services

import (
	"encoding/json"
	"errors"
	"strings"
)

// professionPrefix tags a targeting string that selects by profession.
const professionPrefix = "profession:"

// ErrInvalidTarget is returned when the 'to' field of a send request cannot be
// interpreted as a targeting expression.
var ErrInvalidTarget = errors.New("invalid targeting expression")

// TargetKind enumerates the targeting expression variants.
type TargetKind int

const (
	// TargetAll selects every contact with a usable email.
	TargetAll TargetKind = iota
	// TargetProfession selects contacts by case-insensitive profession match.
	TargetProfession
	// TargetExplicit carries a literal address list, bypassing the contact
	// store. Used for test sends.
	TargetExplicit
)

// Target is a parsed targeting expression. Exactly one variant is active.
type Target struct {
	Kind       TargetKind
	Profession string   // set for TargetProfession
	Addresses  []string // set for TargetExplicit
}

// ParseTarget interprets the raw 'to' field of a send request. Accepted forms
// are the literal "all", "profession:<value>", a single address string, or an
// array of address strings. The profession value is everything after the first
// colon, so a value that itself contains a colon survives intact.
func ParseTarget(raw json.RawMessage) (*Target, error) {
	if len(raw) == 0 {
		return nil, ErrInvalidTarget
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil, ErrInvalidTarget
		}
		if s == "all" {
			return &Target{Kind: TargetAll}, nil
		}
		if strings.HasPrefix(s, professionPrefix) {
			return &Target{
				Kind:       TargetProfession,
				Profession: strings.TrimPrefix(s, professionPrefix),
			}, nil
		}
		return &Target{Kind: TargetExplicit, Addresses: []string{s}}, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return nil, ErrInvalidTarget
		}
		return &Target{Kind: TargetExplicit, Addresses: list}, nil
	}

	return nil, ErrInvalidTarget
}

// Criterion is the value recorded on the campaign row: the literal "all" or
// the profession value. Explicit address lists are ad-hoc test sends and are
// recorded as "all".
func (t *Target) Criterion() string {
	if t.Kind == TargetProfession {
		return t.Profession
	}
	return "all"
}
