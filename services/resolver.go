package services

import (
	"context"
	"fmt"
	"strings"
)

// ContactSource is the slice of the contact store the resolver needs.
type ContactSource interface {
	EmailsAll(ctx context.Context) ([]string, error)
	EmailsByProfession(ctx context.Context, profession string) ([]string, error)
}

// Resolver turns a targeting expression into a concrete recipient list.
type Resolver struct{ contacts ContactSource }

// NewResolver creates a resolver reading from the given contact source.
func NewResolver(contacts ContactSource) *Resolver {
	return &Resolver{contacts: contacts}
}

// Resolve returns the addresses selected by the target, dropping entries that
// are empty or lack an '@'. That filter is a syntactic sanity check only, not
// RFC 5322 validation. The list is not deduplicated; a contact stored twice
// under the same address is blind-copied twice.
func (r *Resolver) Resolve(ctx context.Context, t *Target) ([]string, error) {
	var (
		addresses []string
		err       error
	)
	switch t.Kind {
	case TargetAll:
		addresses, err = r.contacts.EmailsAll(ctx)
	case TargetProfession:
		addresses, err = r.contacts.EmailsByProfession(ctx, t.Profession)
	case TargetExplicit:
		addresses = t.Addresses
	default:
		return nil, fmt.Errorf("unknown target kind %d", t.Kind)
	}
	if err != nil {
		return nil, err
	}

	recipients := make([]string, 0, len(addresses))
	for _, a := range addresses {
		if a == "" || !strings.Contains(a, "@") {
			continue
		}
		recipients = append(recipients, a)
	}
	return recipients, nil
}
