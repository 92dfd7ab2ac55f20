// Package mailinglist resolves every name on a schedule row and merges the
// results into the reminder's recipient list.
package mailinglist

import (
	"context"
	"sort"
	"strings"

	"github.com/bartdorlandt/mail-groene-maaiers/internal/contacts"

	"go.uber.org/zap"
)

// List is a set of unique email addresses.
type List map[string]struct{}

// Sorted returns the addresses in lexical order.
func (l List) Sorted() []string {
	out := make([]string, 0, len(l))
	for e := range l {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Union returns a new list holding the addresses of l and of the outcome.
// Neither argument is modified.
func Union(l List, out contacts.Outcome) List {
	merged := make(List, len(l)+len(out.Emails))
	for e := range l {
		merged[e] = struct{}{}
	}
	for e := range out.Emails {
		merged[e] = struct{}{}
	}
	return merged
}

// NameResolver resolves one schedule name.
type NameResolver interface {
	Resolve(name string) contacts.Outcome
}

// AdminNotifier receives operator messages.
type AdminNotifier interface {
	NotifyAdmin(ctx context.Context, message string) error
}

// Options tune aggregation.
type Options struct {
	// NotifyAmbiguous also notifies the admin when one name matched several
	// addresses. Those addresses are still included.
	NotifyAmbiguous bool
}

// Aggregator drives resolution over the names of one schedule row.
type Aggregator struct {
	resolver NameResolver
	admin    AdminNotifier
	opts     Options
	logger   *zap.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(resolver NameResolver, admin AdminNotifier, opts Options, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{resolver: resolver, admin: admin, opts: opts, logger: logger}
}

// Aggregate resolves names in order and returns the union of all matches.
// Blank names are skipped. Each unmatched name is reported to the admin as
// soon as it is seen; a failing notification is logged and does not stop
// the remaining names.
func (a *Aggregator) Aggregate(ctx context.Context, names []string) List {
	list := List{}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}

		out := a.resolver.Resolve(name)
		if !out.Matched() {
			a.notify(ctx, out.Message, name)
			continue
		}
		if a.opts.NotifyAmbiguous && out.Ambiguous() {
			a.notify(ctx, contacts.AmbiguousMessage(out.Name, out.SortedEmails()), name)
		}
		list = Union(list, out)
	}

	a.logger.Info("Mailing list complete",
		zap.Int("names", len(names)),
		zap.Int("emails", len(list)))
	return list
}

func (a *Aggregator) notify(ctx context.Context, message, name string) {
	if a.admin == nil {
		return
	}
	if err := a.admin.NotifyAdmin(ctx, message); err != nil {
		a.logger.Error("Failed to notify admin",
			zap.String("name", name),
			zap.Error(err))
	}
}
