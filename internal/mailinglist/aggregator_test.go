package mailinglist

import (
	"context"
	"errors"
	"testing"

	"github.com/bartdorlandt/mail-groene-maaiers/internal/contacts"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingAdmin struct {
	messages []string
	err      error
}

func (r *recordingAdmin) NotifyAdmin(_ context.Context, message string) error {
	r.messages = append(r.messages, message)
	return r.err
}

func directory() *contacts.Directory {
	return contacts.BuildDirectory([][]string{
		{"Name1 LastName1", "name1.lastname1@domain.nl", "adres 1", "other name"},
		{"Name2 LastName2", "name2.lastname2@domain.nl", "adres 5"},
		{"Name3 LastName3", "name3.lastname3@domain.nl", "adres 7", "Name4 LastName4"},
	}, nil)
}

func newAggregator(admin AdminNotifier, opts Options) *Aggregator {
	return NewAggregator(contacts.NewResolver(directory(), nil), admin, opts, zap.NewNop())
}

func TestUnion_IsPure(t *testing.T) {
	base := List{"a@x.nl": {}}
	out := contacts.Outcome{Emails: map[string]struct{}{"b@x.nl": {}, "a@x.nl": {}}}

	merged := Union(base, out)

	assert.Equal(t, []string{"a@x.nl", "b@x.nl"}, merged.Sorted())
	assert.Equal(t, []string{"a@x.nl"}, base.Sorted(), "input list must not change")
	assert.Len(t, out.Emails, 2)
}

func TestUnion_Unmatched(t *testing.T) {
	merged := Union(List{"a@x.nl": {}}, contacts.Outcome{})
	assert.Equal(t, []string{"a@x.nl"}, merged.Sorted())
}

func TestAggregate_ExtraNamesContributeEmail(t *testing.T) {
	admin := &recordingAdmin{}
	agg := newAggregator(admin, Options{})

	got := agg.Aggregate(context.Background(), []string{"Name2 LastName2", "Name4 LastName4"})

	want := []string{"name2.lastname2@domain.nl", "name3.lastname3@domain.nl"}
	if diff := cmp.Diff(want, got.Sorted()); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, admin.messages)
}

func TestAggregate_DeduplicatesAcrossNames(t *testing.T) {
	agg := newAggregator(&recordingAdmin{}, Options{})

	got := agg.Aggregate(context.Background(), []string{"Name3", "Name4", "name3 lastname3"})

	assert.Equal(t, []string{"name3.lastname3@domain.nl"}, got.Sorted())
}

func TestAggregate_UnmatchedNotifiesOncePerName(t *testing.T) {
	admin := &recordingAdmin{}
	agg := newAggregator(admin, Options{})

	got := agg.Aggregate(context.Background(), []string{"Ghost", "Name1", "Phantom"})

	assert.Equal(t, []string{"name1.lastname1@domain.nl"}, got.Sorted())
	require.Len(t, admin.messages, 2)
	assert.Equal(t, "Action required.\nName: 'ghost' not found in contacts.", admin.messages[0])
	assert.Contains(t, admin.messages[1], "'phantom'")
}

func TestAggregate_SkipsBlankNames(t *testing.T) {
	admin := &recordingAdmin{}
	agg := newAggregator(admin, Options{})

	got := agg.Aggregate(context.Background(), []string{"", "  ", "Name2"})

	assert.Equal(t, []string{"name2.lastname2@domain.nl"}, got.Sorted())
	assert.Empty(t, admin.messages)
}

func TestAggregate_MultipleMatchesAreValid(t *testing.T) {
	admin := &recordingAdmin{}
	agg := newAggregator(admin, Options{})

	got := agg.Aggregate(context.Background(), []string{"Name"})

	assert.Len(t, got, 3)
	assert.Empty(t, admin.messages)
}

func TestAggregate_NotifyAmbiguous(t *testing.T) {
	admin := &recordingAdmin{}
	agg := newAggregator(admin, Options{NotifyAmbiguous: true})

	got := agg.Aggregate(context.Background(), []string{"Name", "Name1"})

	assert.Len(t, got, 3)
	require.Len(t, admin.messages, 1)
	assert.Contains(t, admin.messages[0], "matched multiple contacts")
	assert.Contains(t, admin.messages[0], "name2.lastname2@domain.nl")
}

func TestAggregate_NotifyFailureDoesNotStop(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	admin := &recordingAdmin{err: errors.New("smtp down")}
	agg := NewAggregator(contacts.NewResolver(directory(), nil), admin, Options{}, zap.New(core))

	got := agg.Aggregate(context.Background(), []string{"Ghost", "Name2"})

	assert.Equal(t, []string{"name2.lastname2@domain.nl"}, got.Sorted())
	assert.Equal(t, 1, logs.FilterMessage("Failed to notify admin").Len())
}

func TestAggregate_NoNames(t *testing.T) {
	got := newAggregator(nil, Options{}).Aggregate(context.Background(), nil)
	assert.Empty(t, got)
}
