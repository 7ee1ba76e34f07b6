package triage

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"hireline/models"
)

func fixtures() []models.Application {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Application{
		{ID: uuid.New(), Name: "John Smith", Email: "john@example.com", Phone: "615-555-0100", Message: "ready to start", Status: models.StatusNew, CreatedAt: base},
		{ID: uuid.New(), Name: "jane doe", Email: "JANE@example.com", Phone: "615-555-0111", Message: "Sales experience", Status: models.StatusContacted, CreatedAt: base.Add(time.Hour)},
		{ID: uuid.New(), Name: "Ángela Ruiz", Email: "angela@example.com", Phone: "abc-PHONE", Message: "hablo español", Status: models.StatusHired, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func names(apps []models.Application) []string {
	out := make([]string, len(apps))
	for i, a := range apps {
		out[i] = a.Name
	}
	return out
}

func TestSearchCaseInsensitiveTextFields(t *testing.T) {
	apps := fixtures()
	cases := []struct {
		search string
		want   []string
	}{
		{"", []string{"Ángela Ruiz", "jane doe", "John Smith"}},
		{"JOHN", []string{"John Smith"}},
		{"JANE", []string{"jane doe"}},
		{"sales", []string{"jane doe"}},
		{"615-555", []string{"jane doe", "John Smith"}},
		{"no such candidate", nil},
	}
	for _, tc := range cases {
		got := names(Apply(apps, Query{Search: tc.search}))
		if len(got) == 0 {
			got = nil
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("search %q: got %v, want %v", tc.search, got, tc.want)
		}
	}
}

func TestSearchPhoneIsCaseSensitive(t *testing.T) {
	apps := fixtures()
	if got := Apply(apps, Query{Search: "abc-PHONE"}); len(got) != 1 {
		t.Fatalf("exact-case phone search matched %d records, want 1", len(got))
	}
	// "abc-phone" misses the phone field but must not match elsewhere either
	if got := Apply(apps, Query{Search: "abc-phone"}); len(got) != 0 {
		t.Fatalf("lowercased phone search matched %d records, want 0", len(got))
	}
}

func TestStatusFilter(t *testing.T) {
	apps := fixtures()
	if got := Apply(apps, Query{Status: models.StatusContacted}); len(got) != 1 || got[0].Name != "jane doe" {
		t.Fatalf("status filter returned %v", names(got))
	}
	if got := Apply(apps, Query{Status: StatusAll}); len(got) != 3 {
		t.Fatalf("sentinel %q filtered records: %v", StatusAll, names(got))
	}
	if got := Apply(apps, Query{Status: ""}); len(got) != 3 {
		t.Fatalf("empty status filtered records: %v", names(got))
	}
}

func TestSearchAndStatusCombine(t *testing.T) {
	apps := fixtures()
	got := Apply(apps, Query{Search: "example.com", Status: models.StatusHired})
	if len(got) != 1 || got[0].Name != "Ángela Ruiz" {
		t.Fatalf("combined predicate returned %v", names(got))
	}
}

func TestSortOrders(t *testing.T) {
	apps := fixtures()
	cases := []struct {
		sort Sort
		want []string
	}{
		{SortNewest, []string{"Ángela Ruiz", "jane doe", "John Smith"}},
		{SortOldest, []string{"John Smith", "jane doe", "Ángela Ruiz"}},
		// locale-aware: Ángela before jane/John, case-insensitive j/J ordering
		{SortName, []string{"Ángela Ruiz", "jane doe", "John Smith"}},
		{Sort(""), []string{"Ángela Ruiz", "jane doe", "John Smith"}}, // default newest
	}
	for _, tc := range cases {
		got := names(Apply(apps, Query{Sort: tc.sort}))
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("sort %q: got %v, want %v", tc.sort, got, tc.want)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	apps := fixtures()
	q := Query{Search: "e", Status: StatusAll, Sort: SortName}
	first := Apply(apps, q)
	for i := 0; i < 5; i++ {
		if again := Apply(apps, q); !reflect.DeepEqual(again, first) {
			t.Fatalf("run %d differed: %v vs %v", i, names(again), names(first))
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	apps := fixtures()
	snapshot := make([]models.Application, len(apps))
	copy(snapshot, apps)
	Apply(apps, Query{Search: "john", Sort: SortName})
	if !reflect.DeepEqual(apps, snapshot) {
		t.Fatal("input slice was modified")
	}
}
