// Package triage filters and sorts application lists for the admin dashboard.
// It operates on the full in-memory list and recomputes the result from
// scratch on every call, which is fine at the volumes a recruiting page sees.
package triage

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"hireline/models"
)

// Sort selects one of the three supported orderings.
type Sort string

const (
	SortNewest Sort = "newest"
	SortOldest Sort = "oldest"
	SortName   Sort = "name"
)

// StatusAll is the status filter sentinel that matches every record.
const StatusAll = "all"

// Query combines a free-text search, a status filter and a sort order.
// Zero values mean: no search, any status, newest first.
type Query struct {
	Search string
	Status string
	Sort   Sort
}

// Apply filters apps by q and sorts the result. The input slice is never
// modified. Ties keep the input order.
func Apply(apps []models.Application, q Query) []models.Application {
	out := make([]models.Application, 0, len(apps))
	for _, a := range apps {
		if Matches(a, q) {
			out = append(out, a)
		}
	}
	switch q.Sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	case SortName:
		// collators carry internal buffers and are not safe to share
		// across requests
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool { return c.CompareString(out[i].Name, out[j].Name) < 0 })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

// Matches reports whether a passes both the search term and the status
// filter of q. The search is case-insensitive against name, email and
// message, and a plain substring match against phone.
func Matches(a models.Application, q Query) bool {
	if q.Status != "" && q.Status != StatusAll && a.Status != q.Status {
		return false
	}
	if q.Search == "" {
		return true
	}
	term := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(a.Name), term) ||
		strings.Contains(strings.ToLower(a.Email), term) ||
		strings.Contains(a.Phone, q.Search) ||
		strings.Contains(strings.ToLower(a.Message), term)
}
