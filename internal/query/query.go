// Package query derives the filtered and sorted view of a contact collection.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/contactpro/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// RecentWindow is how far back the recent filter looks.
const RecentWindow = 7 * 24 * time.Hour

// Sort orders.
const (
	SortByName   = "name"
	SortByRecent = "recent"
)

// Criteria are the session filter and sort settings.
type Criteria struct {
	Search string `json:"search"`
	Tag    string `json:"tag"`
	Recent bool   `json:"recent"`
	SortBy string `json:"sort_by"`
}

// DefaultCriteria keeps everything and sorts by name.
func DefaultCriteria() Criteria {
	return Criteria{SortBy: SortByName}
}

// View filters and sorts a copy of collection; collection itself is not
// touched. Filters combine with AND. An unknown SortBy keeps the filtered
// order.
func View(collection []models.Contact, c Criteria, now time.Time) []models.Contact {
	search := strings.ToLower(c.Search)
	cutoff := now.Add(-RecentWindow)

	out := make([]models.Contact, 0, len(collection))
	for _, ct := range collection {
		if search != "" &&
			!strings.Contains(strings.ToLower(ct.Name), search) &&
			!strings.Contains(strings.ToLower(ct.Email), search) {
			continue
		}
		if c.Tag != "" && !ct.HasTag(c.Tag) {
			continue
		}
		if c.Recent && !ct.Created.After(cutoff) {
			continue
		}
		out = append(out, ct.Clone())
	}

	switch c.SortBy {
	case SortByName:
		col := collate.New(language.Und)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortByRecent:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Updated.After(out[j].Updated)
		})
	}
	return out
}

// Tags lists the distinct tags of collection in first-seen order.
func Tags(collection []models.Contact) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, ct := range collection {
		for _, t := range ct.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}
