package database

import (
	"net/url"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Match is one free-text condition. The value must appear, case-insensitively,
// in at least one of Fields. An empty Fields means every searchable field.
type Match struct {
	Fields []string
	Value  string
}

// Search is a list of matches that must all hold.
type Search struct {
	Matches []Match
}

// IsEmpty reports whether the search filters nothing.
func (s Search) IsEmpty() bool {
	return len(s.Matches) == 0
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a value into an ILIKE pattern matching it as a
// literal substring.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

// BuildConditionsFromSearch returns a predicate of the form
//
//	(f1 ILIKE $1 OR f2 ILIKE $1) AND (f3 ILIKE $2)
//
// restricted to the eligible logical fields. It returns nil for an empty
// search, which callers treat as no filter. Fields a match names that are not
// eligible are ignored, and a match left with no fields is dropped.
func BuildConditionsFromSearch(search Search, ids Identifiers, eligible []string) sq.Sqlizer {
	if search.IsEmpty() {
		return nil
	}

	allowed := make(map[string]bool, len(eligible))
	for _, key := range eligible {
		allowed[key] = true
	}

	var and sq.And
	for _, match := range search.Matches {
		fields := match.Fields
		if len(fields) == 0 {
			fields = eligible
		}

		pattern := containsPattern(match.Value)
		var or sq.Or
		for _, key := range fields {
			if !allowed[key] {
				continue
			}
			or = append(or, sq.ILike{ids.Field(key): pattern})
		}
		if len(or) > 0 {
			and = append(and, or)
		}
	}

	if len(and) == 0 {
		return nil
	}
	return and
}

// ParseSearch reads search parameters from a query string. Each `search`
// value becomes a match over all eligible fields and `search.<field>` values
// become matches on that field. Empty values are skipped.
func ParseSearch(values url.Values, eligible []string) Search {
	var search Search
	for _, value := range values["search"] {
		if value != "" {
			search.Matches = append(search.Matches, Match{Value: value})
		}
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		if strings.HasPrefix(key, "search.") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		field := strings.TrimPrefix(key, "search.")
		if !contains(eligible, field) {
			continue
		}
		for _, value := range values[key] {
			if value != "" {
				search.Matches = append(search.Matches, Match{Fields: []string{field}, Value: value})
			}
		}
	}
	return search
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
