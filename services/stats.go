package services

import (
	"sort"
	"strings"
	"unicode/utf8"

	"marketing-mailer/database"
)

// NormalizeProfession folds a free-text profession value into its display
// bucket: first letter upper-cased, remainder lower-cased, so "STUDENT",
// "student" and "Student" all collapse to "Student". Nothing is stored back to
// the contact record.
func NormalizeProfession(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + strings.ToLower(s[size:])
}

// AggregateProfessions merges raw per-spelling counts into normalized buckets
// and sorts them by count, descending. Ordering among equal counts is
// unspecified beyond being stable with respect to the input.
func AggregateProfessions(raw []database.ProfessionCount) []database.ProfessionCount {
	totals := make(map[string]int)
	order := make([]string, 0, len(raw))
	for _, pc := range raw {
		if pc.Profession == "" {
			continue
		}
		bucket := NormalizeProfession(pc.Profession)
		if _, seen := totals[bucket]; !seen {
			order = append(order, bucket)
		}
		totals[bucket] += pc.Count
	}

	out := make([]database.ProfessionCount, 0, len(order))
	for _, bucket := range order {
		out = append(out, database.ProfessionCount{Profession: bucket, Count: totals[bucket]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
