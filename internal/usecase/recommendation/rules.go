package recommendation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdugdh24/expo-networking/internal/domain"
	"golang.org/x/text/cases"
)

const (
	pointsPerInterest          = 15
	pointsPerSector            = 20
	pointsPerComplement        = 25
	pointsSameCountry          = 10
	pointsPerCollaborationType = 20
	pointsBioOverlap           = 5
	pointsSameCompanySize      = 5
	pointsAvailability         = 15

	minBioKeywordLength = 4
)

type priorityRule struct {
	points int
	reason string
}

// typePriority is keyed by the lower-tier type first: typePriority[from][to]
// is the bonus for introducing a `to` account to a `from` account.
var typePriority = map[domain.UserType]map[domain.UserType]priorityRule{
	domain.UserTypeVisitor: {
		domain.UserTypeExhibitor: {points: 20, reason: "exhibitor priority over visitor"},
		domain.UserTypePartner:   {points: 20 + 30, reason: "partner priority over visitor"},
	},
	domain.UserTypeExhibitor: {
		domain.UserTypePartner: {points: 30, reason: "partner priority over exhibitor"},
	},
}

// evaluation accumulates points and reasons in rule order.
type evaluation struct {
	score   int
	reasons []string
}

func (e *evaluation) add(points int, reason string) {
	if points <= 0 {
		return
	}
	e.score += points
	e.reasons = append(e.reasons, reason)
}

func (s *MatchScorer) evaluate(subject, candidate *domain.User, signals Signals) *evaluation {
	ev := &evaluation{}
	sp, cp := &subject.Profile, &candidate.Profile

	if rule, ok := typePriority[subject.Type][candidate.Type]; ok {
		ev.add(rule.points, rule.reason)
	}
	if s.cfg.BidirectionalPriority {
		if rule, ok := typePriority[candidate.Type][subject.Type]; ok {
			ev.add(rule.points, rule.reason)
		}
	}

	if shared := intersect(sp.Interests, cp.Interests); len(shared) > 0 {
		ev.add(len(shared)*pointsPerInterest, "shared interests: "+strings.Join(shared, ", "))
	}

	if shared := intersect(sp.Sectors, cp.Sectors); len(shared) > 0 {
		ev.add(len(shared)*pointsPerSector, "shared sectors: "+strings.Join(shared, ", "))
	}

	for _, objective := range unique(sp.Objectives) {
		matched := intersect(complementsOf(objective), cp.Objectives)
		if len(matched) == 0 {
			continue
		}
		ev.add(len(matched)*pointsPerComplement,
			fmt.Sprintf("complementary objectives: %s ↔ %s", objective, strings.Join(matched, ", ")))
	}

	if sp.Country != nil && cp.Country != nil && *sp.Country != "" &&
		normalize(*sp.Country) == normalize(*cp.Country) {
		ev.add(pointsSameCountry, "same country: "+*sp.Country)
	}

	if shared := intersect(sp.CollaborationTypes, cp.CollaborationTypes); len(shared) > 0 {
		ev.add(len(shared)*pointsPerCollaborationType, "shared collaboration types: "+strings.Join(shared, ", "))
	}

	if bioOverlap(sp.Bio, cp.Bio) {
		ev.add(pointsBioOverlap, "common keywords in bio")
	}

	if sp.CompanySize != nil && cp.CompanySize != nil && *sp.CompanySize != "" &&
		*sp.CompanySize == *cp.CompanySize {
		ev.add(pointsSameCompanySize, "same company size: "+*sp.CompanySize)
	}

	if signals.available(candidate.ID) {
		ev.add(pointsAvailability, "available for meetings")
	}

	return ev
}

// normalize folds case so that set membership ignores case, including
// accented characters. A Caser is stateful, so one is built per call.
func normalize(s string) string {
	return cases.Fold().String(s)
}

// intersect returns the items of a also present in b, compared
// case-insensitively, in a's order and spelling, without duplicates.
func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	inB := make(map[string]struct{}, len(b))
	for _, item := range b {
		inB[normalize(item)] = struct{}{}
	}

	var shared []string
	seen := make(map[string]struct{}, len(a))
	for _, item := range a {
		key := normalize(item)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := inB[key]; ok {
			shared = append(shared, item)
		}
	}
	return shared
}

func unique(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := normalize(item)
		if _, dup := seen[key]; dup || key == "" {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// bioOverlap reports whether both bios share a whitespace token longer than
// three characters. It is a bag-of-words check, nothing more.
func bioOverlap(a, b *string) bool {
	if a == nil || b == nil {
		return false
	}
	words := make(map[string]struct{})
	for _, token := range strings.Fields(*a) {
		if utf8.RuneCountInString(token) >= minBioKeywordLength {
			words[normalize(token)] = struct{}{}
		}
	}
	if len(words) == 0 {
		return false
	}
	for _, token := range strings.Fields(*b) {
		if utf8.RuneCountInString(token) < minBioKeywordLength {
			continue
		}
		if _, ok := words[normalize(token)]; ok {
			return true
		}
	}
	return false
}
