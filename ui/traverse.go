package ui

// TraverseCondition is the verdict of a Visitor for one component.
type TraverseCondition int

const (
	// Match records the component and keeps descending.
	Match TraverseCondition = iota
	// MatchBreak records the component and stops the whole walk.
	MatchBreak
	// NotMatch skips the component and keeps descending.
	NotMatch
	// NotMatchBreak stops the whole walk without recording.
	NotMatchBreak
)

func (t TraverseCondition) String() string {
	switch t {
	case Match:
		return "match"
	case MatchBreak:
		return "matchBreak"
	case NotMatch:
		return "notMatch"
	case NotMatchBreak:
		return "notMatchBreak"
	}
	return "unknown"
}

// Visitor decides for each visited component whether it matches and
// whether the walk goes on.
type Visitor func(Component) TraverseCondition

// TraverseExclusive walks the descendants of c in pre-order, left to right,
// without visiting c itself. Matching components are appended to matches.
// It returns false when a break verdict ended the walk early.
func TraverseExclusive(c Component, visit Visitor, matches *[]Component) bool {
	for _, child := range c.Children() {
		if !traverse(child, visit, matches) {
			return false
		}
	}
	return true
}

// TraverseInclusive visits c first and then its descendants like
// TraverseExclusive.
func TraverseInclusive(c Component, visit Visitor, matches *[]Component) bool {
	return traverse(c, visit, matches)
}

func traverse(c Component, visit Visitor, matches *[]Component) bool {
	switch cond := visit(c); cond {
	case Match, MatchBreak:
		if matches == nil {
			c.base().logger(FacilityTraverse).Warn("cannot add match",
				OpKey, "traverse", "condition", cond.String())
		} else {
			*matches = append(*matches, c)
		}
		if cond == MatchBreak {
			return false
		}
	case NotMatchBreak:
		return false
	}
	return TraverseExclusive(c, visit, matches)
}

// FindComponentExclusive returns the single descendant of c accepted by
// visit. It fails with ErrNotFound or ErrAmbiguous otherwise.
func FindComponentExclusive(c Component, visit Visitor) (Component, error) {
	var matches []Component
	TraverseExclusive(c, visit, &matches)
	return uniqueMatch(c, matches)
}

// FindComponentInclusive is FindComponentExclusive with c itself as a
// candidate.
func FindComponentInclusive(c Component, visit Visitor) (Component, error) {
	var matches []Component
	TraverseInclusive(c, visit, &matches)
	return uniqueMatch(c, matches)
}

func uniqueMatch(c Component, matches []Component) (Component, error) {
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		c.base().logger(FacilityTraverse).Debug("no match", OpKey, "findComponent")
		return nil, ErrNotFound
	default:
		c.base().logger(FacilityTraverse).Debug("more than one match",
			OpKey, "findComponent", "matches", len(matches))
		return nil, ErrAmbiguous
	}
}

// FindComponentsExclusive returns every descendant of c accepted by visit.
func FindComponentsExclusive(c Component, visit Visitor) []Component {
	var matches []Component
	TraverseExclusive(c, visit, &matches)
	return matches
}

// FindComponentsInclusive returns c and every descendant accepted by visit.
func FindComponentsInclusive(c Component, visit Visitor) []Component {
	var matches []Component
	TraverseInclusive(c, visit, &matches)
	return matches
}

// ComponentsOf returns, in traversal order, every component of the subtree
// rooted at c (c included) that implements T.
func ComponentsOf[T any](c Component) []T {
	var found []T
	TraverseInclusive(c, func(n Component) TraverseCondition {
		if t, ok := n.(T); ok {
			found = append(found, t)
		}
		return NotMatch
	}, nil)
	return found
}
