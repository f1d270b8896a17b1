package ui

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// labelTree builds
//
//	root
//	├── a (list)
//	│   ├── a1
//	│   └── a2
//	├── b
//	└── c (list)
//	    └── c1
func labelTree() (*Context, map[string]Component) {
	ctx := NewContext()
	root := NewRootList(ctx, Style{}, 0)
	a := NewList(root, Style{}, 0)
	a1 := NewWidget(a, Style{}, "a1")
	a2 := NewWidget(a, Style{}, "a2")
	b := NewWidget(root, Style{}, "b")
	c := NewList(root, Style{}, 0)
	c1 := NewWidget(c, Style{}, "c1")
	return ctx, map[string]Component{
		"root": root, "a": a, "a1": a1, "a2": a2, "b": b, "c": c, "c1": c1,
	}
}

func nameOf(nodes map[string]Component, c Component) string {
	for name, n := range nodes {
		if n == c {
			return name
		}
	}
	return "?"
}

func names(nodes map[string]Component, cs []Component) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, nameOf(nodes, c))
	}
	return out
}

func byName(nodes map[string]Component, want ...string) Visitor {
	return func(c Component) TraverseCondition {
		name := nameOf(nodes, c)
		for _, w := range want {
			if name == w {
				return Match
			}
		}
		return NotMatch
	}
}

func TestTraversePreOrder(t *testing.T) {
	_, nodes := labelTree()
	root := nodes["root"]

	var visited []string
	record := func(c Component) TraverseCondition {
		visited = append(visited, nameOf(nodes, c))
		return NotMatch
	}

	TraverseInclusive(root, record, nil)
	want := []string{"root", "a", "a1", "a2", "b", "c", "c1"}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("inclusive order mismatch (-want +got):\n%s", diff)
	}

	// Same tree, same order.
	first := visited
	visited = nil
	TraverseInclusive(root, record, nil)
	if diff := cmp.Diff(first, visited); diff != "" {
		t.Errorf("second walk differs (-first +second):\n%s", diff)
	}

	visited = nil
	TraverseExclusive(root, record, nil)
	if diff := cmp.Diff(want[1:], visited); diff != "" {
		t.Errorf("exclusive order mismatch (-want +got):\n%s", diff)
	}
}

func TestTraverseConditions(t *testing.T) {
	_, nodes := labelTree()
	root := nodes["root"]

	tests := []struct {
		name        string
		verdicts    map[string]TraverseCondition
		wantMatches []string
		wantVisited []string
		wantDone    bool
	}{
		{
			name:        "Match keeps descending",
			verdicts:    map[string]TraverseCondition{"a": Match, "c1": Match},
			wantMatches: []string{"a", "c1"},
			wantVisited: []string{"root", "a", "a1", "a2", "b", "c", "c1"},
			wantDone:    true,
		},
		{
			name:        "MatchBreak stops everything",
			verdicts:    map[string]TraverseCondition{"a1": MatchBreak, "b": Match},
			wantMatches: []string{"a1"},
			wantVisited: []string{"root", "a", "a1"},
			wantDone:    false,
		},
		{
			name:        "NotMatchBreak stops without recording",
			verdicts:    map[string]TraverseCondition{"a": Match, "b": NotMatchBreak, "c1": Match},
			wantMatches: []string{"a"},
			wantVisited: []string{"root", "a", "a1", "a2", "b"},
			wantDone:    false,
		},
		{
			name:        "Break on the start node",
			verdicts:    map[string]TraverseCondition{"root": NotMatchBreak},
			wantMatches: []string{},
			wantVisited: []string{"root"},
			wantDone:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visited := []string{}
			matches := []Component{}
			done := TraverseInclusive(root, func(c Component) TraverseCondition {
				name := nameOf(nodes, c)
				visited = append(visited, name)
				if v, ok := tt.verdicts[name]; ok {
					return v
				}
				return NotMatch
			}, &matches)

			if done != tt.wantDone {
				t.Errorf("TraverseInclusive() = %v; want %v", done, tt.wantDone)
			}
			if diff := cmp.Diff(tt.wantVisited, visited); diff != "" {
				t.Errorf("visited mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantMatches, names(nodes, matches)); diff != "" {
				t.Errorf("matches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindComponentUniqueness(t *testing.T) {
	_, nodes := labelTree()
	root := nodes["root"]

	tests := []struct {
		name    string
		want    []string
		exclude bool
		wantHit string
		wantErr error
	}{
		{name: "Exactly one", want: []string{"b"}, wantHit: "b"},
		{name: "Start node only", want: []string{"root"}, wantHit: "root"},
		{name: "Start node excluded", want: []string{"root"}, exclude: true, wantErr: ErrNotFound},
		{name: "None", want: nil, wantErr: ErrNotFound},
		{name: "Two", want: []string{"a1", "c1"}, wantErr: ErrAmbiguous},
		{name: "Two exclusive", want: []string{"a", "a2"}, exclude: true, wantErr: ErrAmbiguous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			find := FindComponentInclusive
			if tt.exclude {
				find = FindComponentExclusive
			}
			got, err := find(root, byName(nodes, tt.want...))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v; want %v", err, tt.wantErr)
				}
				if got != nil {
					t.Errorf("got %s; want nil", nameOf(nodes, got))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if name := nameOf(nodes, got); name != tt.wantHit {
				t.Errorf("got %s; want %s", name, tt.wantHit)
			}
		})
	}
}

func TestFindComponents(t *testing.T) {
	_, nodes := labelTree()
	root := nodes["root"]
	visit := byName(nodes, "root", "a2", "c", "c1")

	got := names(nodes, FindComponentsInclusive(root, visit))
	if diff := cmp.Diff([]string{"root", "a2", "c", "c1"}, got); diff != "" {
		t.Errorf("inclusive mismatch (-want +got):\n%s", diff)
	}
	got = names(nodes, FindComponentsExclusive(root, visit))
	if diff := cmp.Diff([]string{"a2", "c", "c1"}, got); diff != "" {
		t.Errorf("exclusive mismatch (-want +got):\n%s", diff)
	}
}

func TestTraverseMatchWithoutOutput(t *testing.T) {
	opt, logs := captureLogs()
	ctx := NewContext(opt)
	root := NewRootList(ctx, Style{}, 0)
	NewWidget(root, Style{}, "w")

	done := TraverseInclusive(root, func(Component) TraverseCondition {
		return Match
	}, nil)
	if !done {
		t.Error("walk stopped early")
	}
	if !containsLine(logs.Lines(), "cannot add match") {
		t.Errorf("missing warning in logs: %q", logs.Lines())
	}
}

func TestComponentsOf(t *testing.T) {
	_, nodes := labelTree()

	widgets := ComponentsOf[*Widget](nodes["root"])
	var labels []string
	for _, w := range widgets {
		labels = append(labels, w.Label)
	}
	if diff := cmp.Diff([]string{"a1", "a2", "b", "c1"}, labels); diff != "" {
		t.Errorf("widgets mismatch (-want +got):\n%s", diff)
	}

	if got := len(ComponentsOf[*Container](nodes["a"])); got != 1 {
		t.Errorf("containers under a = %d; want 1", got)
	}
}
