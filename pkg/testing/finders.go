package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/scene/pkg/scene"
)

// Finder locates views in a view tree.
type Finder interface {
	// Evaluate returns all matching views under root (depth-first pre-order).
	Evaluate(root *scene.View) []*scene.View
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	views  []*scene.View
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *scene.View {
	if len(r.views) == 0 {
		panic(fmt.Sprintf("Finder found no views: %s", r.description()))
	}
	return r.views[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *scene.View {
	if len(r.views) == 0 {
		return nil
	}
	return r.views[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *scene.View {
	if index < 0 || index >= len(r.views) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.views), r.description()))
	}
	return r.views[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*scene.View {
	return r.views
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.views)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.views) > 0
}

// Box returns the box of the first match. Panics if no matches.
func (r FinderResult) Box() *scene.Box {
	return r.First().Box()
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// predicateFinder matches views satisfying a predicate.
type predicateFinder struct {
	fn   func(*scene.View) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *scene.View) []*scene.View {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches views satisfying fn.
func ByPredicate(fn func(*scene.View) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// ByBox returns a finder that matches every view of b.
func ByBox(b *scene.Box) Finder {
	return &predicateFinder{
		fn:   func(v *scene.View) bool { return v.Box() == b },
		desc: fmt.Sprintf("ByBox(%s)", b),
	}
}

// ByName returns a finder that matches views of boxes named name.
func ByName(name string) Finder {
	return &predicateFinder{
		fn:   func(v *scene.View) bool { return v.Box().Name() == name },
		desc: fmt.Sprintf("ByName(%q)", name),
	}
}

// ByClass returns a finder that matches views of boxes of a style class.
func ByClass(class string) Finder {
	return &predicateFinder{
		fn:   func(v *scene.View) bool { return v.Box().Style().Class == class },
		desc: fmt.Sprintf("ByClass(%q)", class),
	}
}

// ByText returns a finder that matches text leaves with exact content.
func ByText(text string) Finder {
	return &predicateFinder{
		fn: func(v *scene.View) bool {
			t := v.Box().AsText()
			return t != nil && t.Text() == text
		},
		desc: fmt.Sprintf("ByText(%q)", text),
	}
}

// ByTextContaining returns a finder that matches text leaves containing
// substring.
func ByTextContaining(substring string) Finder {
	return &predicateFinder{
		fn: func(v *scene.View) bool {
			t := v.Box().AsText()
			return t != nil && strings.Contains(t.Text(), substring)
		},
		desc: fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

// descendantFinder finds views matching 'matching' that are descendants
// of views matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *scene.View) []*scene.View {
	var results []*scene.View
	seen := make(map[*scene.View]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		// search each subtree, skipping the ancestor itself
		for _, child := range ancestor.Children() {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches views satisfying 'matching'
// that are descendants of views matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// collectMatches performs depth-first pre-order traversal, collecting
// views that satisfy the predicate.
func collectMatches(root *scene.View, predicate func(*scene.View) bool) []*scene.View {
	var results []*scene.View
	walkTree(root, func(v *scene.View) {
		if predicate(v) {
			results = append(results, v)
		}
	})
	return results
}

func walkTree(root *scene.View, visitor func(*scene.View)) {
	visitor(root)
	for _, c := range root.Children() {
		walkTree(c, visitor)
	}
}
