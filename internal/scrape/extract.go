// Package scrape extracts field text from parsed page markup using
// declarative criteria, and normalizes the extracted text.
package scrape

import (
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Rule locates one field: the first element with tag Tag carrying the class
// Field.
type Rule struct {
	Field string
	Tag   string
}

// Criteria is the ordered rule set for one recipe.
type Criteria []Rule

// Fields returns the field keys in rule order.
func (c Criteria) Fields() []string {
	fields := make([]string, len(c))
	for i, r := range c {
		fields[i] = r.Field
	}
	return fields
}

// Record maps a field key to the text extracted for it.
type Record map[string]string

// Parse walks the direct children of container and yields, per child, the
// text of every rule that matched inside it. Children where no rule matched
// are skipped.
func Parse(container *goquery.Selection, criteria Criteria) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		if container == nil {
			return
		}
		container.Children().EachWithBreak(func(_ int, child *goquery.Selection) bool {
			rec := match(child, criteria)
			if len(rec) == 0 {
				return true
			}
			return yield(rec)
		})
	}
}

// First returns the first record of seq.
func First(seq iter.Seq[Record]) (Record, bool) {
	for rec := range seq {
		return rec, true
	}
	return nil, false
}

func match(node *goquery.Selection, criteria Criteria) Record {
	rec := Record{}
	for _, rule := range criteria {
		found := FindClass(node, rule.Tag, rule.Field)
		if found.Length() == 0 {
			continue
		}
		rec[rule.Field] = strings.TrimSpace(found.Text())
	}
	return rec
}

// FindClass returns the first descendant of node with the given tag and
// class. The class is compared as a whole token, so keys need no selector
// escaping.
func FindClass(node *goquery.Selection, tag, class string) *goquery.Selection {
	return node.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.HasClass(class)
	}).First()
}
