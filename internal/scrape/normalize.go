package scrape

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lox/weatherterm/internal/models"
)

var (
	leadingDigits  = regexp.MustCompile(`^[0-9]+`)
	highLowPattern = regexp.MustCompile(`H\s+(\d+|-{0,2}).+L\s+(\d+|-{0,2})`)
)

// SanitizeDigits returns the run of digits text starts with, or the sentinel
// when text does not start with a digit.
func SanitizeDigits(text string) string {
	if digits := leadingDigits.FindString(text); digits != "" {
		return digits
	}
	return models.Sentinel
}

// ParseHighLow pulls the high and low temperatures out of text such as
// "H 72° L 55°". A missing reading ("--") comes back as the sentinel.
func ParseHighLow(text string) (high, low string, err error) {
	m := highLowPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", &models.ParseError{Field: "hilo", Msg: fmt.Sprintf("no high/low markers in %q", text)}
	}
	return orSentinel(m[1]), orSentinel(m[2]), nil
}

func orSentinel(s string) string {
	if strings.Trim(s, "-") == "" {
		return models.Sentinel
	}
	return s
}

// FirstTwoOf reads the label of the first cell of each row in node's table
// and returns the first two, which the page lays out as wind then humidity.
func FirstTwoOf(node *goquery.Selection) (wind, humidity string, err error) {
	body := node.Find("table").First().Find("tbody").First()
	if body.Length() == 0 {
		return "", "", &models.ParseError{Field: "details", Msg: "no table body"}
	}

	var labels []string
	var rowErr error
	body.Children().EachWithBreak(func(_ int, row *goquery.Selection) bool {
		label := row.Find("td").First().Find("span").First()
		if label.Length() == 0 {
			rowErr = &models.ParseError{Field: "details", Msg: "row has no cell label"}
			return false
		}
		labels = append(labels, strings.TrimSpace(label.Text()))
		return len(labels) < 2
	})
	if rowErr != nil {
		return "", "", rowErr
	}
	if len(labels) < 2 {
		return "", "", &models.ParseError{Field: "details", Msg: "insufficient data: need wind and humidity rows"}
	}
	return labels[0], labels[1], nil
}
