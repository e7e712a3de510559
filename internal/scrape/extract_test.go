package scrape

import (
	"slices"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rowCriteria = Criteria{
	{Field: "temp", Tag: "div"},
	{Field: "phrase", Tag: "span"},
}

func parseContainer(t *testing.T, html, selector string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	sel := doc.Find(selector).First()
	require.Equal(t, 1, sel.Length(), "selector %s", selector)
	return sel
}

func TestParse_SkipsChildrenWithoutMatches(t *testing.T) {
	container := parseContainer(t, `
<section id="rows">
  <div><div class="temp"> 68° </div><span class="phrase">Cloudy</span></div>
  <div><p>advert</p></div>
  <div><span class="phrase">Sunny</span></div>
</section>`, "#rows")

	got := slices.Collect(Parse(container, rowCriteria))

	require.Len(t, got, 2)
	assert.Equal(t, Record{"temp": "68°", "phrase": "Cloudy"}, got[0])
	assert.Equal(t, Record{"phrase": "Sunny"}, got[1])
}

func TestParse_NoMatches(t *testing.T) {
	container := parseContainer(t, `<ul id="rows"><li>one</li><li>two</li></ul>`, "#rows")

	got := slices.Collect(Parse(container, rowCriteria))
	assert.Empty(t, got)
}

func TestParse_OnlyDirectChildren(t *testing.T) {
	// The outer child holds both rows, so they collapse into one record
	// taking the first match of each rule.
	container := parseContainer(t, `
<div id="rows">
  <div>
    <div><div class="temp">10</div></div>
    <div><div class="temp">20</div></div>
  </div>
</div>`, "#rows")

	got := slices.Collect(Parse(container, rowCriteria))
	require.Len(t, got, 1)
	assert.Equal(t, "10", got[0]["temp"])
}

func TestParse_ClassAndTagMustBothMatch(t *testing.T) {
	container := parseContainer(t, `
<div id="rows">
  <div><span class="temp">wrong tag</span><div class="other">wrong class</div></div>
  <div><div class="big temp">30</div></div>
</div>`, "#rows")

	got := slices.Collect(Parse(container, rowCriteria))
	require.Len(t, got, 1)
	assert.Equal(t, Record{"temp": "30"}, got[0])
}

func TestParse_MatchesDescendantsNotChildItself(t *testing.T) {
	container := parseContainer(t, `<div id="rows"><div class="temp">self</div></div>`, "#rows")

	assert.Empty(t, slices.Collect(Parse(container, rowCriteria)))
}

func TestParse_FlattensNestedText(t *testing.T) {
	container := parseContainer(t, `
<div id="rows"><div><div class="temp">
  <span>7</span><sup>2</sup>°
</div></div></div>`, "#rows")

	rec, ok := First(Parse(container, rowCriteria))
	require.True(t, ok)
	assert.Equal(t, "72°", strings.Join(strings.Fields(rec["temp"]), ""))
}

func TestParse_IsRepeatable(t *testing.T) {
	container := parseContainer(t, `
<div id="rows"><div><div class="temp">1</div></div><div><div class="temp">2</div></div></div>`, "#rows")

	seq := Parse(container, rowCriteria)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestParse_NilContainer(t *testing.T) {
	_, ok := First(Parse(nil, rowCriteria))
	assert.False(t, ok)
}

func TestFirst_StopsEarly(t *testing.T) {
	container := parseContainer(t, `
<div id="rows"><div><div class="temp">1</div></div><div><div class="temp">2</div></div></div>`, "#rows")

	rec, ok := First(Parse(container, rowCriteria))
	require.True(t, ok)
	assert.Equal(t, "1", rec["temp"])
}

func TestCriteria_Fields(t *testing.T) {
	assert.Equal(t, []string{"temp", "phrase"}, rowCriteria.Fields())
}
