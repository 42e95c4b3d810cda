package scrape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/velodata/tt-scraper/internal/domain"
	scrapeerrors "github.com/velodata/tt-scraper/pkg/errors"
)

type resultRow struct {
	date     string
	raceHref string
	place    string
	class    string
	timeLost string
}

func resultsPage(rows []resultRow) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><body><div class="wrapper"><div class="content"><div class="page-content"><div><div class="mt10"><table><tbody>`)
	for _, r := range rows {
		b.WriteString("<tr>")
		b.WriteString("<td>" + r.date + "</td>")
		b.WriteString(`<td><a href="` + r.raceHref + `">race</a></td>`)
		b.WriteString("<td>" + r.place + "</td>")
		b.WriteString("<td>" + r.class + "</td>")
		b.WriteString("<td>53.2</td>")
		b.WriteString("<td>" + r.timeLost + "</td>")
		b.WriteString("</tr>")
	}
	b.WriteString(`</tbody></table></div></div></div></div></div></body></html>`)
	return b.String()
}

func TestResultScraperParse(t *testing.T) {
	s := NewResultScraper(nil, testBaseURL, 2020, zap.NewNop())
	riderURL := testBaseURL + "rider/filippo-ganna"

	rows := []resultRow{
		{date: "2024-07-21", raceHref: "race/tour-de-france/2024/stage-21", place: "1", class: "2.UWT", timeLost: "0:00"},
		{date: "2024-06-30", raceHref: "race/some-one-day-itt/2024", place: "2", class: "1.UWT", timeLost: "0:12"},
		{date: "2023-09-10", raceHref: "race/vuelta-a-espana/2023/stage-10", place: "DNF", class: "2.UWT", timeLost: "0:00"},
		{date: "2023-07-18", raceHref: "race/tour-de-france/2023/stage-16", place: "25", class: "2.UWT", timeLost: "2:41"},
		{date: "2022-06-22", raceHref: "race/nc-italy-itt/2022", place: "16", class: "NC", timeLost: "1:05:03"},
		{date: "2022-05-29", raceHref: "race/giro-d-italia/2022/stage-21", place: "1", class: "2.UWT", timeLost: "0:00"},
		{date: "2019-10-01", raceHref: "race/world-championship-itt/2019", place: "1", class: "WC", timeLost: "0:00"},
		{date: "2019-09-01", raceHref: "race/vuelta-a-espana/2019/stage-10", place: "1", class: "2.UWT", timeLost: "0:00"},
	}

	results, err := s.Parse(riderURL, mustDoc(t, resultsPage(rows)))
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, domain.Result{
		RiderURL:    riderURL,
		Place:       1,
		Points:      100,
		SecondsLost: 0,
		RaceURL:     testBaseURL + "race/tour-de-france/2024/stage-21",
	}, results[0])
	assert.Equal(t, domain.Result{
		RiderURL:    riderURL,
		Place:       16,
		Points:      0,
		SecondsLost: 3903,
		RaceURL:     testBaseURL + "race/nc-italy-itt/2022",
	}, results[1])
}

func TestResultScraperParseYearCutoffStopsScan(t *testing.T) {
	s := NewResultScraper(nil, testBaseURL, 2020, zap.NewNop())

	// The second row qualifies on its own but sits below the cutoff row, so
	// the reverse-chronological short-circuit must exclude it.
	rows := []resultRow{
		{date: "2019-10-01", raceHref: "race/world-championship-itt/2019", place: "1", class: "WC", timeLost: "0:00"},
		{date: "2024-07-21", raceHref: "race/tour-de-france/2024/stage-21", place: "1", class: "2.UWT", timeLost: "0:00"},
	}

	results, err := s.Parse("rider-url", mustDoc(t, resultsPage(rows)))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestResultScraperParseMalformedRowIsFatal(t *testing.T) {
	s := NewResultScraper(nil, testBaseURL, 2020, zap.NewNop())

	rows := []resultRow{
		{date: "2024-07-21", raceHref: "race/tour-de-france/2024/stage-21", place: "1", class: "2.UWT", timeLost: "0:00"},
	}
	html := strings.Replace(resultsPage(rows), "<td>0:00</td>", "", 1)

	_, err := s.Parse("rider-url", mustDoc(t, html))
	require.Error(t, err)
	assert.True(t, scrapeerrors.IsExtraction(err))
}

func TestResultScraperParseBadDateIsFatal(t *testing.T) {
	s := NewResultScraper(nil, testBaseURL, 2020, zap.NewNop())

	rows := []resultRow{
		{date: "21 July 2024", raceHref: "race/tour-de-france/2024/stage-21", place: "1", class: "2.UWT", timeLost: "0:00"},
	}

	_, err := s.Parse("rider-url", mustDoc(t, resultsPage(rows)))
	require.Error(t, err)
	assert.True(t, scrapeerrors.IsExtraction(err))
}

func TestResultScraperParseEmptyTable(t *testing.T) {
	s := NewResultScraper(nil, testBaseURL, 2020, zap.NewNop())

	results, err := s.Parse("rider-url", mustDoc(t, resultsPage(nil)))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestParsePlace(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{"20", 20, true},
		{"DNF", 0, false},
		{"DNS", 0, false},
		{"", 0, false},
		{"1a", 0, false},
		{"-3", 0, false},
	}
	for _, tc := range cases {
		got, ok := parsePlace(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
