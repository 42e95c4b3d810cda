package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	scrapeerrors "github.com/velodata/tt-scraper/pkg/errors"
)

const testBaseURL = "https://www.procyclingstats.com/"

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// raceInfoItems renders the 18-entry key/value sidebar in page order:
// date, _, _, class, _, distance, _, _, _, _, profile score, vertical
// meters, departure, arrival, race ranking, startlist quality, _,
// temperature.
func raceInfoItems(values [18]string) string {
	var b strings.Builder
	for _, v := range values {
		b.WriteString(`<li><div class="title">k</div><div class="value">` + v + `</div></li>`)
	}
	return b.String()
}

func racePage(title, infoItems, winnerTime, profileImg string) string {
	return `<!DOCTYPE html>
<html>
<head><title>` + title + `</title></head>
<body>
<div class="wrapper"><div class="content"><div class="page-content noSideNav"><div>
<div class="borderbox w30 right mb_w100">
  <div class="left w70">
    <ul class="list keyvalueList lineh16 fs12">` + infoItems + `</ul>
  </div>
  ` + profileImg + `
</div>
<div id="resultsCont">
  <table><tbody>
    <tr><td>1</td><td>GANNA Filippo</td><td class="time ar"><span>` + winnerTime + `</span></td></tr>
    <tr><td>2</td><td>EVENEPOEL Remco</td><td class="time ar"><span>1:02:03</span></td></tr>
  </tbody></table>
</div>
</div></div></div></div>
</body></html>`
}

var tdfStage21Values = [18]string{
	"21 July 2024", "14:30", "-", "2.UWT", "ME", "33.7 km",
	"GT.B.Stage", "UCI.WR.GT.B", "", "n/a", "73", "720",
	`<a href="#">Monaco</a>`, `<a href="#">Nice</a>`, `<a href="#">1</a>`,
	"", "Time trial", "28 °C",
}

func TestRaceScraperParse(t *testing.T) {
	s := NewRaceScraper(nil, testBaseURL, zap.NewNop())

	html := racePage(
		"Tour de France 2024 Stage 21 (ITT) results",
		raceInfoItems(tdfStage21Values),
		"45:24",
		`<div class="mt10"><div><a href="#"><img src="images/profiles/ca/fb/tour-de-france-2024-stage-21-profile.jpg"></a></div></div>`,
	)
	url := testBaseURL + "race/tour-de-france/2024/stage-21"

	race, err := s.Parse(url, mustDoc(t, html))
	require.NoError(t, err)

	assert.Equal(t, url, race.URL)
	assert.Equal(t, "Tour de France 2024 Stage 21 (ITT)", race.Title)
	assert.Equal(t, "21 July 2024", race.Date)
	assert.Equal(t, "Monaco", race.Departure)
	assert.Equal(t, "Nice", race.Arrival)
	assert.Equal(t, "2.UWT", race.Class)
	assert.Equal(t, 33.7, race.DistanceKm)
	assert.Equal(t, 2724, race.WinnerTimeSec)
	assert.Equal(t, 44.537, race.WinnerSpeedKmh)

	vertical, ok := race.VerticalMeters.Int()
	require.True(t, ok)
	assert.Equal(t, 720, vertical)

	assert.True(t, race.StartlistQuality.IsNone())

	profileScore, ok := race.ProfileScore.Int()
	require.True(t, ok)
	assert.Equal(t, 73, profileScore)

	temperature, ok := race.Temperature.Int()
	require.True(t, ok)
	assert.Equal(t, 28, temperature)

	ranking, ok := race.RaceRanking.Int()
	require.True(t, ok)
	assert.Equal(t, 1, ranking)

	assert.Equal(t, testBaseURL+"images/profiles/ca/fb/tour-de-france-2024-stage-21-profile.jpg", race.ProfileImageURL)
}

func TestRaceScraperParseIsIdempotent(t *testing.T) {
	s := NewRaceScraper(nil, testBaseURL, zap.NewNop())
	html := racePage("Race results", raceInfoItems(tdfStage21Values), "45:24", "")
	doc := mustDoc(t, html)

	first, err := s.Parse("u", doc)
	require.NoError(t, err)
	second, err := s.Parse("u", doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRaceScraperParseLegacyWinnerTime(t *testing.T) {
	s := NewRaceScraper(nil, testBaseURL, zap.NewNop())

	values := tdfStage21Values
	values[5] = "14.4 km"
	values[9] = "n/a"
	values[11] = "n/a"
	values[15] = "850 (12)"
	values[17] = ""

	html := racePage("NC results", raceInfoItems(values), "14.08,96", "")
	race, err := s.Parse("u", mustDoc(t, html))
	require.NoError(t, err)

	assert.Equal(t, 848, race.WinnerTimeSec)
	assert.Equal(t, 14.4, race.DistanceKm)
	assert.True(t, race.VerticalMeters.IsNone())
	assert.True(t, race.Temperature.IsNone())
	assert.Empty(t, race.ProfileImageURL)

	quality, ok := race.StartlistQuality.Int()
	require.True(t, ok)
	assert.Equal(t, 12, quality)
}

func TestRaceScraperParseMissingWinnerTime(t *testing.T) {
	s := NewRaceScraper(nil, testBaseURL, zap.NewNop())

	html := racePage("Race results", raceInfoItems(tdfStage21Values), "45:24", "")
	html = strings.ReplaceAll(html, `id="resultsCont"`, `id="other"`)

	_, err := s.Parse("u", mustDoc(t, html))
	require.Error(t, err)
	assert.True(t, scrapeerrors.IsExtraction(err))
}

func TestRaceScraperParseTruncatedInfo(t *testing.T) {
	s := NewRaceScraper(nil, testBaseURL, zap.NewNop())

	items := raceInfoItems(tdfStage21Values)
	items = items[:strings.LastIndex(items, "<li>")]

	html := racePage("Race results", items, "45:24", "")
	_, err := s.Parse("u", mustDoc(t, html))
	require.Error(t, err)
	assert.True(t, scrapeerrors.IsExtraction(err))
}

func TestRaceScraperParseBadDistance(t *testing.T) {
	s := NewRaceScraper(nil, testBaseURL, zap.NewNop())

	values := tdfStage21Values
	values[5] = "n/a"

	html := racePage("Race results", raceInfoItems(values), "45:24", "")
	_, err := s.Parse("u", mustDoc(t, html))
	require.Error(t, err)
	assert.True(t, scrapeerrors.IsExtraction(err))
}
