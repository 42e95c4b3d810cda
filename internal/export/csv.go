// Package export writes the assembled datasets as flat CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/velodata/tt-scraper/internal/domain"
	"github.com/velodata/tt-scraper/internal/pipeline"
)

const (
	ridersFile  = "riders.csv"
	resultsFile = "results.csv"
	racesFile   = "races.csv"

	isoDateLayout = "2006-01-02"
)

var riderHeader = []string{
	"first_name", "last_name", "full_name", "nationality", "birth_year",
	"height", "weight", "onedayraces", "gc", "tt", "sprint", "climber",
	"photo_url", "url",
}

var resultHeader = []string{
	"rider_url", "result", "pnt", "seconds_lost", "race_url",
}

var raceHeader = []string{
	"race_title", "date", "departure", "arrival", "class", "distance",
	"vertical_meters", "startlist_quality", "profile_score", "temperature",
	"race_ranking", "winner_time", "winner_speed", "profile_image_url", "url",
}

// Writer persists the three datasets under one directory, header row first,
// absent values as empty fields. Race dates are normalized to ISO form on
// the way out; everything else is written as scraped.
type Writer struct {
	dir    string
	logger *zap.Logger
}

func NewWriter(dir string, logger *zap.Logger) *Writer {
	return &Writer{
		dir:    dir,
		logger: logger,
	}
}

func (w *Writer) WriteAll(ds *pipeline.Datasets) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := w.writeRiders(ds.Riders); err != nil {
		return err
	}
	if err := w.writeResults(ds.Results); err != nil {
		return err
	}
	return w.writeRaces(ds.Races)
}

func (w *Writer) writeRiders(riders []domain.Rider) error {
	rows := make([][]string, 0, len(riders))
	for _, r := range riders {
		rows = append(rows, []string{
			r.FirstName,
			r.LastName,
			r.FullName,
			r.Nationality,
			strconv.Itoa(r.BirthYear),
			formatFloat(r.Height),
			formatFloat(r.Weight),
			strconv.Itoa(r.OneDay),
			strconv.Itoa(r.GC),
			strconv.Itoa(r.TimeTrial),
			strconv.Itoa(r.Sprint),
			strconv.Itoa(r.Climber),
			r.PhotoURL,
			r.URL,
		})
	}
	return w.writeFile(ridersFile, riderHeader, rows)
}

func (w *Writer) writeResults(results []domain.Result) error {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.RiderURL,
			strconv.Itoa(r.Place),
			strconv.Itoa(r.Points),
			strconv.Itoa(r.SecondsLost),
			r.RaceURL,
		})
	}
	return w.writeFile(resultsFile, resultHeader, rows)
}

func (w *Writer) writeRaces(races []domain.Race) error {
	rows := make([][]string, 0, len(races))
	for _, r := range races {
		rows = append(rows, []string{
			r.Title,
			w.normalizeDate(r),
			r.Departure,
			r.Arrival,
			r.Class,
			formatFloat(r.DistanceKm),
			r.VerticalMeters.String(),
			r.StartlistQuality.String(),
			r.ProfileScore.String(),
			r.Temperature.String(),
			r.RaceRanking.String(),
			strconv.Itoa(r.WinnerTimeSec),
			formatFloat(r.WinnerSpeedKmh),
			r.ProfileImageURL,
			r.URL,
		})
	}
	return w.writeFile(racesFile, raceHeader, rows)
}

// normalizeDate converts the source date to ISO. An unparseable date passes
// through as scraped rather than losing the record at the final step.
func (w *Writer) normalizeDate(r domain.Race) string {
	t, err := r.ParsedDate()
	if err != nil {
		w.logger.Warn("race date written unnormalized",
			zap.String("url", r.URL),
			zap.String("date", r.Date))
		return r.Date
	}
	return t.Format(isoDateLayout)
}

func (w *Writer) writeFile(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}

	w.logger.Info("dataset written",
		zap.String("file", path),
		zap.Int("records", len(rows)))
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
