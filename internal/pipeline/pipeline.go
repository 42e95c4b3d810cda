// Package pipeline drives the three-stage scrape: discover specialists,
// fetch their profiles, fetch their results, then fetch every distinct race
// those results reference. Each stage runs fully before the next because a
// stage's input set is only known once the previous one settles.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/velodata/tt-scraper/internal/domain"
)

// SpecialistSource yields the candidate rider set.
type SpecialistSource interface {
	FetchAll(ctx context.Context) ([]domain.RiderRef, error)
}

// RiderSource turns a discovered ref into a rider record.
type RiderSource interface {
	FetchRider(ctx context.Context, ref domain.RiderRef) (*domain.Rider, error)
}

// ResultSource yields a rider's qualifying result rows.
type ResultSource interface {
	FetchResults(ctx context.Context, riderURL string) ([]domain.Result, error)
}

// RaceSource turns a race URL into a race record.
type RaceSource interface {
	FetchRace(ctx context.Context, url string) (*domain.Race, error)
}

// Datasets holds the three assembled collections, sorted and ready for
// export.
type Datasets struct {
	Riders  []domain.Rider
	Results []domain.Result
	Races   []domain.Race
}

// Stats counts what each stage produced and dropped. Item failures inside a
// stage never abort the run, so these counters are the only trace they
// leave besides the logs.
type Stats struct {
	RidersDiscovered     int
	RidersScraped        int
	RidersDropped        int
	ResultBatches        int
	ResultBatchesDropped int
	ResultRows           int
	RaceURLs             int
	RacesScraped         int
	RacesDropped         int
}

// Pipeline owns one run. All state lives here; nothing survives between
// runs.
type Pipeline struct {
	specialists SpecialistSource
	riders      RiderSource
	results     ResultSource
	races       RaceSource
	concurrency int
	logger      *zap.Logger
}

func New(specialists SpecialistSource, riders RiderSource, results ResultSource, races RaceSource, concurrency int, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		specialists: specialists,
		riders:      riders,
		results:     results,
		races:       races,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Run executes the full scrape. Only discovery failure or a broken
// sequencing step is fatal; individual riders, result batches and races
// fail soft and are counted.
func (p *Pipeline) Run(ctx context.Context) (*Datasets, *Stats, error) {
	stats := &Stats{}

	refs, err := p.specialists.FetchAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("specialist discovery failed: %w", err)
	}
	stats.RidersDiscovered = len(refs)
	p.logger.Info("specialists discovered", zap.Int("riders", len(refs)))

	riders := p.fetchRiders(ctx, refs, stats)
	p.logger.Info("rider stage complete",
		zap.Int("scraped", stats.RidersScraped),
		zap.Int("dropped", stats.RidersDropped))

	results := p.fetchResults(ctx, riders, stats)
	p.logger.Info("result stage complete",
		zap.Int("rows", stats.ResultRows),
		zap.Int("batches_dropped", stats.ResultBatchesDropped))

	raceURLs := distinctRaceURLs(results)
	stats.RaceURLs = len(raceURLs)

	races := p.fetchRaces(ctx, raceURLs, stats)
	p.logger.Info("race stage complete",
		zap.Int("scraped", stats.RacesScraped),
		zap.Int("dropped", stats.RacesDropped))

	sortRiders(riders)
	sortResults(results)
	p.sortRaces(races)

	return &Datasets{Riders: riders, Results: results, Races: races}, stats, nil
}

func (p *Pipeline) fetchRiders(ctx context.Context, refs []domain.RiderRef, stats *Stats) []domain.Rider {
	slots := make([]*domain.Rider, len(refs))
	var mu sync.Mutex

	pl := pool.New().WithMaxGoroutines(p.concurrency)
	for idx, ref := range refs {
		pl.Go(func() {
			rider, err := p.riders.FetchRider(ctx, ref)
			if err != nil {
				p.logger.Warn("rider dropped",
					zap.String("rider", ref.Name),
					zap.String("url", ref.URL),
					zap.Error(err))
				return
			}
			mu.Lock()
			slots[idx] = rider
			mu.Unlock()
		})
	}
	pl.Wait()

	riders := make([]domain.Rider, 0, len(slots))
	for _, r := range slots {
		if r == nil {
			stats.RidersDropped++
			continue
		}
		riders = append(riders, *r)
	}
	stats.RidersScraped = len(riders)
	return riders
}

type resultBatch struct {
	rows []domain.Result
	err  error
}

func (p *Pipeline) fetchResults(ctx context.Context, riders []domain.Rider, stats *Stats) []domain.Result {
	slots := make([]resultBatch, len(riders))
	var mu sync.Mutex

	pl := pool.New().WithMaxGoroutines(p.concurrency)
	for idx, rider := range riders {
		pl.Go(func() {
			rows, err := p.results.FetchResults(ctx, rider.URL)
			mu.Lock()
			slots[idx] = resultBatch{rows: rows, err: err}
			mu.Unlock()
		})
	}
	pl.Wait()

	stats.ResultBatches = len(riders)
	var results []domain.Result
	for idx, batch := range slots {
		if batch.err != nil {
			stats.ResultBatchesDropped++
			p.logger.Warn("result batch dropped",
				zap.String("rider_url", riders[idx].URL),
				zap.Error(batch.err))
			continue
		}
		results = append(results, batch.rows...)
	}
	stats.ResultRows = len(results)
	return results
}

type raceSlot struct {
	race *domain.Race
	err  error
}

func (p *Pipeline) fetchRaces(ctx context.Context, urls []string, stats *Stats) []domain.Race {
	slots := make([]raceSlot, len(urls))
	var mu sync.Mutex

	pl := pool.New().WithMaxGoroutines(p.concurrency)
	for idx, url := range urls {
		pl.Go(func() {
			race, err := p.races.FetchRace(ctx, url)
			mu.Lock()
			slots[idx] = raceSlot{race: race, err: err}
			mu.Unlock()
		})
	}
	pl.Wait()

	races := make([]domain.Race, 0, len(urls))
	for idx, slot := range slots {
		if slot.err != nil {
			stats.RacesDropped++
			p.logger.Warn("race dropped",
				zap.String("url", urls[idx]),
				zap.Error(slot.err))
			continue
		}
		races = append(races, *slot.race)
	}
	stats.RacesScraped = len(races)
	return races
}

// distinctRaceURLs collects each referenced race once, in first-appearance
// order. Races are fetched at most once per run.
func distinctRaceURLs(results []domain.Result) []string {
	seen := make(map[string]struct{}, len(results))
	var urls []string
	for _, r := range results {
		if _, ok := seen[r.RaceURL]; ok {
			continue
		}
		seen[r.RaceURL] = struct{}{}
		urls = append(urls, r.RaceURL)
	}
	return urls
}

func sortRiders(riders []domain.Rider) {
	sort.Slice(riders, func(i, j int) bool {
		if riders[i].LastName != riders[j].LastName {
			return riders[i].LastName < riders[j].LastName
		}
		return riders[i].FirstName < riders[j].FirstName
	})
}

func sortResults(results []domain.Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].RiderURL != results[j].RiderURL {
			return results[i].RiderURL < results[j].RiderURL
		}
		return results[i].RaceURL < results[j].RaceURL
	})
}

// sortRaces orders newest first. Races whose date field does not parse sort
// to the end.
func (p *Pipeline) sortRaces(races []domain.Race) {
	dates := make(map[string]time.Time, len(races))
	for _, r := range races {
		t, err := r.ParsedDate()
		if err != nil {
			p.logger.Warn("race date did not parse, sorting last",
				zap.String("url", r.URL),
				zap.String("date", r.Date))
			continue
		}
		dates[r.URL] = t
	}
	sort.SliceStable(races, func(i, j int) bool {
		return dates[races[i].URL].After(dates[races[j].URL])
	})
}
