package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/bracketscan/internal/analyzer"
	"github.com/ivlev/bracketscan/internal/bracket"
	"github.com/ivlev/bracketscan/internal/config"
	"github.com/ivlev/bracketscan/internal/layout"
	"github.com/ivlev/bracketscan/internal/source"
	"github.com/ivlev/bracketscan/internal/system"
)

// InspectFunc receives every extracted region after its image was aggregated.
// It is a debugging aid and cannot influence the results.
// With more than one worker it is called concurrently.
type InspectFunc func(round int, region *analyzer.Region)

// Project scans every page of a source against one shared layout
type Project struct {
	Config  *config.Config
	Source  source.Source
	Layout  []layout.RectSpec
	Inspect InspectFunc

	aggregator *bracket.Aggregator
	interp     draw.Interpolator
	frames     *system.FramePool
}

func NewProject(cfg *config.Config, src source.Source, specs []layout.RectSpec) (*Project, error) {
	interp, err := source.Resampler(cfg.Resampler)
	if err != nil {
		return nil, err
	}

	return &Project{
		Config: cfg,
		Source: src,
		Layout: specs,
		aggregator: &bracket.Aggregator{
			Tolerance: cfg.Tolerance,
			Strict:    cfg.StrictGames,
		},
		interp: interp,
		frames: system.NewFramePool(cfg.Width, cfg.Height),
	}, nil
}

type pageResult struct {
	name    string
	round   int
	results *bracket.Results
}

// Run processes all pages and returns the results keyed by round.
// Pages are independent, so they are spread over Config.Workers goroutines;
// the first failure cancels the rest and aborts the run.
func (p *Project) Run(ctx context.Context) (*bracket.Tournament, error) {
	pageCount := p.Source.PageCount()
	if pageCount == 0 {
		return nil, source.ErrNoPages
	}

	workers := p.Config.Workers
	if workers > pageCount {
		workers = pageCount
	}
	if workers < 1 {
		workers = 1
	}

	pages := make([]*pageResult, pageCount)
	var done atomic.Int32

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < pageCount; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := p.processPage(i)
			if err != nil {
				return fmt.Errorf("%s: %w", p.Source.PageName(i), err)
			}
			pages[i] = res

			if p.Config.Verbose {
				fmt.Printf("[>] Ready: %d/%d (%s)\n", done.Add(1), pageCount, res.name)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in source order so a repeated round number resolves the same way every run
	tournament := bracket.NewTournament()
	for _, page := range pages {
		if tournament.Set(page.round, page.results) {
			log.Printf("[!] Round %d appears in more than one image, keeping %s", page.round, page.name)
		}
	}
	return tournament, nil
}

func (p *Project) processPage(i int) (*pageResult, error) {
	name := p.Source.PageName(i)

	round, err := bracket.ParseRound(name)
	if err != nil {
		return nil, err
	}

	img, err := p.Source.RenderPage(i, p.Config.DPI)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	frame := source.Normalize(img, p.Config.Width, p.Config.Height, p.interp, p.frames)
	regions, err := analyzer.Extract(frame, p.Layout)
	// Regions own copies of their pixels, the frame can go back right away
	p.frames.Put(frame)
	if err != nil {
		return nil, err
	}

	results, err := p.aggregator.Aggregate(regions)
	if err != nil {
		return nil, err
	}

	if p.Config.Verbose {
		p.logRegions(round, regions, results)
	}
	if p.Inspect != nil {
		for _, r := range regions {
			p.Inspect(round, r)
		}
	}

	return &pageResult{name: name, round: round, results: results}, nil
}

func (p *Project) logRegions(round int, regions []*analyzer.Region, results *bracket.Results) {
	for i := 0; i+1 < len(regions); i += 2 {
		r := regions[i]
		m, _ := results.Get(r.Game)
		fmt.Println(matchLine(round, r, m, p.Config.Tolerance))
	}
}

// matchLine reports the winner Aggregate recorded for the pair, not a fresh count
func matchLine(round int, r *analyzer.Region, m bracket.Match, tolerance int) string {
	return fmt.Sprintf("[*] Round %d | %s | %s -> %v", round, m.Game, r.Colors(tolerance), m.Winner)
}

// IsConfigError reports whether err stems from a layout/resolution mismatch
// or an unusable image name rather than from reading the source.
func IsConfigError(err error) bool {
	var be *analyzer.BoundsError
	var rpe *bracket.RoundParseError
	var dge *bracket.DuplicateGameError
	return errors.As(err, &be) || errors.As(err, &rpe) || errors.As(err, &dge)
}
