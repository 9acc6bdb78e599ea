// Package extender creates case studies and adds revisions to them.
package extender

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/bjulian5/varats/internal/casestudy"
	"github.com/bjulian5/varats/internal/commitmap"
	"github.com/bjulian5/varats/internal/model"
	"github.com/bjulian5/varats/internal/release"
	"github.com/bjulian5/varats/internal/sampling"
)

var (
	// ErrUnsupportedStrategy is returned for strategies this tool cannot run
	ErrUnsupportedStrategy = errors.New("unsupported extender strategy")
	// ErrMissingOption is returned when a strategy lacks a required option
	ErrMissingOption = errors.New("missing option")
)

// Options configures how revisions are selected
type Options struct {
	// ExtraRevs are revisions added verbatim, abbreviated hashes allowed
	ExtraRevs []string
	// RevsPerYear is the number of revisions sampled from each year
	RevsPerYear int
	// RevsYearSep puts the revisions of every year into their own stage
	RevsYearSep bool
	// NumRev is the number of revisions drawn by distribution sampling
	NumRev int
	// MergeStage is the stage that receives the new revisions
	MergeStage int

	Distribution *model.SamplingMethod
	ReleaseType  *model.ReleaseType

	// Rand drives all sampling. A time seeded generator is used when nil.
	Rand *rand.Rand
}

func (o *Options) rng() *rand.Rand {
	if o.Rand == nil {
		o.Rand = sampling.NewRand(uint64(time.Now().UnixNano()))
	}
	return o.Rand
}

// Generate creates a new case study for project. Revisions are added per
// year when RevsPerYear is set, by sampling NumRev revisions with method,
// from releases when ReleaseType is set and from ExtraRevs.
func Generate(method model.SamplingMethod, cmap *commitmap.CommitMap, version int, project string,
	opts Options, releases release.Provider) (*casestudy.CaseStudy, error) {
	cs := casestudy.New(project, version)
	opts.MergeStage = 0
	opts.Distribution = &method
	opts.rng()

	if opts.RevsPerYear > 0 {
		if err := Extend(cs, cmap, model.ExtendPerYearAdd, opts, releases); err != nil {
			return nil, err
		}
	}
	if opts.NumRev > 0 {
		if err := Extend(cs, cmap, model.ExtendDistribAdd, opts, releases); err != nil {
			return nil, err
		}
	}
	if opts.ReleaseType != nil {
		if err := Extend(cs, cmap, model.ExtendReleaseAdd, opts, releases); err != nil {
			return nil, err
		}
	}
	if len(opts.ExtraRevs) > 0 {
		if err := Extend(cs, cmap, model.ExtendSimpleAdd, opts, releases); err != nil {
			return nil, err
		}
	}
	return cs, nil
}

// Extend adds revisions to cs with the given strategy
func Extend(cs *casestudy.CaseStudy, cmap *commitmap.CommitMap, strategy model.ExtenderStrategy,
	opts Options, releases release.Provider) error {
	if opts.MergeStage < 0 {
		return fmt.Errorf("invalid merge stage %d", opts.MergeStage)
	}
	slog.Debug("extending case study",
		"project", cs.ProjectName(), "strategy", strategy.String(), "merge_stage", opts.MergeStage)

	switch strategy {
	case model.ExtendSimpleAdd:
		return extendWithExtraRevs(cs, cmap, opts)
	case model.ExtendDistribAdd:
		return extendWithDistribution(cs, cmap, &opts)
	case model.ExtendPerYearAdd:
		return extendWithRevsPerYear(cs, cmap, &opts)
	case model.ExtendReleaseAdd:
		return extendWithReleases(cs, cmap, opts, releases)
	case model.ExtendSmoothPlot:
		return fmt.Errorf("%w: %s requires plot data", ErrUnsupportedStrategy, strategy)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedStrategy, strategy)
	}
}

// extendWithExtraRevs resolves every revision before changing cs
func extendWithExtraRevs(cs *casestudy.CaseStudy, cmap *commitmap.CommitMap, opts Options) error {
	revs := make([]casestudy.HashIDTuple, 0, len(opts.ExtraRevs))
	for _, rev := range opts.ExtraRevs {
		entry, err := cmap.Entry(rev)
		if err != nil {
			return fmt.Errorf("failed to add revision %s: %w", rev, err)
		}
		revs = append(revs, casestudy.NewHashIDTuple(entry.Hash, entry.ID))
	}
	cs.IncludeRevisions(revs, opts.MergeStage, true, nil, nil)
	return nil
}

func extendWithDistribution(cs *casestudy.CaseStudy, cmap *commitmap.CommitMap, opts *Options) error {
	if opts.Distribution == nil {
		return fmt.Errorf("%w: distrib_add needs a distribution", ErrMissingOption)
	}
	if opts.NumRev <= 0 {
		return fmt.Errorf("%w: distrib_add needs a positive number of revisions", ErrMissingOption)
	}

	candidates := newestFirst(cmap.Items(), func(e commitmap.Entry) bool {
		return !cs.HasRevisionInStage(e.Hash, opts.MergeStage)
	})
	sample, err := sample(opts, *opts.Distribution, opts.NumRev, candidates)
	if err != nil {
		return err
	}
	cs.IncludeRevisions(sample, opts.MergeStage, true, opts.Distribution, nil)
	return nil
}

func extendWithRevsPerYear(cs *casestudy.CaseStudy, cmap *commitmap.CommitMap, opts *Options) error {
	if opts.RevsPerYear <= 0 {
		return fmt.Errorf("%w: per_year_add needs a positive number of revisions per year", ErrMissingOption)
	}
	method := model.SamplingUniform
	if opts.Distribution != nil {
		method = *opts.Distribution
	}

	for _, year := range cmap.Years() {
		stageNum := opts.MergeStage
		if opts.RevsYearSep {
			stageNum = cs.NumStages()
		}

		candidates := newestFirst(cmap.InYear(year), func(e commitmap.Entry) bool {
			return !cs.HasRevisionInStage(e.Hash, stageNum)
		})
		if len(candidates) == 0 {
			continue
		}
		revs, err := sample(opts, method, opts.RevsPerYear, candidates)
		if err != nil {
			return err
		}

		cs.IncludeRevisions(revs, stageNum, true, &method, nil)
		if opts.RevsYearSep {
			cs.NameStage(stageNum, strconv.Itoa(year))
		}
		slog.Debug("sampled revisions for year", "year", year, "count", len(revs), "stage", stageNum)
	}
	return nil
}

func extendWithReleases(cs *casestudy.CaseStudy, cmap *commitmap.CommitMap, opts Options,
	releases release.Provider) error {
	if opts.ReleaseType == nil {
		return fmt.Errorf("%w: release_add needs a release type", ErrMissingOption)
	}
	if releases == nil {
		return fmt.Errorf("%w: release_add needs a release provider", ErrMissingOption)
	}

	found, err := releases.ReleaseRevisions(*opts.ReleaseType)
	if err != nil {
		return err
	}

	var revs []casestudy.HashIDTuple
	for _, r := range found {
		entry, err := cmap.Entry(r.Hash)
		if err != nil {
			slog.Debug("skipping release outside of commit range", "tag", r.Tag, "hash", r.Hash)
			continue
		}
		revs = append(revs, casestudy.NewHashIDTuple(entry.Hash, entry.ID))
	}
	cs.IncludeRevisions(revs, opts.MergeStage, true, nil, opts.ReleaseType)
	return nil
}

// newestFirst returns the entries accepted by keep, newest first
func newestFirst(entries []commitmap.Entry, keep func(commitmap.Entry) bool) []commitmap.Entry {
	result := make([]commitmap.Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		if keep(entries[i]) {
			result = append(result, entries[i])
		}
	}
	return result
}

func sample(opts *Options, method model.SamplingMethod, n int, candidates []commitmap.Entry) ([]casestudy.HashIDTuple, error) {
	rng := opts.rng()
	dist, err := sampling.ForMethod(method, rng)
	if err != nil {
		return nil, err
	}

	picked := sampling.SampleN(rng, dist, n, candidates)
	revs := make([]casestudy.HashIDTuple, 0, len(picked))
	for _, e := range picked {
		revs = append(revs, casestudy.NewHashIDTuple(e.Hash, e.ID))
	}
	return revs, nil
}
