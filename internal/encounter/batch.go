package encounter

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"stagesim/internal/config"
)

// Share is a damage total and its fraction of all damage in the batch.
type Share struct {
	Total int     `json:"total"`
	Ratio float64 `json:"ratio"`
}

type BatchSummary struct {
	Stage       string           `json:"stage"`
	Runs        int              `json:"runs"`
	Wins        int              `json:"wins"`
	Timeouts    int              `json:"timeouts"`
	WinRate     float64          `json:"win_rate"`
	AvgTime     float64          `json:"avg_time"`
	AvgDPS      float64          `json:"avg_dps"`
	TotalDamage int              `json:"total_damage"`
	ByStudent   map[string]Share `json:"by_student"`
	ByAbility   map[string]Share `json:"by_ability"`
	// Inconsistent counts runs whose ledger totals did not survive a rescan.
	Inconsistent int `json:"inconsistent,omitempty"`
}

// RunBatch plays stageID n times on at most workers goroutines. Run i uses
// seed opts.Seed+i, so a batch is reproducible regardless of scheduling.
// The first failing run cancels the rest.
func RunBatch(ctx context.Context, b *config.Bundle, stageID string, n, workers int, opts Options) (BatchSummary, error) {
	if workers <= 0 {
		workers = 1
	}
	opts.Record = false

	var (
		mu        sync.Mutex
		sumT      float64
		sumDPS    float64
		byStudent = map[string]int{}
		byAbility = map[string]int{}
	)
	sum := BatchSummary{Stage: stageID, Runs: n}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		runOpts := opts
		runOpts.Seed = opts.Seed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := RunSingle(b, stageID, runOpts)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			if res.Win {
				sum.Wins++
			}
			if res.TimedOut {
				sum.Timeouts++
			}
			if !res.LedgerConsistent {
				sum.Inconsistent++
			}
			sumT += res.Duration
			sumDPS += res.DPS
			for k, v := range res.Summary.DamageByActor {
				byStudent[k] += v
			}
			for k, v := range res.DamageByAbility {
				byAbility[k] += v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}

	for _, v := range byStudent {
		sum.TotalDamage += v
	}
	if n > 0 {
		sum.WinRate = float64(sum.Wins) / float64(n)
		sum.AvgTime = sumT / float64(n)
		sum.AvgDPS = sumDPS / float64(n)
	}
	sum.ByStudent = shares(byStudent, sum.TotalDamage)
	sum.ByAbility = shares(byAbility, sum.TotalDamage)
	return sum, nil
}

func shares(m map[string]int, total int) map[string]Share {
	out := make(map[string]Share, len(m))
	for k, v := range m {
		s := Share{Total: v}
		if total > 0 {
			s.Ratio = float64(v) / float64(total)
		}
		out[k] = s
	}
	return out
}
