// neurogrid runs a multi-rank exchange demo inside one process: every rank
// is a goroutine group wired to its peers through the in-process collective.
// Ranks build a round-robin network, distribute target registrations, then
// run a number of slices in which every node spikes and its events are
// delivered to all registered remote targets.
package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/neurogrid/go-neurogrid/common/types"
	"github.com/neurogrid/go-neurogrid/exchange"
	"github.com/neurogrid/go-neurogrid/register"
	"github.com/neurogrid/go-neurogrid/targets"
	"github.com/neurogrid/go-neurogrid/transport"
)

type options struct {
	Ranks        int   `mapstructure:"ranks"`
	Threads      int   `mapstructure:"threads"`
	MinDelay     int64 `mapstructure:"min-delay"`
	MaxDelay     int64 `mapstructure:"max-delay"`
	Nodes        int   `mapstructure:"nodes"`
	Slices       int   `mapstructure:"slices"`
	SegmentSlots int   `mapstructure:"segment-slots"`
	Debug        bool  `mapstructure:"debug"`
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "neurogrid",
		Short:        "run the collective event exchange demo",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts options
			if err := viper.Unmarshal(&opts); err != nil {
				return fmt.Errorf("parse options: %w", err)
			}
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().Int("ranks", 4, "number of simulated processes")
	cmd.Flags().Int("threads", 2, "threads per process")
	cmd.Flags().Int64("min-delay", 2, "minimum propagation delay in steps")
	cmd.Flags().Int64("max-delay", 8, "maximum propagation delay in steps")
	cmd.Flags().Int("nodes", 32, "total number of nodes across all ranks")
	cmd.Flags().Int("slices", 10, "number of time slices to simulate")
	cmd.Flags().Int("segment-slots", 0, "override per-rank send segment capacity")
	cmd.Flags().Bool("debug", false, "enable debug logging")
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		panic(err)
	}
	return cmd
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// sliceClock is the demo's simulation clock: the step counter advances by
// one minimum delay per slice, slices always start at offset zero.
type sliceClock struct {
	step     atomic.Int64
	minDelay int64
	maxDelay int64
}

func (c *sliceClock) CurrentStep() types.Step { return types.Step(c.step.Load()) }
func (c *sliceClock) FromStep() types.Step    { return 0 }
func (c *sliceClock) MinDelay() int64         { return c.minDelay }
func (c *sliceClock) MaxDelay() int64         { return c.maxDelay }

// countingSink counts delivered spikes instead of driving node dynamics.
type countingSink struct {
	delivered atomic.Int64
}

func (s *countingSink) DeliverSpike(int, exchange.SpikeRecord, types.Step) error {
	s.delivered.Add(1)
	return nil
}

func run(ctx context.Context, opts options) error {
	logger, err := buildLogger(opts.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	endpoints := transport.NewGroup(opts.Ranks)
	sinks := make([]*countingSink, opts.Ranks)

	var eg errgroup.Group
	for rank := 0; rank < opts.Ranks; rank++ {
		ep := endpoints[rank]
		sink := &countingSink{}
		sinks[rank] = sink
		eg.Go(func() error {
			return runRank(ctx, logger.Named(fmt.Sprintf("rank-%d", ep.Rank())), opts, ep, sink)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var total int64
	for _, sink := range sinks {
		total += sink.delivered.Load()
	}
	logger.Info("simulation finished",
		zap.Int("ranks", opts.Ranks),
		zap.Int("slices", opts.Slices),
		zap.Int64("spikes delivered", total),
	)
	return nil
}

func buildLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

// runRank drives one simulated process from network build to the last slice.
func runRank(
	ctx context.Context,
	logger *zap.Logger,
	opts options,
	ep *transport.Endpoint,
	sink *countingSink,
) error {
	rank := ep.Rank()
	resolver := targets.NewModuloResolver(rank, opts.Ranks)
	registry := targets.NewRegistry(opts.Threads, resolver)
	table := targets.NewTable(opts.Threads)
	spikes := register.New[exchange.SpikeRecord](opts.Threads)
	clock := &sliceClock{minDelay: opts.MinDelay, maxDelay: opts.MaxDelay}

	mgr := exchange.New(ep, clock, resolver, spikes, registry, sink, table,
		exchange.WithLogger(logger),
		exchange.WithConfig(exchange.Config{
			Threads:      opts.Threads,
			SegmentSlots: opts.SegmentSlots,
		}),
	)
	if err := mgr.Configure(); err != nil {
		return err
	}

	// round-robin ring: every node connects to its successor, so each rank
	// holds one incoming connection per locally updated node
	for id := 0; id < opts.Nodes; id++ {
		pre := types.NodeID(id)
		post := types.NodeID((id + 1) % opts.Nodes)
		if !resolver.IsLocal(post) {
			continue
		}
		tid := int(uint64(post) % uint64(opts.Threads))
		registry.Register(tid, exchange.TargetRecord{
			NodeID:   pre,
			Rank:     uint32(rank),
			Tid:      uint32(tid),
			SynIndex: 0,
			Lcid:     uint32(uint64(post) / uint64(opts.Ranks)),
		})
	}
	if err := mgr.GatherTargetData(ctx); err != nil {
		return err
	}
	logger.Info("targets distributed", zap.Int("owned", table.Len()))

	for slice := 0; slice < opts.Slices; slice++ {
		// every locally owned node spikes once per slice; its events go to
		// whatever remote targets the gather registered for it
		for id := 0; id < opts.Nodes; id++ {
			node := types.NodeID(id)
			if !resolver.IsLocal(node) {
				continue
			}
			producer := int(uint64(node) % uint64(opts.Threads))
			for _, tgt := range table.TargetsOf(node) {
				spikes.Append(producer, int(tgt.Rank), exchange.SpikeRecord{
					Tid:      tgt.Tid,
					SynIndex: tgt.SynIndex,
					Lcid:     tgt.Lcid,
					Lag:      uint32(uint64(node) % uint64(opts.MinDelay)),
				})
			}
		}

		var team errgroup.Group
		for tid := 0; tid < opts.Threads; tid++ {
			team.Go(func() error {
				return mgr.GatherSpikeData(tid)
			})
		}
		if err := team.Wait(); err != nil {
			return fmt.Errorf("slice %d: %w", slice, err)
		}
		mgr.AdvanceModuli()
		clock.step.Add(opts.MinDelay)
	}
	logger.Info("rank done", zap.Int64("delivered", sink.delivered.Load()))
	return nil
}
