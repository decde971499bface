package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-netanalyzer/pkg/validation"
)

func parseNode(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a node id", arg)
	}
	return id, nil
}

func newStatsCmd(a *app) *cobra.Command {
	var bins int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print degree, clustering and common-neighbor statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			summary, err := a.analyzer.Summary(ctx)
			if err != nil {
				return err
			}
			degrees, err := a.analyzer.DegreeDistribution(ctx)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("bins") {
				bins = a.analyzer.DefaultBins()
			}
			buckets, err := a.analyzer.ClusteringCoefficientDistribution(ctx, bins)
			if err != nil {
				return err
			}

			printBlocks(cmd.OutOrStdout(),
				renderLoad(a.loaded),
				renderSummary(summary),
				renderDegrees(degrees),
				renderBuckets(buckets))
			return nil
		},
	}
	cmd.Flags().IntVar(&bins, "bins", 0, "clustering coefficient histogram buckets (default from config)")
	return cmd
}

func newPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path START END",
		Short: "Find the minimum-weight path between two nodes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseNode(args[0])
			if err != nil {
				return err
			}
			end, err := parseNode(args[1])
			if err != nil {
				return err
			}

			res, err := a.analyzer.ShortestPath(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			printBlocks(cmd.OutOrStdout(), renderPath(start, end, res))
			return nil
		},
	}
}

func newCommunitiesCmd(a *app) *cobra.Command {
	var members bool
	cmd := &cobra.Command{
		Use:   "communities",
		Short: "Partition the graph with one level of Louvain modularity optimization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.analyzer.DetectCommunities(cmd.Context())
			if err != nil {
				return err
			}
			if !members {
				shown := *res
				shown.Communities = nil
				printBlocks(cmd.OutOrStdout(),
					renderCommunities(&shown, len(res.Communities)),
					mutedStyle.Render("use --members to list them"))
				return nil
			}
			printBlocks(cmd.OutOrStdout(), renderCommunities(res, len(res.Communities)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&members, "members", false, "list the members of every community")
	return cmd
}

func newInfluenceCmd(a *app) *cobra.Command {
	var (
		seeds       []uint
		steps       int
		probability float64
	)
	cmd := &cobra.Command{
		Use:   "influence",
		Short: "Simulate an independent-cascade diffusion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req validation.InfluenceRequest
			for _, id := range seeds {
				req.Seeds = append(req.Seeds, uint64(id))
			}
			if cmd.Flags().Changed("steps") {
				req.Steps = &steps
			}
			if cmd.Flags().Changed("probability") {
				req.Probability = &probability
			}

			out, err := a.analyzer.SimulateInfluence(cmd.Context(), req)
			if err != nil {
				return err
			}
			printBlocks(cmd.OutOrStdout(), renderInfluence(out))
			return nil
		},
	}
	f := cmd.Flags()
	f.UintSliceVar(&seeds, "seed-node", nil, "initially influenced node (repeatable, default one random node)")
	f.IntVar(&steps, "steps", 0, "maximum propagation rounds (default from config)")
	f.Float64Var(&probability, "probability", 0, "per-edge activation probability (default from config)")
	return cmd
}

func newSeedsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seeds N",
		Short: "Suggest up to N pairwise non-adjacent high-degree starting nodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%q is not a count", args[0])
			}
			nodes, err := a.analyzer.BestStartingNodes(cmd.Context(), n)
			if err != nil {
				return err
			}
			printBlocks(cmd.OutOrStdout(), renderSeeds(n, nodes))
			return nil
		},
	}
}
