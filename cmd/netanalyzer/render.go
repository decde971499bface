package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-netanalyzer/pkg/algorithms"
	"github.com/dd0wney/cluso-netanalyzer/pkg/engine"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF"))

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00")).
			Bold(true)
)

// row is one label/value line of a report
type row struct {
	label string
	value string
}

func intRow(label string, v int) row { return row{label, strconv.Itoa(v)} }
func uintRow(label string, v uint64) row { return row{label, strconv.FormatUint(v, 10)} }
func floatRow(label string, v float64) row { return row{label, strconv.FormatFloat(v, 'f', 6, 64)} }
func textRow(label string, v string) row { return row{label, v} }
func idsRow(label string, ids []uint64) row { return row{label, joinIDs(ids, ", ")} }

// section renders a titled box of aligned rows
func section(title string, rows ...row) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.label))
	}
	label := labelStyle.Width(width + 2)

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label.Render(r.label), valueStyle.Render(r.value)))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), boxStyle.Render(body))
}

func joinIDs(ids []uint64, sep string) string {
	if len(ids) == 0 {
		return mutedStyle.Render("none")
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return strings.Join(parts, sep)
}

func printBlocks(w io.Writer, blocks ...string) {
	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func renderLoad(res *engine.LoadResult) string {
	if res == nil {
		return warnStyle.Render("no dataset loaded")
	}
	rows := make([]row, 0, len(res.Sources)+2)
	for _, src := range res.Sources {
		rows = append(rows, textRow(src.Source, fmt.Sprintf("%d edges, %d duplicates, %d self-loops, %d skipped",
			src.Ingest.Inserted, src.Ingest.Duplicates, src.Ingest.SelfLoops, src.Parse.Skipped)))
	}
	rows = append(rows,
		intRow("inserted", res.Total.Inserted),
		intRow("skipped lines", res.Skipped))
	return section("Datasets", rows...)
}

func renderSummary(s *engine.Summary) string {
	return section("Graph",
		intRow("nodes", s.NodeCount),
		intRow("edges", s.EdgeCount),
		uintRow("total weight", s.TotalWeight),
		floatRow("average degree", s.AverageDegree),
		intRow("max degree", s.MaxDegree),
		floatRow("clustering effect", s.ClusteringEffect),
		floatRow("avg clustering coefficient", s.AverageClusteringCoefficient),
		floatRow("avg common neighbors", s.AverageCommonNeighbors),
		intRow("max common neighbors", s.MaxCommonNeighbors),
	)
}

func renderDegrees(dist []algorithms.DegreeCount) string {
	rows := make([]row, len(dist))
	for i, d := range dist {
		rows[i] = intRow("degree "+strconv.Itoa(d.Degree), d.Count)
	}
	return section("Degree distribution", rows...)
}

func renderBuckets(buckets []algorithms.Bucket) string {
	rows := make([]row, len(buckets))
	for i, b := range buckets {
		rows[i] = intRow(fmt.Sprintf("[%.3f, %.3f)", b.Lower, b.Upper), b.Count)
	}
	return section("Clustering coefficients", rows...)
}

func renderPath(start, end uint64, res *engine.PathResult) string {
	title := fmt.Sprintf("Shortest path %d → %d", start, end)
	if !res.Found {
		return section(title, textRow("result", warnStyle.Render("unreachable")))
	}
	return section(title,
		textRow("path", joinIDs(res.Path, " → ")),
		uintRow("cost", res.Cost),
		intRow("hops", len(res.Path)-1),
		intRow("subgraph edges", res.Subgraph.EdgeCount()),
	)
}

// renderCommunities lists res.Communities; count is reported separately so
// the list can be omitted
func renderCommunities(res *algorithms.CommunityResult, count int) string {
	summary := section("Communities",
		intRow("count", count),
		floatRow("modularity", res.Modularity),
		intRow("passes", res.Passes),
		intRow("moves", res.Moves),
	)

	rows := make([]row, len(res.Communities))
	for i, c := range res.Communities {
		rows[i] = textRow(fmt.Sprintf("#%d (%d)", c.ID, len(c.Members)), joinIDs(c.Members, " "))
	}
	if len(rows) == 0 {
		return summary
	}
	return lipgloss.JoinVertical(lipgloss.Left, summary, section("Members", rows...))
}

func renderInfluence(out *engine.InfluenceOutcome) string {
	rows := []row{
		textRow("run", out.RunID),
		idsRow("seeds", out.Seeds),
		intRow("steps", out.Steps),
		floatRow("probability", out.Probability),
		intRow("influenced", len(out.Influenced)),
		intRow("final set", len(out.Final)),
	}

	growth := make([]string, len(out.History))
	for i, h := range out.History {
		growth[i] = strconv.Itoa(len(h))
	}
	if len(growth) > 0 {
		rows = append(rows, textRow("history sizes", strings.Join(growth, " ")))
	}
	return section("Influence", rows...)
}

func renderSeeds(n int, nodes []uint64) string {
	return section(fmt.Sprintf("Best %d starting nodes", n),
		intRow("found", len(nodes)),
		idsRow("nodes", nodes),
	)
}
