package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
)

const maxLineSize = 1 << 20

// ParseStats counts what the parser saw besides valid edges
type ParseStats struct {
	Lines    int `json:"lines"`
	Edges    int `json:"edges"`
	Comments int `json:"comments"`
	Blank    int `json:"blank"`
	Skipped  int `json:"skipped"`
}

// Add accumulates another batch's counters
func (p *ParseStats) Add(other ParseStats) {
	p.Lines += other.Lines
	p.Edges += other.Edges
	p.Comments += other.Comments
	p.Blank += other.Blank
	p.Skipped += other.Skipped
}

// Parse reads an edge list. Each record is "from to [weight]" separated by
// whitespace or commas. Lines starting with '#' or '%' are comments. Records
// whose ids are not non-negative integers are skipped and counted; a third
// column that is not a positive integer falls back to the default weight and
// any further columns are ignored. Lines longer than maxLineSize are
// discarded and counted as skipped.
//
// Only read errors from r are returned.
func Parse(r io.Reader) ([]graph.Edge, ParseStats, error) {
	var (
		edges []graph.Edge
		stats ParseStats
		buf   []byte
	)

	br := bufio.NewReaderSize(r, 64*1024)
	for {
		raw, overflow, err := readLine(br, buf[:0])
		buf = raw
		if err != nil && err != io.EOF {
			return nil, stats, fmt.Errorf("read line %d: %w", stats.Lines+1, err)
		}
		if len(raw) == 0 && !overflow && err == io.EOF {
			break
		}

		stats.Lines++
		line := strings.TrimSpace(string(raw))
		switch {
		case overflow:
			stats.Skipped++
		case line == "":
			stats.Blank++
		case line[0] == '#' || line[0] == '%':
			stats.Comments++
		default:
			if edge, ok := parseRecord(line); ok {
				edges = append(edges, edge)
				stats.Edges++
			} else {
				stats.Skipped++
			}
		}

		if err == io.EOF {
			break
		}
	}
	return edges, stats, nil
}

// readLine appends the next line of br to buf, newline included. Once the
// line outgrows maxLineSize the rest of it is drained without being kept and
// overflow is reported.
func readLine(br *bufio.Reader, buf []byte) ([]byte, bool, error) {
	overflow := false
	for {
		chunk, err := br.ReadSlice('\n')
		if !overflow {
			if len(buf)+len(chunk) > maxLineSize+1 {
				overflow = true
				buf = buf[:0]
			} else {
				buf = append(buf, chunk...)
			}
		}
		if err != bufio.ErrBufferFull {
			return buf, overflow, err
		}
	}
}

func parseRecord(line string) (graph.Edge, bool) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) < 2 {
		return graph.Edge{}, false
	}

	from, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return graph.Edge{}, false
	}
	to, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return graph.Edge{}, false
	}

	weight := graph.DefaultWeight
	if len(fields) >= 3 {
		if w, err := strconv.ParseUint(fields[2], 10, 64); err == nil && w > 0 {
			weight = w
		}
	}
	return graph.Edge{From: from, To: to, Weight: weight}, true
}
