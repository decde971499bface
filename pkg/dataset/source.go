package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-netanalyzer/pkg/graph"
)

// Scheme labels used in metrics and logs
const (
	SchemeFile   = "file"
	SchemeSnappy = "snappy"
	SchemeS3     = "s3"
	SchemeStream = "stream"
)

// SnappySuffix marks edge lists stored as snappy framed streams
const SnappySuffix = ".sz"

// Batch is the fully parsed content of one source
type Batch struct {
	Source string
	Scheme string
	Edges  []graph.Edge
	Stats  ParseStats
}

// Source is an edge source that also reports parse statistics
type Source interface {
	graph.EdgeSource
	Scheme() string
	Read(ctx context.Context) (*Batch, error)
}

// readBatch parses r, decoding snappy framing when compressed is set
func readBatch(name, scheme string, r io.Reader, compressed bool) (*Batch, error) {
	if compressed {
		r = snappy.NewReader(r)
	}
	edges, stats, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Batch{Source: name, Scheme: scheme, Edges: edges, Stats: stats}, nil
}

// FileSource reads a local edge list, snappy-decoded when the path ends in .sz
type FileSource struct {
	Path string
}

// NewFileSource creates a source for a local path
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (f *FileSource) Name() string { return f.Path }

func (f *FileSource) compressed() bool { return strings.HasSuffix(f.Path, SnappySuffix) }

func (f *FileSource) Scheme() string {
	if f.compressed() {
		return SchemeSnappy
	}
	return SchemeFile
}

func (f *FileSource) Read(ctx context.Context) (*Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return readBatch(f.Path, f.Scheme(), file, f.compressed())
}

func (f *FileSource) ReadEdges(ctx context.Context) ([]graph.Edge, error) {
	return edgesOf(f.Read(ctx))
}

// StreamSource reads an already open stream such as stdin or a request body.
// It can be read once.
type StreamSource struct {
	name       string
	r          io.Reader
	compressed bool
}

// NewStreamSource wraps a reader. Set compressed for snappy framed input.
func NewStreamSource(name string, r io.Reader, compressed bool) *StreamSource {
	return &StreamSource{name: name, r: r, compressed: compressed}
}

func (s *StreamSource) Name() string { return s.name }

func (s *StreamSource) Scheme() string { return SchemeStream }

func (s *StreamSource) Read(ctx context.Context) (*Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return readBatch(s.name, SchemeStream, s.r, s.compressed)
}

func (s *StreamSource) ReadEdges(ctx context.Context) ([]graph.Edge, error) {
	return edgesOf(s.Read(ctx))
}

func edgesOf(b *Batch, err error) ([]graph.Edge, error) {
	if err != nil {
		return nil, err
	}
	return b.Edges, nil
}
