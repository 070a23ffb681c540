package specfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-raman/internal/cache"
	"github.com/cwbudde/algo-raman/spectra"
	"github.com/cwbudde/algo-raman/spectra/spc"
)

// Kind identifies how a path will be parsed.
type Kind int

const (
	KindUnsupported Kind = iota
	KindText
	KindSPC
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindSPC:
		return "spc"
	default:
		return "unsupported"
	}
}

// Detect returns the format implied by the extension of path.
func Detect(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return KindText
	case ".spc":
		return KindSPC
	default:
		return KindUnsupported
	}
}

// Supported reports whether path has a recognized extension.
func Supported(path string) bool { return Detect(path) != KindUnsupported }

// Reader loads spectrum files through a path-keyed cache.
type Reader struct {
	cache *cache.Cache[string, *spectra.Set]
}

// NewReader returns a reader backed by c. A nil c gets a private unbounded
// cache.
func NewReader(c *cache.Cache[string, *spectra.Set]) *Reader {
	if c == nil {
		c = cache.New[string, *spectra.Set](0)
	}
	return &Reader{cache: c}
}

var defaultReader = NewReader(nil)

// Read loads path using a process-wide reader.
func Read(path string) (*spectra.Set, error) { return defaultReader.Read(path) }

// Read returns the spectra stored in path. Repeated calls with the same
// path string are served from the cache. Failed reads are not cached.
func (r *Reader) Read(path string) (*spectra.Set, error) {
	return r.cache.GetOrCompute(path, func() (*spectra.Set, error) {
		return load(path)
	})
}

// Invalidate drops every cached set.
func (r *Reader) Invalidate() { r.cache.InvalidateAll() }

func load(path string) (*spectra.Set, error) {
	switch Detect(path) {
	case KindText:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("specfile: %w", err)
		}
		defer f.Close()
		return ParseText(f, path)
	case KindSPC:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("specfile: %w", err)
		}
		return ParseSPC(data, path)
	default:
		return &spectra.Set{}, nil
	}
}

// ParseSPC decodes an SPC container and reads its first subfile as a
// single spectrum.
func ParseSPC(data []byte, name string) (*spectra.Set, error) {
	f, err := spc.Decode(data)
	if err != nil {
		return nil, &FormatError{Path: name, Msg: "decoding SPC container", Err: err}
	}
	lines, err := readLines(strings.NewReader(f.Text()), name)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, &FormatError{Path: name, Msg: "SPC container holds no points"}
	}
	return parseSingle(lines, name)
}
