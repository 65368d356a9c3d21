// Package addressbook maps postal addresses to graph nodes and groups them
// by planned area, so that a start address only offers destinations inside
// the same area.
package addressbook

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Mammutor/NINA/routing"
)

var ErrUnknownAddress = errors.New("unknown address")

// Address is one row of the address export.
type Address struct {
	Name        string         `json:"address"`
	AreaID      string         `json:"plannedAreaId"`
	NearestNode routing.NodeID `json:"nearestNode,omitempty"`
	Coordinates string         `json:"coordinates,omitempty"`
}

// Book is an immutable, in-memory address index.
type Book struct {
	byName  map[string]Address
	byArea  map[string][]string
	ordered []string
	folded  map[string]string
}

// foldCase folds s for caseless matching. Casers are stateful and must not
// be shared between goroutines.
func foldCase(s string) string {
	return cases.Fold().String(s)
}

// Load parses the ';'-separated export with the columns
// address;plannedAreaId;nearest_node;coordinates. The first row is a header.
// Rows without an address or area are skipped; later rows override earlier
// ones with the same address.
func Load(r io.Reader) (*Book, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	b := &Book{
		byName: make(map[string]Address),
		byArea: make(map[string][]string),
		folded: make(map[string]string),
	}

	header := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read address CSV: %w", err)
		}
		if header {
			header = false
			continue
		}

		a := Address{Name: field(rec, 0), AreaID: field(rec, 1)}
		if a.Name == "" || a.AreaID == "" {
			continue
		}
		a.NearestNode = routing.NodeID(field(rec, 2))
		a.Coordinates = field(rec, 3)

		if _, seen := b.byName[a.Name]; !seen {
			b.ordered = append(b.ordered, a.Name)
		}
		b.byName[a.Name] = a
	}

	for _, name := range b.ordered {
		a := b.byName[name]
		b.byArea[a.AreaID] = append(b.byArea[a.AreaID], name)
		b.folded[name] = foldCase(name)
	}
	for _, names := range b.byArea {
		sort.Strings(names)
	}
	return b, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open address file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// Len returns the number of addresses.
func (b *Book) Len() int {
	return len(b.byName)
}

// Lookup returns the address record for name.
func (b *Book) Lookup(name string) (Address, error) {
	a, ok := b.byName[strings.TrimSpace(name)]
	if !ok {
		return Address{}, fmt.Errorf("%w: %q", ErrUnknownAddress, name)
	}
	return a, nil
}

// Node resolves an address to its routing node. Addresses without a
// matched node are reported as unknown.
func (b *Book) Node(name string) (routing.NodeID, error) {
	a, err := b.Lookup(name)
	if err != nil {
		return "", err
	}
	if a.NearestNode == "" {
		return "", fmt.Errorf("%w: %q has no nearest node", ErrUnknownAddress, name)
	}
	return a.NearestNode, nil
}

// Destinations lists the other addresses in the start address's planned
// area, sorted by name.
func (b *Book) Destinations(start string) ([]string, error) {
	a, err := b.Lookup(start)
	if err != nil {
		return nil, err
	}
	names := b.byArea[a.AreaID]
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != a.Name {
			out = append(out, n)
		}
	}
	return out, nil
}

// Suggest returns up to limit addresses starting with prefix, ignoring
// case. Addresses that merely contain the prefix follow the prefix matches.
// A limit of 0 or less means no limit.
func (b *Book) Suggest(prefix string, limit int) []string {
	q := foldCase(strings.TrimSpace(prefix))

	var starts, contains []string
	for _, name := range b.ordered {
		f := b.folded[name]
		switch {
		case strings.HasPrefix(f, q):
			starts = append(starts, name)
		case strings.Contains(f, q):
			contains = append(contains, name)
		}
	}
	sort.Strings(starts)
	sort.Strings(contains)

	out := append(starts, contains...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
