package convert

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/taxonomist/core"
	"github.com/xuri/excelize/v2"
)

// Options describes how to interpret a spreadsheet of coded categories.
// Ids are fixed-width codes split into levels of DigitsPerLevel characters,
// where an all-NullChar level means "unset"; the name columns hold the
// category names from the most general level to the most specific.
type Options struct {
	Sheet          string
	IDColumn       string
	NameColumns    []string
	MetadataColumn string // default "note"
	NullChar       string // default "0"
	DigitsPerLevel int    // default 2
}

func (o *Options) applyDefaults() {
	if o.MetadataColumn == "" {
		o.MetadataColumn = "note"
	}
	if o.NullChar == "" {
		o.NullChar = "0"
	}
	if o.DigitsPerLevel == 0 {
		o.DigitsPerLevel = 2
	}
}

// ParentID derives a node's parent id by clearing the rightmost populated
// level of its code. Returns empty when the id has no parent. A null level
// left of a populated one is rejected: multiple null levels in one lineage
// break ancestor resolution.
func ParentID(id string, digitsPerLevel int, nullChar string) (string, error) {
	if len(id)%digitsPerLevel != 0 {
		return "", fmt.Errorf("key length %d is not divisible by %d", len(id), digitsPerLevel)
	}

	nullLevel := strings.Repeat(nullChar, digitsPerLevel)
	levels := make([]string, 0, len(id)/digitsPerLevel)
	for i := 0; i < len(id); i += digitsPerLevel {
		levels = append(levels, id[i:i+digitsPerLevel])
	}

	for i := len(levels) - 1; i >= 0; i-- {
		if levels[i] == nullLevel {
			continue
		}
		levels[i] = nullLevel

		for _, level := range levels[:i] {
			if level == nullLevel {
				return "", fmt.Errorf("found null level %s in id %s, but at least one lower (right) level is not null", nullLevel, id)
			}
		}

		if parent := strings.Join(levels, ""); parent != id {
			return parent, nil
		}
		return "", nil
	}
	return "", nil
}

type pathNode struct {
	id       string
	name     string
	metadata any
}

// nodesInPath expands one spreadsheet row into the chain of nodes from the
// root category down to the row's own node. Name cells are consumed from
// the most specific column backwards, skipping blanks, with the id walked
// up one level per consumed name.
func nodesInPath(id string, names []string, metadata string, digitsPerLevel int, nullChar string) ([]pathNode, error) {
	var chain []pathNode
	for i := len(names) - 1; i >= 0; i-- {
		name := strings.TrimSpace(names[i])
		if name == "" {
			continue
		}

		n := pathNode{id: id, name: name}
		if metadata != "" {
			n.metadata = metadata
		}
		chain = append(chain, n)

		parent, err := ParentID(id, digitsPerLevel, nullChar)
		if err != nil {
			return nil, err
		}
		id = parent
		if id == strings.Repeat(nullChar, len(id)) {
			// The parent is the null key: a top-level node was reached.
			break
		}
	}
	slices.Reverse(chain)
	return chain, nil
}

// FromWorkbook converts one sheet of an open workbook into a raw taxonomy
// payload. Rows are expanded into root-to-leaf paths, nodes are
// deduplicated on first sight, and the output is sorted by id to keep
// generated files diffable.
func FromWorkbook(f *excelize.File, name, version string, opts Options, logger *slog.Logger) (core.RawTaxonomy, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts.applyDefaults()

	rows, err := f.GetRows(opts.Sheet)
	if err != nil {
		return core.RawTaxonomy{}, fmt.Errorf("reading sheet %q: %w", opts.Sheet, err)
	}
	if len(rows) == 0 {
		return core.RawTaxonomy{}, fmt.Errorf("sheet %q is empty", opts.Sheet)
	}

	header := rows[0]
	idIdx := slices.Index(header, opts.IDColumn)
	if idIdx < 0 {
		return core.RawTaxonomy{}, fmt.Errorf("id column %q not found in sheet %q", opts.IDColumn, opts.Sheet)
	}
	nameIdxs := make([]int, len(opts.NameColumns))
	for i, column := range opts.NameColumns {
		nameIdxs[i] = slices.Index(header, column)
		if nameIdxs[i] < 0 {
			return core.RawTaxonomy{}, fmt.Errorf("name column %q not found in sheet %q", column, opts.Sheet)
		}
	}
	metadataIdx := slices.Index(header, opts.MetadataColumn)

	cell := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	seen := make(map[string]bool)
	var nodes []core.RawNode
	for _, row := range rows[1:] {
		id := strings.TrimSpace(cell(row, idIdx))
		if id == "" {
			continue
		}

		names := make([]string, len(nameIdxs))
		for i, idx := range nameIdxs {
			names[i] = cell(row, idx)
		}

		path, err := nodesInPath(id, names, strings.TrimSpace(cell(row, metadataIdx)), opts.DigitsPerLevel, opts.NullChar)
		if err != nil {
			return core.RawTaxonomy{}, err
		}

		for i, n := range path {
			if seen[n.id] {
				continue
			}
			raw := core.RawNode{Id: n.id, Name: n.name, Metadata: n.metadata}
			if i > 0 {
				// The path runs root to leaf, so the previous entry is
				// the parent.
				raw.ParentId = path[i-1].id
			}
			nodes = append(nodes, raw)
			seen[n.id] = true
		}
	}

	slices.SortFunc(nodes, func(a, b core.RawNode) int {
		return strings.Compare(a.Id, b.Id)
	})

	logger.Info("converted spreadsheet to taxonomy payload",
		"sheet", opts.Sheet, "taxonomy", name, "version", version, "nodes", len(nodes))

	return core.RawTaxonomy{Name: name, Version: version, Nodes: nodes}, nil
}

// FromFile opens an xlsx file and converts the configured sheet.
func FromFile(path, name, version string, opts Options, logger *slog.Logger) (core.RawTaxonomy, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return core.RawTaxonomy{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return FromWorkbook(f, name, version, opts, logger)
}
