package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"uidriver/internal/catalog"
	"uidriver/internal/uia"
)

// TablePolicy tunes the heuristic row/cell classification used when a control
// lacks structured grid support. The defaults are calibrated for the target
// application's tree shape and will usually need recalibration for another
// application.
type TablePolicy struct {
	// HeaderRowLabel is the display name of the visually distinguished
	// header row child.
	HeaderRowLabel string

	// RowTypes are control types whose children always count as rows.
	RowTypes []uia.ControlType

	// GenericRowTypes are control types that count as rows only when the
	// child's name is not HeaderRowLabel.
	GenericRowTypes []uia.ControlType

	// CellTypes are control types collected as cells within a row.
	CellTypes []uia.ControlType
}

// DefaultTablePolicy returns the stock classification.
func DefaultTablePolicy() TablePolicy {
	return TablePolicy{
		HeaderRowLabel:  "Top Row",
		RowTypes:        []uia.ControlType{uia.TypeDataItem, uia.TypeListItem},
		GenericRowTypes: []uia.ControlType{uia.TypeCustom, uia.TypeGroup, uia.TypePane},
		CellTypes:       []uia.ControlType{uia.TypeText, uia.TypeEdit, uia.TypeCustom, uia.TypeDataItem},
	}
}

// Table is an extracted tabular result. Every row has exactly len(Headers)
// cells after reconciliation.
type Table struct {
	Headers []string   `json:"Headers" yaml:"Headers"`
	Rows    [][]string `json:"Rows" yaml:"Rows"`
}

var (
	headerMarkerPattern   = regexp.MustCompile(`(?i)^\s*(table\.)?(column\s*)?headers?\s*:`)
	childrenMarkerPattern = regexp.MustCompile(`(?i)^\s*children\s*:`)
	headerChildPattern    = regexp.MustCompile(`(?i)"([^"]*)"\s+header\b`)
	quotedPattern         = regexp.MustCompile(`"([^"]*)"`)
)

// extractTable reads tabular content from a located control. Structured grid
// access is preferred; otherwise rows and cells are inferred heuristically
// from the child tree per the policy.
func (e *Engine) extractTable(el uia.Element, d *catalog.Descriptor) (*Table, error) {
	headers := e.inferHeaders(el, d)

	var rows [][]string
	if gp, ok := gridPattern(el); ok {
		rows = e.gridRows(gp)
	} else {
		rows = e.walkRows(el)
	}

	return reconcile(headers, rows), nil
}

func gridPattern(el uia.Element) (uia.GridPattern, bool) {
	p, ok := el.Pattern(uia.PatternGrid)
	if !ok {
		return nil, false
	}
	gp, ok := p.(uia.GridPattern)
	return gp, ok
}

// gridRows fills every (row, column) coordinate via structured lookup.
// Individual cell failures yield empty cells rather than aborting the read.
func (e *Engine) gridRows(gp uia.GridPattern) [][]string {
	rowCount, err := gp.RowCount()
	if err != nil {
		return nil
	}
	colCount, err := gp.ColumnCount()
	if err != nil {
		return nil
	}
	rows := make([][]string, 0, rowCount)
	for r := 0; r < rowCount; r++ {
		row := make([]string, colCount)
		for c := 0; c < colCount; c++ {
			if cell, err := gp.Cell(r, c); err == nil && cell != nil {
				row[c] = cellText(cell)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// walkRows infers rows from the control's immediate children and cells from
// each row's descendants. A row without recognisable cells contributes its
// own text as a single cell.
func (e *Engine) walkRows(el uia.Element) [][]string {
	var rows [][]string
	for _, child := range el.Children() {
		if !e.isRow(child) {
			continue
		}
		cells := uia.FindAll(child, func(c uia.Element) bool {
			return c != child && typeIn(c.ControlType(), e.tablePolicy.CellTypes)
		})
		row := make([]string, 0, len(cells))
		for _, cell := range cells {
			row = append(row, cellText(cell))
		}
		if len(row) == 0 {
			row = []string{cellText(child)}
		}
		rows = append(rows, row)
	}
	return rows
}

func (e *Engine) isRow(el uia.Element) bool {
	t := el.ControlType()
	if typeIn(t, e.tablePolicy.RowTypes) {
		return true
	}
	if typeIn(t, e.tablePolicy.GenericRowTypes) {
		return uia.Normalize(el.Name()) != e.tablePolicy.HeaderRowLabel
	}
	return false
}

func typeIn(t uia.ControlType, set []uia.ControlType) bool {
	for _, s := range set {
		if t == s {
			return true
		}
	}
	return false
}

// inferHeaders tries, in order: the named header-row child's non-degenerate
// children, the structured table-header capability, header-typed descendants,
// and finally the descriptor's raw catalog metadata.
func (e *Engine) inferHeaders(el uia.Element, d *catalog.Descriptor) []string {
	if h := e.headerRowTexts(el); len(h) > 0 {
		return h
	}
	if p, ok := el.Pattern(uia.PatternTable); ok {
		if tp, ok := p.(uia.TablePattern); ok {
			if cols, err := tp.ColumnHeaders(); err == nil {
				if h := elementTexts(cols); len(h) > 0 {
					return h
				}
			}
		}
	}
	items := uia.FindAll(el, func(c uia.Element) bool {
		t := c.ControlType()
		return t == uia.TypeHeaderItem || t == uia.TypeHeader
	})
	if h := elementTexts(items); len(h) > 0 {
		return h
	}
	return headersFromRaw(d.Raw)
}

// headerRowTexts reads the texts of the header row's visible children.
// Zero-size children are virtualized placeholders and are skipped.
func (e *Engine) headerRowTexts(el uia.Element) []string {
	headerRow := uia.FindFirst(el, func(c uia.Element) bool {
		return uia.Normalize(c.Name()) == e.tablePolicy.HeaderRowLabel
	})
	if headerRow == nil {
		return nil
	}
	var out []string
	for _, c := range headerRow.Children() {
		if c.Bounds().Empty() {
			continue
		}
		if t := cellText(c); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func elementTexts(els []uia.Element) []string {
	var out []string
	for _, el := range els {
		if t := cellText(el); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// headersFromRaw scrapes header names out of the descriptor's original dump
// lines. Two shapes occur: a header-marker field followed by quoted names up
// to a blank line, and a Children: block whose header-typed entries read
// `"Name" header`.
func headersFromRaw(raw []string) []string {
	if h := headersFromMarkerBlock(raw); len(h) > 0 {
		return h
	}
	return headersFromChildrenBlock(raw)
}

func headersFromMarkerBlock(raw []string) []string {
	var out []string
	collecting := false
	for _, line := range raw {
		trimmed := strings.TrimSpace(line)
		if collecting {
			if trimmed == "" || strings.HasPrefix(trimmed, "[") {
				break
			}
			if _, _, ok := strings.Cut(trimmed, ":"); ok && !strings.HasPrefix(trimmed, `"`) {
				break
			}
			for _, m := range quotedPattern.FindAllStringSubmatch(trimmed, -1) {
				if h := uia.Normalize(m[1]); h != "" {
					out = append(out, h)
				}
			}
			continue
		}
		if headerMarkerPattern.MatchString(trimmed) {
			collecting = true
			for _, m := range quotedPattern.FindAllStringSubmatch(trimmed, -1) {
				if h := uia.Normalize(m[1]); h != "" {
					out = append(out, h)
				}
			}
		}
	}
	return out
}

func headersFromChildrenBlock(raw []string) []string {
	var out []string
	collecting := false
	for _, line := range raw {
		trimmed := strings.TrimSpace(line)
		if collecting {
			if trimmed == "" || strings.HasPrefix(trimmed, "[") {
				break
			}
			for _, m := range headerChildPattern.FindAllStringSubmatch(trimmed, -1) {
				if h := uia.Normalize(m[1]); h != "" {
					out = append(out, h)
				}
			}
			continue
		}
		collecting = childrenMarkerPattern.MatchString(trimmed)
	}
	return out
}

// reconcile pads or truncates headers and rows so that every row matches the
// final column count, which is the maximum of the header count and the widest
// row. Synthetic headers are numbered from zero.
func reconcile(headers []string, rows [][]string) *Table {
	width := len(headers)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for len(headers) < width {
		headers = append(headers, fmt.Sprintf("Column %d", len(headers)))
	}
	headers = headers[:width]
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row[:width]
	}
	if headers == nil {
		headers = []string{}
	}
	if rows == nil {
		rows = [][]string{}
	}
	return &Table{Headers: headers, Rows: rows}
}

// cellText extracts a control's text, preferring structured sources: the data
// value, the text-range document, the legacy value, a numeric-range value,
// then the display name. The result is whitespace-normalized.
func cellText(el uia.Element) string {
	if p, ok := el.Pattern(uia.PatternValue); ok {
		if vp, ok := p.(uia.ValuePattern); ok {
			if v, err := vp.Value(); err == nil && strings.TrimSpace(v) != "" {
				return uia.Normalize(v)
			}
		}
	}
	if p, ok := el.Pattern(uia.PatternText); ok {
		if tp, ok := p.(uia.TextPattern); ok {
			if v, err := tp.Text(); err == nil && strings.TrimSpace(v) != "" {
				return uia.Normalize(v)
			}
		}
	}
	if p, ok := el.Pattern(uia.PatternLegacy); ok {
		if lp, ok := p.(uia.LegacyPattern); ok {
			if v, err := lp.Value(); err == nil && strings.TrimSpace(v) != "" {
				return uia.Normalize(v)
			}
		}
	}
	if p, ok := el.Pattern(uia.PatternRangeValue); ok {
		if rp, ok := p.(uia.RangeValuePattern); ok {
			if v, err := rp.Value(); err == nil {
				return strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
	}
	return uia.Normalize(el.Name())
}
