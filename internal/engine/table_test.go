package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uidriver/internal/uia"
	"uidriver/internal/uia/uiatest"
)

func textNode(s string) *uiatest.Node {
	return &uiatest.Node{NodeName: s, Type: uia.TypeText, Rect: uia.Rect{W: 10, H: 10}}
}

func TestReconcilePadsHeadersAndRows(t *testing.T) {
	got := reconcile([]string{"A", "B"}, [][]string{{"x"}, {"1", "2", "3"}})

	assert.Equal(t, []string{"A", "B", "Column 2"}, got.Headers)
	assert.Equal(t, [][]string{{"x", "", ""}, {"1", "2", "3"}}, got.Rows)
}

func TestReconcileTruncatesWideHeaders(t *testing.T) {
	got := reconcile([]string{"A", "B", "C"}, [][]string{{"1", "2"}})

	assert.Equal(t, []string{"A", "B"}, got.Headers)
	assert.Equal(t, [][]string{{"1", "2"}}, got.Rows)
}

func TestReconcileEmptyTable(t *testing.T) {
	got := reconcile(nil, nil)
	assert.NotNil(t, got.Headers)
	assert.NotNil(t, got.Rows)
	assert.Empty(t, got.Headers)
	assert.Empty(t, got.Rows)
}

func TestCollectGridPath(t *testing.T) {
	cat := mustParse(t, "[results]\nName: \"Results\"\nControlType: Table\n")
	table := &uiatest.Node{
		NodeName: "Results",
		Type:     uia.TypeTable,
		GridCells: [][]*uiatest.Node{
			{textNode("10"), textNode("0.5")},
			{textNode("20"), textNode("0.7")},
		},
		HeaderItems: []*uiatest.Node{textNode("Depth"), textNode("Porosity")},
	}
	win := &uiatest.Node{NodeName: "App", Kids: []*uiatest.Node{table}}
	e, _, _ := newTestEngine(cat, win, "App")

	got, err := e.Collect("results")
	require.NoError(t, err)
	assert.Equal(t, []string{"Depth", "Porosity"}, got.Headers)
	assert.Equal(t, [][]string{{"10", "0.5"}, {"20", "0.7"}}, got.Rows)
}

func TestCollectFallbackWalkWithHeaderRow(t *testing.T) {
	cat := mustParse(t, "[results]\nName: \"Results\"\nControlType: Table\n")
	table := &uiatest.Node{
		NodeName: "Results",
		Type:     uia.TypeTable,
		Kids: []*uiatest.Node{
			{NodeName: "Top Row", Type: uia.TypeCustom, Kids: []*uiatest.Node{
				textNode("Depth"),
				textNode("Value"),
				{NodeName: "virtual", Type: uia.TypeText}, // zero-size, skipped
			}},
			{NodeName: "Row 1", Type: uia.TypeDataItem, Kids: []*uiatest.Node{
				textNode("10"), textNode("0.5"),
			}},
			{NodeName: "Row 2", Type: uia.TypeCustom, Kids: []*uiatest.Node{
				textNode("20"), textNode("0.7"), textNode("extra"),
			}},
		},
	}
	win := &uiatest.Node{NodeName: "App", Kids: []*uiatest.Node{table}}
	e, _, _ := newTestEngine(cat, win, "App")

	got, err := e.Collect("results")
	require.NoError(t, err)
	assert.Equal(t, []string{"Depth", "Value", "Column 2"}, got.Headers)
	assert.Equal(t, [][]string{
		{"10", "0.5", ""},
		{"20", "0.7", "extra"},
	}, got.Rows)
}

func TestCollectRowWithoutCellsUsesOwnText(t *testing.T) {
	cat := mustParse(t, "[results]\nName: \"Results\"\nControlType: List\n")
	table := &uiatest.Node{
		NodeName: "Results",
		Type:     uia.TypeList,
		Kids: []*uiatest.Node{
			{NodeName: "single value", Type: uia.TypeListItem},
		},
	}
	win := &uiatest.Node{NodeName: "App", Kids: []*uiatest.Node{table}}
	e, _, _ := newTestEngine(cat, win, "App")

	got, err := e.Collect("results")
	require.NoError(t, err)
	assert.Equal(t, []string{"Column 0"}, got.Headers)
	assert.Equal(t, [][]string{{"single value"}}, got.Rows)
}

func TestHeadersFromRawMetadata(t *testing.T) {
	raw := []string{
		"ControlType: Table",
		`Headers: "Depth" "Porosity"`,
		`  "Saturation"`,
		"",
		`  "Ignored after blank"`,
	}
	assert.Equal(t, []string{"Depth", "Porosity", "Saturation"}, headersFromRaw(raw))
}

func TestHeadersFromRawMarkerVariants(t *testing.T) {
	raw := []string{
		"Table.ColumnHeaders:",
		`  "Depth"`,
		`  "Porosity"`,
	}
	assert.Equal(t, []string{"Depth", "Porosity"}, headersFromRaw(raw))
}

func TestHeadersFromChildrenBlock(t *testing.T) {
	raw := []string{
		"ControlType: Table",
		"Children:",
		`  "Depth" header`,
		`  "row 1" data item`,
		`  "Porosity" header`,
		"",
		`  "Late" header`,
	}
	assert.Equal(t, []string{"Depth", "Porosity"}, headersFromRaw(raw))
}

func TestHeadersFromRawStopsAtNextField(t *testing.T) {
	raw := []string{
		"Headers:",
		`  "A"`,
		"Rows: 12",
		`  "B"`,
	}
	assert.Equal(t, []string{"A"}, headersFromRaw(raw))
}

func TestCellTextPriority(t *testing.T) {
	valued := &uiatest.Node{
		NodeName:  "name",
		ValueFunc: func() (string, error) { return "  from value  ", nil },
		TextFunc:  func() (string, error) { return "from text", nil },
	}
	assert.Equal(t, "from value", cellText(valued))

	texted := &uiatest.Node{
		NodeName:  "name",
		ValueFunc: func() (string, error) { return "", nil },
		TextFunc:  func() (string, error) { return "from\ntext", nil },
	}
	assert.Equal(t, "from text", cellText(texted))

	ranged := &uiatest.Node{
		NodeName:  "name",
		RangeFunc: func() (float64, error) { return 0.25, nil },
	}
	assert.Equal(t, "0.25", cellText(ranged))

	named := &uiatest.Node{NodeName: "  just   a name "}
	assert.Equal(t, "just a name", cellText(named))
}

func TestCustomTablePolicy(t *testing.T) {
	cat := mustParse(t, "[results]\nName: \"Results\"\nControlType: Table\n")
	table := &uiatest.Node{
		NodeName: "Results",
		Type:     uia.TypeTable,
		Kids: []*uiatest.Node{
			{NodeName: "Kopfzeile", Type: uia.TypeCustom, Kids: []*uiatest.Node{textNode("Tiefe")}},
			{NodeName: "r", Type: uia.TypeCustom, Kids: []*uiatest.Node{textNode("1")}},
		},
	}
	win := &uiatest.Node{NodeName: "App", Kids: []*uiatest.Node{table}}
	e, _, _ := newTestEngine(cat, win, "App")

	policy := DefaultTablePolicy()
	policy.HeaderRowLabel = "Kopfzeile"
	e.SetTablePolicy(policy)

	got, err := e.Collect("results")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tiefe"}, got.Headers)
	assert.Equal(t, [][]string{{"1"}}, got.Rows)
}
