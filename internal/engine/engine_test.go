package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uidriver/internal/catalog"
	"uidriver/internal/platform"
	"uidriver/internal/uia"
	"uidriver/internal/uia/uiatest"
)

type fakeDesktop struct {
	windows []platform.WindowInfo
	root    uia.Element
	focused uia.Element
}

func (d *fakeDesktop) Windows() ([]platform.WindowInfo, error) { return d.windows, nil }
func (d *fakeDesktop) Root() (uia.Element, error)              { return d.root, nil }
func (d *fakeDesktop) FocusedElement() (uia.Element, error)    { return d.focused, nil }

type click struct{ x, y, count int }

type fakeInput struct {
	moves  []click
	clicks []click
}

func (i *fakeInput) CursorPos() (int, int, error) { return 5, 5, nil }
func (i *fakeInput) MoveMouse(x, y int) error {
	i.moves = append(i.moves, click{x, y, 0})
	return nil
}
func (i *fakeInput) Click(x, y, count int) error {
	i.clicks = append(i.clicks, click{x, y, count})
	return nil
}

func newTestEngine(cat *catalog.Catalog, win *uiatest.Node, title string) (*Engine, *fakeDesktop, *fakeInput) {
	desktop := &fakeDesktop{
		windows: []platform.WindowInfo{{Title: title, Root: win}},
		root:    win,
	}
	input := &fakeInput{}
	e := New(cat, &platform.Provider{Desktop: desktop, Inputter: input}, ".*", nil)
	e.sleep = func(time.Duration) {}
	return e, desktop, input
}

func mustParse(t *testing.T, dump string) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse(strings.NewReader(dump))
	require.NoError(t, err)
	return cat
}

func TestInvokeOKButton(t *testing.T) {
	cat := mustParse(t, `
[ok_button]
Name: "OK"
ControlType: Button
Patterns: InvokePattern
`)
	invoked := 0
	win := &uiatest.Node{NodeName: "App", Type: uia.TypeWindow, Kids: []*uiatest.Node{
		{NodeName: "OK", Type: uia.TypeButton, InvokeFunc: func() error { invoked++; return nil }},
	}}
	e, _, _ := newTestEngine(cat, win, "App")

	action, err := e.Invoke("ok_button")
	require.NoError(t, err)
	assert.Equal(t, "Invoke", action)
	assert.Equal(t, 1, invoked)
}

func TestInvokeUnknownKey(t *testing.T) {
	e, _, _ := newTestEngine(mustParse(t, ""), &uiatest.Node{NodeName: "App"}, "App")
	_, err := e.Invoke("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestInvokeWindowNotFound(t *testing.T) {
	cat := mustParse(t, "[b]\nName: \"B\"\n")
	desktop := &fakeDesktop{windows: []platform.WindowInfo{{Title: "Other", Root: &uiatest.Node{}}}}
	e := New(cat, &platform.Provider{Desktop: desktop, Inputter: &fakeInput{}}, "^MyApp", nil)
	e.sleep = func(time.Duration) {}

	_, err := e.Invoke("b")
	var wnf *WindowNotFoundError
	require.ErrorAs(t, err, &wnf)
	assert.Equal(t, "^MyApp", wnf.Pattern)
}

func TestDefinitionErrorBeforeSearch(t *testing.T) {
	cat := catalog.NewCatalog([]*catalog.Descriptor{{Key: "empty"}})
	win := &uiatest.Node{NodeName: "App", Type: uia.TypeWindow}
	e, _, _ := newTestEngine(cat, win, "App")

	_, err := e.Invoke("empty")
	var def *DefinitionError
	require.ErrorAs(t, err, &def)
	assert.Equal(t, "empty", def.Key)
}

func TestInvokeNotFound(t *testing.T) {
	cat := mustParse(t, "[gone]\nName: \"Gone\"\n")
	e, _, _ := newTestEngine(cat, &uiatest.Node{NodeName: "App"}, "App")

	_, err := e.Invoke("gone")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "gone", nf.Key)
}

func TestInvokeDisabled(t *testing.T) {
	cat := mustParse(t, "[run]\nName: \"Run\"\nControlType: Button\n")
	win := &uiatest.Node{NodeName: "App", Kids: []*uiatest.Node{
		{NodeName: "Run", Type: uia.TypeButton, Disabled: true},
	}}
	e, _, _ := newTestEngine(cat, win, "App")

	_, err := e.Invoke("run")
	var dis *DisabledError
	require.ErrorAs(t, err, &dis)
}

func TestInvokeNoSupportedActionListsDeclared(t *testing.T) {
	cat := mustParse(t, `
[ok_button]
Name: "OK"
ControlType: Button
Patterns: InvokePattern
`)
	// Pure text node: no invoke, no legacy, zero-size bounds kill the click
	// path too.
	win := &uiatest.Node{NodeName: "App", Kids: []*uiatest.Node{
		{NodeName: "OK", Type: uia.TypeButton},
	}}
	e, _, _ := newTestEngine(cat, win, "App")

	_, err := e.Invoke("ok_button")
	var nsa *NoSupportedActionError
	require.ErrorAs(t, err, &nsa)
	assert.Contains(t, nsa.Declared, "InvokePattern")
	assert.Contains(t, err.Error(), "InvokePattern")
}

func TestTogglePreferredAttemptsToggleFirst(t *testing.T) {
	cat := mustParse(t, `
[opt]
Name: "Option"
ControlType: CheckBox
Patterns: TogglePattern, InvokePattern
`)
	var order []string
	win := &uiatest.Node{NodeName: "App", Kids: []*uiatest.Node{
		{
			NodeName:   "Option",
			Type:       uia.TypeCheckBox,
			ToggleFunc: func() error { order = append(order, "toggle"); return nil },
			InvokeFunc: func() error { order = append(order, "invoke"); return nil },
		},
	}}
	e, _, _ := newTestEngine(cat, win, "App")

	action, err := e.Invoke("opt")
	require.NoError(t, err)
	assert.Equal(t, "Toggle", action)
	assert.Equal(t, []string{"toggle"}, order)
}

func TestToggleFallbackReportsInvoke(t *testing.T) {
	cat := mustParse(t, `
[opt]
Name: "Option"
ControlType: CheckBox
Patterns: TogglePattern, InvokePattern
`)
	// The live control dropped toggle support since the dump was captured;
	// the invoke fallback handles it and the reported action must say so.
	invoked := 0
	win := &uiatest.Node{NodeName: "App", Kids: []*uiatest.Node{
		{
			NodeName:   "Option",
			Type:       uia.TypeCheckBox,
			InvokeFunc: func() error { invoked++; return nil },
		},
	}}
	e, _, _ := newTestEngine(cat, win, "App")

	action, err := e.Invoke("opt")
	require.NoError(t, err)
	assert.Equal(t, "Invoke", action)
	assert.Equal(t, 1, invoked)
}

func TestFindRetriesWithNormalizedName(t *testing.T) {
	cat := mustParse(t, `
[run_model]
Name: "Run  Model"
ControlType: Button
Patterns: InvokePattern
`)
	// Catalog name and live name differ in whitespace and case, so the exact
	// composite match misses and the normalized retry must hit.
	invoked := 0
	win := &uiatest.Node{NodeName: "App", Type: uia.TypeWindow, Kids: []*uiatest.Node{
		{NodeName: "run\nmodel", Type: uia.TypeButton, InvokeFunc: func() error { invoked++; return nil }},
	}}
	e, _, _ := newTestEngine(cat, win, "App")

	_, err := e.Invoke("run_model")
	require.NoError(t, err)
	assert.Equal(t, 1, invoked)
}

func TestFindPicksFirstChildFromSelectionContainer(t *testing.T) {
	cat := mustParse(t, `
[result_row]
Name: "Current Result"
ControlType: DataItem
SelectionItem available: true
SelectionItem.SelectionContainer: "Results Grid"
`)
	// Row names drift between runs, so nothing matches "Current Result" by
	// name; the container tier picks the first child of the declared type.
	selected := 0
	row := &uiatest.Node{
		NodeName:   "Row 7",
		Type:       uia.TypeDataItem,
		SelectFunc: func() error { selected++; return nil },
	}
	grid := &uiatest.Node{NodeName: "Results Grid", Type: uia.TypeTable, Kids: []*uiatest.Node{
		{NodeName: "Header", Type: uia.TypeHeader},
		row,
	}}
	win := &uiatest.Node{NodeName: "App", Type: uia.TypeWindow, Kids: []*uiatest.Node{grid}}
	e, _, _ := newTestEngine(cat, win, "App")

	action, err := e.Invoke("result_row")
	require.NoError(t, err)
	assert.Equal(t, "Select", action)
	assert.Equal(t, 1, selected)
}

func TestFindFallsBackToDesktopForDetachedDialog(t *testing.T) {
	cat := mustParse(t, `
[apply_button]
Name: "Apply"
ControlType: Button
Patterns: InvokePattern
`)
	// The button lives in a dialog that is a sibling of the main window under
	// the desktop root, reachable only through the desktop-wide retry.
	invoked := 0
	dialog := &uiatest.Node{NodeName: "Export Options", Type: uia.TypeWindow, Kids: []*uiatest.Node{
		{NodeName: "Apply", Type: uia.TypeButton, InvokeFunc: func() error { invoked++; return nil }},
	}}
	win := &uiatest.Node{NodeName: "App", Type: uia.TypeWindow}
	e, desktop, _ := newTestEngine(cat, win, "App")
	desktop.root = &uiatest.Node{NodeName: "Desktop", Type: uia.TypePane, Kids: []*uiatest.Node{win, dialog}}

	_, err := e.Invoke("apply_button")
	require.NoError(t, err)
	assert.Equal(t, 1, invoked)
}

func TestInvokeFallsBackToLegacyThenClick(t *testing.T) {
	cat := mustParse(t, "[b]\nName: \"B\"\nControlType: Button\n")
	node := &uiatest.Node{
		NodeName: "B",
		Type:     uia.TypeButton,
		Rect:     uia.Rect{X: 10, Y: 20, W: 20, H: 10},
	}
	win := &uiatest.Node{NodeName: "App", Kids: []*uiatest.Node{node}}
	e, _, input := newTestEngine(cat, win, "App")

	_, err := e.Invoke("b")
	require.NoError(t, err)
	// Two clicks at the center, cursor moved back to the saved position.
	require.Len(t, input.clicks, 2)
	assert.Equal(t, click{20, 25, 1}, input.clicks[0])
	assert.Equal(t, click{5, 5, 0}, input.moves[len(input.moves)-1])
}

func TestAncestorOpeningRetry(t *testing.T) {
	cat := mustParse(t, `
[deep]
Name: "Target"
ControlType: Button
Ancestors:
  "Advanced"
`)
	advanced := &uiatest.Node{NodeName: "Advanced", Type: uia.TypeGroup}
	advanced.ExpandFunc = func() error {
		advanced.Kids = []*uiatest.Node{{NodeName: "Target", Type: uia.TypeButton, InvokeFunc: func() error { return nil }}}
		return nil
	}
	win := &uiatest.Node{NodeName: "App", Kids: []*uiatest.Node{advanced}}
	e, _, _ := newTestEngine(cat, win, "App")

	_, err := e.Invoke("deep")
	require.NoError(t, err)
}

func TestSetDirectValue(t *testing.T) {
	cat := mustParse(t, "[depth]\nAutomationId: depthField\nControlType: Edit\n")
	var got string
	win := &uiatest.Node{NodeName: "App", Kids: []*uiatest.Node{
		{ID: "depthField", Type: uia.TypeEdit, SetValueFunc: func(v string) error { got = v; return nil }},
	}}
	e, _, _ := newTestEngine(cat, win, "App")

	res, err := e.Set("depth", "150")
	require.NoError(t, err)
	assert.Equal(t, "150", got)
	assert.Equal(t, "150", res.Value)
}

func TestSetToggleToState(t *testing.T) {
	cat := mustParse(t, "[flag]\nName: \"Flag\"\nControlType: CheckBox\n")
	state := false
	win := &uiatest.Node{NodeName: "App", Kids: []*uiatest.Node{
		{
			NodeName:    "Flag",
			Type:        uia.TypeCheckBox,
			ToggleFunc:  func() error { state = !state; return nil },
			ToggleState: func() (bool, error) { return state, nil },
		},
	}}
	e, _, _ := newTestEngine(cat, win, "App")

	res, err := e.Set("flag", "yes")
	require.NoError(t, err)
	assert.True(t, state)
	require.NotNil(t, res.ToggleState)
	assert.True(t, *res.ToggleState)

	// Already in the requested state: no extra flip.
	_, err = e.Set("flag", "on")
	require.NoError(t, err)
	assert.True(t, state)
}

func TestSetToggleRejectsNonBoolean(t *testing.T) {
	cat := mustParse(t, "[flag]\nName: \"Flag\"\nControlType: CheckBox\n")
	win := &uiatest.Node{NodeName: "App", Kids: []*uiatest.Node{
		{NodeName: "Flag", Type: uia.TypeCheckBox, ToggleFunc: func() error { return nil }},
	}}
	e, _, _ := newTestEngine(cat, win, "App")

	_, err := e.Set("flag", "maybe")
	require.Error(t, err)
}

func TestSetEditModeFallback(t *testing.T) {
	cat := mustParse(t, "[depth_field]\nName: \"Depth\"\nControlType: Edit\n")
	var got string
	editor := &uiatest.Node{
		Type:         uia.TypeEdit,
		SetValueFunc: func(v string) error { got = v; return nil },
	}
	field := &uiatest.Node{
		NodeName:     "Depth",
		Type:         uia.TypeEdit,
		Rect:         uia.Rect{X: 0, Y: 0, W: 40, H: 10},
		ValueFunc:    func() (string, error) { return "100", nil },
		ReadOnlyFunc: func() (bool, error) { return true, nil },
	}
	win := &uiatest.Node{NodeName: "App", Kids: []*uiatest.Node{field}}
	e, desktop, input := newTestEngine(cat, win, "App")
	desktop.focused = editor

	res, err := e.Set("depth_field", "150")
	require.NoError(t, err)
	assert.Equal(t, "150", got)
	assert.Equal(t, "150", res.Value)
	assert.GreaterOrEqual(t, field.FocusCount, 1)
	assert.Len(t, input.clicks, 2)
}

func TestSetNoWritablePath(t *testing.T) {
	cat := mustParse(t, "[label]\nName: \"Label\"\nControlType: Text\n")
	win := &uiatest.Node{NodeName: "App", Kids: []*uiatest.Node{
		{NodeName: "Label", Type: uia.TypeText},
	}}
	e, _, _ := newTestEngine(cat, win, "App")

	_, err := e.Set("label", "x")
	var vae *ValueAssignmentError
	require.ErrorAs(t, err, &vae)
	assert.Equal(t, "label", vae.Key)
}

func TestDiagnoseReportsDeclaredAndLive(t *testing.T) {
	cat := mustParse(t, `
[ok_button]
Name: "OK"
ControlType: Button
Patterns: InvokePattern, TogglePattern
`)
	win := &uiatest.Node{NodeName: "App", Kids: []*uiatest.Node{
		{
			NodeName:   "OK",
			Type:       uia.TypeButton,
			Rect:       uia.Rect{X: 1, Y: 2, W: 3, H: 4},
			InvokeFunc: func() error { return nil },
		},
	}}
	e, _, _ := newTestEngine(cat, win, "App")

	diag, err := e.Diagnose("ok_button")
	require.NoError(t, err)
	assert.Equal(t, "OK", diag.Name)
	assert.Equal(t, "Button", diag.ControlType)
	assert.True(t, diag.Enabled)
	assert.Contains(t, diag.Declared, "TogglePattern")
	assert.Equal(t, []string{uia.PatternInvoke}, diag.Live)
}
