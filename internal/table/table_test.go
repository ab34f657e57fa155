package table

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"pageObject/internal/browser/static"
	"pageObject/internal/locator"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const (
	ordersPage1 = "http://app/orders?page=1"
	ordersPage2 = "http://app/orders?page=2"
)

// page рендерит таблицу заказов; next: адрес следующей страницы или пусто.
func page(rows [][]string, selected int, next, prev string) string {
	var sb strings.Builder
	sb.WriteString("<html><head><title>Orders</title></head><body>\n")
	sb.WriteString(`<table id="orders"><thead><tr><th>Name</th><th>Age</th><th>City</th></tr></thead><tbody>`)
	for i, row := range rows {
		class := "row"
		if i+1 == selected {
			class = "row row-selected"
		}
		fmt.Fprintf(&sb, `<tr class=%q>`, class)
		for _, cell := range row {
			fmt.Fprintf(&sb, "<td>%s</td>", cell)
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody></table>\n")
	if prev != "" {
		fmt.Fprintf(&sb, `<a href=%q><img src="/img/prev-page.gif"></a>`, prev)
		fmt.Fprintf(&sb, `<a href=%q><img src="/img/first-page.gif"></a>`, prev)
	}
	if next != "" {
		fmt.Fprintf(&sb, `<a href=%q><img src="/img/next-page.gif"></a>`, next)
		fmt.Fprintf(&sb, `<a href=%q><img src="/img/last-page.gif"></a>`, next)
	}
	sb.WriteString("</body></html>")
	return sb.String()
}

func twoPageDriver(t *testing.T) *static.Driver {
	t.Helper()
	d := static.New(nil,
		static.WithDocument(ordersPage1, page([][]string{
			{"Alice", "31", "Prague"},
			{"Bob", "45", "Brno"},
			{"Carol", "27", "Ostrava"},
		}, 2, "/orders?page=2", "")),
		static.WithDocument(ordersPage2, page([][]string{
			{"Dave", "52", "Plzen"},
			{"Eve", "38", "Liberec"},
		}, 0, "", "/orders?page=1")),
	)
	require.NoError(t, d.Open(context.Background(), ordersPage1))
	return d
}

func TestFindColumn(t *testing.T) {
	tbl := New(twoPageDriver(t), Config{}, nil)
	ctx := context.Background()

	col, err := tbl.FindColumn(ctx, "Age")
	require.NoError(t, err)
	assert.Equal(t, 2, col)

	col, err = tbl.FindColumn(ctx, "Zip")
	require.NoError(t, err)
	assert.Zero(t, col)

	col, err = tbl.FindColumn(ctx, "it")
	require.NoError(t, err)
	assert.Equal(t, 3, col, "substring match on City")
}

func TestColumns(t *testing.T) {
	tbl := New(twoPageDriver(t), Config{Table: "//table[@id='orders']"}, nil)

	headers, err := tbl.Columns(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Age", "City"}, headers)
}

func TestFindRow_AndSemantics(t *testing.T) {
	d := static.New(nil, static.WithDocument("http://app/t", page([][]string{{"a", "b"}, {"c", "d"}}, 0, "", "")))
	require.NoError(t, d.Open(context.Background(), "http://app/t"))
	tbl := New(d, Config{}, nil)
	ctx := context.Background()

	n, err := tbl.FindRow(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = tbl.FindRow(ctx, "a", "z")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = tbl.FindRow(ctx, "c", "d")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestFindRow_CrossesPages(t *testing.T) {
	d := twoPageDriver(t)
	tbl := New(d, Config{}, nil)

	n, err := tbl.FindEntity(context.Background(), Keys{"Eve", "Liberec"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, ordersPage2, d.CurrentURL(), "search leaves the table on the page it stopped at")
}

func TestFindRow_NotFoundStopsOnLastPage(t *testing.T) {
	d := twoPageDriver(t)
	tbl := New(d, Config{}, nil)

	n, err := tbl.FindRow(context.Background(), "Mallory")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, ordersPage2, d.CurrentURL())
}

func TestRow(t *testing.T) {
	tbl := New(twoPageDriver(t), Config{}, nil)
	ctx := context.Background()

	row, found, err := tbl.RowOf(ctx, Keys{"Dave"})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, Row{"Dave", "52", "Plzen"}, row)
	assert.Equal(t, "Plzen", row.Cell(3))
	assert.Empty(t, row.Cell(4))

	_, found, err = tbl.Row(ctx, "Nobody")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAllRows_PageOrder(t *testing.T) {
	tbl := New(twoPageDriver(t), Config{}, nil)

	rows, err := tbl.AllRows(context.Background())
	require.NoError(t, err)

	want := []Row{
		{"Alice", "31", "Prague"},
		{"Bob", "45", "Brno"},
		{"Carol", "27", "Ostrava"},
		{"Dave", "52", "Plzen"},
		{"Eve", "38", "Liberec"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("AllRows() mismatch (-want +got):\n%s", diff)
	}
}

func TestRowCount(t *testing.T) {
	tbl := New(twoPageDriver(t), Config{}, nil)
	ctx := context.Background()

	n, err := tbl.RowCountOnPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	total, err := tbl.RowCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
}

func TestPagination(t *testing.T) {
	d := twoPageDriver(t)
	tbl := New(d, Config{}, nil)
	ctx := context.Background()

	require.NoError(t, tbl.PreviousPage(ctx), "missing control is a no-op")
	assert.Equal(t, ordersPage1, d.CurrentURL())

	require.NoError(t, tbl.LastPage(ctx))
	assert.Equal(t, ordersPage2, d.CurrentURL())

	require.NoError(t, tbl.NextPage(ctx))
	assert.Equal(t, ordersPage2, d.CurrentURL())

	require.NoError(t, tbl.FirstPage(ctx))
	assert.Equal(t, ordersPage1, d.CurrentURL())
}

func TestSettlerRunsAfterEveryPageTurn(t *testing.T) {
	var settled int
	tbl := New(twoPageDriver(t), Config{}, nil, WithSettler(func(ctx context.Context) error {
		settled++
		return nil
	}))

	_, err := tbl.AllRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, settled)
}

func TestSettlerErrorStopsTraversal(t *testing.T) {
	boom := errors.New("page did not settle")
	tbl := New(twoPageDriver(t), Config{}, nil, WithSettler(func(ctx context.Context) error {
		return boom
	}))

	_, err := tbl.RowCount(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestIsRowSelected(t *testing.T) {
	d := twoPageDriver(t)
	ctx := context.Background()

	_, err := New(d, Config{}, nil).IsRowSelected(ctx, 1)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	nameOnly := New(d, Config{Selection: &SelectionAttribute{Name: "class"}}, nil)
	_, err = nameOnly.IsRowSelected(ctx, 1)
	assert.ErrorIs(t, err, ErrUnsupportedOperation, "attribute name without substring is not a selection")

	tbl := New(d, Config{}, nil)
	tbl.SetSelection("class", "row-selected")

	selected, err := tbl.IsRowSelected(ctx, 2)
	require.NoError(t, err)
	assert.True(t, selected)

	selected, err = tbl.IsRowSelected(ctx, 1)
	require.NoError(t, err)
	assert.False(t, selected)

	selected, err = tbl.IsRowSelected(ctx, 42)
	require.NoError(t, err, "unresolvable row is not selected")
	assert.False(t, selected)
}

func TestIsRowSelected_DriverErrors(t *testing.T) {
	d := twoPageDriver(t)

	broken := New(d, Config{Table: "//table["}, nil)
	broken.SetSelection("class", "row-selected")
	_, err := broken.IsRowSelected(context.Background(), 1)
	assert.Error(t, err, "invalid xpath is reported, not read as unselected")

	tbl := New(d, Config{}, nil)
	tbl.SetSelection("class", "row-selected")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tbl.IsRowSelected(ctx, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIdempotentReads(t *testing.T) {
	tbl := New(twoPageDriver(t), Config{}, nil)
	ctx := context.Background()

	first, err := tbl.FindColumn(ctx, "City")
	require.NoError(t, err)
	second, err := tbl.FindColumn(ctx, "City")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	r1, err := tbl.FindRowOnPage(ctx, "Bob")
	require.NoError(t, err)
	r2, err := tbl.FindRowOnPage(ctx, "Bob")
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	row1, err := tbl.RowOnPage(ctx, 1)
	require.NoError(t, err)
	row2, err := tbl.RowOnPage(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(row1, row2))
}

func TestMaxPages(t *testing.T) {
	// next ведет на ту же страницу: без ограничения обход не закончился бы
	loop := page([][]string{{"x"}}, 0, "/loop", "")
	d := static.New(nil, static.WithDocument("http://app/loop", loop))
	require.NoError(t, d.Open(context.Background(), "http://app/loop"))

	core, logs := observer.New(zap.WarnLevel)
	tbl := New(d, Config{MaxPages: 3}, zap.New(core))
	rows, err := tbl.AllRows(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, 1, logs.FilterMessage("Достигнут предел страниц таблицы").Len())
}

func TestMaxPages_ExactPageCountIsQuiet(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	tbl := New(twoPageDriver(t), Config{MaxPages: 2}, zap.New(core))

	rows, err := tbl.AllRows(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 5)
	assert.Zero(t, logs.Len(), "last page has no next control, nothing was cut off")
}

func TestClickRow(t *testing.T) {
	tbl := New(twoPageDriver(t), Config{}, nil)
	ctx := context.Background()

	require.NoError(t, tbl.ClickRow(ctx, 1))

	err := tbl.ClickRow(ctx, 9)
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "//table", cfg.Table)
	assert.Equal(t, locator.XPath("//a/img[contains(@src,'next-page.gif')]"), cfg.NextPage)
	assert.Nil(t, cfg.Selection)

	tbl := New(nil, Config{}, nil)
	tbl.SetTableLocator("")
	assert.Equal(t, DefaultTableLocator, tbl.Config().Table)
}
