package static

import (
	"context"
	"testing"
	"time"

	"pageObject/internal/browser"
	"pageObject/internal/locator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const formPage = `<html><head><title>Заказ</title></head><body>
<form>
  <input id="customer" name="customer" value="Ivan">
  <input id="note" name="note">
  <input id="agree" type="checkbox">
  <button id="submit" disabled>Send</button>
  <select id="country">
    <option value="RU">Russia</option>
    <option value="CZ">Czech Republic</option>
    <option>Other</option>
  </select>
  <textarea id="comment">first</textarea>
</form>
<a id="next" href="/orders/2"><img src="/img/next-page.gif"></a>
<a href="/orders/missing">Missing</a>
<p class="lead"> Hello
   world </p>
</body></html>`

const secondPage = `<html><head><title>Second</title></head><body><h1>Page two</h1></body></html>`

func newDriver(t *testing.T) *Driver {
	t.Helper()
	d := New(nil,
		WithDocument("http://app/orders/1", formPage),
		WithDocument("http://app/orders/2", secondPage),
		WithInstantSleep(),
	)
	require.NoError(t, d.Open(context.Background(), "http://app/orders/1"))
	return d
}

func TestDriver_LocatorKinds(t *testing.T) {
	d := newDriver(t)
	ctx := context.Background()

	tests := []struct {
		loc  locator.Locator
		want int
	}{
		{locator.ID("customer"), 1},
		{locator.Name("note"), 1},
		{locator.CSS("select#country option"), 3},
		{locator.XPath("//form/input"), 3},
		{locator.LinkText("Missing"), 1},
		{locator.ID("absent"), 0},
		{locator.CSS("p:::broken"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.loc.String(), func(t *testing.T) {
			n, err := d.Count(ctx, tt.loc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestDriver_InvalidXPath(t *testing.T) {
	d := newDriver(t)

	_, err := d.Count(context.Background(), locator.XPath("//tr[("))
	var elErr *browser.ElementError
	assert.ErrorAs(t, err, &elErr)
}

func TestDriver_TextAndTitle(t *testing.T) {
	d := newDriver(t)
	ctx := context.Background()

	text, err := d.Text(ctx, locator.CSS("p.lead"))
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)

	title, err := d.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Заказ", title)
}

func TestDriver_ElementNotFound(t *testing.T) {
	d := newDriver(t)
	ctx := context.Background()

	_, err := d.Text(ctx, locator.ID("absent"))
	assert.ErrorIs(t, err, browser.ErrElementNotFound)

	err = d.Click(ctx, locator.ID("absent"))
	assert.ErrorIs(t, err, browser.ErrElementNotFound)

	err = d.ScrollTo(ctx, locator.ID("absent"))
	assert.ErrorIs(t, err, browser.ErrElementNotFound)
	require.NoError(t, d.ScrollTo(ctx, locator.ID("customer")))

	present, err := d.IsPresent(ctx, locator.ID("absent"))
	require.NoError(t, err)
	assert.False(t, present)
}

func TestDriver_TypeAppendsAndClear(t *testing.T) {
	d := newDriver(t)
	ctx := context.Background()
	field := locator.ID("customer")

	require.NoError(t, d.Type(ctx, field, " Petrov"))
	value, err := d.Value(ctx, field)
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", value)

	require.NoError(t, d.Clear(ctx, field))
	value, err = d.Value(ctx, field)
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, d.Type(ctx, locator.ID("comment"), " second"))
	value, err = d.Value(ctx, locator.ID("comment"))
	require.NoError(t, err)
	assert.Equal(t, "first second", value)
}

func TestDriver_Select(t *testing.T) {
	d := newDriver(t)
	ctx := context.Background()
	country := locator.ID("country")

	value, err := d.Value(ctx, country)
	require.NoError(t, err)
	assert.Equal(t, "RU", value, "first option is selected by default")

	require.NoError(t, d.Select(ctx, country, locator.ByLabel("Czech Republic")))
	value, _ = d.Value(ctx, country)
	assert.Equal(t, "CZ", value)

	require.NoError(t, d.Select(ctx, country, locator.ByIndex(2)))
	value, _ = d.Value(ctx, country)
	assert.Equal(t, "Other", value)

	require.NoError(t, d.Select(ctx, country, locator.ByValue("RU")))
	value, _ = d.Value(ctx, country)
	assert.Equal(t, "RU", value)

	err = d.Select(ctx, country, locator.ByValue("DE"))
	assert.ErrorIs(t, err, browser.ErrElementNotFound)
}

func TestDriver_AttributesAndEnabled(t *testing.T) {
	d := newDriver(t)
	ctx := context.Background()

	enabled, err := d.IsEnabled(ctx, locator.ID("submit"))
	require.NoError(t, err)
	assert.False(t, enabled)

	enabled, err = d.IsEnabled(ctx, locator.ID("customer"))
	require.NoError(t, err)
	assert.True(t, enabled)

	_, ok, err := d.Attribute(ctx, locator.ID("note"), "value")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, d.Click(ctx, locator.ID("agree")))
	_, ok, _ = d.Attribute(ctx, locator.ID("agree"), "checked")
	assert.True(t, ok)
}

func TestDriver_ClickNavigatesThroughAncestorAnchor(t *testing.T) {
	d := newDriver(t)
	ctx := context.Background()

	require.NoError(t, d.Click(ctx, locator.XPath("//a/img[contains(@src,'next-page.gif')]")))
	assert.Equal(t, "http://app/orders/2", d.CurrentURL())

	title, err := d.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Second", title)
}

func TestDriver_ClickUnregisteredLink(t *testing.T) {
	d := newDriver(t)

	err := d.Click(context.Background(), locator.LinkText("Missing"))
	assert.ErrorIs(t, err, ErrUnknownDocument)
	assert.Equal(t, "http://app/orders/1", d.CurrentURL())
}

func TestDriver_Windows(t *testing.T) {
	d := newDriver(t)
	ctx := context.Background()
	require.NoError(t, d.SetWindowName("main"))

	require.NoError(t, d.OpenWindow(ctx, "http://app/orders/2"))
	titles, err := d.WindowTitles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Заказ", "Second"}, titles)

	require.NoError(t, d.SelectWindow(ctx, locator.ByName("mai")))
	title, _ := d.Title(ctx)
	assert.Equal(t, "Заказ", title)

	err = d.SelectWindow(ctx, locator.ByTitle("Nope"))
	assert.ErrorIs(t, err, browser.ErrWindowNotFound)

	require.NoError(t, d.CloseAllBut(ctx, locator.ByTitle("Sec")))
	names, _ := d.WindowNames(ctx)
	assert.Equal(t, []string{""}, names)

	require.NoError(t, d.CloseWindow(ctx))
	_, err = d.Title(ctx)
	assert.ErrorIs(t, err, browser.ErrNotLaunched)
}

func TestDriver_ReadinessScriptsAndSleep(t *testing.T) {
	d := newDriver(t)
	ctx := context.Background()

	d.SetReadiness("loading")
	state, err := d.ReadinessState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "loading", state)

	d.HandleScript("return ready", func() (any, error) { return true, nil })
	result, err := d.Evaluate(ctx, "return ready")
	require.NoError(t, err)
	assert.Equal(t, true, result)

	_, err = d.Evaluate(ctx, "unknown()")
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = d.Screenshot(ctx)
	assert.ErrorIs(t, err, ErrUnsupported)

	d.Sleep(ctx, 150*time.Millisecond)
	d.Sleep(ctx, 50*time.Millisecond)
	assert.Equal(t, 200*time.Millisecond, d.Slept())
}

func TestDriver_OpenUnknownDocument(t *testing.T) {
	d := New(nil)
	err := d.Open(context.Background(), "http://app/none")
	assert.ErrorIs(t, err, ErrUnknownDocument)
}
