package page

import (
	"context"
	"errors"
	"testing"
	"time"

	"pageObject/internal/browser"
	"pageObject/internal/browser/static"
	"pageObject/internal/locator"
	"pageObject/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const loginHTML = `<html><head><title>Login | Shop</title></head><body>
<form>
  <input id="username" name="username">
  <input id="password" name="password" type="password">
  <input id="birth" name="birth">
  <input id="amount" name="amount">
  <select id="lang"><option value="en">English</option><option value="cs">Čeština</option></select>
  <a id="submit" href="/shop/orders">Sign in</a>
</form>
</body></html>`

const ordersHTML = `<html><head><title>Orders | Shop</title></head><body>
<table id="orders">
  <thead><tr><th>Customer</th><th>Total</th></tr></thead>
  <tbody>
    <tr><td>Ivan</td><td>12,50</td></tr>
    <tr><td>Olga</td><td>7,00</td></tr>
  </tbody>
</table>
<a id="logout" href="/shop/login">Log out</a>
</body></html>`

type loginPage struct {
	*Page
}

func newLoginPage(c *Component) *loginPage {
	return &loginPage{NewPage("Login", c, TitleContains("Login"))}
}

func (p *loginPage) SignIn(ctx context.Context, user, password string) (*ordersPage, error) {
	if err := p.Guard(ctx, "SignIn"); err != nil {
		return nil, err
	}
	if err := p.Type(ctx, "username", user); err != nil {
		return nil, err
	}
	if err := p.Type(ctx, "name=password", password); err != nil {
		return nil, err
	}
	if err := p.Click(ctx, "submit"); err != nil {
		return nil, err
	}
	return NavigateTo(ctx, p.Component, newOrdersPage)
}

type ordersPage struct {
	*Page
	initialized []any
}

func newOrdersPage(c *Component) *ordersPage {
	return &ordersPage{Page: NewPage("Orders", c, All(TitleContains("Orders"), ElementPresent("orders")))}
}

func (p *ordersPage) Init(ctx context.Context, params ...any) error {
	p.initialized = params
	return nil
}

func (p *ordersPage) Table() *table.Table {
	return p.Component.Table(table.Config{Table: "//table[@id='orders']"})
}

func newShop(t *testing.T, opts ...static.Option) (*static.Driver, *Component) {
	t.Helper()
	opts = append([]static.Option{
		static.WithDocument("http://shop.test/shop/login", loginHTML),
		static.WithDocument("http://shop.test/shop/orders", ordersHTML),
		static.WithInstantSleep(),
	}, opts...)
	d := static.New(nil, opts...)

	c := New(d, Options{BaseURL: "http://shop.test", ContextPath: "/shop"})
	require.NoError(t, c.Open(context.Background(), "/login"))
	return d, c
}

func TestPageFlow(t *testing.T) {
	_, c := newShop(t)
	ctx := context.Background()

	login := newLoginPage(c)
	orders, err := login.SignIn(ctx, "ivan", "s3cret")
	require.NoError(t, err)

	title, err := orders.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Orders | Shop", title)

	row, found, err := orders.Table().Row(ctx, "Olga")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, table.Row{"Olga", "7,00"}, row)
}

func TestGuard_InvalidState(t *testing.T) {
	_, c := newShop(t)
	ctx := context.Background()

	orders := newOrdersPage(c)
	err := orders.Guard(ctx, "Table")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPageState)

	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "Login | Shop", stateErr.Title)
	assert.Equal(t, "Orders", stateErr.Page)
}

func TestNavigateTo_WrongPage(t *testing.T) {
	_, c := newShop(t)

	_, err := NavigateTo(context.Background(), c, newOrdersPage)
	assert.ErrorIs(t, err, ErrInvalidPageState)
	assert.Contains(t, err.Error(), "Login | Shop")
}

func TestNavigateTo_RunsInit(t *testing.T) {
	_, c := newShop(t)
	ctx := context.Background()
	require.NoError(t, c.Open(ctx, "/orders"))

	orders, err := NavigateTo(ctx, c, newOrdersPage, "filter", 3)
	require.NoError(t, err)
	assert.Equal(t, []any{"filter", 3}, orders.initialized)
}

func TestComponent_TypeSkipsEmpty(t *testing.T) {
	_, c := newShop(t)
	ctx := context.Background()

	require.NoError(t, c.Type(ctx, "missing-field", ""), "empty value never touches the page")
	require.NoError(t, c.Select(ctx, "missing-select", ""))

	require.NoError(t, c.Type(ctx, "username", "ivan"))
	value, err := c.Value(ctx, "username")
	require.NoError(t, err)
	assert.Equal(t, "ivan", value)
}

func TestComponent_TypeDateAndNumber(t *testing.T) {
	_, c := newShop(t)
	ctx := context.Background()

	require.NoError(t, c.TypeDate(ctx, "birth", time.Date(1990, time.July, 4, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, c.TypeNumber(ctx, "amount", 1499.5))

	birth, _ := c.Value(ctx, "birth")
	amount, _ := c.Value(ctx, "amount")
	assert.Equal(t, "04.07.1990", birth)
	assert.Equal(t, "1499,50", amount)
}

func TestComponent_Select(t *testing.T) {
	_, c := newShop(t)
	ctx := context.Background()

	require.NoError(t, c.Select(ctx, "lang", "label=Čeština"))
	value, err := c.Value(ctx, "lang")
	require.NoError(t, err)
	assert.Equal(t, "cs", value)

	err = c.Select(ctx, "lang", "index=x")
	assert.ErrorIs(t, err, locator.ErrInvalidIndex)
}

func TestComponent_FailureCarriesLocatorAndTitle(t *testing.T) {
	_, c := newShop(t)
	ctx := context.Background()

	err := c.Click(ctx, "id=nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, browser.ErrElementNotFound)

	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, "id=nope", actionErr.Locator)
	assert.Equal(t, "Login | Shop", actionErr.Title)

	require.NoError(t, c.ScrollTo(ctx, "submit"))
	err = c.ScrollTo(ctx, "css=footer")
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, "прокрутка", actionErr.Action)
	assert.ErrorIs(t, err, browser.ErrElementNotFound)

	_, err = c.Text(ctx, "link=Home")
	assert.ErrorIs(t, err, locator.ErrUnrecognizedPrefix)
}

func TestComponent_SanitizesTypedSecrets(t *testing.T) {
	d := static.New(nil, static.WithDocument("http://shop.test/shop/login", loginHTML))
	core, logs := observer.New(zap.DebugLevel)
	c := New(d, Options{BaseURL: "http://shop.test", ContextPath: "/shop", Logger: zap.New(core)})
	ctx := context.Background()
	require.NoError(t, c.Open(ctx, "/login"))

	require.NoError(t, c.Type(ctx, "name=password", "hunter2"))

	entries := logs.FilterMessage("Ввод текста").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "[FILTERED]", entries[0].ContextMap()["value"])
}

func TestComponent_WaitForPresence(t *testing.T) {
	d, c := newShop(t)
	ctx := context.Background()

	require.NoError(t, c.WaitForPresence(ctx, "username", time.Second))

	err := c.WaitForPresence(ctx, "css=.spinner", 0)
	assert.ErrorIs(t, err, browser.ErrElementNotFound)
	assert.Equal(t, DefaultImplicitTimeout, d.Slept())
}

func TestPage_LoadState(t *testing.T) {
	d, c := newShop(t)
	ctx := context.Background()
	p := newLoginPage(c)

	loaded, err := p.IsLoaded(ctx)
	require.NoError(t, err)
	assert.True(t, loaded)

	d.SetReadiness("loading")
	state, err := p.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "loading", state)

	require.NoError(t, p.WaitForLoad(ctx, time.Second), "page load timeout is soft")
	assert.Equal(t, time.Second, d.Slept())
}

func TestPage_CloseWindow(t *testing.T) {
	_, c := newShop(t)
	ctx := context.Background()

	require.NoError(t, c.OpenWindow(ctx, "/orders"))
	orders, err := NavigateTo(ctx, c, newOrdersPage)
	require.NoError(t, err)

	require.NoError(t, orders.CloseWindow(ctx))
	login := newLoginPage(c)
	ok, err := login.IsValid(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidatorError(t *testing.T) {
	_, c := newShop(t)
	boom := errors.New("probe failed")
	p := NewPage("Broken", c, func(ctx context.Context, c *Component) (bool, error) { return false, boom })

	err := p.Guard(context.Background(), "Do")
	assert.ErrorIs(t, err, boom)
}
