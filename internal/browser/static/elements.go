package static

import (
	"context"
	"fmt"
	"strings"

	"pageObject/internal/browser"
	"pageObject/internal/locator"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// query находит все совпадения локатора в текущем окне. Вызывается под d.mu.
func (d *Driver) query(ctx context.Context, loc locator.Locator) ([]*html.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w, err := d.currentWindow()
	if err != nil {
		return nil, err
	}

	switch loc.Kind {
	case locator.KindID:
		return htmlquery.QueryAll(w.root, "//*[@id="+browser.XPathLiteral(loc.Identifier)+"]")
	case locator.KindName:
		return htmlquery.QueryAll(w.root, "//*[@name="+browser.XPathLiteral(loc.Identifier)+"]")
	case locator.KindXPath:
		nodes, err := htmlquery.QueryAll(w.root, loc.Identifier)
		if err != nil {
			return nil, &browser.ElementError{Op: "поиск", Locator: loc, Err: err}
		}
		return nodes, nil
	case locator.KindLinkText:
		return htmlquery.QueryAll(w.root, "//a[normalize-space(.)="+browser.XPathLiteral(normalizeSpace(loc.Identifier))+"]")
	case locator.KindCSS:
		// некорректный CSS у goquery просто ничего не находит
		return goquery.NewDocumentFromNode(w.root).Find(loc.Identifier).Nodes, nil
	default:
		return nil, &browser.ElementError{Op: "поиск", Locator: loc, Err: locator.ErrUnrecognizedPrefix}
	}
}

func (d *Driver) first(ctx context.Context, op string, loc locator.Locator) (*html.Node, error) {
	nodes, err := d.query(ctx, loc)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, browser.NotFound(op, loc)
	}
	return nodes[0], nil
}

func (d *Driver) Count(ctx context.Context, loc locator.Locator) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	nodes, err := d.query(ctx, loc)
	if err != nil {
		return 0, err
	}
	return len(nodes), nil
}

func (d *Driver) IsPresent(ctx context.Context, loc locator.Locator) (bool, error) {
	n, err := d.Count(ctx, loc)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ScrollTo только проверяет наличие элемента: прокручивать нечего.
func (d *Driver) ScrollTo(ctx context.Context, loc locator.Locator) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.first(ctx, "прокрутка", loc)
	return err
}

func (d *Driver) IsEnabled(ctx context.Context, loc locator.Locator) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	node, err := d.first(ctx, "проверка доступности", loc)
	if err != nil {
		return false, err
	}
	_, disabled := attr(node, "disabled")
	return !disabled, nil
}

func (d *Driver) Text(ctx context.Context, loc locator.Locator) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	node, err := d.first(ctx, "чтение текста", loc)
	if err != nil {
		return "", err
	}
	return visibleText(node), nil
}

func (d *Driver) Attribute(ctx context.Context, loc locator.Locator, name string) (string, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	node, err := d.first(ctx, "чтение атрибута", loc)
	if err != nil {
		return "", false, err
	}
	value, ok := attr(node, name)
	return value, ok, nil
}

func (d *Driver) Value(ctx context.Context, loc locator.Locator) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	node, err := d.first(ctx, "чтение значения", loc)
	if err != nil {
		return "", err
	}

	switch node.Data {
	case "textarea":
		return htmlquery.InnerText(node), nil
	case "select":
		options := htmlquery.Find(node, ".//option")
		for _, opt := range options {
			if _, ok := attr(opt, "selected"); ok {
				return optionValue(opt), nil
			}
		}
		if len(options) > 0 {
			return optionValue(options[0]), nil
		}
		return "", nil
	default:
		value, _ := attr(node, "value")
		return value, nil
	}
}

// Click переходит по ссылке, внутри которой находится элемент, или переключает флажок.
func (d *Driver) Click(ctx context.Context, loc locator.Locator) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	node, err := d.first(ctx, "клик", loc)
	if err != nil {
		return err
	}

	if node.Data == "input" {
		if kind, _ := attr(node, "type"); kind == "checkbox" || kind == "radio" {
			if _, checked := attr(node, "checked"); checked {
				removeAttr(node, "checked")
			} else {
				setAttr(node, "checked", "checked")
			}
			return nil
		}
	}

	anchor := closestAnchor(node)
	if anchor == nil {
		return nil
	}

	href, ok := attr(anchor, "href")
	if !ok || href == "" || href == "#" {
		return nil
	}

	w, err := d.currentWindow()
	if err != nil {
		return err
	}

	target, registered := d.resolveHref(w.url, href)
	if !registered {
		d.log.Warn("Ссылка ведет на незарегистрированный документ", zap.String("href", href))
		return &browser.ElementError{Op: "клик", Locator: loc, Err: fmt.Errorf("%w: %s", ErrUnknownDocument, href)}
	}
	return d.navigate(w, target)
}

// Type дописывает текст к текущему значению поля.
func (d *Driver) Type(ctx context.Context, loc locator.Locator, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	node, err := d.first(ctx, "ввод текста", loc)
	if err != nil {
		return err
	}

	if node.Data == "textarea" {
		node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
		return nil
	}

	value, _ := attr(node, "value")
	setAttr(node, "value", value+text)
	return nil
}

func (d *Driver) Clear(ctx context.Context, loc locator.Locator) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	node, err := d.first(ctx, "очистка", loc)
	if err != nil {
		return err
	}

	if node.Data == "textarea" {
		for node.FirstChild != nil {
			node.RemoveChild(node.FirstChild)
		}
		return nil
	}

	removeAttr(node, "value")
	return nil
}

func (d *Driver) Select(ctx context.Context, loc locator.Locator, option locator.Option) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	node, err := d.first(ctx, "выбор опции", loc)
	if err != nil {
		return err
	}

	options := htmlquery.Find(node, ".//option")
	chosen := -1
	for i, opt := range options {
		if optionMatches(opt, i, option) {
			chosen = i
			break
		}
	}
	if chosen < 0 {
		return &browser.ElementError{Op: "выбор опции", Locator: loc, Err: fmt.Errorf("%w: опция %s", browser.ErrElementNotFound, option)}
	}

	_, multiple := attr(node, "multiple")
	for i, opt := range options {
		if i == chosen {
			setAttr(opt, "selected", "selected")
		} else if !multiple {
			removeAttr(opt, "selected")
		}
	}
	return nil
}

func optionMatches(opt *html.Node, index int, option locator.Option) bool {
	switch option.Kind {
	case locator.OptionLabel:
		return normalizeSpace(htmlquery.InnerText(opt)) == option.Identifier
	case locator.OptionIndex:
		return index == option.Index
	default:
		return optionValue(opt) == option.Identifier
	}
}

// optionValue повторяет правило HTML: без атрибута value значением служит текст.
func optionValue(opt *html.Node) string {
	if value, ok := attr(opt, "value"); ok {
		return value
	}
	return normalizeSpace(htmlquery.InnerText(opt))
}

// blockElements отделяются от соседей пробелом, как в innerText браузера.
var blockElements = map[string]bool{
	"td": true, "th": true, "tr": true, "p": true, "div": true,
	"li": true, "br": true, "h1": true, "h2": true, "h3": true,
}

func visibleText(node *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			sb.WriteByte(' ')
		}
	}
	walk(node)
	return normalizeSpace(sb.String())
}

func closestAnchor(node *html.Node) *html.Node {
	for n := node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.Data == "a" {
			return n
		}
	}
	return nil
}

func attr(node *html.Node, name string) (string, bool) {
	for _, a := range node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(node *html.Node, name, value string) {
	for i := range node.Attr {
		if node.Attr[i].Key == name {
			node.Attr[i].Val = value
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(node *html.Node, name string) {
	kept := node.Attr[:0]
	for _, a := range node.Attr {
		if a.Key != name {
			kept = append(kept, a)
		}
	}
	node.Attr = kept
}
