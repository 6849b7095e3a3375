package linkedin

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// baseLocator 通过别名内嵌接口：直接内嵌playwright.Locator会产生
// 与接口自身Locator方法同名的字段，遮蔽方法导致接口不满足
type baseLocator = playwright.Locator

// fakeLocator 只实现解析链路用到的方法，其余由内嵌接口兜底
type fakeLocator struct {
	baseLocator
	count   int
	visible bool
	attrs   map[string]string
	clicks  int
}

func (l *fakeLocator) Count() (int, error) {
	return l.count, nil
}

func (l *fakeLocator) First() playwright.Locator {
	return l
}

func (l *fakeLocator) IsVisible(options ...playwright.LocatorIsVisibleOptions) (bool, error) {
	return l.visible, nil
}

func (l *fakeLocator) Click(options ...playwright.LocatorClickOptions) error {
	l.clicks++
	return nil
}

func (l *fakeLocator) GetAttribute(name string, options ...playwright.LocatorGetAttributeOptions) (string, error) {
	return l.attrs[name], nil
}

// fakeScope 按描述符键返回预置的定位结果
type fakeScope struct {
	css  map[string]*fakeLocator
	role map[string]*fakeLocator
	text map[string]*fakeLocator
}

func (s fakeScope) Locator(selector string) playwright.Locator {
	return s.lookup(s.css, selector)
}

func (s fakeScope) GetByRole(role *playwright.AriaRole, name string, exact bool) playwright.Locator {
	return s.lookup(s.role, string(*role)+"/"+name)
}

func (s fakeScope) GetByText(text string, exact bool) playwright.Locator {
	return s.lookup(s.text, text)
}

func (s fakeScope) lookup(m map[string]*fakeLocator, key string) playwright.Locator {
	if loc, ok := m[key]; ok {
		return loc
	}
	return &fakeLocator{}
}

func TestResolveReturnsFirstVisibleMatch(t *testing.T) {
	third := &fakeLocator{count: 1, visible: true}
	scope := fakeScope{css: map[string]*fakeLocator{
		"#missing":   {count: 0},
		"#invisible": {count: 2, visible: false},
		"#target":    third,
	}}

	candidates := []Descriptor{CSS("#missing"), CSS("#invisible"), CSS("#target")}

	element, ok := Resolve(scope, candidates)
	require.True(t, ok)
	assert.Same(t, third, element)
}

func TestResolveSkipsInvisibleEarlierCandidates(t *testing.T) {
	// 前面的描述符有匹配但不可见，不应短路后续候选
	visible := &fakeLocator{count: 1, visible: true}
	scope := fakeScope{
		css:  map[string]*fakeLocator{".hidden": {count: 3, visible: false}},
		role: map[string]*fakeLocator{"button/Easy Apply": visible},
	}

	element, ok := Resolve(scope, []Descriptor{
		CSS(".hidden"),
		Role(playwright.AriaRoleButton, "Easy Apply", true),
	})
	require.True(t, ok)
	assert.Same(t, visible, element)
}

func TestResolveNotFound(t *testing.T) {
	scope := fakeScope{css: map[string]*fakeLocator{}}

	_, ok := Resolve(scope, []Descriptor{CSS("#a"), Text("anything", false)})
	assert.False(t, ok)
}

func TestResolveTextDescriptor(t *testing.T) {
	target := &fakeLocator{count: 1, visible: true}
	scope := fakeScope{text: map[string]*fakeLocator{"Date posted": target}}

	element, ok := Resolve(scope, []Descriptor{Text("Date posted", false)})
	require.True(t, ok)
	assert.Same(t, target, element)
}
