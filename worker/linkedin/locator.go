package linkedin

import (
	"github.com/playwright-community/playwright-go"
)

// DescriptorKind 描述符类型
type DescriptorKind int

const (
	// ByCSS 结构化选择器，最精确，对文案改动不敏感
	ByCSS DescriptorKind = iota
	// ByRole 可访问角色+名称查询
	ByRole
	// ByText 文本包含查询，最宽容也最不精确
	ByText
)

// Descriptor 元素描述符。候选列表按优先级排列，由Resolve统一消费。
type Descriptor struct {
	Kind     DescriptorKind
	Selector string               // ByCSS使用
	Role     *playwright.AriaRole // ByRole使用，直接存AriaRole*常量
	Name     string               // ByRole的可访问名称 / ByText的文本
	Exact    bool                 // 名称/文本是否要求精确匹配
}

func CSS(selector string) Descriptor {
	return Descriptor{Kind: ByCSS, Selector: selector}
}

func Role(role *playwright.AriaRole, name string, exact bool) Descriptor {
	return Descriptor{Kind: ByRole, Role: role, Name: name, Exact: exact}
}

func Text(text string, exact bool) Descriptor {
	return Descriptor{Kind: ByText, Name: text, Exact: exact}
}

// Scope 描述符的解析范围。页面和任意元素（筛选面板、申请弹窗）都可作为范围。
type Scope interface {
	Locator(selector string) playwright.Locator
	GetByRole(role *playwright.AriaRole, name string, exact bool) playwright.Locator
	GetByText(text string, exact bool) playwright.Locator
}

type pageScope struct {
	page playwright.Page
}

// PageScope 以整页为解析范围
func PageScope(page playwright.Page) Scope {
	return pageScope{page: page}
}

func (s pageScope) Locator(selector string) playwright.Locator {
	return s.page.Locator(selector)
}

func (s pageScope) GetByRole(role *playwright.AriaRole, name string, exact bool) playwright.Locator {
	options := playwright.PageGetByRoleOptions{}
	if name != "" {
		options.Name = name
		options.Exact = playwright.Bool(exact)
	}
	return s.page.GetByRole(*role, options)
}

func (s pageScope) GetByText(text string, exact bool) playwright.Locator {
	return s.page.GetByText(text, playwright.PageGetByTextOptions{
		Exact: playwright.Bool(exact),
	})
}

type locatorScope struct {
	root playwright.Locator
}

// LocatorScope 以某个元素为解析范围
func LocatorScope(root playwright.Locator) Scope {
	return locatorScope{root: root}
}

func (s locatorScope) Locator(selector string) playwright.Locator {
	return s.root.Locator(selector)
}

func (s locatorScope) GetByRole(role *playwright.AriaRole, name string, exact bool) playwright.Locator {
	options := playwright.LocatorGetByRoleOptions{}
	if name != "" {
		options.Name = name
		options.Exact = playwright.Bool(exact)
	}
	return s.root.GetByRole(*role, options)
}

func (s locatorScope) GetByText(text string, exact bool) playwright.Locator {
	return s.root.GetByText(text, playwright.LocatorGetByTextOptions{
		Exact: playwright.Bool(exact),
	})
}

// Resolve 按优先级逐个尝试候选描述符，返回首个可见匹配。
// 描述符命中的条件：至少匹配一个元素，且首个匹配当前可见。
// 未命中不是错误，由调用方决定是否致命；重试策略同样属于调用方。
func Resolve(scope Scope, candidates []Descriptor) (playwright.Locator, bool) {
	for _, candidate := range candidates {
		matched := lookup(scope, candidate)
		count, err := matched.Count()
		if err != nil || count == 0 {
			continue
		}

		first := matched.First()
		if visible, err := first.IsVisible(); err == nil && visible {
			return first, true
		}
	}
	return nil, false
}

func lookup(scope Scope, descriptor Descriptor) playwright.Locator {
	switch descriptor.Kind {
	case ByRole:
		return scope.GetByRole(descriptor.Role, descriptor.Name, descriptor.Exact)
	case ByText:
		return scope.GetByText(descriptor.Name, descriptor.Exact)
	default:
		return scope.Locator(descriptor.Selector)
	}
}
