package linkedin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesRecentlyApplied(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Applied 2 hours ago", true},
		{"Applied 30 minutes ago", true},
		{"Applied an hour ago", true},
		{"Applied a minute ago", true},
		{"Applied 2h ago", true},
		{"Applied 45m ago", true},
		{"Senior Go Developer\nAcme Corp\nApplied 3 hours ago\nEasy Apply", true},
		{"Applied   2  hours   ago", true},

		{"5 applicants", false},
		{"Applied 3 days ago", false}, // 仅限分钟/小时级
		{"Applied 2 weeks ago", false},
		{"Applied yesterday", false},
		{"reapplied 2 hours ago", false},
		{"Posted 2 hours ago", false},
		{"", false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.want, matchesRecentlyApplied(tc.text), "text=%q", tc.text)
	}
}

func TestParseJobIDFromHref(t *testing.T) {
	cases := []struct {
		href string
		want string
	}{
		{"https://www.linkedin.com/jobs/view/3912345678/?refId=abc", "3912345678"},
		{"/jobs/view/123456", "123456"},
		{"/jobs/view/abc", ""},
		{"https://www.linkedin.com/jobs/search/", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.want, parseJobIDFromHref(tc.href), "href=%q", tc.href)
	}
}

func TestFallbackJobIDNamespace(t *testing.T) {
	// 降级ID必须落在可识别的命名空间，方便调用方/测试显式断言
	id := fallbackJobID(7)
	assert.True(t, strings.HasPrefix(id, FallbackIDPrefix))
	assert.Contains(t, id, "idx-7-")
}

func TestNormalizeCardText(t *testing.T) {
	assert.Equal(t, "applied 2 hours ago", normalizeCardText("  Applied \n 2\tHOURS   ago "))
}
