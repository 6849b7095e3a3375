package locators

/**
 * LinkedIn职位搜索页元素定位器
 * 集中管理所有页面元素的定位表达式
 */

// 搜索结果列表相关元素
const JOB_LIST_SELECTOR = "ul.jobs-search-results__list li"
const RESULTS_CONTAINER = "div.jobs-search-results-list"
const JOB_CARD_ANCHOR = "a"

// 岗位卡片上的稳定ID属性
const ATTR_OCCLUDABLE_JOB_ID = "data-occludable-job-id"
const ATTR_JOB_ID = "data-job-id"

/**
 * 职位详情面板
 */
// 岗位名称
const JOB_TITLE_TOP_CARD = ".jobs-unified-top-card__job-title"
// 公司名称
const COMPANY_TOP_CARD = ".jobs-unified-top-card__company-name"
const COMPANY_TOP_CARD_ALT = ".job-details-jobs-unified-top-card__company-name"
const COMPANY_LINK = "a[data-control-name='company_link']"
// Easy Apply入口按钮
const EASY_APPLY_BUTTON = "button.jobs-apply-button"

// 筛选栏相关元素
const LOCATION_INPUT_CITY = "input[aria-label='City, state, or zip code']"
const LOCATION_INPUT_LABEL = "input[aria-label='Location']"
const LOCATION_INPUT_PLACEHOLDER = "input[placeholder*='Location']"
const CLEAR_LOCATION_BUTTON = "button[aria-label='Clear location']"
const CLEAR_BUTTON = "button[aria-label='Clear']"
const CLEAR_SEARCH_BUTTON = "button[aria-label='Clear search']"
// 位置联想下拉列表
const LOCATION_SUGGESTIONS = "ul[role='listbox'] li, div[role='listbox'] li"
// 顶栏筛选按钮候选容器
const SEARCH_TOOLBAR = ".scaffold-layout__toolbar"
const FILTER_BAR = ".search-reusables__filter-list"

// 全部筛选面板
const FILTER_PANEL_DIALOG = "div[role='dialog']"
const FILTER_PANEL_SECTION = "fieldset, li.search-reusables__secondary-filters-filter"
const SHOW_RESULTS_BUTTON = "button:has-text('Show results'), button:has-text('Apply')"

// 申请弹窗相关元素
const APPLY_DIALOG = "div[role='dialog']"
const APPLY_DIALOG_INPUTS = "input[type='text'], input[type='number']"
// 表单校验失败提示
const INLINE_FEEDBACK = ".artdeco-inline-feedback__message"
// 关注公司复选框
const FOLLOW_COMPANY_CHECKBOX = "input#follow-company-checkbox"
