package linkedin

import (
	"path/filepath"
	"testing"

	locators "easy_apply_go/Locators"
	"easy_apply_go/model"
	"easy_apply_go/repository"
	"easy_apply_go/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessCardSkipsLedgeredJob(t *testing.T) {
	// 历史运行已落账的职位卡片静默跳过：不点击、不重复落账
	path := filepath.Join(t.TempDir(), "applied.json")
	ledger := service.NewLedgerService(repository.NewLedgerRepository(path), nil)
	require.NoError(t, ledger.Record("3912345678", model.JobRecord{
		Status: model.StatusSubmitted,
		URL:    "https://www.linkedin.com/jobs/view/3912345678/",
	}))

	card := &fakeLocator{attrs: map[string]string{locators.ATTR_OCCLUDABLE_JOB_ID: "3912345678"}}
	w := &Worker{ledger: ledger, seen: map[string]struct{}{}}

	assert.False(t, w.processCard(card, 0, 1))
	assert.Equal(t, 0, card.clicks)
	assert.Equal(t, 1, ledger.Count())
}

func TestProcessCardSkipsSeenInSameRun(t *testing.T) {
	card := &fakeLocator{attrs: map[string]string{locators.ATTR_JOB_ID: "77"}}
	w := &Worker{seen: map[string]struct{}{"77": {}}}

	assert.False(t, w.processCard(card, 3, 10))
	assert.Equal(t, 0, card.clicks)
}
