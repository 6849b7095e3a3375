package service

import (
	"os"
	"path/filepath"
	"testing"

	"easy_apply_go/model"
	"easy_apply_go/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, path string) *LedgerService {
	t.Helper()
	return NewLedgerService(repository.NewLedgerRepository(path), nil)
}

func TestLedgerRecordAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "applied.json")

	svc := newTestService(t, path)
	require.NoError(t, svc.Record("123", model.JobRecord{
		Status:  model.StatusSubmitted,
		Title:   "Go Developer",
		Company: "Acme",
		URL:     "https://www.linkedin.com/jobs/view/123/",
	}))

	// 重新加载后记录仍在，未写入的ID不在
	reloaded := newTestService(t, path)
	assert.True(t, reloaded.Contains("123"))
	assert.False(t, reloaded.Contains("456"))
	assert.Equal(t, 1, reloaded.Count())
}

func TestLedgerCrashSafety(t *testing.T) {
	// 处理完A后、处理B前中断：重新加载只包含A的记录
	path := filepath.Join(t.TempDir(), "applied.json")

	svc := newTestService(t, path)
	require.NoError(t, svc.Record("A", model.JobRecord{Status: model.StatusSubmitted, URL: "u"}))
	// B尚未Record即"崩溃"

	reloaded := newTestService(t, path)
	assert.True(t, reloaded.Contains("A"))
	assert.False(t, reloaded.Contains("B"))
}

func TestLedgerDedupAcrossStatuses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applied.json")

	svc := newTestService(t, path)
	require.NoError(t, svc.Record("123", model.JobRecord{Status: model.StatusTimeout, URL: "u"}))
	require.NoError(t, svc.Record("123", model.JobRecord{Status: model.StatusSubmitted, URL: "u"}))

	assert.Equal(t, 1, svc.Count())
	assert.ElementsMatch(t, []string{"123"}, svc.SeenIDs())
}

func TestLedgerMissingFileIsEmpty(t *testing.T) {
	svc := newTestService(t, filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, 0, svc.Count())
}

func TestLedgerCorruptFileTreatedAsEmpty(t *testing.T) {
	// 损坏的台账按空台账处理，而不是让整次运行失败
	path := filepath.Join(t.TempDir(), "applied.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	svc := newTestService(t, path)
	assert.Equal(t, 0, svc.Count())

	// 仍可正常写入
	require.NoError(t, svc.Record("1", model.JobRecord{Status: model.StatusClosed, URL: "u"}))
	assert.True(t, newTestService(t, path).Contains("1"))
}

func TestLedgerFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applied.json")

	svc := newTestService(t, path)
	require.NoError(t, svc.Record("123", model.JobRecord{Status: model.StatusSubmitted, URL: "u"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// 顶层jobs对象、两空格缩进
	assert.Contains(t, string(data), "\"jobs\": {")
	assert.Contains(t, string(data), "\n  \"jobs\"")
	assert.Contains(t, string(data), "\"updated_at\"")
}

func TestLedgerFillsUpdatedAt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applied.json")

	svc := newTestService(t, path)
	require.NoError(t, svc.Record("1", model.JobRecord{Status: model.StatusSubmitted, URL: "u"}))

	reloaded := newTestService(t, path)
	require.True(t, reloaded.Contains("1"))
	assert.NotEmpty(t, reloaded.ledger.Jobs["1"].UpdatedAt)
}
