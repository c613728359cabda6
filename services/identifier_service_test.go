package services

import (
	"testing"

	"dcim-asset-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentifierService(t *testing.T) InterfaceIdentifierService {
	t.Helper()
	return NewIdentifierService(newTestDB(t), newTestConfig())
}

func TestGenerateBatch(t *testing.T) {
	svc := newIdentifierService(t)

	identifiers, err := svc.GenerateBatch(5, "第一批")
	require.NoError(t, err)
	require.Len(t, identifiers, 5)

	// 空池从1开始，数值连续
	for i, id := range identifiers {
		assert.Equal(t, int64(i+1), id.Value)
		assert.Equal(t, models.IdentifierStateGenerated, id.State)
		assert.Equal(t, "第一批", id.Note)
	}

	// 第二批紧接上一批，序列单调
	more, err := svc.GenerateBatch(3, "第二批")
	require.NoError(t, err)
	require.Len(t, more, 3)
	assert.Equal(t, int64(6), more[0].Value)
	assert.Equal(t, int64(8), more[2].Value)
}

func TestGenerateBatchInvalidCount(t *testing.T) {
	svc := newIdentifierService(t)

	_, err := svc.GenerateBatch(0, "")
	assert.ErrorIs(t, err, ErrInvalidBatchCount)

	_, err = svc.GenerateBatch(10001, "")
	assert.ErrorIs(t, err, ErrInvalidBatchCount)
}

func TestAllocateUnspecified(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentifierService(db, newTestConfig())

	_, err := svc.GenerateBatch(3, "")
	require.NoError(t, err)

	// 取最小可用数值
	identifier, err := svc.Allocate(models.EntityKindCabinet, 7, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), identifier.Value)

	stored := loadIdentifierByValue(t, db, 1)
	assert.Equal(t, models.IdentifierStateBound, stored.State)
	require.NotNil(t, stored.EntityKind)
	assert.Equal(t, models.EntityKindCabinet, *stored.EntityKind)
	require.NotNil(t, stored.EntityID)
	assert.Equal(t, uint(7), *stored.EntityID)
	assert.NotNil(t, stored.BoundAt)

	// 再次分配跳过已绑定的1
	next, err := svc.Allocate(models.EntityKindDevice, 8, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.Value)
}

func TestAllocateUnspecifiedEmptyPool(t *testing.T) {
	svc := newIdentifierService(t)

	// 池空时续号新建
	identifier, err := svc.Allocate(models.EntityKindRoom, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), identifier.Value)
}

func TestAllocateSpecified(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentifierService(db, newTestConfig())

	_, err := svc.GenerateBatch(3, "")
	require.NoError(t, err)

	value := int64(2)
	identifier, err := svc.Allocate(models.EntityKindPanel, 5, &value)
	require.NoError(t, err)
	assert.Equal(t, int64(2), identifier.Value)

	// 已绑定的数值拒绝再次分配
	_, err = svc.Allocate(models.EntityKindPanel, 6, &value)
	assert.ErrorIs(t, err, ErrIdentifierBound)
}

func TestAllocateSpecifiedCreatesOnTheFly(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentifierService(db, newTestConfig())

	// 体系外的存量标签：现场补建并推进序列
	value := int64(500)
	identifier, err := svc.Allocate(models.EntityKindDevice, 3, &value)
	require.NoError(t, err)
	assert.Equal(t, int64(500), identifier.Value)

	// 后续取号不会撞上500
	batch, err := svc.GenerateBatch(1, "")
	require.NoError(t, err)
	assert.Equal(t, int64(501), batch[0].Value)
}

func TestAllocateCancelledRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentifierService(db, newTestConfig())

	require.NoError(t, db.Create(&models.Identifier{
		Value: 9,
		State: models.IdentifierStateCancelled,
	}).Error)

	value := int64(9)
	_, err := svc.Allocate(models.EntityKindPort, 1, &value)
	assert.ErrorIs(t, err, ErrIdentifierCancelled)
}

func TestRelease(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentifierService(db, newTestConfig())

	identifier, err := svc.Allocate(models.EntityKindCabinet, 2, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Release(identifier.Value))

	stored := loadIdentifierByValue(t, db, identifier.Value)
	assert.Equal(t, models.IdentifierStateGenerated, stored.State)
	assert.Nil(t, stored.EntityKind)
	assert.Nil(t, stored.EntityID)
	assert.Nil(t, stored.BoundAt)

	// 未绑定状态不能释放
	assert.ErrorIs(t, svc.Release(identifier.Value), ErrIdentifierNotBound)
	// 不存在的数值
	assert.ErrorIs(t, svc.Release(99999), ErrIdentifierNotFound)

	// 释放后的数值可被再次分配
	again, err := svc.Allocate(models.EntityKindDevice, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, identifier.Value, again.Value)
}

func TestCancel(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentifierService(db, newTestConfig())

	_, err := svc.GenerateBatch(2, "")
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(1, "标签破损"))
	stored := loadIdentifierByValue(t, db, 1)
	assert.Equal(t, models.IdentifierStateCancelled, stored.State)
	assert.Equal(t, "标签破损", stored.CancelReason)

	// 作废是幂等的
	require.NoError(t, svc.Cancel(1, "重复作废"))

	// 绑定中的标识符拒绝作废
	_, err = svc.Allocate(models.EntityKindRoom, 1, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Cancel(2, ""), ErrIdentifierStillBound)

	assert.ErrorIs(t, svc.Cancel(404, ""), ErrIdentifierNotFound)
}

func TestBulkCancel(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentifierService(db, newTestConfig())

	_, err := svc.GenerateBatch(4, "")
	require.NoError(t, err)
	bound := int64(3)
	_, err = svc.Allocate(models.EntityKindPanel, 1, &bound)
	require.NoError(t, err)

	// 不带force：遇到bound整体失败，什么都不作废
	_, err = svc.BulkCancel([]int64{1, 2, 3}, "批次召回", false)
	assert.ErrorIs(t, err, ErrIdentifierStillBound)
	assert.Equal(t, models.IdentifierStateGenerated, loadIdentifierByValue(t, db, 1).State)

	// 带force：先释放绑定再作废
	count, err := svc.BulkCancel([]int64{1, 2, 3}, "批次召回", true)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	for _, v := range []int64{1, 2, 3} {
		assert.Equal(t, models.IdentifierStateCancelled, loadIdentifierByValue(t, db, v).State)
	}

	// 已作废的不重复计数
	count, err = svc.BulkCancel([]int64{3, 4}, "", true)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestResolve(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentifierService(db, newTestConfig())

	resolution, err := svc.Resolve(123)
	require.NoError(t, err)
	assert.False(t, resolution.Exists)
	assert.Equal(t, int64(123), resolution.Value)

	identifier, err := svc.Allocate(models.EntityKindDevice, 42, nil)
	require.NoError(t, err)

	resolution, err = svc.Resolve(identifier.Value)
	require.NoError(t, err)
	assert.True(t, resolution.Exists)
	assert.Equal(t, models.IdentifierStateBound, resolution.State)
	require.NotNil(t, resolution.EntityKind)
	assert.Equal(t, models.EntityKindDevice, *resolution.EntityKind)
	require.NotNil(t, resolution.EntityID)
	assert.Equal(t, uint(42), *resolution.EntityID)
}

func TestCreatePrintBatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentifierService(db, newTestConfig())

	batch, identifiers, err := svc.CreatePrintBatch("机房A标签", 10, "张工", "")
	require.NoError(t, err)
	assert.Equal(t, models.PrintBatchStatusPending, batch.Status)
	assert.Equal(t, 10, batch.RequestedCount)
	require.Len(t, identifiers, 10)

	for _, id := range identifiers {
		assert.Equal(t, models.IdentifierStatePrinted, id.State)
		require.NotNil(t, id.PrintBatchID)
		assert.Equal(t, batch.ID, *id.PrintBatchID)
	}

	// 落库状态与返回值一致
	stored := loadIdentifierByValue(t, db, identifiers[0].Value)
	assert.Equal(t, models.IdentifierStatePrinted, stored.State)
	assert.NotNil(t, stored.PrintedAt)

	loaded, err := svc.GetPrintBatch(batch.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Identifiers, 10)
	assert.Equal(t, int64(1), loaded.Identifiers[0].Value)

	_, err = svc.GetPrintBatch(999)
	assert.ErrorIs(t, err, ErrPrintBatchNotFound)
}

func TestCompletePrintBatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewIdentifierService(db, newTestConfig())

	batch, _, err := svc.CreatePrintBatch("批次", 2, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.CompletePrintBatch(batch.ID, "exports/labels_1.xlsx"))

	loaded, err := svc.GetPrintBatch(batch.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PrintBatchStatusCompleted, loaded.Status)
	assert.Equal(t, "exports/labels_1.xlsx", loaded.FileRef)
	assert.NotNil(t, loaded.CompletedAt)

	assert.ErrorIs(t, svc.CompletePrintBatch(999, ""), ErrPrintBatchNotFound)

	var fromDB []models.PrintBatch
	require.NoError(t, db.Find(&fromDB).Error)
	assert.Len(t, fromDB, 1)
}
