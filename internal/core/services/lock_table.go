package services

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// recordWeight is the capacity of a record semaphore. Cell operations take
// one unit; record-wide operations take all of it.
const recordWeight = 1 << 20

type cellLock struct {
	sem  *semaphore.Weighted
	refs int
}

type recordLock struct {
	sem   *semaphore.Weighted
	refs  int
	cells map[string]*cellLock
}

// LockTable hands out hierarchical account locks. A cell operation holds its
// record shared and its cell exclusively; rekey and delete hold whole
// records exclusively. Entries are reference counted and dropped when idle.
type LockTable struct {
	mu      sync.Mutex
	records map[uuid.UUID]*recordLock
}

func NewLockTable() *LockTable {
	return &LockTable{records: make(map[uuid.UUID]*recordLock)}
}

// UnlockFunc releases a lock obtained from a LockTable. It is safe to call
// more than once.
type UnlockFunc func()

func (t *LockTable) retain(accountID uuid.UUID, currencyID string) (*recordLock, *cellLock) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.records[accountID]
	if !ok {
		r = &recordLock{sem: semaphore.NewWeighted(recordWeight), cells: make(map[string]*cellLock)}
		t.records[accountID] = r
	}
	r.refs++

	if currencyID == "" {
		return r, nil
	}
	c, ok := r.cells[currencyID]
	if !ok {
		c = &cellLock{sem: semaphore.NewWeighted(1)}
		r.cells[currencyID] = c
	}
	c.refs++
	return r, c
}

func (t *LockTable) release(accountID uuid.UUID, currencyID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r := t.records[accountID]
	if currencyID != "" {
		c := r.cells[currencyID]
		c.refs--
		if c.refs == 0 {
			delete(r.cells, currencyID)
		}
	}
	r.refs--
	if r.refs == 0 {
		delete(t.records, accountID)
	}
}

func (t *LockTable) unlocker(fn func()) UnlockFunc {
	var once sync.Once
	return func() { once.Do(fn) }
}

// LockCell serializes access to one (account, currency) cell.
func (t *LockTable) LockCell(ctx context.Context, accountID uuid.UUID, currencyID string) (UnlockFunc, error) {
	r, c := t.retain(accountID, currencyID)
	if err := r.sem.Acquire(ctx, 1); err != nil {
		t.release(accountID, currencyID)
		return nil, err
	}
	if err := c.sem.Acquire(ctx, 1); err != nil {
		r.sem.Release(1)
		t.release(accountID, currencyID)
		return nil, err
	}
	return t.unlocker(func() {
		c.sem.Release(1)
		r.sem.Release(1)
		t.release(accountID, currencyID)
	}), nil
}

// LockRecordShared holds a record against rekey and delete without
// excluding cell operations.
func (t *LockTable) LockRecordShared(ctx context.Context, accountID uuid.UUID) (UnlockFunc, error) {
	r, _ := t.retain(accountID, "")
	if err := r.sem.Acquire(ctx, 1); err != nil {
		t.release(accountID, "")
		return nil, err
	}
	return t.unlocker(func() {
		r.sem.Release(1)
		t.release(accountID, "")
	}), nil
}

// LockRecords holds every given record exclusively. Records are acquired in
// a fixed order so concurrent callers cannot deadlock.
func (t *LockTable) LockRecords(ctx context.Context, accountIDs ...uuid.UUID) (UnlockFunc, error) {
	ids := slices.Clone(accountIDs)
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	ids = slices.Compact(ids)

	held := make([]*recordLock, 0, len(ids))
	releaseHeld := func() {
		for i, r := range held {
			r.sem.Release(recordWeight)
			t.release(ids[i], "")
		}
	}

	for _, id := range ids {
		r, _ := t.retain(id, "")
		if err := r.sem.Acquire(ctx, recordWeight); err != nil {
			t.release(id, "")
			releaseHeld()
			return nil, err
		}
		held = append(held, r)
	}
	return t.unlocker(releaseHeld), nil
}

// size reports the number of tracked records.
func (t *LockTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}
