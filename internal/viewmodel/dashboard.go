package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/ushadow-io/feed-service/internal/activity"
	"github.com/ushadow-io/feed-service/internal/models"
)

// DashboardViewModel owns the unified activity timeline: conversations and
// memories are loaded fan-out/fan-in and merged reverse-chronologically.
// Partial failure of one branch keeps the other branch's results.
type DashboardViewModel struct {
	api ActivityAPI

	mu            sync.Mutex
	conversations []models.Conversation
	memories      []models.Memory
	activities    []models.Activity
	convErr       error
	memErr        error
	loading       bool
}

// NewDashboardViewModel creates a dashboard view model over the given port.
func NewDashboardViewModel(api ActivityAPI) *DashboardViewModel {
	return &DashboardViewModel{api: api}
}

// Load fetches conversations and memories concurrently and rebuilds the
// merged timeline. When one branch fails, the successful branch's records
// still appear; the returned error reports whichever branches failed.
func (vm *DashboardViewModel) Load(ctx context.Context) error {
	vm.mu.Lock()
	vm.loading = true
	vm.mu.Unlock()

	var (
		wg            sync.WaitGroup
		conversations []models.Conversation
		memories      []models.Memory
		convErr       error
		memErr        error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		conversations, convErr = vm.api.ListConversations(ctx)
	}()
	go func() {
		defer wg.Done()
		memories, memErr = vm.api.ListMemories(ctx)
	}()
	wg.Wait()

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.loading = false
	vm.convErr = convErr
	vm.memErr = memErr
	if convErr == nil {
		vm.conversations = conversations
	}
	if memErr == nil {
		vm.memories = memories
	}
	vm.activities = activity.Merge(vm.conversations, vm.memories)

	return errors.Join(convErr, memErr)
}

// Activities returns the merged timeline, newest first.
func (vm *DashboardViewModel) Activities() []models.Activity {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]models.Activity(nil), vm.activities...)
}

// Loading reports whether a Load is in flight.
func (vm *DashboardViewModel) Loading() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.loading
}

// Errors returns the last load errors per branch (nil when the branch
// succeeded).
func (vm *DashboardViewModel) Errors() (conversations, memories error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.convErr, vm.memErr
}
