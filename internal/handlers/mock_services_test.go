package handlers_test

import (
	"context"
	"errors"
	"time"

	"github.com/serroba/url-shorter/internal/events"
	"github.com/serroba/url-shorter/internal/model"
)

var errMock = errors.New("mock error")

const testURL = "https://example.com/very/long/path"

// noopPublish returns a publish function that always succeeds.
func noopPublish[T any]() events.Publish[T] {
	return func(_ *T) error { return nil }
}

// errorPublish returns a publish function that always fails.
func errorPublish[T any](err error) events.Publish[T] {
	return func(_ *T) error { return err }
}

// capturePublish returns a publish function that records the events it sees.
func capturePublish[T any](sink *[]T) events.Publish[T] {
	return func(event *T) error {
		*sink = append(*sink, *event)

		return nil
	}
}

// mockShortURLService is a configurable test double for ShortURLService.
type mockShortURLService struct {
	createResult     *model.ShortedURL
	createErr        error
	bulkResult       []model.ShortedURL
	bulkErr          error
	getResult        *model.ShortedURL
	getErr           error
	softDeleteResult *model.ShortedURL
	softDeleteErr    error

	createdOriginals []string
	deletedIDs       []int64
}

func (m *mockShortURLService) Create(_ context.Context, original string) (*model.ShortedURL, error) {
	m.createdOriginals = append(m.createdOriginals, original)

	return m.createResult, m.createErr
}

func (m *mockShortURLService) BulkCreate(_ context.Context, _ []string) ([]model.ShortedURL, error) {
	return m.bulkResult, m.bulkErr
}

func (m *mockShortURLService) Get(_ context.Context, _ int64) (*model.ShortedURL, error) {
	return m.getResult, m.getErr
}

func (m *mockShortURLService) SoftDelete(_ context.Context, id int64) (*model.ShortedURL, error) {
	m.deletedIDs = append(m.deletedIDs, id)

	return m.softDeleteResult, m.softDeleteErr
}

// mockUsageService records what the handler asked it to persist.
type mockUsageService struct {
	recordErr  error
	countValue int64
	countErr   error
	history    []model.ShortedURLInfo
	historyErr error

	recorded []model.ShortedURLInfo
}

func (m *mockUsageService) Record(_ context.Context, info model.ShortedURLInfo) (*model.ShortedURLInfo, error) {
	if m.recordErr != nil {
		return nil, m.recordErr
	}

	m.recorded = append(m.recorded, info)

	return &info, nil
}

func (m *mockUsageService) Count(_ context.Context, _ int64) (int64, error) {
	return m.countValue, m.countErr
}

func (m *mockUsageService) History(_ context.Context, _ int64, _, _ int) ([]model.ShortedURLInfo, error) {
	return m.history, m.historyErr
}

// mockBlacklistService is a configurable test double for BlacklistService.
type mockBlacklistService struct {
	addResult *model.BlacklistedClient
	addErr    error
	entries   []model.BlacklistedClient
	listErr   error
	removeErr error

	removedIDs []int64
	listSkip   int
	listLimit  int
}

func (m *mockBlacklistService) Add(_ context.Context, _ string, _ *time.Time) (*model.BlacklistedClient, error) {
	return m.addResult, m.addErr
}

func (m *mockBlacklistService) List(_ context.Context, skip, limit int) ([]model.BlacklistedClient, error) {
	m.listSkip = skip
	m.listLimit = limit

	return m.entries, m.listErr
}

func (m *mockBlacklistService) Remove(_ context.Context, id int64) error {
	m.removedIDs = append(m.removedIDs, id)

	return m.removeErr
}

// mockPinger answers the ping handler's clock probe.
type mockPinger struct {
	ts  time.Time
	err error
}

func (m *mockPinger) CurrentTime(_ context.Context) (time.Time, error) {
	return m.ts, m.err
}
