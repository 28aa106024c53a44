package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"swing_backend/internal/feature/prices/domain/entity"
)

// mockMarketRepository はテスト用のMarketRepositoryモック実装です。
type mockMarketRepository struct {
	getDailyTimeSeriesFn func(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error)
}

// GetDailyTimeSeries はモックのGetDailyTimeSeries関数を呼び出します。
func (m *mockMarketRepository) GetDailyTimeSeries(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
	if m.getDailyTimeSeriesFn != nil {
		return m.getDailyTimeSeriesFn(ctx, ticker, year)
	}
	return nil, nil
}

func samplePoints() []entity.PricePoint {
	return []entity.PricePoint{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Price: 150.0},
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Price: 155.0},
	}
}

// TestNewCachingMarketRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingMarketRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "prices",
		},
		{
			name:              "negative ttl uses default",
			ttl:               -1 * time.Minute,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "prices",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingMarketRepository(nil, tt.ttl, &mockMarketRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingMarketRepository_NilRedis はRedisがnilの場合にキャッシュをバイパスして内部リポジトリを直接呼び出すことを検証します。
func TestCachingMarketRepository_NilRedis(t *testing.T) {
	t.Parallel()

	expected := samplePoints()
	inner := &mockMarketRepository{
		getDailyTimeSeriesFn: func(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
			return expected, nil
		},
	}

	// Redis is nil - should bypass cache and call inner directly
	repo := NewCachingMarketRepository(nil, 5*time.Minute, inner, "prices")

	points, err := repo.GetDailyTimeSeries(context.Background(), "AAPL", 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != len(expected) {
		t.Errorf("expected %d points, got %d", len(expected), len(points))
	}
}

// TestCachingMarketRepository_CacheHit はキャッシュヒット時にRedisからデータを返し、内部リポジトリを呼ばないことを検証します。
func TestCachingMarketRepository_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedJSON, _ := json.Marshal(samplePoints())
	mock.ExpectGet("prices:AAPL:2024").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockMarketRepository{
		getDailyTimeSeriesFn: func(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingMarketRepository(rdb, 5*time.Minute, inner, "prices")
	points, err := repo.GetDailyTimeSeries(context.Background(), "AAPL", 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if len(points) != 2 {
		t.Errorf("expected 2 points, got %d", len(points))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingMarketRepository_CacheMiss はキャッシュミス時にAPIからデータを取得し、キャッシュに保存することを検証します。
func TestCachingMarketRepository_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := samplePoints()
	expectedJSON, _ := json.Marshal(expected)

	// Cache miss
	mock.ExpectGet("prices:AAPL:2024").RedisNil()
	// Set cache after fetching from inner
	mock.ExpectSet("prices:AAPL:2024", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockMarketRepository{
		getDailyTimeSeriesFn: func(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
			return expected, nil
		},
	}

	repo := NewCachingMarketRepository(rdb, 5*time.Minute, inner, "prices")
	points, err := repo.GetDailyTimeSeries(context.Background(), "AAPL", 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Errorf("expected 2 points, got %d", len(points))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingMarketRepository_InnerError は内部リポジトリがエラーを返した場合にそのエラーが伝播されることを検証します。
func TestCachingMarketRepository_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("api error")

	mock.ExpectGet("prices:AAPL:2024").RedisNil()

	inner := &mockMarketRepository{
		getDailyTimeSeriesFn: func(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
			return nil, expectedErr
		},
	}

	repo := NewCachingMarketRepository(rdb, 5*time.Minute, inner, "prices")
	_, err := repo.GetDailyTimeSeries(context.Background(), "AAPL", 2024)

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

// TestCachingMarketRepository_CorruptedCache は破損したキャッシュを検出・削除し、APIにフォールバックすることを検証します。
func TestCachingMarketRepository_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := samplePoints()
	expectedJSON, _ := json.Marshal(expected)

	// Return invalid JSON from cache
	mock.ExpectGet("prices:AAPL:2024").SetVal("invalid json")
	// Delete corrupted cache
	mock.ExpectDel("prices:AAPL:2024").SetVal(1)
	// Set new cache after fetching from inner
	mock.ExpectSet("prices:AAPL:2024", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockMarketRepository{
		getDailyTimeSeriesFn: func(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
			return expected, nil
		},
	}

	repo := NewCachingMarketRepository(rdb, 5*time.Minute, inner, "prices")
	points, err := repo.GetDailyTimeSeries(context.Background(), "AAPL", 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Errorf("expected 2 points, got %d", len(points))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingMarketRepository_KeyEscaping はRedisキーで問題となる文字を含む銘柄コードが正しくエスケープされることを検証します。
func TestCachingMarketRepository_KeyEscaping(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := samplePoints()
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("prices:BRK_A:2024").RedisNil()
	mock.ExpectSet("prices:BRK_A:2024", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockMarketRepository{
		getDailyTimeSeriesFn: func(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
			return expected, nil
		},
	}

	repo := NewCachingMarketRepository(rdb, 5*time.Minute, inner, "prices")
	if _, err := repo.GetDailyTimeSeries(context.Background(), "BRK A", 2024); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestSafe はsafe関数がRedisキーで問題となる文字を正しくエスケープすることを検証します。
func TestSafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"AAPL", "AAPL"},
		{"BRK A", "BRK_A"},
		{"key:value", "key_value"},
		{"a b:c", "a_b_c"},
		{"", ""},
		{"  ", "__"},
		{"::", "__"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			result := safe(tt.input)
			if result != tt.expected {
				t.Errorf("safe(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
