package registry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"facultyload-service/internal/app/contracts"
	"facultyload-service/internal/app/models"
	"facultyload-service/internal/pkg/constvars"
	"facultyload-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

type referenceDataClient struct {
	BaseUrl    string
	httpClient *http.Client
	cache      contracts.RedisRepository
	cacheTTL   time.Duration
}

// Cold-cache misses pile up fast while the dialog is being typed into, so a
// refetch takes a short redis lock. Losers of the race wait once for the
// winner's payload to land before falling back to their own fetch.
const (
	refreshLockTTL  = 5 * time.Second
	refreshLockWait = 100 * time.Millisecond
)

// NewReferenceDataClient fetches the read-only option lists (faculty, rooms,
// suggested faculty) from the registry, with a redis read-through cache so
// every keystroke in the dialog does not refetch reference data.
func NewReferenceDataClient(baseUrl string, timeout time.Duration, cache contracts.RedisRepository, cacheTTL time.Duration) contracts.ReferenceDataClient {
	return &referenceDataClient{
		BaseUrl:    baseUrl,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

func (c *referenceDataClient) ListFaculty(ctx context.Context) ([]models.Faculty, error) {
	var faculty []models.Faculty
	if hit, err := c.fromCache(ctx, constvars.RedisKeyFacultyOptions, &faculty); err == nil && hit {
		return faculty, nil
	}

	if err := c.refetch(ctx, constvars.RedisKeyFacultyOptions, "/faculty", &faculty); err != nil {
		return nil, err
	}
	return faculty, nil
}

func (c *referenceDataClient) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if hit, err := c.fromCache(ctx, constvars.RedisKeyRoomOptions, &rooms); err == nil && hit {
		return rooms, nil
	}

	if err := c.refetch(ctx, constvars.RedisKeyRoomOptions, "/rooms", &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *referenceDataClient) ListSuggestedFaculty(ctx context.Context, programID int64, yearLevel int, sectionID int64) ([]models.SuggestedFaculty, error) {
	cacheKey := fmt.Sprintf(constvars.RedisKeySuggestedGrid, programID, yearLevel, sectionID)

	var suggestions []models.SuggestedFaculty
	if hit, err := c.fromCache(ctx, cacheKey, &suggestions); err == nil && hit {
		return suggestions, nil
	}

	path := fmt.Sprintf("/faculty/suggestions?programId=%d&yearLevel=%d&sectionId=%d", programID, yearLevel, sectionID)
	if err := c.refetch(ctx, cacheKey, path, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// refetch fills a missed cache entry from the registry, guarded by the
// refresh lock so concurrent misses don't stampede it. When another caller
// holds the lock, we wait one beat for its payload; if nothing lands we
// fetch anyway rather than fail the option list.
func (c *referenceDataClient) refetch(ctx context.Context, cacheKey, path string, out interface{}) error {
	acquired, err := c.cache.TrySetNX(ctx, constvars.RedisKeyOptionCacheLock, 1, refreshLockTTL)
	if err == nil && !acquired {
		time.Sleep(refreshLockWait)
		if hit, err := c.fromCache(ctx, cacheKey, out); err == nil && hit {
			return nil
		}
	}

	if err := c.getJSON(ctx, path, out); err != nil {
		return err
	}
	c.cache.Set(ctx, cacheKey, out, c.cacheTTL)
	if acquired {
		c.cache.Delete(ctx, constvars.RedisKeyOptionCacheLock)
	}
	return nil
}

func (c *referenceDataClient) fromCache(ctx context.Context, key string, out interface{}) (bool, error) {
	cached, err := c.cache.Get(ctx, key)
	if err != nil || cached == "" {
		return false, err
	}
	if err := json.Unmarshal([]byte(cached), out); err != nil {
		// A stale or corrupt entry falls through to a refetch.
		c.cache.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

func (c *referenceDataClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, c.BaseUrl+path, nil)
	if err != nil {
		return exceptions.ErrBuildRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return exceptions.ErrSendRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return exceptions.ErrRegistryOperation(readRegistryError(resp), path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return exceptions.ErrDecodeResponse(err, path)
	}
	return nil
}
