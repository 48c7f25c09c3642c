package directory

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/ride-engine/internal/models"
)

// Resolver maps a driver id from the Redis index back to the in-process
// driver object. Booking must hit the shared *Driver so the availability
// lock still serializes racing requests.
type Resolver interface {
	Driver(id string) (*models.Driver, bool)
}

// Redis is a Directory backed by Redis GEO commands, for deployments where
// the driver index must outlive or be shared across processes. Drivers whose
// ids cannot be resolved locally are skipped.
type Redis struct {
	client  *redis.Client
	key     string
	radiusM float64
	resolve Resolver
}

// DefaultSearchRadiusM roughly matches the reach of the in-process grid's
// 3x3 neighborhood at the default cell size.
const DefaultSearchRadiusM = 2000

func NewRedis(addr, password, key string, resolve Resolver) *Redis {
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	return &Redis{client: c, key: key, radiusM: DefaultSearchRadiusM, resolve: resolve}
}

func (r *Redis) Add(d *models.Driver) {
	ctx := context.Background()
	loc := d.Location()
	_, _ = r.client.GeoAdd(ctx, r.key, &redis.GeoLocation{
		Longitude: loc.Lon,
		Latitude:  loc.Lat,
		Name:      d.ID,
	}).Result()
	_ = r.client.HSet(ctx, metaKey(d.ID), map[string]interface{}{
		"rating":  strconv.FormatFloat(d.Rating, 'f', -1, 64),
		"updated": time.Now().Format(time.RFC3339),
	}).Err()
}

func (r *Redis) Nearby(loc models.Coord) []*models.Driver {
	res, err := r.client.GeoRadius(context.Background(), r.key, loc.Lon, loc.Lat, &redis.GeoRadiusQuery{
		Radius: r.radiusM,
		Unit:   "m",
		Sort:   "ASC",
	}).Result()
	if err != nil {
		return nil
	}
	out := make([]*models.Driver, 0, len(res))
	for _, g := range res {
		if d, ok := r.resolve.Driver(g.Name); ok {
			out = append(out, d)
		}
	}
	return out
}

func metaKey(id string) string { return "driver:meta:" + id }
