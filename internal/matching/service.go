package matching

import (
	"log/slog"

	"github.com/example/ride-engine/internal/directory"
	"github.com/example/ride-engine/internal/models"
	"github.com/example/ride-engine/internal/observability"
)

// Service composes the driver directory, the product-compatibility filter
// and the configured strategy. It owns the directory for the life of the
// process.
type Service struct {
	dir      directory.Directory
	strategy Strategy
	logger   *slog.Logger
}

func NewService(dir directory.Directory, strategy Strategy, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{dir: dir, strategy: strategy, logger: logger}
}

// AddDriver registers a driver with the directory.
func (s *Service) AddDriver(d *models.Driver) {
	s.dir.Add(d)
	observability.DriversOnline.Inc()
}

// FindDriver returns one candidate for the pickup/product pair, or nil when
// nothing survives the directory query and compatibility filter. The
// availability check here is advisory: it keeps raced drivers out of retry
// queries, but the result is still only a candidate and callers must win
// TryBook on it.
func (s *Service) FindDriver(pickup models.Coord, product models.Product) *models.Driver {
	nearby := s.dir.Nearby(pickup)
	candidates := nearby[:0:0]
	for _, d := range nearby {
		if d.Vehicle.Supports(product.Type) && d.Available() {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		s.logger.Debug("no compatible drivers", "product", product.Type, "nearby", len(nearby))
		return nil
	}
	return s.strategy.Pick(pickup, candidates)
}
