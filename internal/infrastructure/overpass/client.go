package overpass

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/serjvanilla/go-overpass"
	"go.uber.org/zap"

	"github.com/Chintnn/walkability-pathfinder/internal/config"
	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/domain/repository"
	"github.com/Chintnn/walkability-pathfinder/internal/pkg/errors"
)

// queryTemplate - дороги и amenity-узлы в bbox, затем рекурсивно узлы линий
const queryTemplate = `[out:json][timeout:%d];
(
	way["highway"](%s);
	node["amenity"](%s);
);
out body;
>;
out skel qt;`

type client struct {
	api          *overpass.Client
	endpoint     string
	queryTimeout int
	logger       *zap.Logger
}

// NewOverpassClient создает клиент Overpass API
func NewOverpassClient(cfg *config.OverpassConfig, logger *zap.Logger) repository.OSMRepository {
	httpClient := &http.Client{
		Timeout: cfg.RequestTimeout,
	}
	api := overpass.NewWithSettings(cfg.URL, cfg.MaxParallel, httpClient)

	return &client{
		api:          &api,
		endpoint:     cfg.URL,
		queryTimeout: cfg.QueryTimeout,
		logger:       logger,
	}
}

// BuildQuery формирует Overpass QL запрос для bbox
func BuildQuery(bbox domain.BoundingBox, timeoutSec int) string {
	filter := bbox.OverpassFilter()
	return fmt.Sprintf(queryTemplate, timeoutSec, filter, filter)
}

type queryResult struct {
	result overpass.Result
	err    error
}

// FetchArea выполняет один запрос к Overpass. Библиотека не принимает context,
// поэтому запрос идёт в горутине, а отмена ctx прерывает ожидание.
func (c *client) FetchArea(ctx context.Context, bbox domain.BoundingBox) (*domain.OSMData, error) {
	query := BuildQuery(bbox, c.queryTimeout)

	done := make(chan queryResult, 1)
	go func() {
		res, err := c.api.Query(query)
		done <- queryResult{result: res, err: err}
	}()

	var res queryResult
	select {
	case <-ctx.Done():
		return nil, upstreamError(fmt.Errorf("request cancelled: %w", ctx.Err()))
	case res = <-done:
	}

	if res.err != nil {
		c.logger.Error("Overpass query failed",
			zap.String("endpoint", c.endpoint),
			zap.String("bbox", bbox.OverpassFilter()),
			zap.Error(res.err))
		return nil, upstreamError(res.err)
	}

	data := convertResult(&res.result)
	c.logger.Debug("Overpass query completed",
		zap.Int("nodes", len(data.Nodes)),
		zap.Int("ways", len(data.Ways)))

	return data, nil
}

// convertResult переводит ответ библиотеки в доменный граф.
// Узлы-заглушки (упомянуты линией, но отсутствуют в ответе) не переносятся.
func convertResult(result *overpass.Result) *domain.OSMData {
	data := domain.NewOSMData()

	for id, node := range result.Nodes {
		if isStub(node) {
			continue
		}
		data.Nodes[id] = &domain.OSMNode{
			ID:   id,
			Lat:  node.Lat,
			Lon:  node.Lon,
			Tags: node.Tags,
		}
	}

	for id, way := range result.Ways {
		nodeIDs := make([]int64, 0, len(way.Nodes))
		for _, n := range way.Nodes {
			if n == nil {
				continue
			}
			nodeIDs = append(nodeIDs, n.ID)
		}
		data.Ways = append(data.Ways, &domain.OSMWay{
			ID:      id,
			NodeIDs: nodeIDs,
			Tags:    way.Tags,
		})
	}

	// ways в ответе библиотеки - map, порядок не гарантирован
	sort.Slice(data.Ways, func(i, j int) bool { return data.Ways[i].ID < data.Ways[j].ID })
	return data
}

func isStub(node *overpass.Node) bool {
	return node == nil || (node.Lat == 0 && node.Lon == 0 && node.Tags == nil)
}

func upstreamError(err error) error {
	return errors.ErrUpstreamFetch.WithDetails(map[string]interface{}{
		"reason": err.Error(),
	})
}
