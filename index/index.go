package index

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/talenthunt/talenthunt/dataset"
	"github.com/talenthunt/talenthunt/logger"
)

// upsertBatchSize is the chunk size for batch upserts.
const upsertBatchSize = 200

// Index wraps the Qdrant client with profile-shaped operations.
type Index struct {
	api *qdrant.Client
	cfg Config
	log *logger.Logger
}

// Filter narrows candidate search. Zero values disable the condition.
type Filter struct {
	MinStars int
	Language string
}

// Hit is one candidate returned by Search.
type Hit struct {
	Login string
	Score float32

	Name      string
	Location  string
	Languages string
	Stars     int
}

// NewIndex connects to Qdrant and verifies reachability. It returns
// (nil, nil) when the index is disabled.
func NewIndex(cfg Config, log *logger.Logger) (*Index, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("index: failed to initialize qdrant client: %w", err)
	}

	idx := &Index{api: api, cfg: cfg, log: log}
	if err := idx.healthCheck(); err != nil {
		return nil, err
	}

	log.Info("connected to qdrant", nil, map[string]interface{}{
		"host":       cfg.Host,
		"port":       cfg.Port,
		"collection": cfg.Collection,
	})
	return idx, nil
}

func (x *Index) healthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := x.api.HealthCheck(ctx); err != nil {
		return fmt.Errorf("index: qdrant health check failed: %w", err)
	}
	return nil
}

// Close releases the underlying client connection.
func (x *Index) Close() error {
	if x == nil {
		return nil
	}
	return x.api.Close()
}

// EnsureCollection creates the profile collection when missing. When the
// collection exists with a different vector size it is dropped and
// recreated, since vectors from different embedding models do not mix.
func (x *Index) EnsureCollection(ctx context.Context, dimension int) error {
	names, err := x.api.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("index: failed to list collections: %w", err)
	}

	if slices.Contains(names, x.cfg.Collection) {
		info, err := x.api.GetCollectionInfo(ctx, x.cfg.Collection)
		if err != nil {
			return fmt.Errorf("index: failed to inspect collection %q: %w", x.cfg.Collection, err)
		}
		if collectionVectorSize(info) == uint64(dimension) {
			return nil
		}

		x.log.Warn("recreating collection with new vector size", nil, map[string]interface{}{
			"collection": x.cfg.Collection,
			"dimension":  dimension,
		})
		if err := x.api.DeleteCollection(ctx, x.cfg.Collection); err != nil {
			return fmt.Errorf("index: failed to drop collection %q: %w", x.cfg.Collection, err)
		}
	}

	err = x.api.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: x.cfg.Collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("index: failed to create collection %q: %w", x.cfg.Collection, err)
	}
	return nil
}

// UpsertProfiles writes one point per profile, keyed by a UUID derived from
// the login. Vectors and profiles are matched by position.
func (x *Index) UpsertProfiles(ctx context.Context, profiles []dataset.Profile, vectors [][]float32) error {
	if len(profiles) != len(vectors) {
		return fmt.Errorf("index: %d profiles but %d vectors", len(profiles), len(vectors))
	}
	if len(profiles) == 0 {
		return nil
	}

	if err := x.EnsureCollection(ctx, len(vectors[0])); err != nil {
		return err
	}

	points := make([]*qdrant.PointStruct, 0, len(profiles))
	for i, p := range profiles {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(pointID(p.Login)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"login":     p.Login,
				"name":      p.Name,
				"location":  p.Location,
				"languages": p.LanguagesList,
				"stars":     p.TotalStars,
				"repos":     p.NbReposFetched,
			}),
		})
	}

	wait := true
	for start := 0; start < len(points); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(points))
		_, err := x.api.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: x.cfg.Collection,
			Points:         points[start:end],
			Wait:           &wait,
		})
		if err != nil {
			return fmt.Errorf("index: upsert failed at [%d:%d]: %w", start, end, err)
		}
	}

	x.log.Info("profile vectors upserted", nil, map[string]interface{}{
		"collection": x.cfg.Collection,
		"points":     len(points),
	})
	return nil
}

// Search returns the topK most similar profiles for the query vector,
// optionally narrowed by the filter.
func (x *Index) Search(ctx context.Context, vector []float32, topK int, filter Filter) ([]Hit, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("index: query vector must not be empty")
	}
	if topK < 1 {
		return nil, fmt.Errorf("index: topK must be at least 1, got %d", topK)
	}

	limit := uint64(topK)
	resp, err := x.api.Query(ctx, &qdrant.QueryPoints{
		CollectionName: x.cfg.Collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         buildFilter(filter),
	})
	if err != nil {
		return nil, fmt.Errorf("index: search failed: %w", err)
	}

	hits := make([]Hit, 0, len(resp))
	for _, point := range resp {
		hits = append(hits, Hit{
			Login:     payloadString(point.Payload, "login"),
			Score:     point.Score,
			Name:      payloadString(point.Payload, "name"),
			Location:  payloadString(point.Payload, "location"),
			Languages: payloadString(point.Payload, "languages"),
			Stars:     payloadInt(point.Payload, "stars"),
		})
	}
	return hits, nil
}

// buildFilter translates the domain filter into Qdrant conditions.
func buildFilter(f Filter) *qdrant.Filter {
	var must []*qdrant.Condition
	if f.MinStars > 0 {
		gte := float64(f.MinStars)
		must = append(must, qdrant.NewRange("stars", &qdrant.Range{Gte: &gte}))
	}
	if f.Language != "" {
		must = append(must, qdrant.NewMatchText("languages", f.Language))
	}
	if len(must) == 0 {
		return nil
	}
	return &qdrant.Filter{Must: must}
}

// pointID derives a stable UUID from the profile login.
func pointID(login string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(login)).String()
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}

func payloadInt(payload map[string]*qdrant.Value, key string) int {
	if v, ok := payload[key]; ok {
		return int(v.GetIntegerValue())
	}
	return 0
}

func collectionVectorSize(info *qdrant.CollectionInfo) uint64 {
	params := info.GetConfig().GetParams().GetVectorsConfig().GetParams()
	if params == nil {
		return 0
	}
	return params.Size
}
