package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/qdrant/go-client/qdrant"

	"github.com/dkasturi/docuchat/internal/adapter/utils"
	"github.com/dkasturi/docuchat/internal/config"
	"github.com/dkasturi/docuchat/internal/domain/assetModel"
	"github.com/dkasturi/docuchat/internal/domain/commonModels"
	"github.com/dkasturi/docuchat/pkg/logger_i"
)

var logger *logger_i.Logger
var qdrantInstance *qdrant.Client
var once sync.Once
var dimension = uint64(config.EmbeddingOutputDimensionality)
var collectionName = config.AssetCollectionName

// AssetStore keeps one Qdrant point per asset: the vector slot carries the
// embedding (zero-padded for text-only assets, Qdrant points always carry
// a vector) and the payload carries the content tag plus any raw text.
type AssetStore struct {
	QObj *qdrant.Client
}

func GetQdrantAssetStore(ctx context.Context) *AssetStore {

	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res := newClient()
		if res != nil {
			qdrantInstance = res
			go closeQdrant(ctx, qdrantInstance)
		}
	})

	if qdrantInstance == nil {
		return nil
	}
	return &AssetStore{
		QObj: qdrantInstance,
	}
}

func newClient() *qdrant.Client {

	host := os.Getenv("QDRANT_HOST")
	port, er := strconv.Atoi(os.Getenv("QDRANT_PORT"))

	if host == "" || er != nil {
		host = config.QdrantHost
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil
	}

	err = createCollection(context.Background(), client, collectionName)
	if err != nil {
		logger.Error("could not create collection: ", "collectionName", collectionName, "error:", err)
		return nil
	}

	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	err := qi.Close()
	if err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
	logger.Info("Closed Qdrant")
}

func (db *AssetStore) Add(ctx context.Context, content assetModel.AssetContent) (string, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	assetId := utils.GetNewUUID()
	vector := content.Embedding
	if len(vector) == 0 {
		vector = make([]float32, dimension)
	}

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(assetId),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"kind": string(content.Kind),
					"text": content.Text,
				}),
			},
		},
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		loggr.Error("qdrant upsert failed", "error:", err)
		return "", fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return assetId, nil
}

func (db *AssetStore) Get(ctx context.Context, assetId string) (assetModel.Asset, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	points, err := db.QObj.Get(ctx, &qdrant.GetPoints{
		CollectionName: collectionName,
		Ids:            []*qdrant.PointId{qdrant.NewID(assetId)},
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return assetModel.Asset{}, err
	}
	if len(points) == 0 {
		return assetModel.Asset{}, fmt.Errorf("%w: unknown asset id", commonModels.ErrNotFound)
	}

	point := points[0]
	content := assetModel.AssetContent{
		Kind: assetModel.ContentKind(point.Payload["kind"].GetStringValue()),
		Text: point.Payload["text"].GetStringValue(),
	}
	if content.Kind != assetModel.ContentText {
		content.Embedding = point.Vectors.GetVector().GetData()
	}

	return assetModel.Asset{Id: assetId, Content: content}, nil
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	return err
}
