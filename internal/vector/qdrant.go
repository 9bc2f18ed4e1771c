// ABOUTME: Qdrant-backed vector store over gRPC
// ABOUTME: Owns collection setup, point upsert, threshold search, and delete-by-document
package vector

import (
	"context"
	"fmt"

	qdrantclient "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/harper/ragpipe/internal/models"
)

// Payload keys stored alongside each vector.
const (
	payloadContent    = "content"
	payloadDocumentID = "document_id"
	payloadChunkIndex = "chunk_index"
	payloadTitle      = "title"
	payloadSource     = "source"
	payloadType       = "type"
)

// QdrantStore implements Store against a Qdrant server's gRPC API.
type QdrantStore struct {
	conn        *grpc.ClientConn
	collections qdrantclient.CollectionsClient
	points      qdrantclient.PointsClient
	collection  string
	dimension   int
}

// NewQdrantStore connects to Qdrant at addr (host:port of the gRPC
// endpoint) and returns a store bound to the given collection.
func NewQdrantStore(addr, collection string, dimension int) (*QdrantStore, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant at %s: %w", addr, err)
	}

	return &QdrantStore{
		conn:        conn,
		collections: qdrantclient.NewCollectionsClient(conn),
		points:      qdrantclient.NewPointsClient(conn),
		collection:  collection,
		dimension:   dimension,
	}, nil
}

// EnsureCollection creates the collection with cosine distance if it
// does not exist yet.
func (s *QdrantStore) EnsureCollection(ctx context.Context) error {
	list, err := s.collections.List(ctx, &qdrantclient.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}

	for _, col := range list.GetCollections() {
		if col.GetName() == s.collection {
			return nil
		}
	}

	_, err = s.collections.Create(ctx, &qdrantclient.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &qdrantclient.VectorsConfig{
			Config: &qdrantclient.VectorsConfig_Params{
				Params: &qdrantclient.VectorParams{
					Size:     uint64(s.dimension),
					Distance: qdrantclient.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", s.collection, err)
	}

	return nil
}

// Upsert writes a batch of points in one request.
func (s *QdrantStore) Upsert(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	structs := make([]*qdrantclient.PointStruct, 0, len(points))
	for _, p := range points {
		if len(p.Vector) != s.dimension {
			return fmt.Errorf("point %s: vector dimension %d, collection expects %d", p.ID, len(p.Vector), s.dimension)
		}
		structs = append(structs, pointStruct(p))
	}

	_, err := s.points.Upsert(ctx, &qdrantclient.UpsertPoints{
		CollectionName: s.collection,
		Points:         structs,
	})
	if err != nil {
		return fmt.Errorf("upserting %d points: %w", len(structs), err)
	}

	return nil
}

// Search runs a similarity search and converts scored points into
// search results. threshold <= 0 disables score filtering.
func (s *QdrantStore) Search(ctx context.Context, queryVector []float32, limit int, threshold float32) ([]models.SearchResult, error) {
	req := &qdrantclient.SearchPoints{
		CollectionName: s.collection,
		Vector:         queryVector,
		Limit:          uint64(limit),
		WithPayload: &qdrantclient.WithPayloadSelector{
			SelectorOptions: &qdrantclient.WithPayloadSelector_Enable{Enable: true},
		},
	}
	if threshold > 0 {
		req.ScoreThreshold = &threshold
	}

	resp, err := s.points.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("searching collection %s: %w", s.collection, err)
	}

	results := make([]models.SearchResult, 0, len(resp.GetResult()))
	for _, point := range resp.GetResult() {
		results = append(results, searchResult(point))
	}

	return results, nil
}

// DeleteDocument removes all points whose document_id payload matches.
func (s *QdrantStore) DeleteDocument(ctx context.Context, documentID string) error {
	_, err := s.points.Delete(ctx, &qdrantclient.DeletePoints{
		CollectionName: s.collection,
		Points: &qdrantclient.PointsSelector{
			PointsSelectorOneOf: &qdrantclient.PointsSelector_Filter{
				Filter: &qdrantclient.Filter{
					Must: []*qdrantclient.Condition{
						{
							ConditionOneOf: &qdrantclient.Condition_Field{
								Field: &qdrantclient.FieldCondition{
									Key: payloadDocumentID,
									Match: &qdrantclient.Match{
										MatchValue: &qdrantclient.Match_Keyword{Keyword: documentID},
									},
								},
							},
						},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", documentID, err)
	}

	return nil
}

// Close closes the gRPC connection.
func (s *QdrantStore) Close() error {
	return s.conn.Close()
}

// pointStruct converts a Point into the qdrant wire representation.
func pointStruct(p Point) *qdrantclient.PointStruct {
	payload := map[string]*qdrantclient.Value{
		payloadContent:    stringValue(p.Content),
		payloadDocumentID: stringValue(p.DocumentID),
		payloadChunkIndex: {Kind: &qdrantclient.Value_IntegerValue{IntegerValue: int64(p.ChunkIndex)}},
	}
	for _, key := range []string{payloadTitle, payloadSource, payloadType} {
		if v := p.Metadata[key]; v != "" {
			payload[key] = stringValue(v)
		}
	}

	return &qdrantclient.PointStruct{
		Id: &qdrantclient.PointId{
			PointIdOptions: &qdrantclient.PointId_Uuid{Uuid: p.ID},
		},
		Vectors: &qdrantclient.Vectors{
			VectorsOptions: &qdrantclient.Vectors_Vector{
				Vector: &qdrantclient.Vector{Data: p.Vector},
			},
		},
		Payload: payload,
	}
}

// searchResult converts a scored point's payload back into a result.
func searchResult(point *qdrantclient.ScoredPoint) models.SearchResult {
	payload := point.GetPayload()
	return models.SearchResult{
		ID:         point.GetId().GetUuid(),
		DocumentID: payload[payloadDocumentID].GetStringValue(),
		ChunkIndex: int(payload[payloadChunkIndex].GetIntegerValue()),
		Content:    payload[payloadContent].GetStringValue(),
		Score:      point.GetScore(),
		Title:      payload[payloadTitle].GetStringValue(),
		Source:     payload[payloadSource].GetStringValue(),
	}
}

func stringValue(s string) *qdrantclient.Value {
	return &qdrantclient.Value{Kind: &qdrantclient.Value_StringValue{StringValue: s}}
}
