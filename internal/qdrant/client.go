// Package qdrant wraps the Qdrant gRPC API for storing and querying embedded
// function records.
package qdrant

import (
	"codescan/internal/config"
	"context"
	"errors"
	"fmt"
	"net"
	neturl "net/url"
	"strconv"
	"strings"

	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
)

const (
	defaultHost = "localhost"
	defaultPort = 6334
)

type Client struct {
	points      qdrant.PointsClient
	collections qdrant.CollectionsClient
	conn        *grpc.ClientConn
}

// NewClient connects to the Qdrant instance named by QDRANT_URL (host, host:port
// or full URL; defaults to localhost:6334).
func NewClient() (*Client, error) {
	host, port, err := parseQdrantAddress(config.Get("QDRANT_URL", "qdrant_url"))
	if err != nil {
		return nil, err
	}

	cfg := &qdrant.Config{
		Host: host,
		Port: port,
	}
	if apiKey := config.Get("QDRANT_API_KEY", "qdrant_api_key", "QDRANT_API_TOKEN", "qdrant_api_token"); apiKey != "" {
		cfg.APIKey = apiKey
	}

	grpcClient, err := qdrant.NewGrpcClient(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		points:      grpcClient.Points(),
		collections: grpcClient.Collections(),
		conn:        grpcClient.Conn(),
	}, nil
}

// parseQdrantAddress accepts "host", "host:port", or a URL and resolves both
// parts, falling back to the defaults for whatever is missing.
func parseQdrantAddress(raw string) (string, int, error) {
	endpoint := strings.TrimSpace(raw)
	if endpoint == "" {
		return defaultHost, defaultPort, nil
	}

	if strings.Contains(endpoint, "://") {
		parsed, err := neturl.Parse(endpoint)
		if err != nil {
			return "", 0, err
		}
		if parsed.Host == "" {
			return defaultHost, defaultPort, nil
		}
		endpoint = parsed.Host
	}

	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		var addrErr *net.AddrError
		if errors.As(err, &addrErr) && strings.Contains(addrErr.Err, "missing port") {
			return endpoint, defaultPort, nil
		}
		return "", 0, err
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, err
	}
	if host == "" {
		host = defaultHost
	}
	return host, port, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// EnsureCollection makes sure a collection with the given vector dimension
// exists. A collection created for a different embedding model (wrong
// dimension) is dropped and recreated, since its vectors are not comparable
// with the new ones anyway.
func (c *Client) EnsureCollection(name string, vectorSize uint64) error {
	ctx := context.Background()

	info, err := c.collections.Get(ctx, &qdrant.GetCollectionInfoRequest{
		CollectionName: name,
	})
	if err == nil {
		params := info.GetResult().GetConfig().GetParams()
		if params == nil {
			return nil
		}
		existing := params.GetVectorsConfig().GetParams().GetSize()
		if existing == vectorSize {
			return nil
		}
		fmt.Printf("⚠ Collection %s has dimension %d, need %d. Recreating...\n", name, existing, vectorSize)
		if err := c.DeleteCollection(name); err != nil {
			return fmt.Errorf("failed to delete mismatched collection: %w", err)
		}
	}

	_, err = c.collections.Create(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: &qdrant.VectorsConfig{
			Config: &qdrant.VectorsConfig_Params{
				Params: &qdrant.VectorParams{
					Size:     vectorSize,
					Distance: qdrant.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return err
	}

	// Per-file deletes filter on file_path, so index that payload key.
	_, err = c.points.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: name,
		FieldName:      "file_path",
		FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
	})
	return err
}

// DeleteCollection removes the collection and every point in it.
func (c *Client) DeleteCollection(name string) error {
	_, err := c.collections.Delete(context.Background(), &qdrant.DeleteCollection{
		CollectionName: name,
	})
	return err
}

// Upsert writes points and waits for the operation to be applied, so a scan
// that finishes has actually landed in the index.
func (c *Client) Upsert(collectionName string, points []*qdrant.PointStruct) error {
	wait := true
	_, err := c.points.Upsert(context.Background(), &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         points,
		Wait:           &wait,
	})
	return err
}

// Search returns the top scored points for a query vector, payloads included.
func (c *Client) Search(collectionName string, vector []float32, limit uint64) ([]*qdrant.ScoredPoint, error) {
	resp, err := c.points.Search(context.Background(), &qdrant.SearchPoints{
		CollectionName: collectionName,
		Vector:         vector,
		Limit:          limit,
		WithPayload: &qdrant.WithPayloadSelector{
			SelectorOptions: &qdrant.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// DeleteByFilter removes every point matching the filter.
func (c *Client) DeleteByFilter(collectionName string, filter *qdrant.Filter) error {
	_, err := c.points.Delete(context.Background(), &qdrant.DeletePoints{
		CollectionName: collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	return err
}

// PayloadToMap converts a Qdrant payload to plain Go values.
func PayloadToMap(payload map[string]*qdrant.Value) map[string]interface{} {
	result := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		result[k] = valueToInterface(v)
	}
	return result
}

func valueToInterface(v *qdrant.Value) interface{} {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_ListValue:
		items := val.ListValue.GetValues()
		out := make([]interface{}, 0, len(items))
		for _, item := range items {
			out = append(out, valueToInterface(item))
		}
		return out
	default:
		return fmt.Sprintf("%v", v)
	}
}

// MapToPayload converts plain Go values to a Qdrant payload. Unknown types
// are stored as their string rendering.
func MapToPayload(m map[string]interface{}) map[string]*qdrant.Value {
	result := make(map[string]*qdrant.Value, len(m))
	for k, v := range m {
		result[k] = interfaceToValue(v)
	}
	return result
}

func interfaceToValue(i interface{}) *qdrant.Value {
	switch v := i.(type) {
	case string:
		return &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: v}}
	case int:
		return &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: int64(v)}}
	case int64:
		return &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: v}}
	case float64:
		return &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: v}}
	case bool:
		return &qdrant.Value{Kind: &qdrant.Value_BoolValue{BoolValue: v}}
	case []string:
		values := make([]*qdrant.Value, 0, len(v))
		for _, s := range v {
			values = append(values, &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: s}})
		}
		return &qdrant.Value{Kind: &qdrant.Value_ListValue{ListValue: &qdrant.ListValue{Values: values}}}
	default:
		return &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: fmt.Sprintf("%v", v)}}
	}
}
