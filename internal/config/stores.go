package config

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jacentio/lattice/store"
)

// OpenStores builds the attribute stores of the configured backend. The
// returned close function releases backend resources.
func (c *Config) OpenStores(ctx context.Context) (*store.Stores, func() error, error) {
	noop := func() error { return nil }

	switch c.Backend {
	case BackendMemory:
		return store.NewMemoryStores(), noop, nil

	case BackendDynamoDB:
		var opts []func(*awsconfig.LoadOptions) error
		if c.AWSProfile != "" {
			opts = append(opts, awsconfig.WithSharedConfigProfile(c.AWSProfile))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("load aws config: %w", err)
		}
		return store.NewDynamoStores(dynamodb.NewFromConfig(awsCfg), c.Store), noop, nil

	case BackendPostgres:
		db, err := store.OpenPostgres(ctx, c.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		return store.NewPostgresStores(db, c.Store), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
}

// EnsureSchema creates the postgres tables when the backend is postgres.
func (c *Config) EnsureSchema(ctx context.Context, stores *store.Stores) error {
	if c.Backend != BackendPostgres {
		return nil
	}
	for _, kind := range stores.Kinds() {
		st, err := stores.For(kind)
		if err != nil {
			return err
		}
		if pg, ok := st.(*store.PostgresStore); ok {
			if err := pg.EnsureSchema(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
