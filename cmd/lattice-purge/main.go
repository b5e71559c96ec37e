// Command lattice-purge is an AWS Lambda function that purges the attributes
// of host objects removed from their DynamoDB tables.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/lattice/codec"
	"github.com/jacentio/lattice/fields"
	"github.com/jacentio/lattice/internal/config"
	"github.com/jacentio/lattice/stream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := cfg.Logger()

	stores, _, err := cfg.OpenStores(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	writer := fields.NewWriter(stores, codec.DefaultRegistry(), cfg.Fields, logger)
	lambda.Start(stream.NewHandler(writer, logger).HandleObjectRemoved)
}
