// cmd/create-tables provisions the DynamoDB tables used by the forum.
// Works against AWS or DynamoDB Local (set DYNAMODB_ENDPOINT).
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"Delver/internal/config"
	"Delver/internal/db/dynamo"
)

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file overlaid on the environment")
	wait := flag.Duration("wait", 2*time.Minute, "maximum time to wait for each table to become active")
	flag.Parse()

	cfg, err := config.New(*envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	client, err := dynamo.NewClient(ctx, cfg.AWSRegion, cfg.DynamoEndpoint)
	if err != nil {
		log.Fatalf("Failed to create DynamoDB client: %v", err)
	}

	postTable := dynamo.PostTable{Name: cfg.PostsTable, ParentIndex: cfg.ParentIndex, AuthorIndex: cfg.AuthorIndex}
	inputs := []*dynamodb.CreateTableInput{
		dynamo.PostTableInput(postTable),
		dynamo.UserTableInput(cfg.UsersTable, cfg.UsernameIndex),
	}

	for _, in := range inputs {
		created, err := dynamo.EnsureTable(ctx, client, in, *wait)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if created {
			log.Printf("Created table %s", *in.TableName)
		} else {
			log.Printf("Table %s already exists", *in.TableName)
		}
	}
}
