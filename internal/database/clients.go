package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"google.golang.org/api/option"
)

const pingTimeout = 5 * time.Second

// ErrCredentialsMissing means the service-account key file does not exist.
var ErrCredentialsMissing = errors.New("firestore credentials file not found")

// NewFirestore opens a Firestore client with the given service-account key
// file. An empty projectID is detected from the credentials.
func NewFirestore(ctx context.Context, credentialsFile, projectID string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		if _, err := os.Stat(credentialsFile); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrCredentialsMissing, credentialsFile)
		}
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	log.Println("level=info msg=firestore connected")
	return client, nil
}

// NewMongo connects and pings MongoDB.
func NewMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, errors.New("MONGO_URI is empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	log.Println("level=info msg=mongo connected")
	return client, nil
}

// NewRedis returns nil when addr is empty or the server does not answer;
// callers run without rate limiting in that case.
func NewRedis(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("level=warn msg=redis unavailable, rate limiting disabled addr=%s err=%v", addr, err)
		_ = client.Close()
		return nil
	}
	log.Printf("level=info msg=redis connected addr=%s", addr)
	return client
}
