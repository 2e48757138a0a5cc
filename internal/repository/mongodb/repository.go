package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
	"github.com/mamadbah2/cropbudget/internal/repository"
)

const collectionName = "farm_data"

// SeasonRepository stores one document per owner and year in MongoDB.
type SeasonRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

var _ repository.SeasonRepository = (*SeasonRepository)(nil)

// NewSeasonRepository connects, verifies the connection and ensures the
// unique (user_id, year) index.
func NewSeasonRepository(ctx context.Context, uri string, dbName string) (*SeasonRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	r := &SeasonRepository{
		client:   client,
		dbName:   dbName,
		collName: collectionName,
	}

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "year", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_year_unique"),
	}
	if _, err := r.collection().Indexes().CreateOne(ctx, index); err != nil {
		return nil, fmt.Errorf("failed to ensure season index: %w", err)
	}

	return r, nil
}

func (r *SeasonRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// Upsert replaces the stored document for the record's owner and year.
func (r *SeasonRepository) Upsert(ctx context.Context, record repository.SeasonRecord) error {
	filter := bson.M{"user_id": record.Owner, "year": record.Year}
	update := bson.M{"$set": bson.M{
		"data":       record.Data,
		"updated_at": record.UpdatedAt,
	}}

	_, err := r.collection().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert season %d: %w", record.Year, err)
	}
	return nil
}

// FetchYears lists the owner's stored years, newest first.
func (r *SeasonRepository) FetchYears(ctx context.Context, owner string) ([]int, error) {
	raw, err := r.collection().Distinct(ctx, "year", bson.M{"user_id": owner})
	if err != nil {
		return nil, fmt.Errorf("failed to list season years: %w", err)
	}

	years := make([]int, 0, len(raw))
	for _, v := range raw {
		switch y := v.(type) {
		case int32:
			years = append(years, int(y))
		case int64:
			years = append(years, int(y))
		case float64:
			years = append(years, int(y))
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

// FetchDocument loads the owner's document for a year.
func (r *SeasonRepository) FetchDocument(ctx context.Context, owner string, year int) (*models.SeasonDocument, error) {
	var record repository.SeasonRecord
	err := r.collection().FindOne(ctx, bson.M{"user_id": owner, "year": year}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch season %d: %w", year, err)
	}
	if record.Data == nil {
		return nil, repository.ErrNotFound
	}
	return record.Data, nil
}

// Close closes the MongoDB connection.
func (r *SeasonRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
