package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/gildedrose/internal/domain/models"
)

const (
	stockCollection   = "stock"
	reportsCollection = "daily_reports"
	stockDocumentID   = "inn"
)

// Repository defines the interface for stock and report storage.
type Repository interface {
	LoadStock(ctx context.Context) (models.Stock, error)
	SaveStock(ctx context.Context, stock models.Stock) error
	SaveDailyReport(ctx context.Context, report models.StockReport) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

type stockDocument struct {
	ID        string         `bson:"_id"`
	Day       int            `bson:"day"`
	Items     []itemDocument `bson:"items"`
	UpdatedAt time.Time      `bson:"updated_at"`
}

type itemDocument struct {
	Name    string `bson:"name"`
	SellIn  int    `bson:"sell_in"`
	Quality int    `bson:"quality"`
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// LoadStock reads the stock document. A missing document is an empty stock.
func (r *MongoDBRepository) LoadStock(ctx context.Context) (models.Stock, error) {
	var doc stockDocument
	err := r.collection(stockCollection).FindOne(ctx, bson.M{"_id": stockDocumentID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Stock{}, nil
	}
	if err != nil {
		return models.Stock{}, fmt.Errorf("failed to find stock: %w", err)
	}

	return doc.toStock()
}

// SaveStock replaces the stock document, creating it on first save.
func (r *MongoDBRepository) SaveStock(ctx context.Context, stock models.Stock) error {
	doc := newStockDocument(stock, time.Now().UTC())

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection(stockCollection).ReplaceOne(ctx, bson.M{"_id": stockDocumentID}, doc, opts); err != nil {
		return fmt.Errorf("failed to replace stock: %w", err)
	}
	return nil
}

// SaveDailyReport saves a nightly report to the database.
func (r *MongoDBRepository) SaveDailyReport(ctx context.Context, report models.StockReport) error {
	_, err := r.collection(reportsCollection).InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to insert daily report: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

func newStockDocument(stock models.Stock, updatedAt time.Time) stockDocument {
	doc := stockDocument{
		ID:        stockDocumentID,
		Day:       stock.Day,
		Items:     make([]itemDocument, 0, len(stock.Items)),
		UpdatedAt: updatedAt,
	}
	for _, item := range stock.Items {
		doc.Items = append(doc.Items, itemDocument{Name: item.Name, SellIn: item.SellIn, Quality: item.Quality})
	}
	return doc
}

// toStock rebuilds items through models.NewItem so categories are resolved again.
func (d stockDocument) toStock() (models.Stock, error) {
	stock := models.Stock{Day: d.Day, Items: make([]*models.Item, 0, len(d.Items))}
	for _, doc := range d.Items {
		item, err := models.NewItem(doc.Name, doc.SellIn, doc.Quality)
		if err != nil {
			return models.Stock{}, fmt.Errorf("decode stored item: %w", err)
		}
		stock.Items = append(stock.Items, item)
	}
	return stock, nil
}
