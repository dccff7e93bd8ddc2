package db

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ravi-codingcity/FreightPro-B/pkg/config"
	"github.com/ravi-codingcity/FreightPro-B/pkg/log"
	"github.com/ravi-codingcity/FreightPro-B/pkg/models"
)

type shippingLineDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	LineName  string             `bson:"lineName"`
	IsActive  bool               `bson:"isActive"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type destinationDocument struct {
	ID              primitive.ObjectID     `bson:"_id"`
	DestinationName string                 `bson:"destinationName"`
	ShippingLines   []shippingLineDocument `bson:"shippingLines"`
	IsActive        bool                   `bson:"isActive"`
	CreatedAt       time.Time              `bson:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt"`
}

// MongoStore keeps each destination as one document with its shipping lines embedded,
// so every mutation is a single atomic update operator on that document.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *log.Logger
}

// NewMongoStore connects, pings and ensures the collection indexes
func NewMongoStore(ctx context.Context, cfg *config.DatabaseConfig, logger *log.Logger) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI)
	if cfg.MaxOpenConns > 0 {
		clientOptions.SetMaxPoolSize(uint64(cfg.MaxOpenConns))
	}

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	store := &MongoStore{
		client:     client,
		collection: client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection),
		logger:     logger,
	}

	if err := store.ensureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return store, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "destinationName", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_destination_name"),
		},
		{
			Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "destinationName", Value: 1}},
			Options: options.Index().SetName("idx_active_name"),
		},
	})
	return err
}

func (s *MongoStore) Driver() string {
	return config.DriverMongoDB
}

func (s *MongoStore) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Drop removes the collection and its indexes
func (s *MongoStore) Drop(ctx context.Context) error {
	return s.collection.Drop(ctx)
}

func (s *MongoStore) ListActive(ctx context.Context, filter DestinationFilter) (_ []models.Destination, err error) {
	defer s.observe("list_active", time.Now(), &err)

	query := bson.M{"isActive": true}
	if q := strings.TrimSpace(filter.ShippingLine); q != "" {
		query["shippingLines"] = bson.M{"$elemMatch": bson.M{
			"isActive": true,
			"lineName": primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"},
		}}
	}

	cursor, err := s.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "destinationName", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []destinationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	destinations := make([]models.Destination, 0, len(docs))
	for i := range docs {
		destinations = append(destinations, docs[i].toModel())
	}
	return destinations, nil
}

func (s *MongoStore) GetDestination(ctx context.Context, id string) (_ *models.Destination, err error) {
	defer s.observe("get", time.Now(), &err)

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc destinationDocument
	if err := s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translateMongoError(err)
	}
	destination := doc.toModel()
	return &destination, nil
}

func (s *MongoStore) CreateDestination(ctx context.Context, destination *models.Destination) (err error) {
	defer s.observe("create", time.Now(), &err)

	if destination.ID == "" {
		destination.ID = models.NewID()
	}
	if destination.ShippingLines == nil {
		destination.ShippingLines = models.ShippingLines{}
	}

	doc, err := newDestinationDocument(destination)
	if err != nil {
		return err
	}

	_, err = s.collection.InsertOne(ctx, doc)
	return translateMongoError(err)
}

func (s *MongoStore) UpdateDestination(ctx context.Context, id string, update DestinationUpdate) (_ *models.Destination, err error) {
	defer s.observe("update", time.Now(), &err)

	if update.IsEmpty() {
		return s.GetDestination(ctx, id)
	}

	set := bson.M{"updatedAt": now()}
	if update.DestinationName != nil {
		set["destinationName"] = *update.DestinationName
	}
	if update.ShippingLines != nil {
		lines, err := newShippingLineDocuments(*update.ShippingLines)
		if err != nil {
			return nil, err
		}
		set["shippingLines"] = lines
	}

	return s.findOneAndUpdate(ctx, id, nil, bson.M{"$set": set})
}

func (s *MongoStore) DeactivateDestination(ctx context.Context, id string) (err error) {
	defer s.observe("deactivate", time.Now(), &err)

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) PushShippingLines(ctx context.Context, id string, lines []models.ShippingLine) (_ *models.Destination, err error) {
	defer s.observe("push_shipping_lines", time.Now(), &err)

	docs, err := newShippingLineDocuments(lines)
	if err != nil {
		return nil, err
	}

	return s.findOneAndUpdate(ctx, id, nil, bson.M{
		"$push": bson.M{"shippingLines": bson.M{"$each": docs}},
		"$set":  bson.M{"updatedAt": now()},
	})
}

func (s *MongoStore) SetShippingLine(ctx context.Context, id string, line models.ShippingLine) (_ *models.Destination, err error) {
	defer s.observe("set_shipping_line", time.Now(), &err)

	doc, err := newShippingLineDocument(line)
	if err != nil {
		return nil, ErrShippingLineNotFound
	}

	destination, err := s.findOneAndUpdate(ctx, id,
		bson.M{"shippingLines._id": doc.ID},
		bson.M{"$set": bson.M{"shippingLines.$": doc, "updatedAt": now()}},
	)
	if errors.Is(err, ErrNotFound) {
		// tell a missing line apart from a missing destination
		if _, getErr := s.GetDestination(ctx, id); getErr == nil {
			return nil, ErrShippingLineNotFound
		}
	}
	return destination, err
}

func (s *MongoStore) PullShippingLine(ctx context.Context, id string, lineID string) (_ *models.Destination, err error) {
	defer s.observe("pull_shipping_line", time.Now(), &err)

	lineOID, err := primitive.ObjectIDFromHex(lineID)
	if err != nil {
		return s.GetDestination(ctx, id)
	}

	return s.findOneAndUpdate(ctx, id, nil, bson.M{
		"$pull": bson.M{"shippingLines": bson.M{"_id": lineOID}},
		"$set":  bson.M{"updatedAt": now()},
	})
}

// findOneAndUpdate applies update to the destination with id, narrowed by extra, and returns the result
func (s *MongoStore) findOneAndUpdate(ctx context.Context, id string, extra bson.M, update bson.M) (*models.Destination, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	filter := bson.M{"_id": oid}
	for k, v := range extra {
		filter[k] = v
	}

	var doc destinationDocument
	err = s.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, translateMongoError(err)
	}

	destination := doc.toModel()
	return &destination, nil
}

func (s *MongoStore) observe(operation string, start time.Time, errp *error) {
	if s.logger == nil {
		return
	}
	err := *errp
	if isExpectedError(err) {
		err = nil
	}
	s.logger.LogDatabase(config.DriverMongoDB, operation, s.collection.Name(), time.Since(start).Milliseconds(), err)
}

func translateMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicateName
	default:
		return err
	}
}

func newDestinationDocument(destination *models.Destination) (*destinationDocument, error) {
	oid, err := primitive.ObjectIDFromHex(destination.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid destination id %q: %w", destination.ID, err)
	}

	lines, err := newShippingLineDocuments(destination.ShippingLines)
	if err != nil {
		return nil, err
	}

	return &destinationDocument{
		ID:              oid,
		DestinationName: destination.DestinationName,
		ShippingLines:   lines,
		IsActive:        destination.IsActive,
		CreatedAt:       destination.CreatedAt,
		UpdatedAt:       destination.UpdatedAt,
	}, nil
}

func newShippingLineDocuments(lines []models.ShippingLine) ([]shippingLineDocument, error) {
	docs := make([]shippingLineDocument, 0, len(lines))
	for _, line := range lines {
		doc, err := newShippingLineDocument(line)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func newShippingLineDocument(line models.ShippingLine) (shippingLineDocument, error) {
	oid, err := primitive.ObjectIDFromHex(line.ID)
	if err != nil {
		return shippingLineDocument{}, fmt.Errorf("invalid shipping line id %q: %w", line.ID, err)
	}
	return shippingLineDocument{
		ID:        oid,
		LineName:  line.LineName,
		IsActive:  line.IsActive,
		CreatedAt: line.CreatedAt,
		UpdatedAt: line.UpdatedAt,
	}, nil
}

func (d *destinationDocument) toModel() models.Destination {
	lines := make(models.ShippingLines, 0, len(d.ShippingLines))
	for _, line := range d.ShippingLines {
		lines = append(lines, models.ShippingLine{
			ID:        line.ID.Hex(),
			LineName:  line.LineName,
			IsActive:  line.IsActive,
			CreatedAt: line.CreatedAt.UTC(),
			UpdatedAt: line.UpdatedAt.UTC(),
		})
	}

	return models.Destination{
		ID:              d.ID.Hex(),
		DestinationName: d.DestinationName,
		ShippingLines:   lines,
		IsActive:        d.IsActive,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
}
