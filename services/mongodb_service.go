package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sharecalc/config"
	"sharecalc/models"
)

type MongoDBService struct {
	client  *mongo.Client
	db      *mongo.Database
	enabled bool
}

const CollectionScenarios = "scenarios"

// ScenarioModeStats summarizes saved scenarios per view mode
type ScenarioModeStats struct {
	ViewMode          string  `json:"viewMode" bson:"_id"`
	Count             int     `json:"count" bson:"count"`
	AvgTotalUsers     float64 `json:"avgTotalUsers" bson:"avg_total_users"`
	AvgOneTimeBonus   float64 `json:"avgOneTimeBonus" bson:"avg_one_time_bonus"`
	AvgRecurringYear1 float64 `json:"avgRecurringYear1" bson:"avg_recurring_year1"`
	MaxRecurringYear3 float64 `json:"maxRecurringYear3" bson:"max_recurring_year3"`
}

func NewMongoDBService(cfg *config.Config) (*MongoDBService, error) {
	if !cfg.MongoDB.Enabled {
		log.Println("MongoDB is disabled in configuration")
		return &MongoDBService{enabled: false}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	service := &MongoDBService{
		client:  client,
		db:      client.Database(cfg.MongoDB.Database),
		enabled: true,
	}

	if err := service.createIndexes(ctx); err != nil {
		log.Printf("Warning: Failed to create indexes: %v", err)
	}

	log.Printf("MongoDB connected successfully to database: %s", cfg.MongoDB.Database)
	return service, nil
}

// Enabled is safe on a nil receiver
func (m *MongoDBService) Enabled() bool {
	return m != nil && m.enabled
}

func (m *MongoDBService) createIndexes(ctx context.Context) error {
	if !m.enabled {
		return nil
	}

	_, err := m.db.Collection(CollectionScenarios).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
		{
			Keys:    bson.D{{Key: "input.view_mode", Value: 1}},
			Options: options.Index().SetName("view_mode"),
		},
	})
	return err
}

func (m *MongoDBService) Close() error {
	if !m.Enabled() || m.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// ============================================
// SCENARIO PERSISTENCE
// ============================================

func (m *MongoDBService) UpsertScenario(ctx context.Context, s *models.Scenario) error {
	if !m.Enabled() {
		return nil
	}
	opts := options.Replace().SetUpsert(true)
	_, err := m.db.Collection(CollectionScenarios).ReplaceOne(ctx, bson.M{"_id": s.ID}, s, opts)
	return err
}

func (m *MongoDBService) DeleteScenario(ctx context.Context, id string) error {
	if !m.Enabled() {
		return nil
	}
	_, err := m.db.Collection(CollectionScenarios).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (m *MongoDBService) LoadScenarios(ctx context.Context) ([]*models.Scenario, error) {
	if !m.Enabled() {
		return nil, fmt.Errorf("MongoDB not enabled")
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.db.Collection(CollectionScenarios).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scenarios []*models.Scenario
	if err := cursor.All(ctx, &scenarios); err != nil {
		return nil, err
	}
	return scenarios, nil
}

// GetScenarioStats groups saved scenarios by view mode
func (m *MongoDBService) GetScenarioStats(ctx context.Context) ([]ScenarioModeStats, error) {
	if !m.Enabled() {
		return nil, fmt.Errorf("MongoDB not enabled")
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"result": bson.M{"$exists": true}}}},
		{{Key: "$group", Value: bson.M{
			"_id":                 bson.M{"$ifNull": []interface{}{"$input.view_mode", "family"}},
			"count":               bson.M{"$sum": 1},
			"avg_total_users":     bson.M{"$avg": "$result.total_users"},
			"avg_one_time_bonus":  bson.M{"$avg": "$result.total_one_time_bonus"},
			"avg_recurring_year1": bson.M{"$avg": "$result.total_recurring_year1"},
			"max_recurring_year3": bson.M{"$max": "$result.total_recurring_year3"},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := m.db.Collection(CollectionScenarios).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []ScenarioModeStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
