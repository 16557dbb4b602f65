package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"sharecalc/models"
)

var ErrScenarioNotFound = errors.New("scenario not found")

// ScenarioService keeps saved scenarios in memory and persists them to
// MongoDB when it is available
type ScenarioService struct {
	scenarios map[string]*models.Scenario
	mutex     sync.RWMutex

	calc    *CalculatorService
	mongo   *MongoDBService
	discord *DiscordBotService
}

func NewScenarioService(calc *CalculatorService, mongo *MongoDBService, discord *DiscordBotService) *ScenarioService {
	return &ScenarioService{
		scenarios: make(map[string]*models.Scenario),
		calc:      calc,
		mongo:     mongo,
		discord:   discord,
	}
}

// CreateScenario computes the scenario's projection and stores it
func (ss *ScenarioService) CreateScenario(s *models.Scenario) error {
	if err := ValidateScenario(*s); err != nil {
		return err
	}

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	ss.compute(s)

	ss.mutex.Lock()
	ss.scenarios[s.ID] = s
	ss.mutex.Unlock()

	ss.persist(s)

	if ss.discord.Enabled() {
		if err := ss.discord.ShareScenario(s); err != nil {
			log.Printf("Failed to share scenario to Discord: %v", err)
		}
	}
	return nil
}

// UpdateScenario replaces name, notes and inputs and recomputes the result
func (ss *ScenarioService) UpdateScenario(id string, updated *models.Scenario) error {
	if err := ValidateScenario(*updated); err != nil {
		return err
	}

	ss.mutex.Lock()
	existing, ok := ss.scenarios[id]
	if !ok {
		ss.mutex.Unlock()
		return ErrScenarioNotFound
	}
	updated.ID = id
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	ss.compute(updated)
	ss.scenarios[id] = updated
	ss.mutex.Unlock()

	ss.persist(updated)
	return nil
}

func (ss *ScenarioService) GetScenario(id string) (*models.Scenario, bool) {
	ss.mutex.RLock()
	defer ss.mutex.RUnlock()
	s, ok := ss.scenarios[id]
	return s, ok
}

// ListScenarios returns scenarios newest first
func (ss *ScenarioService) ListScenarios() []*models.Scenario {
	ss.mutex.RLock()
	out := make([]*models.Scenario, 0, len(ss.scenarios))
	for _, s := range ss.scenarios {
		out = append(out, s)
	}
	ss.mutex.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (ss *ScenarioService) DeleteScenario(id string) error {
	ss.mutex.Lock()
	if _, ok := ss.scenarios[id]; !ok {
		ss.mutex.Unlock()
		return ErrScenarioNotFound
	}
	delete(ss.scenarios, id)
	ss.mutex.Unlock()

	if ss.mongo.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ss.mongo.DeleteScenario(ctx, id); err != nil {
			log.Printf("Failed to delete scenario %s from MongoDB: %v", id, err)
		}
	}
	return nil
}

// LoadScenariosFromDB fills the in-memory set from MongoDB. Scenarios are
// recomputed against the active rate schedule.
func (ss *ScenarioService) LoadScenariosFromDB(ctx context.Context) error {
	if !ss.mongo.Enabled() {
		return nil
	}

	scenarios, err := ss.mongo.LoadScenarios(ctx)
	if err != nil {
		return err
	}

	ss.mutex.Lock()
	defer ss.mutex.Unlock()
	for _, s := range scenarios {
		ss.compute(s)
		ss.scenarios[s.ID] = s
	}
	log.Printf("Loaded %d scenarios from MongoDB", len(scenarios))
	return nil
}

// Stats aggregates persisted scenarios per view mode
func (ss *ScenarioService) Stats(ctx context.Context) ([]ScenarioModeStats, error) {
	return ss.mongo.GetScenarioStats(ctx)
}

// PersistenceEnabled reports whether scenarios survive a restart
func (ss *ScenarioService) PersistenceEnabled() bool {
	return ss.mongo.Enabled()
}

func (ss *ScenarioService) compute(s *models.Scenario) {
	r := ss.calc.ComputePlan(s.Input, s.Input.ViewMode)
	s.Result = &r
	s.RateVersion = ss.calc.Rates().Version
}

func (ss *ScenarioService) persist(s *models.Scenario) {
	if !ss.mongo.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ss.mongo.UpsertScenario(ctx, s); err != nil {
		log.Printf("Failed to persist scenario to MongoDB: %v", err)
	}
}
