package server_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jotickets/jotickets/internal/models"
	"github.com/jotickets/jotickets/internal/repository"
	"github.com/jotickets/jotickets/internal/server"
)

// memoryStore backs the repository interfaces for router tests. Event
// deletion cascades to tickets the way the database constraints do.
type memoryStore struct {
	mu          sync.Mutex
	stadiums    []models.Stadium
	teams       []models.Team
	events      map[uint]*models.Event
	users       map[uuid.UUID]*models.User
	tickets     map[uuid.UUID]*models.Ticket
	ticketOrder []uuid.UUID
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		events:  make(map[uint]*models.Event),
		users:   make(map[uuid.UUID]*models.User),
		tickets: make(map[uuid.UUID]*models.Ticket),
	}
}

func (s *memoryStore) stadiumByID(id uint) models.Stadium {
	for _, stadium := range s.stadiums {
		if stadium.ID == id {
			return stadium
		}
	}
	return models.Stadium{}
}

func (s *memoryStore) teamByID(id uint) models.Team {
	for _, team := range s.teams {
		if team.ID == id {
			return team
		}
	}
	return models.Team{}
}

func (s *memoryStore) loadEvent(event *models.Event) models.Event {
	loaded := *event
	loaded.Stadium = s.stadiumByID(event.StadiumID)
	loaded.TeamHome = s.teamByID(event.TeamHomeID)
	loaded.TeamAway = s.teamByID(event.TeamAwayID)
	return loaded
}

type memStadiums struct{ s *memoryStore }

func (r memStadiums) List(ctx context.Context) ([]models.Stadium, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]models.Stadium(nil), r.s.stadiums...), nil
}

type memTeams struct{ s *memoryStore }

func (r memTeams) List(ctx context.Context) ([]models.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]models.Team(nil), r.s.teams...), nil
}

type memEvents struct{ s *memoryStore }

func (r memEvents) List(ctx context.Context) ([]models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	events := make([]models.Event, 0, len(r.s.events))
	for _, event := range r.s.events {
		events = append(events, r.s.loadEvent(event))
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	return events, nil
}

func (r memEvents) Get(ctx context.Context, id uint) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	event, ok := r.s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	loaded := r.s.loadEvent(event)
	return &loaded, nil
}

func (r memEvents) Create(ctx context.Context, event *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if event.ID == 0 {
		for id := range r.s.events {
			if id >= event.ID {
				event.ID = id + 1
			}
		}
		if event.ID == 0 {
			event.ID = 1
		}
	}
	stored := *event
	r.s.events[event.ID] = &stored
	return nil
}

func (r memEvents) Update(ctx context.Context, event *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[event.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *event
	r.s.events[event.ID] = &stored
	return nil
}

func (r memEvents) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.events, id)
	for ticketID, ticket := range r.s.tickets {
		if ticket.EventID == id {
			delete(r.s.tickets, ticketID)
		}
	}
	return nil
}

type memUsers struct{ s *memoryStore }

func (r memUsers) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	r.s.users[user.ID] = &stored
	return nil
}

func (r memUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r memUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memTickets struct{ s *memoryStore }

func (r memTickets) Create(ctx context.Context, ticket *models.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	stored := *ticket
	r.s.tickets[ticket.ID] = &stored
	r.s.ticketOrder = append(r.s.ticketOrder, ticket.ID)
	return nil
}

func (r memTickets) Get(ctx context.Context, id uuid.UUID) (*models.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ticket, ok := r.s.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *ticket
	if event, ok := r.s.events[ticket.EventID]; ok {
		copied.Event = r.s.loadEvent(event)
	}
	return &copied, nil
}

func (r memTickets) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var tickets []models.Ticket
	for i := len(r.s.ticketOrder) - 1; i >= 0; i-- {
		ticket, ok := r.s.tickets[r.s.ticketOrder[i]]
		if !ok || ticket.UserID != userID {
			continue
		}
		copied := *ticket
		if event, ok := r.s.events[ticket.EventID]; ok {
			copied.Event = r.s.loadEvent(event)
		}
		tickets = append(tickets, copied)
	}
	return tickets, nil
}

func (r memTickets) MarkUsed(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ticket, ok := r.s.tickets[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	if ticket.IsUsed {
		return false, nil
	}
	ticket.IsUsed = true
	return true, nil
}

var _ repository.StadiumRepository = memStadiums{}
var _ repository.TeamRepository = memTeams{}
var _ repository.EventRepository = memEvents{}
var _ repository.UserRepository = memUsers{}
var _ repository.TicketRepository = memTickets{}

const testSecret = "test-secret"
const testDeviceKey = "gate-device-key"

// seedStore fills the catalog with one upcoming match and a staff account
// (admin / staffpw).
func seedStore(store *memoryStore) {
	store.stadiums = []models.Stadium{
		{ID: 1, Name: "Amman International Stadium", Location: "Amman"},
		{ID: 2, Name: "King Abdullah II Stadium", Location: "Amman"},
	}
	store.teams = []models.Team{
		{ID: 1, Name: "Al-Faisaly", Code: "FSL", Nickname: "The Blues"},
		{ID: 2, Name: "Al-Wehdat", Code: "WHD", Nickname: "The Greens"},
		{ID: 3, Name: "Al-Ramtha", Code: "RMT", Nickname: "The Cyclone"},
	}
	store.events[1] = &models.Event{
		ID:         1,
		Start:      time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second),
		StadiumID:  1,
		TeamHomeID: 1,
		TeamAwayID: 2,
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("staffpw"), bcrypt.MinCost)
	staff := &models.User{ID: uuid.New(), Username: "admin", Password: string(hash), Role: models.RoleStaff}
	store.users[staff.ID] = staff
}

func newTestDeps() (server.Dependencies, *memoryStore) {
	store := newMemoryStore()
	seedStore(store)
	deps := server.Dependencies{
		Users:            memUsers{s: store},
		Stadiums:         memStadiums{s: store},
		Teams:            memTeams{s: store},
		Events:           memEvents{s: store},
		Tickets:          memTickets{s: store},
		JWTSecret:        testSecret,
		ScannerDeviceKey: testDeviceKey,
	}
	return deps, store
}
