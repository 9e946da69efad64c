package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/feed"
	"github.com/spec-kit/helpdesk-service/internal/mail"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// fakeTicketRepo keeps tickets and votes in maps. ToggleVote holds the mutex
// for the whole read-modify-write, mirroring the row locks the real store
// takes inside its transaction.
type fakeTicketRepo struct {
	mu      sync.Mutex
	seq     int
	tickets map[string]*domain.Ticket
	votes   map[string]domain.VoteKind
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets: make(map[string]*domain.Ticket),
		votes:   make(map[string]domain.VoteKind),
	}
}

func voteKey(ticketID, voterID string) string {
	return ticketID + "/" + voterID
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	ticket.ID = fmt.Sprintf("ticket-%d", f.seq)
	copied := *ticket
	f.tickets[ticket.ID] = &copied
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Ticket
	for _, ticket := range f.tickets {
		if filter.CreatorID != nil && ticket.CreatorID != *filter.CreatorID {
			continue
		}
		if filter.CategoryID != nil && ticket.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.SearchTerm != nil && !strings.Contains(strings.ToLower(ticket.Title), strings.ToLower(*filter.SearchTerm)) {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, status := range filter.Statuses {
				if ticket.Status == status {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *ticket)
	}
	return out, nil
}

func (f *fakeTicketRepo) SetAssignee(_ context.Context, ticketID, assigneeID, assigneeName string, status domain.TicketStatus) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	ticket.AssigneeID = &assigneeID
	ticket.AssigneeName = &assigneeName
	ticket.Status = status
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) SetStatus(_ context.Context, ticketID string, status domain.TicketStatus) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	ticket.Status = status
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) ToggleVote(_ context.Context, ticketID, voterID string, kind domain.VoteKind) (*repository.VoteToggleResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return nil, pgx.ErrNoRows
	}

	current := domain.VoteStateNone
	if existing, ok := f.votes[voteKey(ticketID, voterID)]; ok {
		current = domain.VoteState(existing)
	}

	transition := domain.ApplyVote(current, kind)
	switch transition.Op {
	case domain.VoteOpCreate, domain.VoteOpUpdate:
		f.votes[voteKey(ticketID, voterID)] = kind
	case domain.VoteOpDelete:
		delete(f.votes, voteKey(ticketID, voterID))
	}

	ticket.Upvotes += transition.UpDelta
	if ticket.Upvotes < 0 {
		ticket.Upvotes = 0
	}
	ticket.Downvotes += transition.DownDelta
	if ticket.Downvotes < 0 {
		ticket.Downvotes = 0
	}

	return &repository.VoteToggleResult{
		State:     transition.NewState,
		Upvotes:   ticket.Upvotes,
		Downvotes: ticket.Downvotes,
	}, nil
}

func (f *fakeTicketRepo) GetVote(_ context.Context, ticketID, voterID string) (domain.VoteState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if kind, ok := f.votes[voteKey(ticketID, voterID)]; ok {
		return domain.VoteState(kind), nil
	}
	return domain.VoteStateNone, nil
}

type fakeReplyRepo struct {
	mu      sync.Mutex
	seq     int
	replies []domain.Reply
	tickets *fakeTicketRepo
}

func newFakeReplyRepo(tickets *fakeTicketRepo) *fakeReplyRepo {
	return &fakeReplyRepo{tickets: tickets}
}

func (f *fakeReplyRepo) Create(_ context.Context, reply *domain.Reply) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	reply.ID = fmt.Sprintf("reply-%d", f.seq)
	f.replies = append(f.replies, *reply)
	if f.tickets != nil {
		f.tickets.mu.Lock()
		if ticket, ok := f.tickets.tickets[reply.TicketID]; ok {
			ticket.ReplyCount++
		}
		f.tickets.mu.Unlock()
	}
	return nil
}

func (f *fakeReplyRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Reply
	for _, reply := range f.replies {
		if reply.TicketID == ticketID {
			out = append(out, reply)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	seq        int
	categories map[string]*domain.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*domain.Category)}
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if category.ID == "" {
		category.ID = fmt.Sprintf("category-%d", f.seq)
	}
	copied := *category
	f.categories[category.ID] = &copied
	return nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *category
	f.categories[category.ID] = &copied
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	category, ok := f.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *category
	return &copied, nil
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Category
	for _, category := range f.categories {
		out = append(out, *category)
	}
	return out, nil
}

func (f *fakeCategoryRepo) IncrementTicketCount(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if category, ok := f.categories[id]; ok {
		category.TicketCount++
	}
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
}

func newFakeProfileRepo(profiles ...*domain.Profile) *fakeProfileRepo {
	repo := &fakeProfileRepo{profiles: make(map[string]*domain.Profile)}
	for _, profile := range profiles {
		copied := *profile
		repo.profiles[profile.ID] = &copied
	}
	return repo
}

func (f *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if profile.ID == "" {
		profile.ID = fmt.Sprintf("profile-%d", len(f.profiles)+1)
	}
	copied := *profile
	f.profiles[profile.ID] = &copied
	return nil
}

func (f *fakeProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[profile.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *profile
	f.profiles[profile.ID] = &copied
	return nil
}

func (f *fakeProfileRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[id]
	if !ok {
		return pgx.ErrNoRows
	}
	profile.Role = role
	return nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeProfileRepo) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, profile := range f.profiles {
		if profile.Email == email {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeProfileRepo) ListByRoles(_ context.Context, roles ...domain.Role) ([]domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Profile
	for _, profile := range f.profiles {
		for _, role := range roles {
			if profile.Role == role {
				out = append(out, *profile)
				break
			}
		}
	}
	return out, nil
}

type fakeRoleRequestRepo struct {
	mu       sync.Mutex
	seq      int
	requests map[string]*domain.RoleUpgradeRequest
}

func newFakeRoleRequestRepo() *fakeRoleRequestRepo {
	return &fakeRoleRequestRepo{requests: make(map[string]*domain.RoleUpgradeRequest)}
}

func (f *fakeRoleRequestRepo) Create(_ context.Context, req *domain.RoleUpgradeRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	req.ID = fmt.Sprintf("request-%d", f.seq)
	copied := *req
	f.requests[req.ID] = &copied
	return nil
}

func (f *fakeRoleRequestRepo) GetByID(_ context.Context, id string) (*domain.RoleUpgradeRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *req
	return &copied, nil
}

func (f *fakeRoleRequestRepo) ListByStatus(_ context.Context, status domain.RoleRequestStatus, _ int, _ int) ([]domain.RoleUpgradeRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.RoleUpgradeRequest
	for _, req := range f.requests {
		if req.Status == status {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeRoleRequestRepo) Resolve(_ context.Context, id string, status domain.RoleRequestStatus, resolvedByID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok || req.Status != domain.RoleRequestPending {
		return pgx.ErrNoRows
	}
	req.Status = status
	req.ResolvedByID = &resolvedByID
	return nil
}

type fakeNotificationRepo struct {
	mu         sync.Mutex
	seq        int
	items      []domain.Notification
	failCreate error
}

func (f *fakeNotificationRepo) Create(_ context.Context, notification *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return f.failCreate
	}
	f.seq++
	notification.ID = fmt.Sprintf("notification-%d", f.seq)
	f.items = append(f.items, *notification)
	return nil
}

func (f *fakeNotificationRepo) ListByRecipient(_ context.Context, recipientID string, _ int, _ int) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Notification
	for _, item := range f.items {
		if item.RecipientID == recipientID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, recipientID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, item := range f.items {
		if item.RecipientID == recipientID && !item.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, recipientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].RecipientID == recipientID {
			f.items[i].Read = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, recipientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].RecipientID == recipientID {
			f.items[i].Read = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) byRecipient(recipientID string) []domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Notification
	for _, item := range f.items {
		if item.RecipientID == recipientID {
			out = append(out, item)
		}
	}
	return out
}

// recordingDispatcher captures published events without invoking handlers.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}

type recordingMailer struct {
	mu       sync.Mutex
	messages []mail.Message
	fail     error
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *recordingMailer) sent() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Message{}, m.messages...)
}

type recordingFeed struct {
	mu      sync.Mutex
	entries []domain.Notification
	fail    error
}

func (f *recordingFeed) Publish(_ context.Context, notification domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.entries = append(f.entries, notification)
	return nil
}

var _ feed.Publisher = (*recordingFeed)(nil)
var _ mail.Sender = (*recordingMailer)(nil)
var _ events.Dispatcher = (*recordingDispatcher)(nil)
var _ repository.TicketRepository = (*fakeTicketRepo)(nil)
var _ repository.ReplyRepository = (*fakeReplyRepo)(nil)
var _ repository.CategoryRepository = (*fakeCategoryRepo)(nil)
var _ repository.ProfileRepository = (*fakeProfileRepo)(nil)
var _ repository.RoleRequestRepository = (*fakeRoleRequestRepo)(nil)
var _ repository.NotificationRepository = (*fakeNotificationRepo)(nil)
