package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/chapa"

	"github.com/shopspring/decimal"
)

// store is an in-memory stand-in for the four tables.
type store struct {
	mu       sync.Mutex
	nextID   int64
	listings map[int64]*entity.Listing
	bookings map[int64]*entity.Booking
	reviews  map[int64]*entity.Review
	payments map[int64]*entity.Payment

	createPaymentErr error
	transitions      int
}

func newStore() *store {
	return &store{
		listings: make(map[int64]*entity.Listing),
		bookings: make(map[int64]*entity.Booking),
		reviews:  make(map[int64]*entity.Review),
		payments: make(map[int64]*entity.Payment),
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *store) repository() *repository.Repository {
	return &repository.Repository{
		Listing: &fakeListingRepo{s},
		Booking: &fakeBookingRepo{s},
		Review:  &fakeReviewRepo{s},
		Payment: &fakePaymentRepo{s},
	}
}

func (s *store) addListing(price string) *entity.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := &entity.Listing{Title: "Cabin", Description: "Lake view", Location: "Bishoftu", PricePerNight: decimal.RequireFromString(price)}
	l.ID = s.id()
	s.listings[l.ID] = l
	return l
}

func (s *store) addBooking(listingID int64, start, end string) *entity.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := &entity.Booking{ListingID: listingID, UserName: "abebe", StartDate: mustDate(start), EndDate: mustDate(end)}
	b.ID = s.id()
	s.bookings[b.ID] = b
	return b
}

func (s *store) addPayment(bookingID int64, amount string, status entity.PaymentStatus, txRef string) *entity.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &entity.Payment{BookingID: bookingID, Amount: decimal.RequireFromString(amount), Status: status, TransactionID: &txRef}
	p.ID = s.id()
	s.payments[p.ID] = p
	return p
}

func (s *store) paymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payments)
}

func (s *store) paymentByRef(txRef string) *entity.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.TransactionID != nil && *p.TransactionID == txRef {
			cp := *p
			return &cp
		}
	}
	return nil
}

func (s *store) setStatus(txRef string, status entity.PaymentStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.TransactionID != nil && *p.TransactionID == txRef {
			p.Status = status
		}
	}
}

func mustDate(v string) time.Time {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeListingRepo struct{ s *store }

func (r *fakeListingRepo) Create(ctx context.Context, l *entity.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = r.s.id()
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	cp := *l
	r.s.listings[l.ID] = &cp
	return nil
}

func (r *fakeListingRepo) FindByID(ctx context.Context, id int64) (*entity.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.listings[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeListingRepo) FindAll(ctx context.Context, limit, offset int, location *string) ([]*entity.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Listing
	for _, l := range r.s.listings {
		if location == nil || l.Location == *location {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (r *fakeListingRepo) CountAll(ctx context.Context, location *string) (int64, error) {
	all, _ := r.FindAll(ctx, 1<<30, 0, location)
	return int64(len(all)), nil
}

func (r *fakeListingRepo) Update(ctx context.Context, l *entity.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.listings[l.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *l
	r.s.listings[l.ID] = &cp
	return nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.listings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.listings, id)
	for bid, b := range r.s.bookings {
		if b.ListingID == id {
			delete(r.s.bookings, bid)
		}
	}
	for rid, rv := range r.s.reviews {
		if rv.ListingID == id {
			delete(r.s.reviews, rid)
		}
	}
	return nil
}

type fakeBookingRepo struct{ s *store }

func (r *fakeBookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = r.s.id()
	cp := *b
	r.s.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) FindWithPrice(ctx context.Context, id int64) (*entity.BookingWithPrice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	l := r.s.listings[b.ListingID]
	return &entity.BookingWithPrice{Booking: *b, PricePerNight: l.PricePerNight}, nil
}

func (r *fakeBookingRepo) FindAll(ctx context.Context, limit, offset int, listingID *int64) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if listingID == nil || b.ListingID == *listingID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (r *fakeBookingRepo) CountAll(ctx context.Context, listingID *int64) (int64, error) {
	all, _ := r.FindAll(ctx, 1<<30, 0, listingID)
	return int64(len(all)), nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, b *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[b.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *b
	r.s.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.bookings, id)
	return nil
}

type fakeReviewRepo struct{ s *store }

func (r *fakeReviewRepo) Create(ctx context.Context, rv *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv.ID = r.s.id()
	cp := *rv
	r.s.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) FindByID(ctx context.Context, id int64) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, nil
	}
	cp := *rv
	return &cp, nil
}

func (r *fakeReviewRepo) FindAll(ctx context.Context, limit, offset int, listingID *int64) ([]*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Review
	for _, rv := range r.s.reviews {
		if listingID == nil || rv.ListingID == *listingID {
			cp := *rv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (r *fakeReviewRepo) CountAll(ctx context.Context, listingID *int64) (int64, error) {
	all, _ := r.FindAll(ctx, 1<<30, 0, listingID)
	return int64(len(all)), nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, rv *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[rv.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *rv
	r.s.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

type fakePaymentRepo struct{ s *store }

func (r *fakePaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createPaymentErr != nil {
		return r.s.createPaymentErr
	}
	for _, existing := range r.s.payments {
		if existing.TransactionID != nil && p.TransactionID != nil && *existing.TransactionID == *p.TransactionID {
			return repository.ErrDuplicateTransactionID
		}
	}
	p.ID = r.s.id()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.s.payments[p.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) FindByID(ctx context.Context, id int64) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) FindByTransactionID(ctx context.Context, txRef string) (*entity.Payment, error) {
	return r.s.paymentByRef(txRef), nil
}

func (r *fakePaymentRepo) FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.BookingID == bookingID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakePaymentRepo) TransitionStatus(ctx context.Context, txRef string, from, to entity.PaymentStatus) (*entity.Payment, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.TransactionID != nil && *p.TransactionID == txRef && p.Status == from {
			p.Status = to
			p.UpdatedAt = time.Now()
			r.s.transitions++
			cp := *p
			return &cp, true, nil
		}
	}
	return nil, false, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

type fakeGateway struct {
	mu          sync.Mutex
	initReqs    []chapa.InitializeRequest
	verifyCalls int

	initResult   *chapa.InitializeResult
	initErr      error
	verifyResult *chapa.VerifyResult
	verifyErr    error
	onVerify     func()
}

func (g *fakeGateway) Initialize(ctx context.Context, req chapa.InitializeRequest) (*chapa.InitializeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.initReqs = append(g.initReqs, req)
	if g.initErr != nil {
		return nil, g.initErr
	}
	return g.initResult, nil
}

func (g *fakeGateway) Verify(ctx context.Context, txRef string) (*chapa.VerifyResult, error) {
	g.mu.Lock()
	g.verifyCalls++
	hook := g.onVerify
	g.mu.Unlock()
	if hook != nil {
		hook()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.verifyResult, nil
}

func (g *fakeGateway) calls() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.initReqs), g.verifyCalls
}

type fakePublisher struct {
	mu     sync.Mutex
	events []any
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, key string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, value)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}
