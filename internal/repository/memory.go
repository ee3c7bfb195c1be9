package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// MemoryRepo - потокобезопасное хранилище в памяти (один процесс-писатель).
// Реализует WasteRepository и AppointmentRepository; используется при STORE_DRIVER=memory и в тестах.
type MemoryRepo struct {
	mu           sync.RWMutex
	seq          map[string]int64
	batches      map[int64]models.WasteBatch
	auctions     map[int64]models.WasteAuction
	bids         map[int64]models.WasteBid
	appointments map[int64]models.Appointment
	staff        map[int64]models.Staff
	vehicles     map[int64]models.Vehicle

	locksMu      sync.Mutex
	auctionLocks map[int64]chan struct{} // ёмкость 1, занят - значит заблокирован

	now func() time.Time
}

var (
	_ WasteRepository       = (*MemoryRepo)(nil)
	_ AppointmentRepository = (*MemoryRepo)(nil)
)

// NewMemoryRepo создает пустое хранилище
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		seq:          make(map[string]int64),
		batches:      make(map[int64]models.WasteBatch),
		auctions:     make(map[int64]models.WasteAuction),
		bids:         make(map[int64]models.WasteBid),
		appointments: make(map[int64]models.Appointment),
		staff:        make(map[int64]models.Staff),
		vehicles:     make(map[int64]models.Vehicle),
		auctionLocks: make(map[int64]chan struct{}),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// nextID вызывается под r.mu
func (r *MemoryRepo) nextID(table string) int64 {
	r.seq[table]++
	return r.seq[table]
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, apperrors.ErrNotFound)
}

func paginate[T any](items []T, page models.Page) []T {
	if page.Offset >= len(items) {
		return []T{}
	}
	items = items[page.Offset:]
	if page.Limit > 0 && page.Limit < len(items) {
		items = items[:page.Limit]
	}
	return items
}

// Партии

func (r *MemoryRepo) CreateBatch(ctx context.Context, b *models.WasteBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID("waste_batch")
	b.Version = 1
	b.CreatedAt = r.now()
	b.UpdatedAt = b.CreatedAt
	r.batches[b.ID] = *b
	return nil
}

func (r *MemoryRepo) GetBatch(ctx context.Context, id int64) (*models.WasteBatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.batches[id]
	if !ok {
		return nil, notFound("waste batch", id)
	}
	return &b, nil
}

func (r *MemoryRepo) ListBatches(ctx context.Context, filter models.BatchFilter) ([]models.WasteBatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.WasteBatch, 0, len(r.batches))
	for _, b := range r.batches {
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.CreatedBy != nil && b.CreatedBy != *filter.CreatedBy {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return paginate(out, filter.Page), nil
}

func (r *MemoryRepo) CountBatchesByStatus(ctx context.Context) (map[models.BatchStatus]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[models.BatchStatus]int)
	for _, b := range r.batches {
		counts[b.Status]++
	}
	return counts, nil
}

func (r *MemoryRepo) UpdateBatchStatus(ctx context.Context, id int64, from, to models.BatchStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.batches[id]
	if !ok {
		return false, notFound("waste batch", id)
	}
	if b.Status != from {
		return false, nil
	}
	b.Status = to
	b.Version++
	b.UpdatedAt = r.now()
	r.batches[id] = b
	return true, nil
}

// Аукционы

func (r *MemoryRepo) CreateAuction(ctx context.Context, a *models.WasteAuction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.batches[a.BatchID]; !ok {
		return apperrors.Invalid("batchId", fmt.Sprintf("waste batch %d does not exist", a.BatchID))
	}
	for _, existing := range r.auctions {
		if existing.BatchID == a.BatchID {
			return fmt.Errorf("auction for batch %d: %w", a.BatchID, apperrors.ErrDuplicate)
		}
	}

	a.ID = r.nextID("waste_auction")
	a.CreatedAt = r.now()
	a.SettledAt = nil
	a.WinningBidID = nil
	r.auctions[a.ID] = *a
	return nil
}

func (r *MemoryRepo) GetAuction(ctx context.Context, id int64) (*models.WasteAuction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[id]
	if !ok {
		return nil, notFound("waste auction", id)
	}
	return &a, nil
}

func (r *MemoryRepo) GetAuctionByBatch(ctx context.Context, batchID int64) (*models.WasteAuction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.auctions {
		if a.BatchID == batchID {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("auction for batch %d: %w", batchID, apperrors.ErrNotFound)
}

func (r *MemoryRepo) ListAuctions(ctx context.Context, filter models.AuctionFilter) ([]models.WasteAuction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.WasteAuction, 0, len(r.auctions))
	for _, a := range r.auctions {
		if filter.BatchID != nil && a.BatchID != *filter.BatchID {
			continue
		}
		if filter.CreatedBy != nil && a.CreatedBy != *filter.CreatedBy {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return paginate(out, filter.Page), nil
}

func (r *MemoryRepo) ListDueAuctions(ctx context.Context, now time.Time) ([]models.WasteAuction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.WasteAuction
	for _, a := range r.auctions {
		if a.Settled() || a.EndTime.After(now) {
			continue
		}
		if r.batches[a.BatchID].Status != models.BatchAuctionInProgress {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndTime.Before(out[j].EndTime) })
	return out, nil
}

// Ставки

func (r *MemoryRepo) GetBid(ctx context.Context, id int64) (*models.WasteBid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bids[id]
	if !ok {
		return nil, notFound("waste bid", id)
	}
	return &b, nil
}

func (r *MemoryRepo) ListBids(ctx context.Context, filter models.BidFilter) ([]models.WasteBid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.WasteBid, 0)
	for _, b := range r.bids {
		if filter.AuctionID != nil && b.AuctionID != *filter.AuctionID {
			continue
		}
		if filter.BidderID != nil && b.BidderID != *filter.BidderID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		out = append(out, b)
	}
	sortBidsNewestFirst(out)
	return paginate(out, filter.Page), nil
}

func sortBidsNewestFirst(bids []models.WasteBid) {
	sort.Slice(bids, func(i, j int) bool {
		if !bids[i].BidTime.Equal(bids[j].BidTime) {
			return bids[i].BidTime.After(bids[j].BidTime)
		}
		return bids[i].ID > bids[j].ID
	})
}

func (r *MemoryRepo) auctionLock(id int64) chan struct{} {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()

	l, ok := r.auctionLocks[id]
	if !ok {
		l = make(chan struct{}, 1)
		r.auctionLocks[id] = l
	}
	return l
}

// WithAuctionLock ждёт блокировку аукциона не дольше, чем живёт ctx
func (r *MemoryRepo) WithAuctionLock(ctx context.Context, auctionID int64, fn func(tx AuctionTx) error) error {
	lock := r.auctionLock(auctionID)
	select {
	case lock <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("lock auction %d: %w: %v", auctionID, apperrors.ErrStoreUnavailable, ctx.Err())
	}
	defer func() { <-lock }()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("lock auction %d: %w: %v", auctionID, apperrors.ErrStoreUnavailable, err)
	}

	r.mu.RLock()
	auction, ok := r.auctions[auctionID]
	if !ok {
		r.mu.RUnlock()
		return notFound("waste auction", auctionID)
	}
	tx := &memoryAuctionTx{
		repo:        r,
		auction:     auction,
		batchStatus: r.batches[auction.BatchID].Status,
		bids:        make(map[int64]models.WasteBid),
		dirty:       make(map[int64]bool),
	}
	tx.origBatchStatus = tx.batchStatus
	for id, b := range r.bids {
		if b.AuctionID == auctionID {
			tx.bids[id] = b
		}
	}
	r.mu.RUnlock()

	if err := fn(tx); err != nil {
		return err
	}
	return r.commit(tx)
}

func (r *MemoryRepo) commit(tx *memoryAuctionTx) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tx.batchChanged {
		b := r.batches[tx.auction.BatchID]
		if b.Status != tx.origBatchStatus {
			return fmt.Errorf("waste batch %d changed concurrently: %w", b.ID, apperrors.ErrInvalidTransition)
		}
		b.Status = tx.batchStatus
		b.Version++
		b.UpdatedAt = r.now()
		r.batches[b.ID] = b
	}
	for id := range tx.dirty {
		r.bids[id] = tx.bids[id]
	}
	if tx.auctionChanged {
		r.auctions[tx.auction.ID] = tx.auction
	}
	return nil
}

// memoryAuctionTx копит изменения и применяет их в commit
type memoryAuctionTx struct {
	repo            *MemoryRepo
	auction         models.WasteAuction
	batchStatus     models.BatchStatus
	origBatchStatus models.BatchStatus
	bids            map[int64]models.WasteBid
	dirty           map[int64]bool
	batchChanged    bool
	auctionChanged  bool
}

func (tx *memoryAuctionTx) Auction() models.WasteAuction {
	return tx.auction
}

func (tx *memoryAuctionTx) BatchStatus() models.BatchStatus {
	return tx.batchStatus
}

// Bids возвращает ставки в порядке подачи
func (tx *memoryAuctionTx) Bids(ctx context.Context) ([]models.WasteBid, error) {
	out := make([]models.WasteBid, 0, len(tx.bids))
	for _, b := range tx.bids {
		out = append(out, b)
	}
	sortBidsNewestFirst(out)
	slices.Reverse(out)
	return out, nil
}

func (tx *memoryAuctionTx) InsertBid(ctx context.Context, b *models.WasteBid) error {
	tx.repo.mu.Lock()
	b.ID = tx.repo.nextID("waste_bid")
	tx.repo.mu.Unlock()

	b.AuctionID = tx.auction.ID
	tx.bids[b.ID] = *b
	tx.dirty[b.ID] = true
	return nil
}

func (tx *memoryAuctionTx) SetBidStatus(ctx context.Context, bidID int64, status models.BidStatus) error {
	b, ok := tx.bids[bidID]
	if !ok {
		return notFound("waste bid", bidID)
	}
	b.Status = status
	tx.bids[bidID] = b
	tx.dirty[bidID] = true
	return nil
}

func (tx *memoryAuctionTx) SetBatchStatus(ctx context.Context, from, to models.BatchStatus) (bool, error) {
	if tx.batchStatus != from {
		return false, nil
	}
	tx.batchStatus = to
	tx.batchChanged = true
	return true, nil
}

func (tx *memoryAuctionTx) MarkSettled(ctx context.Context, winningBidID *int64, settledAt time.Time) error {
	tx.auction.SettledAt = &settledAt
	tx.auction.WinningBidID = winningBidID
	tx.auctionChanged = true
	return nil
}

// Записи

func (r *MemoryRepo) checkRefs(a *models.Appointment) error {
	if a.StaffID != nil {
		if _, ok := r.staff[*a.StaffID]; !ok {
			return apperrors.Invalid("staffId", fmt.Sprintf("staff %d does not exist", *a.StaffID))
		}
	}
	if a.VehicleID != nil {
		if _, ok := r.vehicles[*a.VehicleID]; !ok {
			return apperrors.Invalid("vehicleId", fmt.Sprintf("vehicle %d does not exist", *a.VehicleID))
		}
	}
	return nil
}

func (r *MemoryRepo) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkRefs(a); err != nil {
		return err
	}
	a.ID = r.nextID("appointment")
	a.Version = 1
	a.CreatedAt = r.now()
	a.UpdatedAt = a.CreatedAt
	r.appointments[a.ID] = *a
	return nil
}

func (r *MemoryRepo) GetAppointment(ctx context.Context, id int64) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.appointments[id]
	if !ok {
		return nil, notFound("appointment", id)
	}
	return &a, nil
}

func (r *MemoryRepo) ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Appointment, 0)
	for _, a := range r.appointments {
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if filter.StaffID != nil && (a.StaffID == nil || *a.StaffID != *filter.StaffID) {
			continue
		}
		if filter.VehicleID != nil && (a.VehicleID == nil || *a.VehicleID != *filter.VehicleID) {
			continue
		}
		if filter.From != nil && a.AppointmentTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !a.AppointmentTime.Before(*filter.To) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AppointmentTime.Equal(out[j].AppointmentTime) {
			return out[i].AppointmentTime.Before(out[j].AppointmentTime)
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, filter.Page), nil
}

func (r *MemoryRepo) CountAppointmentsByStatus(ctx context.Context) (map[models.AppointmentStatus]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[models.AppointmentStatus]int)
	for _, a := range r.appointments {
		counts[a.Status]++
	}
	return counts, nil
}

func (r *MemoryRepo) UpdateAppointment(ctx context.Context, a *models.Appointment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.appointments[a.ID]
	if !ok {
		return false, notFound("appointment", a.ID)
	}
	if existing.Version != a.Version {
		return false, nil
	}
	if err := r.checkRefs(a); err != nil {
		return false, err
	}
	a.Version++
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = r.now()
	r.appointments[a.ID] = *a
	return true, nil
}

func (r *MemoryRepo) DeleteAppointment(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[id]; !ok {
		return notFound("appointment", id)
	}
	delete(r.appointments, id)
	return nil
}

// Сотрудники и транспорт

func (r *MemoryRepo) CreateStaff(ctx context.Context, s *models.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.staff {
		if existing.IDCard == s.IDCard {
			return fmt.Errorf("staff id card %s: %w", s.IDCard, apperrors.ErrDuplicate)
		}
	}
	s.ID = r.nextID("staff")
	s.CreatedAt = r.now()
	r.staff[s.ID] = *s
	return nil
}

func (r *MemoryRepo) GetStaff(ctx context.Context, id int64) (*models.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.staff[id]
	if !ok {
		return nil, notFound("staff", id)
	}
	return &s, nil
}

func (r *MemoryRepo) ListStaff(ctx context.Context, page models.Page) ([]models.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Staff, 0, len(r.staff))
	for _, s := range r.staff {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, page), nil
}

func (r *MemoryRepo) DeleteStaff(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.staff[id]; !ok {
		return notFound("staff", id)
	}
	matches := func(a models.Appointment) bool { return a.StaffID != nil && *a.StaffID == id }
	if err := r.releaseReferences("staff", id, matches, func(a *models.Appointment) { a.StaffID = nil }); err != nil {
		return err
	}
	delete(r.staff, id)
	return nil
}

func (r *MemoryRepo) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.vehicles {
		if existing.PlateNumber == v.PlateNumber {
			return fmt.Errorf("vehicle plate %s: %w", v.PlateNumber, apperrors.ErrDuplicate)
		}
	}
	v.ID = r.nextID("vehicle")
	v.CreatedAt = r.now()
	r.vehicles[v.ID] = *v
	return nil
}

func (r *MemoryRepo) GetVehicle(ctx context.Context, id int64) (*models.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vehicles[id]
	if !ok {
		return nil, notFound("vehicle", id)
	}
	return &v, nil
}

func (r *MemoryRepo) ListVehicles(ctx context.Context, page models.Page) ([]models.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, page), nil
}

func (r *MemoryRepo) DeleteVehicle(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vehicles[id]; !ok {
		return notFound("vehicle", id)
	}
	matches := func(a models.Appointment) bool { return a.VehicleID != nil && *a.VehicleID == id }
	if err := r.releaseReferences("vehicle", id, matches, func(a *models.Appointment) { a.VehicleID = nil }); err != nil {
		return err
	}
	delete(r.vehicles, id)
	return nil
}

// releaseReferences отказывает, если ссылка есть у открытой записи,
// иначе обнуляет ссылку у завершённых (как ON DELETE SET NULL). Вызывается под r.mu.
func (r *MemoryRepo) releaseReferences(entity string, id int64, matches func(models.Appointment) bool, clear func(*models.Appointment)) error {
	var terminal []int64
	for apptID, a := range r.appointments {
		if !matches(a) {
			continue
		}
		if slices.Contains(models.OpenAppointmentStatuses, a.Status) {
			return fmt.Errorf("%s %d is assigned to appointment %d: %w", entity, id, apptID, apperrors.ErrReferencedEntityInUse)
		}
		terminal = append(terminal, apptID)
	}
	for _, apptID := range terminal {
		a := r.appointments[apptID]
		clear(&a)
		r.appointments[apptID] = a
	}
	return nil
}
