package stock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecovale/recicla-api/internal/application/stock"
	"github.com/ecovale/recicla-api/internal/domain"
	"github.com/ecovale/recicla-api/internal/domain/entity"
	"github.com/ecovale/recicla-api/internal/domain/repository"
	"github.com/ecovale/recicla-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dublês em memória que imitam a disciplina de locks do Postgres: cada chave
// (material, coletador, parceira, cliente, dia) tem seu próprio mutex, e as
// escritas de uma transação ficam num overlay aplicado só no commit. Leituras
// fora de lock enxergam apenas o estado já commitado, como em READ COMMITTED —
// assim uma falta de lock no caso de uso vira corrida visível no teste, em vez
// de ser mascarada por um mutex global.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.RWMutex
	materials map[string]*entity.Material
	receipts  []*entity.Receipt
	shipments []*entity.Shipment
	orders    []*entity.CollectionOrder
	staff     map[string]*entity.Staff   // por CPF
	clients   map[string]*entity.Client  // por CPF
	partners  map[string]*entity.Partner // por CNPJ

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{
		materials: map[string]*entity.Material{},
		staff:     map[string]*entity.Staff{},
		clients:   map[string]*entity.Client{},
		partners:  map[string]*entity.Partner{},
		locks:     map[string]*sync.Mutex{},
	}
}

func (s *memStore) rowLock(key string) *sync.Mutex {
	s.lockMu.Lock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	s.lockMu.Unlock()
	m.Lock()
	return m
}

type stockUpdate struct {
	weight decimal.Decimal
	volume decimal.Decimal
}

// memTx acumula as escritas da transação e os locks adquiridos.
type memTx struct {
	s    *memStore
	held []*sync.Mutex
	seen map[string]bool

	newReceipts  []*entity.Receipt
	newShipments []*entity.Shipment
	newOrders    []*entity.CollectionOrder
	stock        map[string]stockUpdate
	retractions  map[string]time.Time
}

func newMemTx(s *memStore) *memTx {
	return &memTx{
		s:           s,
		seen:        map[string]bool{},
		stock:       map[string]stockUpdate{},
		retractions: map[string]time.Time{},
	}
}

func (t *memTx) lock(key string) {
	if t.seen[key] {
		return
	}
	t.held = append(t.held, t.s.rowLock(key))
	t.seen[key] = true
}

func (t *memTx) commit() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.receipts = append(t.s.receipts, t.newReceipts...)
	t.s.shipments = append(t.s.shipments, t.newShipments...)
	t.s.orders = append(t.s.orders, t.newOrders...)
	for id, u := range t.stock {
		m := t.s.materials[id]
		m.Weight, m.Volume = u.weight, u.volume
	}
	for id, at := range t.retractions {
		for _, sh := range t.s.shipments {
			if sh.ID == id {
				when := at
				sh.Status = entity.ShipmentStatusRetracted
				sh.RetractedAt = &when
			}
		}
	}
}

func (t *memTx) release() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.held[i].Unlock()
	}
}

type memMaterialRepo struct{ t *memTx }

func (r *memMaterialRepo) Create(m *entity.Material) error {
	r.t.s.mu.Lock()
	defer r.t.s.mu.Unlock()
	r.t.s.materials[m.ID] = m
	return nil
}

func (r *memMaterialRepo) GetByID(id string) (*entity.Material, error) {
	return r.read(id), nil
}

func (r *memMaterialRepo) GetByName(string) (*entity.Material, error) { return nil, nil }
func (r *memMaterialRepo) List(int, int) ([]*entity.Material, error) { return nil, nil }

func (r *memMaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	r.t.lock("material:" + id)
	return r.read(id), nil
}

func (r *memMaterialRepo) read(id string) *entity.Material {
	r.t.s.mu.RLock()
	m, ok := r.t.s.materials[id]
	if !ok {
		r.t.s.mu.RUnlock()
		return nil
	}
	c := *m
	r.t.s.mu.RUnlock()
	if u, ok := r.t.stock[id]; ok {
		c.Weight, c.Volume = u.weight, u.volume
	}
	return &c
}

func (r *memMaterialRepo) UpdateStock(id string, weight, volume decimal.Decimal) error {
	if weight.IsNegative() || volume.IsNegative() {
		return &domain.StockInvariantError{MaterialID: id, Weight: weight, Volume: volume}
	}
	if r.read(id) == nil {
		return domain.ErrMaterialNotFound
	}
	r.t.stock[id] = stockUpdate{weight: weight, volume: volume}
	return nil
}

func (r *memMaterialRepo) Delete(string) error { return nil }

type memReceiptRepo struct{ t *memTx }

func (r *memReceiptRepo) Create(rc *entity.Receipt) error {
	r.t.newReceipts = append(r.t.newReceipts, rc)
	return nil
}

func (r *memReceiptRepo) GetByID(string) (*entity.Receipt, error) { return nil, nil }

func (r *memReceiptRepo) ListByMaterial(string, *time.Time, *time.Time, int, int) ([]*entity.Receipt, error) {
	return nil, nil
}

func (r *memReceiptRepo) all() []*entity.Receipt {
	r.t.s.mu.RLock()
	committed := make([]*entity.Receipt, len(r.t.s.receipts))
	copy(committed, r.t.s.receipts)
	r.t.s.mu.RUnlock()
	return append(committed, r.t.newReceipts...)
}

func (r *memReceiptRepo) SumWeightByStaff(staffID string, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, rc := range r.all() {
		if rc.StaffID == staffID && !rc.CreatedAt.Before(from) && rc.CreatedAt.Before(to) {
			sum = sum.Add(rc.Weight)
		}
	}
	return sum, nil
}

func (r *memReceiptRepo) SumWeight(from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, rc := range r.all() {
		if !rc.CreatedAt.Before(from) && rc.CreatedAt.Before(to) {
			sum = sum.Add(rc.Weight)
		}
	}
	return sum, nil
}

func (r *memReceiptRepo) SumByMaterial(materialID string) (decimal.Decimal, decimal.Decimal, error) {
	w, v := decimal.Zero, decimal.Zero
	for _, rc := range r.all() {
		if rc.MaterialID == materialID {
			w, v = w.Add(rc.Weight), v.Add(rc.Volume)
		}
	}
	return w, v, nil
}

type memShipmentRepo struct{ t *memTx }

func (r *memShipmentRepo) Create(sh *entity.Shipment) error {
	r.t.newShipments = append(r.t.newShipments, sh)
	return nil
}

func (r *memShipmentRepo) GetByID(string) (*entity.Shipment, error) { return nil, nil }

func (r *memShipmentRepo) GetActiveForUpdate(id string) (*entity.Shipment, error) {
	r.t.lock("shipment:" + id)
	for _, sh := range r.all() {
		if sh.ID == id && r.active(sh) {
			c := *sh
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memShipmentRepo) Retract(id string, at time.Time) error {
	for _, sh := range r.all() {
		if sh.ID == id && r.active(sh) {
			r.t.retractions[id] = at
			return nil
		}
	}
	return domain.ErrMovementNotFound
}

func (r *memShipmentRepo) ListByMaterial(string, *time.Time, *time.Time, int, int) ([]*entity.Shipment, error) {
	return nil, nil
}

func (r *memShipmentRepo) all() []*entity.Shipment {
	r.t.s.mu.RLock()
	committed := make([]*entity.Shipment, len(r.t.s.shipments))
	copy(committed, r.t.s.shipments)
	r.t.s.mu.RUnlock()
	return append(committed, r.t.newShipments...)
}

// active aplica o overlay da tx em cima do status commitado.
func (r *memShipmentRepo) active(sh *entity.Shipment) bool {
	if _, retracted := r.t.retractions[sh.ID]; retracted {
		return false
	}
	return sh.Active()
}

func (r *memShipmentRepo) ExistsForPartner(partnerID string, from, to time.Time) (bool, error) {
	for _, sh := range r.all() {
		if sh.PartnerID == partnerID && r.active(sh) &&
			!sh.CreatedAt.Before(from) && sh.CreatedAt.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memShipmentRepo) SumActiveByMaterial(materialID string) (decimal.Decimal, decimal.Decimal, error) {
	w, v := decimal.Zero, decimal.Zero
	for _, sh := range r.all() {
		if sh.MaterialID == materialID && r.active(sh) {
			w, v = w.Add(sh.Weight), v.Add(sh.Volume)
		}
	}
	return w, v, nil
}

type memOrderRepo struct{ t *memTx }

func (r *memOrderRepo) Create(o *entity.CollectionOrder) error {
	r.t.newOrders = append(r.t.newOrders, o)
	return nil
}

func (r *memOrderRepo) GetByID(string) (*entity.CollectionOrder, error) { return nil, nil }

func (r *memOrderRepo) List(*time.Time, *time.Time, int, int) ([]*entity.CollectionOrder, error) {
	return nil, nil
}

func (r *memOrderRepo) ExistsForPair(clientID, staffID string, from, to time.Time) (bool, error) {
	r.t.s.mu.RLock()
	committed := make([]*entity.CollectionOrder, len(r.t.s.orders))
	copy(committed, r.t.s.orders)
	r.t.s.mu.RUnlock()
	for _, o := range append(committed, r.t.newOrders...) {
		if o.ClientID == clientID && o.StaffID == staffID &&
			!o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

// memLockRepo enfileira pelas mesmas chaves que o LockRepo do Postgres.
type memLockRepo struct{ t *memTx }

func (r *memLockRepo) LockStaff(id string) error {
	r.t.lock("staff:" + id)
	return nil
}

func (r *memLockRepo) LockPartner(id string) error {
	r.t.lock("partner:" + id)
	return nil
}

func (r *memLockRepo) LockClient(id string) error {
	r.t.lock("client:" + id)
	return nil
}

func (r *memLockRepo) LockDay(day time.Time) error {
	r.t.lock("day:" + day.Format("2006-01-02"))
	return nil
}

type memStaffRepo struct{ s *memStore }

func (r *memStaffRepo) Create(st *entity.Staff) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.staff[st.CPF] = st
	return nil
}

func (r *memStaffRepo) GetByID(string) (*entity.Staff, error) { return nil, nil }

func (r *memStaffRepo) GetByCPF(cpf string) (*entity.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.staff[cpf], nil
}

func (r *memStaffRepo) List(int, int) ([]*entity.Staff, error) { return nil, nil }

type memClientRepo struct{ s *memStore }

func (r *memClientRepo) Create(c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clients[c.CPF] = c
	return nil
}

func (r *memClientRepo) GetByID(string) (*entity.Client, error) { return nil, nil }

func (r *memClientRepo) GetByCPF(cpf string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.clients[cpf], nil
}

func (r *memClientRepo) List(int, int) ([]*entity.Client, error) { return nil, nil }

type memPartnerRepo struct{ s *memStore }

func (r *memPartnerRepo) Create(p *entity.Partner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.partners[p.CNPJ] = p
	return nil
}

func (r *memPartnerRepo) GetByID(string) (*entity.Partner, error) { return nil, nil }

func (r *memPartnerRepo) GetByCNPJ(cnpj string) (*entity.Partner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.partners[cnpj], nil
}

func (r *memPartnerRepo) List(int, int) ([]*entity.Partner, error) { return nil, nil }

// fakeTxRunner abre uma memTx por chamada: commit aplica o overlay, erro o
// descarta; os locks soltam depois do commit, como no Postgres.
type fakeTxRunner struct{ s *memStore }

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	repository.MaterialRepository,
	repository.ReceiptRepository,
	repository.ShipmentRepository,
	repository.CollectionOrderRepository,
	repository.LockRepository,
) error) error {
	tx := newMemTx(t.s)
	defer tx.release()
	err := fn(&memMaterialRepo{tx}, &memReceiptRepo{tx}, &memShipmentRepo{tx}, &memOrderRepo{tx}, &memLockRepo{tx})
	if err != nil {
		return err
	}
	tx.commit()
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	matPaper   = "11111111-0000-0000-0000-000000000001"
	matGlass   = "11111111-0000-0000-0000-000000000002"
	staffCPF   = "111.222.333-44"
	clientCPF  = "555.666.777-88"
	partnerCNJ = "12.345.678/0001-90"
)

func buildUseCase(t *testing.T) (*stock.UseCase, *memStore) {
	t.Helper()
	s := newMemStore()
	s.materials[matPaper] = &entity.Material{
		ID:     matPaper,
		Name:   "Papel",
		Weight: decimal.NewFromInt(150),
		Volume: decimal.NewFromInt(80),
	}
	s.materials[matGlass] = &entity.Material{
		ID:     matGlass,
		Name:   "Vidro",
		Weight: decimal.NewFromInt(150),
		Volume: decimal.NewFromInt(80),
	}
	s.staff[staffCPF] = &entity.Staff{ID: "staff-1", Name: "João", CPF: staffCPF}
	s.clients[clientCPF] = &entity.Client{ID: "client-1", Name: "Maria", CPF: clientCPF}
	s.partners[partnerCNJ] = &entity.Partner{ID: "partner-1", Name: "Recicla SA", CNPJ: partnerCNJ}

	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := stock.NewUseCase(&fakeTxRunner{s}, &memStaffRepo{s}, &memClientRepo{s}, &memPartnerRepo{s}, log)
	return uc, s
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// ──────────────────────────────────────────────────────────────────────────────
// Recebimentos
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterReceipt_IncrementaEstoqueEApendaNoLog(t *testing.T) {
	uc, s := buildUseCase(t)

	r, err := uc.RegisterReceipt(context.Background(), stock.ReceiptInput{
		MaterialID: matPaper,
		StaffCPF:   staffCPF,
		Weight:     dec(10),
		Volume:     dec(5),
	})

	require.NoError(t, err)
	require.NotNil(t, r)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "staff-1", r.StaffID)
	assert.Len(t, s.receipts, 1)
	assert.True(t, s.materials[matPaper].Weight.Equal(dec(160)))
	assert.True(t, s.materials[matPaper].Volume.Equal(dec(85)))
}

func TestRegisterReceipt_MaterialInexistenteNadaMuda(t *testing.T) {
	uc, s := buildUseCase(t)

	_, err := uc.RegisterReceipt(context.Background(), stock.ReceiptInput{
		MaterialID: "00000000-0000-0000-0000-00000000dead",
		StaffCPF:   staffCPF,
		Weight:     dec(10),
		Volume:     dec(5),
	})

	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
	assert.Empty(t, s.receipts, "rejeição não pode apendar no log")
}

func TestRegisterReceipt_TetoMensalRejeitaSemEfeito(t *testing.T) {
	uc, s := buildUseCase(t)

	// 95 kg já recebidos pelo coletador no mês corrente.
	s.receipts = append(s.receipts, &entity.Receipt{
		ID: "r-prev", MaterialID: matPaper, StaffID: "staff-1",
		Weight: dec(95), Volume: dec(40), CreatedAt: time.Now(),
	})
	weightBefore := s.materials[matPaper].Weight

	_, err := uc.RegisterReceipt(context.Background(), stock.ReceiptInput{
		MaterialID: matPaper,
		StaffCPF:   staffCPF,
		Weight:     dec(10),
		Volume:     dec(5),
	})

	assert.ErrorIs(t, err, domain.ErrMonthlyCapExceeded)
	assert.Len(t, s.receipts, 1, "a rejeição não pode apendar no log")
	assert.True(t, s.materials[matPaper].Weight.Equal(weightBefore), "a rejeição não pode alterar contadores")
}

// O teto mensal é por coletador, não por material: dois recebimentos
// simultâneos do mesmo coletador em materiais diferentes disputam a mesma
// janela e só um pode caber no teto. Sem a fila pelo coletador, ambos leem a
// mesma soma pré-mutação e ambos passam.
func TestRegisterReceipt_TetoMensalConcorrenteEntreMateriais(t *testing.T) {
	uc, s := buildUseCase(t)

	// 80 kg já no mês: cabe exatamente mais um recebimento de 15 kg.
	s.receipts = append(s.receipts, &entity.Receipt{
		ID: "r-prev", MaterialID: matPaper, StaffID: "staff-1",
		Weight: dec(80), Volume: dec(40), CreatedAt: time.Now(),
	})

	materials := []string{matPaper, matGlass}
	errs := make([]error, len(materials))
	var wg sync.WaitGroup
	for i, materialID := range materials {
		wg.Add(1)
		go func(i int, materialID string) {
			defer wg.Done()
			_, errs[i] = uc.RegisterReceipt(context.Background(), stock.ReceiptInput{
				MaterialID: materialID,
				StaffCPF:   staffCPF,
				Weight:     dec(15),
				Volume:     dec(5),
			})
		}(i, materialID)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, domain.ErrMonthlyCapExceeded)
		}
	}
	assert.Equal(t, 1, okCount, "exatamente um recebimento concorrente cabe no teto mensal")

	total := decimal.Zero
	for _, rc := range s.receipts {
		if rc.StaffID == "staff-1" {
			total = total.Add(rc.Weight)
		}
	}
	assert.True(t, total.Equal(dec(95)), "o total do mês deve ficar em 95 kg, nunca acima de 100")
}

// ──────────────────────────────────────────────────────────────────────────────
// Remessas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterShipment_DecrementaEstoque(t *testing.T) {
	uc, s := buildUseCase(t)

	sh, err := uc.RegisterShipment(context.Background(), stock.ShipmentInput{
		MaterialID:  matPaper,
		PartnerCNPJ: partnerCNJ,
		Weight:      dec(20),
		Volume:      dec(10),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusActive, sh.Status)
	assert.True(t, s.materials[matPaper].Weight.Equal(dec(130)))
	assert.True(t, s.materials[matPaper].Volume.Equal(dec(70)))
}

func TestRegisterShipment_SegundaDaParceiraNoDiaRejeitada(t *testing.T) {
	uc, s := buildUseCase(t)

	_, err := uc.RegisterShipment(context.Background(), stock.ShipmentInput{
		MaterialID: matPaper, PartnerCNPJ: partnerCNJ, Weight: dec(20), Volume: dec(10),
	})
	require.NoError(t, err)

	_, err = uc.RegisterShipment(context.Background(), stock.ShipmentInput{
		MaterialID: matPaper, PartnerCNPJ: partnerCNJ, Weight: dec(5), Volume: dec(2),
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateDailyShipment)
	assert.Len(t, s.shipments, 1)
	assert.True(t, s.materials[matPaper].Weight.Equal(dec(130)), "a segunda remessa não pode tocar o estoque")
}

func TestRegisterShipment_AbaixoDoPisoOperacional(t *testing.T) {
	uc, s := buildUseCase(t)
	s.materials[matPaper].Weight = dec(99)

	_, err := uc.RegisterShipment(context.Background(), stock.ShipmentInput{
		MaterialID: matPaper, PartnerCNPJ: partnerCNJ, Weight: dec(5), Volume: dec(2),
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientBaseStock)
	assert.Empty(t, s.shipments)
}

// Sob concorrência, apenas uma remessa da mesma parceira no mesmo dia pode
// vencer; as demais caem na unicidade diária. O estoque reflete exatamente uma.
func TestRegisterShipment_ConcorrentesApenasUmaVence(t *testing.T) {
	uc, s := buildUseCase(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.RegisterShipment(context.Background(), stock.ShipmentInput{
				MaterialID: matPaper, PartnerCNPJ: partnerCNJ, Weight: dec(20), Volume: dec(10),
			})
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, domain.ErrDuplicateDailyShipment)
		}
	}
	assert.Equal(t, 1, okCount, "exatamente uma remessa concorrente deve vencer")
	assert.Len(t, s.shipments, 1)
	assert.True(t, s.materials[matPaper].Weight.Equal(dec(130)))
}

// A unicidade diária vale mesmo quando as remessas concorrentes miram
// materiais diferentes: a fila é pela parceira, não pelo material.
func TestRegisterShipment_ParceiraConcorrenteEntreMateriais(t *testing.T) {
	uc, s := buildUseCase(t)

	materials := []string{matPaper, matGlass}
	errs := make([]error, len(materials))
	var wg sync.WaitGroup
	for i, materialID := range materials {
		wg.Add(1)
		go func(i int, materialID string) {
			defer wg.Done()
			_, errs[i] = uc.RegisterShipment(context.Background(), stock.ShipmentInput{
				MaterialID: materialID, PartnerCNPJ: partnerCNJ, Weight: dec(20), Volume: dec(10),
			})
		}(i, materialID)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, domain.ErrDuplicateDailyShipment)
		}
	}
	assert.Equal(t, 1, okCount, "a parceira só pode vencer uma vez no dia, mesmo em materiais distintos")
	assert.Len(t, s.shipments, 1)
}

// Estoque com volume para uma única remessa e N parceiras simultâneas:
// exatamente uma vence, as demais caem na suficiência, e o estoque final
// reflete só a vencedora.
func TestRegisterShipment_ConcorrentesEstoqueParaUmaSo(t *testing.T) {
	uc, s := buildUseCase(t)
	s.materials[matPaper].Weight = dec(500)
	s.materials[matPaper].Volume = dec(10)

	const n = 6
	cnpjs := make([]string, n)
	for i := 0; i < n; i++ {
		cnpjs[i] = "00.000.000/0001-0" + string(rune('0'+i))
		s.partners[cnpjs[i]] = &entity.Partner{
			ID:   "partner-extra-" + string(rune('0'+i)),
			Name: "Parceira Extra",
			CNPJ: cnpjs[i],
		}
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.RegisterShipment(context.Background(), stock.ShipmentInput{
				MaterialID: matPaper, PartnerCNPJ: cnpjs[i], Weight: dec(10), Volume: dec(8),
			})
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock,
				"sem volume para duas remessas, as perdedoras caem na suficiência")
			assert.NotErrorIs(t, err, domain.ErrInsufficientBaseStock)
		}
	}
	assert.Equal(t, 1, okCount, "só há estoque para uma remessa")
	assert.Len(t, s.shipments, 1)
	assert.True(t, s.materials[matPaper].Weight.Equal(dec(490)))
	assert.True(t, s.materials[matPaper].Volume.Equal(dec(2)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reversões
// ──────────────────────────────────────────────────────────────────────────────

func TestRetractShipment_DevolveAoEstoqueEReabilitaODia(t *testing.T) {
	uc, s := buildUseCase(t)

	sh, err := uc.RegisterShipment(context.Background(), stock.ShipmentInput{
		MaterialID: matPaper, PartnerCNPJ: partnerCNJ, Weight: dec(20), Volume: dec(10),
	})
	require.NoError(t, err)

	retracted, err := uc.RetractShipment(context.Background(), sh.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusRetracted, retracted.Status)
	require.NotNil(t, retracted.RetractedAt)
	assert.True(t, s.materials[matPaper].Weight.Equal(dec(150)), "a reversão devolve o peso exato")
	assert.True(t, s.materials[matPaper].Volume.Equal(dec(80)))

	// A remessa revertida sai dos agregados: a parceira pode remeter de novo hoje.
	_, err = uc.RegisterShipment(context.Background(), stock.ShipmentInput{
		MaterialID: matPaper, PartnerCNPJ: partnerCNJ, Weight: dec(30), Volume: dec(15),
	})
	assert.NoError(t, err, "remessa revertida não conta para a unicidade diária")
}

func TestRetractShipment_DuasVezesRejeitaASegunda(t *testing.T) {
	uc, s := buildUseCase(t)

	sh, err := uc.RegisterShipment(context.Background(), stock.ShipmentInput{
		MaterialID: matPaper, PartnerCNPJ: partnerCNJ, Weight: dec(20), Volume: dec(10),
	})
	require.NoError(t, err)

	_, err = uc.RetractShipment(context.Background(), sh.ID)
	require.NoError(t, err)

	_, err = uc.RetractShipment(context.Background(), sh.ID)
	assert.ErrorIs(t, err, domain.ErrMovementNotFound, "reverter duas vezes não pode devolver em dobro")
	assert.True(t, s.materials[matPaper].Weight.Equal(dec(150)))
}

func TestRetractShipment_Inexistente(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.RetractShipment(context.Background(), "00000000-0000-0000-0000-00000000dead")
	assert.ErrorIs(t, err, domain.ErrMovementNotFound)
}

// Reconciliação após criar e reverter: contadores do material iguais a
// Σ recebimentos menos Σ remessas ativas.
func TestRetractShipment_LogReconciliaComContadores(t *testing.T) {
	uc, s := buildUseCase(t)

	_, err := uc.RegisterReceipt(context.Background(), stock.ReceiptInput{
		MaterialID: matPaper, StaffCPF: staffCPF, Weight: dec(50), Volume: dec(25),
	})
	require.NoError(t, err)

	sh, err := uc.RegisterShipment(context.Background(), stock.ShipmentInput{
		MaterialID: matPaper, PartnerCNPJ: partnerCNJ, Weight: dec(40), Volume: dec(20),
	})
	require.NoError(t, err)

	_, err = uc.RetractShipment(context.Background(), sh.ID)
	require.NoError(t, err)

	tx := newMemTx(s)
	recW, _, err := (&memReceiptRepo{tx}).SumByMaterial(matPaper)
	require.NoError(t, err)
	shipW, _, err := (&memShipmentRepo{tx}).SumActiveByMaterial(matPaper)
	require.NoError(t, err)

	// Base inicial 150 + recebido, menos remessas ativas.
	expected := dec(150).Add(recW).Sub(shipW)
	assert.True(t, s.materials[matPaper].Weight.Equal(expected),
		"contador deve igualar base + recebimentos, menos remessas ativas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos de coleta
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterOrder_RegistraSemMexerNoEstoque(t *testing.T) {
	uc, s := buildUseCase(t)
	weightBefore := s.materials[matPaper].Weight

	o, err := uc.RegisterOrder(context.Background(), stock.OrderInput{
		MaterialID: matPaper,
		ClientCPF:  clientCPF,
		StaffCPF:   staffCPF,
		Weight:     dec(12),
		Volume:     dec(6),
		Type:       "residencial",
	})

	require.NoError(t, err)
	assert.Equal(t, "client-1", o.ClientID)
	assert.Equal(t, "staff-1", o.StaffID)
	assert.Len(t, s.orders, 1)
	assert.True(t, s.materials[matPaper].Weight.Equal(weightBefore), "pedido de coleta não altera o estoque")
}

func TestRegisterOrder_SegundoDoParNoDiaRejeitado(t *testing.T) {
	uc, s := buildUseCase(t)

	_, err := uc.RegisterOrder(context.Background(), stock.OrderInput{
		MaterialID: matPaper, ClientCPF: clientCPF, StaffCPF: staffCPF,
		Weight: dec(12), Volume: dec(6),
	})
	require.NoError(t, err)

	_, err = uc.RegisterOrder(context.Background(), stock.OrderInput{
		MaterialID: matPaper, ClientCPF: clientCPF, StaffCPF: staffCPF,
		Weight: dec(3), Volume: dec(1),
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateDailyOrder)
	assert.Len(t, s.orders, 1)
}

// O par cliente/coletador também cruza materiais: dois pedidos simultâneos do
// mesmo par em materiais distintos enfileiram pela linha do cliente.
func TestRegisterOrder_ParConcorrenteEntreMateriais(t *testing.T) {
	uc, s := buildUseCase(t)

	materials := []string{matPaper, matGlass}
	errs := make([]error, len(materials))
	var wg sync.WaitGroup
	for i, materialID := range materials {
		wg.Add(1)
		go func(i int, materialID string) {
			defer wg.Done()
			_, errs[i] = uc.RegisterOrder(context.Background(), stock.OrderInput{
				MaterialID: materialID, ClientCPF: clientCPF, StaffCPF: staffCPF,
				Weight: dec(5), Volume: dec(2),
			})
		}(i, materialID)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, domain.ErrDuplicateDailyOrder)
		}
	}
	assert.Equal(t, 1, okCount, "o par só pode registrar uma coleta no dia, mesmo em materiais distintos")
	assert.Len(t, s.orders, 1)
}

func TestRegisterOrder_ClienteInexistente(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.RegisterOrder(context.Background(), stock.OrderInput{
		MaterialID: matPaper, ClientCPF: "000.000.000-00", StaffCPF: staffCPF,
		Weight: dec(12), Volume: dec(6),
	})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conformidade das portas (garante que os dublês acompanham as interfaces)
// ──────────────────────────────────────────────────────────────────────────────

var (
	_ repository.MaterialRepository        = (*memMaterialRepo)(nil)
	_ repository.ReceiptRepository         = (*memReceiptRepo)(nil)
	_ repository.ShipmentRepository        = (*memShipmentRepo)(nil)
	_ repository.CollectionOrderRepository = (*memOrderRepo)(nil)
	_ repository.LockRepository            = (*memLockRepo)(nil)
	_ repository.StaffRepository           = (*memStaffRepo)(nil)
	_ repository.ClientRepository          = (*memClientRepo)(nil)
	_ repository.PartnerRepository         = (*memPartnerRepo)(nil)
	_ stock.TxRunner                       = (*fakeTxRunner)(nil)
)
