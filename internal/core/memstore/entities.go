package memstore

import (
	"context"
	"time"

	"accounting-backend/internal/core"
)

type partyStore struct{ s *Store }

func (p partyStore) List(ctx context.Context, f core.PartyFilter) ([]core.Party, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.enter(ctx, "ListParties"); err != nil {
		return nil, err
	}
	out := []core.Party{}
	for _, v := range sortedValues(p.s.st.parties, func(a, b core.Party) int {
		return byNameThenID(a.Name, b.Name, a.ID, b.ID)
	}) {
		if !contains(v.Name, f.Name) {
			continue
		}
		if f.NationalID != "" && (v.NationalID == nil || !contains(*v.NationalID, f.NationalID)) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (p partyStore) Get(ctx context.Context, id int) (*core.Party, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.enter(ctx, "GetParty"); err != nil {
		return nil, err
	}
	v, ok := p.s.st.parties[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (p partyStore) Create(ctx context.Context, v *core.Party) (int, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.enter(ctx, "CreateParty"); err != nil {
		return 0, err
	}
	st := p.s.st
	if err := st.checkParty(0, v); err != nil {
		return 0, err
	}
	row := *v
	row.ID = st.newID("cari")
	st.parties[row.ID] = row
	return row.ID, nil
}

func (p partyStore) Update(ctx context.Context, v *core.Party) (bool, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.enter(ctx, "UpdateParty"); err != nil {
		return false, err
	}
	st := p.s.st
	if _, ok := st.parties[v.ID]; !ok {
		return false, nil
	}
	if err := st.checkParty(v.ID, v); err != nil {
		return false, err
	}
	st.parties[v.ID] = *v
	return true, nil
}

func (p partyStore) Delete(ctx context.Context, id int) (bool, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.enter(ctx, "DeleteParty"); err != nil {
		return false, err
	}
	st := p.s.st
	if _, ok := st.parties[id]; !ok {
		return false, nil
	}
	for _, inv := range st.invoices {
		if inv.PartyID == id {
			return false, fkViolation("fatura_cari_id_fkey")
		}
	}
	delete(st.parties, id)
	return true, nil
}

func (p partyStore) CountInvoices(ctx context.Context, id int) (int, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.enter(ctx, "CountInvoices"); err != nil {
		return 0, err
	}
	n := 0
	for _, inv := range p.s.st.invoices {
		if inv.PartyID == id {
			n++
		}
	}
	return n, nil
}

func (st *state) checkParty(selfID int, v *core.Party) error {
	for id, o := range st.parties {
		if id == selfID {
			continue
		}
		if o.Name == v.Name {
			return uniqueViolation("cari_adi_soyadi_key")
		}
		if sameOptional(o.NationalID, v.NationalID) {
			return uniqueViolation("cari_tc_kimlik_no_key")
		}
	}
	return nil
}

type unitStore struct{ s *Store }

func (u unitStore) List(ctx context.Context, f core.UnitFilter) ([]core.Unit, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.enter(ctx, "ListUnits"); err != nil {
		return nil, err
	}
	out := []core.Unit{}
	for _, v := range sortedValues(u.s.st.units, func(a, b core.Unit) int {
		return byNameThenID(a.Name, b.Name, a.ID, b.ID)
	}) {
		if contains(v.Code, f.Code) && contains(v.Name, f.Name) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (u unitStore) Get(ctx context.Context, id int) (*core.Unit, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.enter(ctx, "GetUnit"); err != nil {
		return nil, err
	}
	v, ok := u.s.st.units[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (u unitStore) Create(ctx context.Context, v *core.Unit) (int, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.enter(ctx, "CreateUnit"); err != nil {
		return 0, err
	}
	st := u.s.st
	if err := st.checkUnit(0, v); err != nil {
		return 0, err
	}
	row := *v
	row.ID = st.newID("birim")
	st.units[row.ID] = row
	return row.ID, nil
}

func (u unitStore) Update(ctx context.Context, v *core.Unit) (bool, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.enter(ctx, "UpdateUnit"); err != nil {
		return false, err
	}
	st := u.s.st
	if _, ok := st.units[v.ID]; !ok {
		return false, nil
	}
	if err := st.checkUnit(v.ID, v); err != nil {
		return false, err
	}
	st.units[v.ID] = *v
	return true, nil
}

func (u unitStore) Delete(ctx context.Context, id int) (bool, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.enter(ctx, "DeleteUnit"); err != nil {
		return false, err
	}
	st := u.s.st
	if _, ok := st.units[id]; !ok {
		return false, nil
	}
	for _, p := range st.products {
		if p.UnitID != nil && *p.UnitID == id {
			return false, fkViolation("urun_birim_id_fkey")
		}
	}
	for _, l := range st.lines {
		if l.UnitID == id {
			return false, fkViolation("fatura_detay_birim_id_fkey")
		}
	}
	delete(st.units, id)
	return true, nil
}

func (u unitStore) CountProducts(ctx context.Context, id int) (int, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.enter(ctx, "CountProducts"); err != nil {
		return 0, err
	}
	n := 0
	for _, p := range u.s.st.products {
		if p.UnitID != nil && *p.UnitID == id {
			n++
		}
	}
	return n, nil
}

func (st *state) checkUnit(selfID int, v *core.Unit) error {
	if !v.KgFactor.IsPositive() {
		return checkViolation("invalid value")
	}
	for id, o := range st.units {
		if id != selfID && o.Code == v.Code && o.Name == v.Name {
			return uniqueViolation("birim_kisa_adi_adi_key")
		}
	}
	return nil
}

type productStore struct{ s *Store }

func (p productStore) List(ctx context.Context, f core.ProductFilter) ([]core.Product, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.enter(ctx, "ListProducts"); err != nil {
		return nil, err
	}
	st := p.s.st
	out := []core.Product{}
	for _, v := range sortedValues(st.products, func(a, b core.Product) int {
		return byNameThenID(a.Name, b.Name, a.ID, b.ID)
	}) {
		if f.Barcode != "" && (v.Barcode == nil || !contains(*v.Barcode, f.Barcode)) {
			continue
		}
		if !contains(v.Name, f.Name) || !contains(v.ShortName, f.ShortName) {
			continue
		}
		out = append(out, st.withUnitName(v))
	}
	return out, nil
}

func (p productStore) Get(ctx context.Context, id int) (*core.Product, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.enter(ctx, "GetProduct"); err != nil {
		return nil, err
	}
	v, ok := p.s.st.products[id]
	if !ok {
		return nil, nil
	}
	v = p.s.st.withUnitName(v)
	return &v, nil
}

func (p productStore) Create(ctx context.Context, v *core.Product) (int, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.enter(ctx, "CreateProduct"); err != nil {
		return 0, err
	}
	st := p.s.st
	if err := st.checkProduct(0, v); err != nil {
		return 0, err
	}
	row := *v
	row.ID = st.newID("urun")
	row.UnitName = ""
	st.products[row.ID] = row
	return row.ID, nil
}

func (p productStore) Update(ctx context.Context, v *core.Product) (bool, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.enter(ctx, "UpdateProduct"); err != nil {
		return false, err
	}
	st := p.s.st
	if _, ok := st.products[v.ID]; !ok {
		return false, nil
	}
	if err := st.checkProduct(v.ID, v); err != nil {
		return false, err
	}
	row := *v
	row.UnitName = ""
	st.products[v.ID] = row
	return true, nil
}

func (p productStore) Delete(ctx context.Context, id int) (bool, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.enter(ctx, "DeleteProduct"); err != nil {
		return false, err
	}
	st := p.s.st
	if _, ok := st.products[id]; !ok {
		return false, nil
	}
	for _, l := range st.lines {
		if l.ProductID == id {
			return false, fkViolation("fatura_detay_urun_id_fkey")
		}
	}
	delete(st.products, id)
	return true, nil
}

func (p productStore) CountInvoiceLines(ctx context.Context, id int) (int, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.enter(ctx, "CountInvoiceLines"); err != nil {
		return 0, err
	}
	n := 0
	for _, l := range p.s.st.lines {
		if l.ProductID == id {
			n++
		}
	}
	return n, nil
}

func (st *state) checkProduct(selfID int, v *core.Product) error {
	if v.VATRate < 0 || v.VATRate > 100 {
		return checkViolation("invalid value")
	}
	if v.UnitID != nil {
		if _, ok := st.units[*v.UnitID]; !ok {
			return fkViolation("urun_birim_id_fkey")
		}
	}
	for id, o := range st.products {
		if id == selfID {
			continue
		}
		if sameOptional(o.Barcode, v.Barcode) {
			return uniqueViolation("urun_barkod_key")
		}
		if o.Name == v.Name {
			return uniqueViolation("urun_adi_key")
		}
	}
	return nil
}

func (st *state) withUnitName(p core.Product) core.Product {
	if p.UnitID != nil {
		p.UnitName = st.units[*p.UnitID].Name
	}
	return p
}

type userStore struct{ s *Store }

func (u userStore) GetByUsername(ctx context.Context, username string) (*core.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.enter(ctx, "GetUser"); err != nil {
		return nil, err
	}
	for _, v := range u.s.st.users {
		if v.Username == username {
			return &v, nil
		}
	}
	return nil, nil
}

func (u userStore) GetByID(ctx context.Context, id int) (*core.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.enter(ctx, "GetUser"); err != nil {
		return nil, err
	}
	v, ok := u.s.st.users[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (u userStore) Create(ctx context.Context, v *core.User) (int, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.enter(ctx, "CreateUser"); err != nil {
		return 0, err
	}
	st := u.s.st
	for _, o := range st.users {
		if o.Username == v.Username {
			return 0, uniqueViolation("kullanici_kullanici_adi_key")
		}
	}
	row := *v
	row.ID = st.newID("kullanici")
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}
	st.users[row.ID] = row
	return row.ID, nil
}
