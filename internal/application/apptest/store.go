// Package apptest provee repositorios en memoria y un TxRunner de prueba
// para los tests de casos de uso. Las lecturas devuelven copias y las
// escrituras pasan por Save/Create, de modo que un error dentro del callback
// deja el estado como estaba (mismo contrato que la transacción real).
package apptest

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jortega/distribuidora-api/internal/application/ports"
	"github.com/jortega/distribuidora-api/internal/domain"
	"github.com/jortega/distribuidora-api/internal/domain/entity"
	"github.com/jortega/distribuidora-api/internal/domain/repository"
)

// Store estado en memoria compartido por los repos falsos.
type Store struct {
	Bancos         map[string]*entity.Banco
	Movimientos    map[string]*entity.Movimiento
	Ventas         map[string]*entity.Venta
	Ordenes        map[string]*entity.OrdenCompra
	Clientes       map[string]*entity.Cliente
	Distribuidores map[string]*entity.Distribuidor
	Productos      map[string]*entity.Producto
	Entradas       []*entity.EntradaAlmacen
	Salidas        []*entity.SalidaAlmacen
	Abonos         []*entity.Abono
	Pagos          []*entity.PagoDistribuidor
}

// NewStore crea un estado vacío.
func NewStore() *Store {
	return &Store{
		Bancos:         map[string]*entity.Banco{},
		Movimientos:    map[string]*entity.Movimiento{},
		Ventas:         map[string]*entity.Venta{},
		Ordenes:        map[string]*entity.OrdenCompra{},
		Clientes:       map[string]*entity.Cliente{},
		Distribuidores: map[string]*entity.Distribuidor{},
		Productos:      map[string]*entity.Producto{},
	}
}

// SeedBancosGYA crea los tres bancos de la distribución con capital cero.
func (s *Store) SeedBancosGYA() {
	for _, id := range entity.BancosGYA {
		s.Bancos[id] = &entity.Banco{ID: id, Nombre: id}
	}
}

// Repos devuelve el bundle de repositorios falsos atados al store.
func (s *Store) Repos() *ports.Repos {
	return &ports.Repos{
		Bancos:            &bancoRepo{s},
		Movimientos:       &movimientoRepo{s},
		Ventas:            &ventaRepo{s},
		Ordenes:           &ordenRepo{s},
		Clientes:          &clienteRepo{s},
		Distribuidores:    &distribuidorRepo{s},
		Productos:         &productoRepo{s},
		Entradas:          &entradaRepo{s},
		Salidas:           &salidaRepo{s},
		Abonos:            &abonoRepo{s},
		PagosDistribuidor: &pagoRepo{s},
	}
}

// Runner es un TxRunner en memoria: ejecuta el callback directo sobre el
// store y, si falla, restaura el estado previo (rollback).
type Runner struct {
	Store *Store
}

// Run implementa ports.TxRunner.
func (r *Runner) Run(ctx context.Context, fn func(repos *ports.Repos) error) error {
	snapshot := r.Store.clone()
	if err := fn(r.Store.Repos()); err != nil {
		*r.Store = *snapshot
		return err
	}
	return nil
}

// NoopCache implementa ports.SaldoCache sin cachear nada.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, bancoID string) (decimal.Decimal, bool) {
	return decimal.Zero, false
}
func (NoopCache) Set(ctx context.Context, bancoID string, saldo decimal.Decimal) {}
func (NoopCache) Invalidate(ctx context.Context, bancoIDs ...string)             {}

func (s *Store) clone() *Store {
	out := NewStore()
	for k, v := range s.Bancos {
		c := *v
		out.Bancos[k] = &c
	}
	for k, v := range s.Movimientos {
		c := *v
		out.Movimientos[k] = &c
	}
	for k, v := range s.Ventas {
		c := *v
		out.Ventas[k] = &c
	}
	for k, v := range s.Ordenes {
		c := *v
		out.Ordenes[k] = &c
	}
	for k, v := range s.Clientes {
		c := *v
		out.Clientes[k] = &c
	}
	for k, v := range s.Distribuidores {
		c := *v
		out.Distribuidores[k] = &c
	}
	for k, v := range s.Productos {
		c := *v
		out.Productos[k] = &c
	}
	for _, v := range s.Entradas {
		c := *v
		out.Entradas = append(out.Entradas, &c)
	}
	for _, v := range s.Salidas {
		c := *v
		out.Salidas = append(out.Salidas, &c)
	}
	for _, v := range s.Abonos {
		c := *v
		out.Abonos = append(out.Abonos, &c)
	}
	for _, v := range s.Pagos {
		c := *v
		out.Pagos = append(out.Pagos, &c)
	}
	return out
}

// ── repos falsos ──

type bancoRepo struct{ s *Store }

var _ repository.BancoRepository = (*bancoRepo)(nil)

func (r *bancoRepo) GetByID(id string) (*entity.Banco, error) {
	b, ok := r.s.Bancos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *b
	return &c, nil
}

func (r *bancoRepo) GetForUpdate(id string) (*entity.Banco, error) { return r.GetByID(id) }

func (r *bancoRepo) List() ([]*entity.Banco, error) {
	var out []*entity.Banco
	for _, b := range r.s.Bancos {
		c := *b
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *bancoRepo) Save(banco *entity.Banco) error {
	if _, ok := r.s.Bancos[banco.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *banco
	r.s.Bancos[banco.ID] = &c
	return nil
}

type movimientoRepo struct{ s *Store }

var _ repository.MovimientoRepository = (*movimientoRepo)(nil)

func (r *movimientoRepo) Create(mov *entity.Movimiento) error {
	if _, ok := r.s.Movimientos[mov.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *mov
	r.s.Movimientos[mov.ID] = &c
	return nil
}

func (r *movimientoRepo) GetByID(id string) (*entity.Movimiento, error) {
	m, ok := r.s.Movimientos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *m
	return &c, nil
}

func (r *movimientoRepo) Delete(id string) error {
	if _, ok := r.s.Movimientos[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.Movimientos, id)
	return nil
}

func (r *movimientoRepo) List(filter repository.MovimientoFilter) ([]*entity.Movimiento, error) {
	var out []*entity.Movimiento
	for _, m := range r.s.Movimientos {
		if filter.BancoID != "" && m.BancoID != filter.BancoID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

type ventaRepo struct{ s *Store }

var _ repository.VentaRepository = (*ventaRepo)(nil)

func (r *ventaRepo) Create(venta *entity.Venta) error {
	if _, ok := r.s.Ventas[venta.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *venta
	r.s.Ventas[venta.ID] = &c
	return nil
}

func (r *ventaRepo) GetByID(id string) (*entity.Venta, error) {
	v, ok := r.s.Ventas[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *v
	return &c, nil
}

func (r *ventaRepo) GetForUpdate(id string) (*entity.Venta, error) { return r.GetByID(id) }

func (r *ventaRepo) UpdateMontos(venta *entity.Venta) error {
	stored, ok := r.s.Ventas[venta.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != venta.Version {
		return domain.ErrConflict
	}
	venta.Version++
	c := *venta
	r.s.Ventas[venta.ID] = &c
	return nil
}

func (r *ventaRepo) ListPendientesPorCliente(clienteID string) ([]*entity.Venta, error) {
	var out []*entity.Venta
	for _, v := range r.s.Ventas {
		if v.ClienteID != clienteID || !v.Pendiente() {
			continue
		}
		c := *v
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.Before(out[j].Fecha) })
	return out, nil
}

func (r *ventaRepo) List() ([]*entity.Venta, error) {
	var out []*entity.Venta
	for _, v := range r.s.Ventas {
		c := *v
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.Before(out[j].Fecha) })
	return out, nil
}

type ordenRepo struct{ s *Store }

var _ repository.OrdenCompraRepository = (*ordenRepo)(nil)

func (r *ordenRepo) Create(orden *entity.OrdenCompra) error {
	if _, ok := r.s.Ordenes[orden.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *orden
	r.s.Ordenes[orden.ID] = &c
	return nil
}

func (r *ordenRepo) GetByID(id string) (*entity.OrdenCompra, error) {
	o, ok := r.s.Ordenes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *o
	return &c, nil
}

func (r *ordenRepo) GetForUpdate(id string) (*entity.OrdenCompra, error) { return r.GetByID(id) }

func (r *ordenRepo) UpdateMontos(orden *entity.OrdenCompra) error {
	stored, ok := r.s.Ordenes[orden.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != orden.Version {
		return domain.ErrConflict
	}
	orden.Version++
	c := *orden
	r.s.Ordenes[orden.ID] = &c
	return nil
}

func (r *ordenRepo) List() ([]*entity.OrdenCompra, error) {
	var out []*entity.OrdenCompra
	for _, o := range r.s.Ordenes {
		c := *o
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.Before(out[j].Fecha) })
	return out, nil
}

type clienteRepo struct{ s *Store }

var _ repository.ClienteRepository = (*clienteRepo)(nil)

func (r *clienteRepo) Create(cliente *entity.Cliente) error {
	if _, ok := r.s.Clientes[cliente.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *cliente
	r.s.Clientes[cliente.ID] = &c
	return nil
}

func (r *clienteRepo) GetByID(id string) (*entity.Cliente, error) {
	cl, ok := r.s.Clientes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *cl
	return &c, nil
}

func (r *clienteRepo) GetForUpdate(id string) (*entity.Cliente, error) { return r.GetByID(id) }

func (r *clienteRepo) Save(cliente *entity.Cliente) error {
	if _, ok := r.s.Clientes[cliente.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *cliente
	r.s.Clientes[cliente.ID] = &c
	return nil
}

type distribuidorRepo struct{ s *Store }

var _ repository.DistribuidorRepository = (*distribuidorRepo)(nil)

func (r *distribuidorRepo) Create(dist *entity.Distribuidor) error {
	if _, ok := r.s.Distribuidores[dist.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *dist
	r.s.Distribuidores[dist.ID] = &c
	return nil
}

func (r *distribuidorRepo) GetByID(id string) (*entity.Distribuidor, error) {
	d, ok := r.s.Distribuidores[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *d
	return &c, nil
}

func (r *distribuidorRepo) GetForUpdate(id string) (*entity.Distribuidor, error) {
	return r.GetByID(id)
}

func (r *distribuidorRepo) Save(dist *entity.Distribuidor) error {
	if _, ok := r.s.Distribuidores[dist.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *dist
	r.s.Distribuidores[dist.ID] = &c
	return nil
}

type productoRepo struct{ s *Store }

var _ repository.ProductoRepository = (*productoRepo)(nil)

func (r *productoRepo) Create(producto *entity.Producto) error {
	if _, ok := r.s.Productos[producto.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *producto
	r.s.Productos[producto.ID] = &c
	return nil
}

func (r *productoRepo) GetByID(id string) (*entity.Producto, error) {
	p, ok := r.s.Productos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r *productoRepo) GetForUpdate(id string) (*entity.Producto, error) { return r.GetByID(id) }

func (r *productoRepo) Save(producto *entity.Producto) error {
	if _, ok := r.s.Productos[producto.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *producto
	r.s.Productos[producto.ID] = &c
	return nil
}

func (r *productoRepo) List() ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range r.s.Productos {
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type entradaRepo struct{ s *Store }

var _ repository.EntradaAlmacenRepository = (*entradaRepo)(nil)

func (r *entradaRepo) Create(entrada *entity.EntradaAlmacen) error {
	for _, e := range r.s.Entradas {
		if e.OrdenCompraID == entrada.OrdenCompraID {
			return domain.ErrDuplicate
		}
	}
	c := *entrada
	r.s.Entradas = append(r.s.Entradas, &c)
	return nil
}

func (r *entradaRepo) GetByOrdenCompra(ordenID string) (*entity.EntradaAlmacen, error) {
	for _, e := range r.s.Entradas {
		if e.OrdenCompraID == ordenID {
			c := *e
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *entradaRepo) SumCantidadPorProducto(productoID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.s.Entradas {
		if e.ProductoID == productoID {
			total = total.Add(e.Cantidad)
		}
	}
	return total, nil
}

func (r *entradaRepo) DeleteAll() error {
	r.s.Entradas = nil
	return nil
}

type salidaRepo struct{ s *Store }

var _ repository.SalidaAlmacenRepository = (*salidaRepo)(nil)

func (r *salidaRepo) Create(salida *entity.SalidaAlmacen) error {
	for _, x := range r.s.Salidas {
		if x.VentaID == salida.VentaID {
			return domain.ErrDuplicate
		}
	}
	c := *salida
	r.s.Salidas = append(r.s.Salidas, &c)
	return nil
}

func (r *salidaRepo) GetByVenta(ventaID string) (*entity.SalidaAlmacen, error) {
	for _, x := range r.s.Salidas {
		if x.VentaID == ventaID {
			c := *x
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *salidaRepo) SumCantidadPorProducto(productoID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, x := range r.s.Salidas {
		if x.ProductoID == productoID {
			total = total.Add(x.Cantidad)
		}
	}
	return total, nil
}

func (r *salidaRepo) DeleteAll() error {
	r.s.Salidas = nil
	return nil
}

type abonoRepo struct{ s *Store }

var _ repository.AbonoRepository = (*abonoRepo)(nil)

func (r *abonoRepo) Create(abono *entity.Abono) error {
	c := *abono
	r.s.Abonos = append(r.s.Abonos, &c)
	return nil
}

func (r *abonoRepo) ListByVenta(ventaID string) ([]*entity.Abono, error) {
	var out []*entity.Abono
	for _, a := range r.s.Abonos {
		if a.VentaID == ventaID {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

type pagoRepo struct{ s *Store }

var _ repository.PagoDistribuidorRepository = (*pagoRepo)(nil)

func (r *pagoRepo) Create(pago *entity.PagoDistribuidor) error {
	c := *pago
	r.s.Pagos = append(r.s.Pagos, &c)
	return nil
}

func (r *pagoRepo) ListByOrdenCompra(ordenID string) ([]*entity.PagoDistribuidor, error) {
	var out []*entity.PagoDistribuidor
	for _, p := range r.s.Pagos {
		if p.OrdenCompraID == ordenID {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}
