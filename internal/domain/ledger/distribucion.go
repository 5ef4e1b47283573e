package ledger

import "github.com/shopspring/decimal"

// Distribucion es la descomposición del total de una venta en las tres
// partes que reciben los bancos:
//
//	Bóveda Monte = precioCompra × cantidad              (costo)
//	Flete Sur    = precioFlete × cantidad               (transporte)
//	Utilidades   = (precioVenta − compra − flete) × cantidad (ganancia)
//
// Las tres partes suman PrecioTotalVenta = precioVenta × cantidad.
type Distribucion struct {
	MontoBovedaMonte decimal.Decimal
	MontoFletes      decimal.Decimal
	MontoUtilidades  decimal.Decimal
	PrecioTotalVenta decimal.Decimal
	MargenNeto       decimal.Decimal // porcentaje utilidades/total
}

var cien = decimal.NewFromInt(100)

// CalcularDistribucionGYA calcula la distribución de una venta (servicio de
// dominio, función pura). Cantidad <= 0 devuelve la distribución cero.
func CalcularDistribucionGYA(precioVenta, precioCompra, precioFlete, cantidad decimal.Decimal) Distribucion {
	if cantidad.LessThanOrEqual(decimal.Zero) {
		return Distribucion{
			MontoBovedaMonte: decimal.Zero,
			MontoFletes:      decimal.Zero,
			MontoUtilidades:  decimal.Zero,
			PrecioTotalVenta: decimal.Zero,
			MargenNeto:       decimal.Zero,
		}
	}

	montoBovedaMonte := precioCompra.Mul(cantidad)
	montoFletes := precioFlete.Mul(cantidad)
	montoUtilidades := precioVenta.Sub(precioCompra).Sub(precioFlete).Mul(cantidad)
	precioTotalVenta := precioVenta.Mul(cantidad)

	margenNeto := decimal.Zero
	if precioTotalVenta.GreaterThan(decimal.Zero) {
		margenNeto = montoUtilidades.Div(precioTotalVenta).Mul(cien).Round(2)
	}

	return Distribucion{
		MontoBovedaMonte: montoBovedaMonte,
		MontoFletes:      montoFletes,
		MontoUtilidades:  montoUtilidades,
		PrecioTotalVenta: precioTotalVenta,
		MargenNeto:       margenNeto,
	}
}

// CalcularDistribucionProporcional escala una distribución por la proporción
// pagada (0..1). Se usa para abonos parciales: cada banco recibe su parte con
// la misma razón de atribución que la venta original. Redondeo a centavos.
func CalcularDistribucionProporcional(dist Distribucion, proporcion decimal.Decimal) Distribucion {
	p := proporcion
	if p.LessThan(decimal.Zero) {
		p = decimal.Zero
	}
	if p.GreaterThan(decimal.NewFromInt(1)) {
		p = decimal.NewFromInt(1)
	}
	return Distribucion{
		MontoBovedaMonte: dist.MontoBovedaMonte.Mul(p).Round(2),
		MontoFletes:      dist.MontoFletes.Mul(p).Round(2),
		MontoUtilidades:  dist.MontoUtilidades.Mul(p).Round(2),
		PrecioTotalVenta: dist.PrecioTotalVenta.Mul(p).Round(2),
		MargenNeto:       dist.MargenNeto,
	}
}

// MontoEfectivo limita un pago al restante de la venta u orden que lo
// recibe: un abono nunca deja MontoRestante por debajo de cero.
func MontoEfectivo(solicitado, restante decimal.Decimal) decimal.Decimal {
	if solicitado.GreaterThan(restante) {
		return restante
	}
	return solicitado
}
