package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// IDs de los bancos (pools de capital). El conjunto es fijo: la provisión
// la hace una rutina de setup externa, el core nunca crea bancos nuevos.
const (
	BancoBovedaMonte = "boveda_monte"
	BancoBovedaUSA   = "boveda_usa"
	BancoProfit      = "profit"
	BancoLeftie      = "leftie"
	BancoAzteca      = "azteca"
	BancoFleteSur    = "flete_sur"
	BancoUtilidades  = "utilidades"
)

// BancosGYA son los tres bancos que reciben la distribución de una venta.
var BancosGYA = []string{BancoBovedaMonte, BancoFleteSur, BancoUtilidades}

// Banco representa un pool de capital con saldo actual e históricos de vida.
// CapitalActual solo cambia como efecto de un Movimiento registrado.
type Banco struct {
	ID                string
	Nombre            string
	Tipo              string
	CapitalActual     decimal.Decimal
	HistoricoIngresos decimal.Decimal
	HistoricoGastos   decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
