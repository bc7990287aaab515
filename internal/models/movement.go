package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/arbitrage"
)

// Stored values of tipo_comision, shared with the existing schema.
const (
	StoredCommissionPercentage = "porcentaje"
	StoredCommissionFixedNet   = "montoFinal"
)

// Movement is one recorded buy/sell round trip. Column names follow the
// original "movimientos" table so an existing database can be reused.
type Movement struct {
	ID   uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Date time.Time `gorm:"column:fecha;type:date;not null;default:CURRENT_DATE" json:"date"`

	Capital       decimal.Decimal `gorm:"column:capital_invertido;type:numeric;not null" json:"capital"`
	BuyPrice      decimal.Decimal `gorm:"column:precio_compra;type:numeric;not null" json:"buy_price"`
	UnitsAcquired decimal.Decimal `gorm:"column:cantidad_dolares;type:numeric;not null" json:"units_acquired"`
	SellPrice     decimal.Decimal `gorm:"column:precio_venta;type:numeric;not null" json:"sell_price"`
	GrossProceeds decimal.Decimal `gorm:"column:total_venta;type:numeric;not null" json:"gross_proceeds"`

	// Commission columns are only set when HasCommission is true.
	HasCommission        bool             `gorm:"column:tiene_comision;not null;default:false" json:"has_commission"`
	CommissionType       *string          `gorm:"column:tipo_comision;type:varchar(20)" json:"commission_type,omitempty"`
	CommissionPercentage *decimal.Decimal `gorm:"column:comision_porcentaje;type:numeric" json:"commission_percentage,omitempty"`
	CommissionAmount     *decimal.Decimal `gorm:"column:comision_monto;type:numeric" json:"commission_amount,omitempty"`

	NetProceeds      decimal.Decimal `gorm:"column:monto_final;type:numeric;not null" json:"net_proceeds"`
	Profit           decimal.Decimal `gorm:"column:ganancia;type:numeric;not null" json:"profit"`
	ProfitPercentage decimal.Decimal `gorm:"column:porcentaje;type:numeric;not null" json:"profit_percentage"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Movement) TableName() string {
	return "movimientos"
}

// NewMovement flattens a computed transaction into a storable row.
func NewMovement(date time.Time, in arbitrage.TransactionInput, res arbitrage.TransactionResult) *Movement {
	m := &Movement{
		Date:             date,
		Capital:          in.Capital,
		BuyPrice:         in.BuyPrice,
		UnitsAcquired:    res.UnitsAcquired,
		SellPrice:        in.SellPrice,
		GrossProceeds:    res.GrossProceeds,
		NetProceeds:      res.NetProceeds,
		Profit:           res.Profit,
		ProfitPercentage: res.ProfitPercentage,
	}
	var stored string
	switch in.Commission.Mode() {
	case arbitrage.CommissionPercentage:
		stored = StoredCommissionPercentage
	case arbitrage.CommissionFixedNet:
		stored = StoredCommissionFixedNet
	default:
		return m
	}
	amount := res.CommissionAmount
	m.HasCommission = true
	m.CommissionType = &stored
	m.CommissionAmount = &amount
	if res.CommissionPercentage != nil {
		pct := *res.CommissionPercentage
		m.CommissionPercentage = &pct
	}
	return m
}

func (m *Movement) CommissionMode() arbitrage.CommissionMode {
	if m == nil || !m.HasCommission || m.CommissionType == nil {
		return arbitrage.CommissionNone
	}
	switch *m.CommissionType {
	case StoredCommissionPercentage:
		return arbitrage.CommissionPercentage
	case StoredCommissionFixedNet:
		return arbitrage.CommissionFixedNet
	default:
		return arbitrage.CommissionNone
	}
}

// Commission rebuilds the variant the row was computed with.
func (m *Movement) Commission() arbitrage.Commission {
	switch m.CommissionMode() {
	case arbitrage.CommissionPercentage:
		if m.CommissionPercentage != nil {
			return arbitrage.Percentage(*m.CommissionPercentage)
		}
	case arbitrage.CommissionFixedNet:
		return arbitrage.FixedNet(m.NetProceeds)
	}
	return arbitrage.NoCommission()
}

// Input returns the calculator input the row was computed from.
func (m *Movement) Input() arbitrage.TransactionInput {
	return arbitrage.TransactionInput{
		Capital:    m.Capital,
		BuyPrice:   m.BuyPrice,
		SellPrice:  m.SellPrice,
		Commission: m.Commission(),
	}
}
