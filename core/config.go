package core

import (
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config money market config
type Config struct {
	App     App            `json:"app"`
	DB      db.Config      `json:"db"`
	Redis   Redis          `json:"redis"`
	Oracle  Oracle         `json:"oracle"`
	Auth    Auth           `json:"auth"`
	Worker  Worker         `json:"worker"`
	Policy  PolicyConfig   `json:"policy"`
	Markets []MarketConfig `json:"markets"`
	Admins  []string       `json:"admins"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	if len(c.Admins) <= 0 || userID == "" {
		return false
	}

	for _, a := range c.Admins {
		if a == userID {
			return true
		}
	}

	return false
}

// App app config
type App struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Port     int    `json:"port"`
}

// Redis liquidity cache shared by workers and the api, in process cache when Addr is empty
type Redis struct {
	Addr string `json:"addr"`
	DB   int    `json:"db"`
}

// Oracle remote ticker endpoint, prices are only set by admins when empty
type Oracle struct {
	Endpoint string `json:"endpoint"`
	// cached price lifetime in seconds
	CacheTTL int64 `json:"cache_ttl"`
}

// Auth session config
type Auth struct {
	JwtSecret string `json:"jwt_secret"`
	// token lifetime in seconds
	TokenTTL int64 `json:"token_ttl"`
}

// Worker worker schedules, cron spec
type Worker struct {
	Accrual   string `json:"accrual"`
	Liquidity string `json:"liquidity"`
	Price     string `json:"price"`
}

// PolicyConfig initial risk policy, zero values fall back to DefaultPolicy
type PolicyConfig struct {
	CloseFactor               decimal.Decimal `json:"close_factor"`
	LiquidationIncentive      decimal.Decimal `json:"liquidation_incentive"`
	ProtocolSeizeShare        decimal.Decimal `json:"protocol_seize_share"`
	FixedDebtBlocksCollateral *bool           `json:"fixed_debt_blocks_collateral"`
	FixedDebtInShortfall      bool            `json:"fixed_debt_in_shortfall"`
}

// Build policy with defaults applied
func (c PolicyConfig) Build() Policy {
	p := DefaultPolicy()
	if c.CloseFactor.IsPositive() {
		p.CloseFactor = c.CloseFactor
	}

	if c.LiquidationIncentive.IsPositive() {
		p.LiquidationIncentive = c.LiquidationIncentive
	}

	if !c.ProtocolSeizeShare.IsZero() {
		p.ProtocolSeizeShare = c.ProtocolSeizeShare
	}

	if c.FixedDebtBlocksCollateral != nil {
		p.FixedDebtBlocksCollateral = *c.FixedDebtBlocksCollateral
	}

	p.FixedDebtInShortfall = c.FixedDebtInShortfall
	return p
}

// MarketConfig market listed at startup
type MarketConfig struct {
	Symbol            string          `json:"symbol"`
	AssetID           string          `json:"asset_id"`
	Decimals          int32           `json:"decimals"`
	InitExchangeRate  decimal.Decimal `json:"init_exchange_rate"`
	ReserveFactor     decimal.Decimal `json:"reserve_factor"`
	RestPeriod        int64           `json:"rest_period"`
	EarlyRepayPenalty decimal.Decimal `json:"early_repay_penalty"`
	CollateralFactor  decimal.Decimal `json:"collateral_factor"`
	BaseRate          decimal.Decimal `json:"base_rate"`
	Multiplier        decimal.Decimal `json:"multiplier"`
	JumpMultiplier    decimal.Decimal `json:"jump_multiplier"`
	Kink              decimal.Decimal `json:"kink"`
}

// Market listing built from config
func (c MarketConfig) Market() *Market {
	return &Market{
		Symbol:            c.Symbol,
		AssetID:           c.AssetID,
		Decimals:          c.Decimals,
		InitExchangeRate:  c.InitExchangeRate,
		ReserveFactor:     c.ReserveFactor,
		RestPeriod:        c.RestPeriod,
		EarlyRepayPenalty: c.EarlyRepayPenalty,
		CollateralFactor:  c.CollateralFactor,
		BaseRate:          c.BaseRate,
		Multiplier:        c.Multiplier,
		JumpMultiplier:    c.JumpMultiplier,
		Kink:              c.Kink,
	}
}
