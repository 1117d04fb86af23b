package domain

import "time"

// BalanceSample is one observed wallet/transfer balance reading.
// Corresponds to the balance_data table.
type BalanceSample struct {
	ExchangeID      int64     // exchange identifier
	TokenSymbol     string    // token or pair symbol
	WalletBalance   float64   // on-exchange wallet balance
	TransferBalance float64   // in-transfer balance
	Timestamp       time.Time // observation time (UTC)
}
