// Package entity defines the domain models for the watchlist (symbollist) feature.
package entity

import "time"

// Symbol is one ticker on the dashboard watchlist.
// Code is passed to the quote provider as-is; SortKey drives sidebar order.
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:20;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Exchange  string    `gorm:"size:50;not null;default:''"`
	IsActive  bool      `gorm:"not null;default:true"`
	SortKey   int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// DefaultWatchlist はシード用の初期ウォッチリストです。
func DefaultWatchlist() []Symbol {
	return []Symbol{
		{Code: "AAPL", Name: "Apple Inc.", Exchange: "NASDAQ", IsActive: true, SortKey: 1},
		{Code: "TSLA", Name: "Tesla, Inc.", Exchange: "NASDAQ", IsActive: true, SortKey: 2},
		{Code: "MSFT", Name: "Microsoft Corporation", Exchange: "NASDAQ", IsActive: true, SortKey: 3},
		{Code: "GOOGL", Name: "Alphabet Inc.", Exchange: "NASDAQ", IsActive: true, SortKey: 4},
		{Code: "AMZN", Name: "Amazon.com, Inc.", Exchange: "NASDAQ", IsActive: true, SortKey: 5},
		{Code: "IBM", Name: "International Business Machines", Exchange: "NYSE", IsActive: true, SortKey: 6},
	}
}
