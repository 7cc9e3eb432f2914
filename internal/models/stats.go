// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// StatsID is the fixed key of the single stats row.
const StatsID = 1

// Stats holds the headline marketing numbers. Exactly one row exists.
type Stats struct {
	ID           int       `json:"id"`
	MemberCount  int       `json:"memberCount"`
	TradesCalled int       `json:"tradesCalled"`
	AvgProfit    int       `json:"avgProfit"`
	WinRate      int       `json:"winRate"`
	SuccessRate  int       `json:"successRate"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DefaultStats returns the values the stats row is provisioned with.
func DefaultStats() Stats {
	return Stats{
		ID:           StatsID,
		MemberCount:  1547,
		TradesCalled: 2489,
		AvgProfit:    789,
		WinRate:      76,
		SuccessRate:  89,
	}
}

// StatsFields is the update payload for the stats row.
type StatsFields struct {
	MemberCount  *int `json:"memberCount"`
	TradesCalled *int `json:"tradesCalled"`
	AvgProfit    *int `json:"avgProfit"`
	WinRate      *int `json:"winRate"`
	SuccessRate  *int `json:"successRate"`
}

// Validate checks the supplied counters. Stats are only ever updated, so
// every field is optional regardless of partial.
func (f StatsFields) Validate(bool) error {
	return firstError(
		nonNegative("memberCount", f.MemberCount),
		nonNegative("tradesCalled", f.TradesCalled),
		nonNegative("avgProfit", f.AvgProfit),
		intRange("winRate", f.WinRate, 0, 100),
		intRange("successRate", f.SuccessRate, 0, 100),
	)
}

func (f StatsFields) Columns() ([]string, []any) {
	var c columnSet
	addValue(&c, "member_count", f.MemberCount)
	addValue(&c, "trades_called", f.TradesCalled)
	addValue(&c, "avg_profit", f.AvgProfit)
	addValue(&c, "win_rate", f.WinRate)
	addValue(&c, "success_rate", f.SuccessRate)
	return c.result()
}
