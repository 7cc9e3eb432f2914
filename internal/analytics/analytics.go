// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package analytics derives dashboard figures from the visitor log.
package analytics

import (
	"strings"

	"github.com/mileusna/useragent"

	"otusite/internal/models"
)

// RecentLimit is how many of the latest visitors the dashboard shows.
const RecentLimit = 50

// tiktokMarkers identify the TikTok in-app browser in a user agent.
var tiktokMarkers = []string{"TikTok", "musical_ly", "BytedanceWebview"}

// Summary is the aggregate shown on the admin dashboard.
type Summary struct {
	TotalVisitors  int            `json:"totalVisitors"`
	TiktokVisitors int            `json:"tiktokVisitors"`
	AvgDuration    float64        `json:"avgDuration"`    // seconds
	ConversionRate float64        `json:"conversionRate"` // percent, 0..100
	Devices        map[string]int `json:"devices"`
}

// Summarize scans the full visitor log. An empty log yields zeros.
func Summarize(visitors []models.Visitor) Summary {
	s := Summary{
		TotalVisitors: len(visitors),
		Devices:       map[string]int{},
	}
	if len(visitors) == 0 {
		return s
	}

	var duration, conversions int
	for _, v := range visitors {
		if v.IsTiktok {
			s.TiktokVisitors++
		}
		if v.ConvertedToTelegram {
			conversions++
		}
		duration += v.TotalDuration
		s.Devices[DeviceType(v.UserAgent)]++
	}

	s.AvgDuration = float64(duration) / float64(len(visitors))
	s.ConversionRate = float64(conversions) / float64(len(visitors)) * 100
	return s
}

// Recent returns the last RecentLimit visitors of a log ordered by first
// visit. The result shares the input's backing array.
func Recent(visitors []models.Visitor) []models.Visitor {
	if len(visitors) > RecentLimit {
		return visitors[len(visitors)-RecentLimit:]
	}
	return visitors
}

// IsTikTok reports whether the user agent belongs to the TikTok in-app browser.
func IsTikTok(userAgent string) bool {
	for _, m := range tiktokMarkers {
		if strings.Contains(userAgent, m) {
			return true
		}
	}
	return false
}

// DeviceType classifies a user agent as mobile, tablet, bot, desktop or unknown.
func DeviceType(userAgent string) string {
	if userAgent == "" {
		return "unknown"
	}
	ua := useragent.Parse(userAgent)
	switch {
	case ua.Bot:
		return "bot"
	case ua.Tablet:
		return "tablet"
	case ua.Mobile:
		return "mobile"
	case ua.Desktop:
		return "desktop"
	default:
		return "unknown"
	}
}
