// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Visitor is one tracked browsing session on the public site.
type Visitor struct {
	ID                  int64     `json:"id"`
	SessionID           string    `json:"sessionId"`
	IPAddress           string    `json:"ipAddress"`
	UserAgent           string    `json:"userAgent"`
	Referrer            string    `json:"referrer"`
	LandingPage         string    `json:"landingPage"`
	IsTiktok            bool      `json:"isTikTok"`
	FirstVisit          time.Time `json:"firstVisit"`
	LastActivity        time.Time `json:"lastActivity"`
	TotalDuration       int       `json:"totalDuration"`
	PageViews           int       `json:"pageViews"`
	ConvertedToTelegram bool      `json:"convertedToTelegram"`
}

// NewVisitor describes a visitor being recorded for the first time.
// IP, user agent and TikTok detection come from the request, not the client.
type NewVisitor struct {
	SessionID   string
	IPAddress   string
	UserAgent   string
	Referrer    string
	LandingPage string
	IsTiktok    bool
}

// Validate checks the fields a tracking request must carry.
func (v NewVisitor) Validate() error {
	return firstError(
		requiredString("sessionId", &v.SessionID, 255, false),
		requiredString("landingPage", &v.LandingPage, 500, false),
		maxLength("ipAddress", v.IPAddress, 100),
	)
}

// VisitorUpdate is the activity payload sent while a visitor browses.
type VisitorUpdate struct {
	TotalDuration       *int  `json:"totalDuration"`
	PageViews           *int  `json:"pageViews"`
	ConvertedToTelegram *bool `json:"convertedToTelegram"`
}

func (f VisitorUpdate) Validate(bool) error {
	return firstError(
		nonNegative("totalDuration", f.TotalDuration),
		nonNegative("pageViews", f.PageViews),
	)
}

func (f VisitorUpdate) Columns() ([]string, []any) {
	var c columnSet
	addValue(&c, "total_duration", f.TotalDuration)
	addValue(&c, "page_views", f.PageViews)
	addValue(&c, "converted_to_telegram", f.ConvertedToTelegram)
	return c.result()
}
