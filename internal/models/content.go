// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Testimonial is a member success story shown on the landing page.
type Testimonial struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Testimonial string    `json:"testimonial"`
	Profit      string    `json:"profit"`
	Rating      int       `json:"rating"`
	Date        string    `json:"date"`
	Photo       *string   `json:"photo"`
	ProfitImage *string   `json:"profitImage"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TestimonialFields is the create/update payload for testimonials.
type TestimonialFields struct {
	Name        *string `json:"name"`
	Testimonial *string `json:"testimonial"`
	Profit      *string `json:"profit"`
	Rating      *int    `json:"rating"`
	Date        *string `json:"date"`
	Photo       *string `json:"photo"`
	ProfitImage *string `json:"profitImage"`
}

func (f TestimonialFields) Validate(partial bool) error {
	return firstError(
		requiredString("name", f.Name, 255, partial),
		requiredString("testimonial", f.Testimonial, 0, partial),
		requiredString("profit", f.Profit, 100, partial),
		intRange("rating", f.Rating, 1, 5),
		optionalString("date", f.Date, 20),
		optionalString("photo", f.Photo, 500),
		optionalString("profitImage", f.ProfitImage, 500),
	)
}

func (f TestimonialFields) Columns() ([]string, []any) {
	var c columnSet
	addValue(&c, "name", f.Name)
	addValue(&c, "testimonial", f.Testimonial)
	addValue(&c, "profit", f.Profit)
	addValue(&c, "rating", f.Rating)
	addValue(&c, "date", f.Date)
	c.addNullable("photo", f.Photo)
	c.addNullable("profit_image", f.ProfitImage)
	return c.result()
}

// VideoLesson is an entry in the video library. Locked lessons hide their
// playback URLs from anonymous visitors.
type VideoLesson struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    string    `json:"duration"`
	Category    string    `json:"category"`
	Thumbnail   *string   `json:"thumbnail"`
	VideoURL    *string   `json:"videoUrl"`
	YoutubeID   *string   `json:"youtubeId"`
	Locked      bool      `json:"locked"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Redacted returns a copy without playback references.
func (v VideoLesson) Redacted() VideoLesson {
	v.VideoURL = nil
	v.YoutubeID = nil
	return v
}

// VideoLessonFields is the create/update payload for video lessons.
type VideoLessonFields struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Duration    *string `json:"duration"`
	Category    *string `json:"category"`
	Thumbnail   *string `json:"thumbnail"`
	VideoURL    *string `json:"videoUrl"`
	YoutubeID   *string `json:"youtubeId"`
	Locked      *bool   `json:"locked"`
}

func (f VideoLessonFields) Validate(partial bool) error {
	return firstError(
		requiredString("title", f.Title, 255, partial),
		requiredString("description", f.Description, 0, partial),
		requiredString("duration", f.Duration, 50, partial),
		requiredString("category", f.Category, 100, partial),
		optionalString("thumbnail", f.Thumbnail, 500),
		optionalString("videoUrl", f.VideoURL, 500),
		optionalString("youtubeId", f.YoutubeID, 100),
	)
}

func (f VideoLessonFields) Columns() ([]string, []any) {
	var c columnSet
	addValue(&c, "title", f.Title)
	addValue(&c, "description", f.Description)
	addValue(&c, "duration", f.Duration)
	addValue(&c, "category", f.Category)
	c.addNullable("thumbnail", f.Thumbnail)
	c.addNullable("video_url", f.VideoURL)
	c.addNullable("youtube_id", f.YoutubeID)
	addValue(&c, "locked", f.Locked)
	return c.result()
}

// BlogPost is an article in the blog. Content is Markdown.
type BlogPost struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Date      string    `json:"date"`
	Category  string    `json:"category"`
	ReadTime  string    `json:"readTime"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlogPostFields is the create/update payload for blog posts.
type BlogPostFields struct {
	Title    *string `json:"title"`
	Excerpt  *string `json:"excerpt"`
	Content  *string `json:"content"`
	Author   *string `json:"author"`
	Date     *string `json:"date"`
	Category *string `json:"category"`
	ReadTime *string `json:"readTime"`
}

func (f BlogPostFields) Validate(partial bool) error {
	return firstError(
		requiredString("title", f.Title, 255, partial),
		requiredString("excerpt", f.Excerpt, 0, partial),
		requiredString("content", f.Content, 0, partial),
		requiredString("author", f.Author, 255, partial),
		requiredString("date", f.Date, 50, partial),
		requiredString("category", f.Category, 100, partial),
		requiredString("readTime", f.ReadTime, 50, partial),
	)
}

func (f BlogPostFields) Columns() ([]string, []any) {
	var c columnSet
	addValue(&c, "title", f.Title)
	addValue(&c, "excerpt", f.Excerpt)
	addValue(&c, "content", f.Content)
	addValue(&c, "author", f.Author)
	addValue(&c, "date", f.Date)
	addValue(&c, "category", f.Category)
	addValue(&c, "read_time", f.ReadTime)
	return c.result()
}

// Module is a course module in the curriculum.
type Module struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ModuleFields is the create/update payload for modules.
type ModuleFields struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (f ModuleFields) Validate(partial bool) error {
	return firstError(
		requiredString("title", f.Title, 255, partial),
		requiredString("content", f.Content, 0, partial),
	)
}

func (f ModuleFields) Columns() ([]string, []any) {
	var c columnSet
	addValue(&c, "title", f.Title)
	addValue(&c, "content", f.Content)
	return c.result()
}

// GlossaryTerm is an options-trading vocabulary entry.
type GlossaryTerm struct {
	ID         int64     `json:"id"`
	Term       string    `json:"term"`
	Definition string    `json:"definition"`
	CreatedAt  time.Time `json:"createdAt"`
}

// GlossaryTermFields is the create/update payload for glossary terms.
type GlossaryTermFields struct {
	Term       *string `json:"term"`
	Definition *string `json:"definition"`
}

func (f GlossaryTermFields) Validate(partial bool) error {
	return firstError(
		requiredString("term", f.Term, 255, partial),
		requiredString("definition", f.Definition, 0, partial),
	)
}

func (f GlossaryTermFields) Columns() ([]string, []any) {
	var c columnSet
	addValue(&c, "term", f.Term)
	addValue(&c, "definition", f.Definition)
	return c.result()
}

// Stock is a watchlist entry. Prices are entered by hand; no market feed
// keeps them current.
type Stock struct {
	ID            int64     `json:"id"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Logo          *string   `json:"logo"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// StockFields is the create/update payload for watchlist entries.
type StockFields struct {
	Symbol        *string  `json:"symbol"`
	Name          *string  `json:"name"`
	Price         *float64 `json:"price"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"changePercent"`
	Logo          *string  `json:"logo"`
}

func (f StockFields) Validate(partial bool) error {
	return firstError(
		requiredString("symbol", f.Symbol, 10, partial),
		requiredString("name", f.Name, 255, partial),
		requiredNumber("price", f.Price, partial),
		requiredNumber("change", f.Change, partial),
		requiredNumber("changePercent", f.ChangePercent, partial),
		optionalString("logo", f.Logo, 500),
	)
}

func (f StockFields) Columns() ([]string, []any) {
	var c columnSet
	addValue(&c, "symbol", f.Symbol)
	addValue(&c, "name", f.Name)
	addValue(&c, "price", f.Price)
	addValue(&c, "change", f.Change)
	addValue(&c, "change_percent", f.ChangePercent)
	c.addNullable("logo", f.Logo)
	return c.result()
}
