package stellaria

import (
	"context"
	"fmt"
	"time"

	"github.com/stellaria/client-go/internal/api"
)

// APOD is the Astronomy Picture of the Day service.
// Obtain it from Client.APOD; it is safe for concurrent use.
type APOD struct {
	api *api.Client
}

// Entry is a single APOD item.
// Entry is a pure data struct; all fetching goes through the APOD service.
type Entry struct {
	// Copyright holds the image owner, empty for public domain entries.
	Copyright   string
	Date        time.Time
	Explanation string
	// HDURL is the high-resolution media URL, when the upstream provides one.
	HDURL          string
	MediaType      string
	ServiceVersion string
	Title          string
	URL            string
	// ThumbnailURL is set for video entries when thumbnails were requested.
	ThumbnailURL string
}

// Get fetches the entries selected by params. A nil params fetches
// today's entry. Single-date queries return a one-element slice.
func (a *APOD) Get(ctx context.Context, params *Params) ([]Entry, error) {
	if params == nil {
		built, err := NewParams().Build()
		if err != nil {
			return nil, err
		}
		params = built
	}

	wire, err := a.api.GetAPOD(ctx, params.Values())
	if err != nil {
		return nil, wrapError(err)
	}

	entries := make([]Entry, 0, len(wire))
	for _, w := range wire {
		entry, err := entryFromWire(w)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Today fetches today's entry.
func (a *APOD) Today(ctx context.Context) (*Entry, error) {
	params, err := NewParams().Build()
	if err != nil {
		return nil, err
	}
	return a.getOne(ctx, params)
}

// ByDate fetches the entry for a single calendar date.
func (a *APOD) ByDate(ctx context.Context, date time.Time) (*Entry, error) {
	params, err := NewParams().Date(date).Build()
	if err != nil {
		return nil, err
	}
	return a.getOne(ctx, params)
}

// Range fetches all entries between start and end, inclusive.
func (a *APOD) Range(ctx context.Context, start, end time.Time) ([]Entry, error) {
	params, err := NewParams().DateRange(start, end).Build()
	if err != nil {
		return nil, err
	}
	return a.Get(ctx, params)
}

// Random fetches n randomly chosen entries from the archive.
func (a *APOD) Random(ctx context.Context, n int) ([]Entry, error) {
	params, err := NewParams().Count(n).Build()
	if err != nil {
		return nil, err
	}
	return a.Get(ctx, params)
}

func (a *APOD) getOne(ctx context.Context, params *Params) (*Entry, error) {
	entries, err := a.Get(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return &entries[0], nil
}

func entryFromWire(w api.APODEntry) (Entry, error) {
	date, err := time.ParseInLocation(dateFormat, w.Date, time.UTC)
	if err != nil {
		return Entry{}, fmt.Errorf("parse entry date %q: %w", w.Date, err)
	}
	return Entry{
		Copyright:      w.Copyright,
		Date:           date,
		Explanation:    w.Explanation,
		HDURL:          w.HDURL,
		MediaType:      w.MediaType,
		ServiceVersion: w.ServiceVersion,
		Title:          w.Title,
		URL:            w.URL,
		ThumbnailURL:   w.ThumbnailURL,
	}, nil
}
