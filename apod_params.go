package stellaria

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// dateFormat is the calendar date layout used by the APOD API.
const dateFormat = "2006-01-02"

// FirstEntryDate is the date of the first APOD entry; queries before it
// are rejected upstream.
var FirstEntryDate = time.Date(1995, time.June, 16, 0, 0, 0, 0, time.UTC)

// MaxCount is the largest random sample size the APOD API accepts.
const MaxCount = 100

// ModeKind identifies which query mode a built Params carries.
type ModeKind int

const (
	// ModeSingleDate requests the entry for one calendar date.
	ModeSingleDate ModeKind = iota
	// ModeDateRange requests all entries in an inclusive date range.
	ModeDateRange
	// ModeCount requests a number of randomly chosen entries.
	ModeCount
)

func (k ModeKind) String() string {
	switch k {
	case ModeSingleDate:
		return "date"
	case ModeDateRange:
		return "date_range"
	case ModeCount:
		return "count"
	default:
		return fmt.Sprintf("ModeKind(%d)", int(k))
	}
}

// Params is a validated, immutable APOD query. Values are only produced
// by a successful ParamsBuilder.Build call.
type Params struct {
	kind   ModeKind
	date   time.Time
	start  time.Time
	end    time.Time
	count  int
	thumbs bool
}

// Kind returns the resolved query mode.
func (p *Params) Kind() ModeKind { return p.kind }

// Date returns the single date selection. Valid only for ModeSingleDate.
func (p *Params) Date() time.Time { return p.date }

// StartDate returns the range start. Valid only for ModeDateRange.
func (p *Params) StartDate() time.Time { return p.start }

// EndDate returns the range end. Valid only for ModeDateRange.
func (p *Params) EndDate() time.Time { return p.end }

// Count returns the random sample size. Valid only for ModeCount.
func (p *Params) Count() int { return p.count }

// Thumbs reports whether video thumbnail URLs were requested.
func (p *Params) Thumbs() bool { return p.thumbs }

// Values serializes the query into URL query parameters. The api_key
// parameter is not included; the transport appends it.
func (p *Params) Values() url.Values {
	v := url.Values{}
	switch p.kind {
	case ModeSingleDate:
		v.Set("date", p.date.Format(dateFormat))
	case ModeDateRange:
		v.Set("start_date", p.start.Format(dateFormat))
		v.Set("end_date", p.end.Format(dateFormat))
	case ModeCount:
		v.Set("count", strconv.Itoa(p.count))
	}
	if p.thumbs {
		v.Set("thumbs", "true")
	}
	return v
}

// ParamsBuilder stages an APOD query before validation. The three query
// modes are mutually exclusive; setting a second mode replaces the first
// (last call wins). A zero builder is ready to use: Build on it resolves
// to today's entry.
//
// The builder is not safe for concurrent use; each call site should use
// its own instance.
type ParamsBuilder struct {
	mode   *stagedMode
	thumbs bool
	now    func() time.Time // test hook, nil means time.Now
}

// stagedMode records the most recent mode-setting call, unvalidated.
type stagedMode struct {
	kind  ModeKind
	date  time.Time
	start time.Time
	end   time.Time
	count int
}

// NewParams returns an empty builder.
func NewParams() *ParamsBuilder {
	return &ParamsBuilder{}
}

// Date selects the entry for a single calendar date.
func (b *ParamsBuilder) Date(d time.Time) *ParamsBuilder {
	b.mode = &stagedMode{kind: ModeSingleDate, date: d}
	return b
}

// DateRange selects all entries between start and end, inclusive.
func (b *ParamsBuilder) DateRange(start, end time.Time) *ParamsBuilder {
	b.mode = &stagedMode{kind: ModeDateRange, start: start, end: end}
	return b
}

// Count selects n randomly chosen entries.
func (b *ParamsBuilder) Count(n int) *ParamsBuilder {
	b.mode = &stagedMode{kind: ModeCount, count: n}
	return b
}

// Thumbs requests thumbnail URLs for video entries.
func (b *ParamsBuilder) Thumbs(enabled bool) *ParamsBuilder {
	b.thumbs = enabled
	return b
}

// Build validates the staged query and returns an immutable Params.
// Validation failures wrap ErrInvalidDateRange, ErrInvalidCount or
// ErrDateOutOfRange; a failed Build commits nothing and the builder can
// be corrected and rebuilt. With no mode staged, the query resolves to
// today's date in UTC at call time.
func (b *ParamsBuilder) Build() (*Params, error) {
	today := truncateToDate(b.clock()().UTC())

	p := &Params{thumbs: b.thumbs}

	if b.mode == nil {
		p.kind = ModeSingleDate
		p.date = today
		return p, nil
	}

	switch b.mode.kind {
	case ModeSingleDate:
		date := truncateToDate(b.mode.date)
		if err := checkArchiveWindow(date, today); err != nil {
			return nil, err
		}
		p.kind = ModeSingleDate
		p.date = date

	case ModeDateRange:
		start := truncateToDate(b.mode.start)
		end := truncateToDate(b.mode.end)
		if start.After(end) {
			return nil, &ParamsError{
				Sentinel: ErrInvalidDateRange,
				Detail:   fmt.Sprintf("start date %s is after end date %s", start.Format(dateFormat), end.Format(dateFormat)),
			}
		}
		if err := checkArchiveWindow(start, today); err != nil {
			return nil, err
		}
		if err := checkArchiveWindow(end, today); err != nil {
			return nil, err
		}
		p.kind = ModeDateRange
		p.start = start
		p.end = end

	case ModeCount:
		if b.mode.count < 1 || b.mode.count > MaxCount {
			return nil, &ParamsError{
				Sentinel: ErrInvalidCount,
				Detail:   fmt.Sprintf("count must be between 1 and %d, got %d", MaxCount, b.mode.count),
			}
		}
		p.kind = ModeCount
		p.count = b.mode.count
	}

	return p, nil
}

func (b *ParamsBuilder) clock() func() time.Time {
	if b.now != nil {
		return b.now
	}
	return time.Now
}

// checkArchiveWindow rejects dates before the first APOD entry or after
// today (UTC).
func checkArchiveWindow(date, today time.Time) error {
	if date.Before(FirstEntryDate) || date.After(today) {
		return &ParamsError{
			Sentinel: ErrDateOutOfRange,
			Detail: fmt.Sprintf("date %s must be between %s and %s",
				date.Format(dateFormat), FirstEntryDate.Format(dateFormat), today.Format(dateFormat)),
		}
	}
	return nil
}

// truncateToDate drops the time-of-day component, keeping the wall-clock
// calendar date as the caller supplied it. Dates are compared in UTC.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
