package api

// APODEntry is the wire representation of a single APOD item.
type APODEntry struct {
	Copyright      string `json:"copyright"`
	Date           string `json:"date"`
	Explanation    string `json:"explanation"`
	HDURL          string `json:"hdurl"`
	MediaType      string `json:"media_type"`
	ServiceVersion string `json:"service_version"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	ThumbnailURL   string `json:"thumbnail_url"`
}
