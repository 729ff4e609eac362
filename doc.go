// Package stellaria provides a Go client SDK for NASA's public Web APIs,
// currently covering the Astronomy Picture of the Day (APOD) endpoint.
//
// Queries are built with a validating parameter builder that resolves to
// exactly one of three mutually exclusive modes: a single date, an
// inclusive date range, or a random sample count.
//
// Basic usage:
//
//	client, err := stellaria.New("your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Today's picture
//	entry, err := client.APOD().Today(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(entry.Title)
//
//	// A month of pictures
//	params, err := stellaria.NewParams().
//	    DateRange(start, end).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	entries, err := client.APOD().Get(ctx, params)
//
// NASA's public demo key (stellaria.DemoKey) works for light use; register
// at https://api.nasa.gov for a key with higher rate limits.
package stellaria
