// Command apod fetches Astronomy Picture of the Day entries from the
// command line. The API key is read from NASA_API_KEY (a .env file in the
// working directory is honored); DEMO_KEY is used as a fallback.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	stellaria "github.com/stellaria/client-go"
)

func main() {
	args := os.Args[1:]

	jsonOut := false
	if len(args) > 0 && args[0] == "-json" {
		jsonOut = true
		args = args[1:]
	}
	if len(args) < 1 {
		fatal("usage: apod [-json] <today | date <YYYY-MM-DD> | range <start> <end> | random <n>>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := stellaria.New(apiKey())
	if err != nil {
		fatal("create client: %v", err)
	}

	var entries []stellaria.Entry

	switch args[0] {
	case "today":
		entry, err := client.APOD().Today(ctx)
		if err != nil {
			fatal("fetch today: %v", err)
		}
		entries = []stellaria.Entry{*entry}

	case "date":
		if len(args) < 2 {
			fatal("usage: apod date <YYYY-MM-DD>")
		}
		entry, err := client.APOD().ByDate(ctx, parseDate(args[1]))
		if err != nil {
			fatal("fetch %s: %v", args[1], err)
		}
		entries = []stellaria.Entry{*entry}

	case "range":
		if len(args) < 3 {
			fatal("usage: apod range <start> <end>")
		}
		entries, err = client.APOD().Range(ctx, parseDate(args[1]), parseDate(args[2]))
		if err != nil {
			fatal("fetch range: %v", err)
		}

	case "random":
		if len(args) < 2 {
			fatal("usage: apod random <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fatal("invalid count %q", args[1])
		}
		entries, err = client.APOD().Random(ctx, n)
		if err != nil {
			fatal("fetch random: %v", err)
		}

	default:
		fatal("unknown command: %s", args[0])
	}

	if jsonOut {
		if err := json.NewEncoder(os.Stdout).Encode(entries); err != nil {
			fatal("encode entries: %v", err)
		}
		return
	}

	for _, entry := range entries {
		fmt.Printf("%s  %s\n", entry.Date.Format("2006-01-02"), entry.Title)
		fmt.Printf("    %s\n", entry.URL)
		if entry.Copyright != "" {
			fmt.Printf("    © %s\n", entry.Copyright)
		}
	}

	if limit := client.RateLimit(); limit.Known() {
		fmt.Fprintf(os.Stderr, "rate limit: %d/%d remaining\n", limit.Remaining, limit.Limit)
	}
}

func apiKey() string {
	_ = godotenv.Load()
	if key := os.Getenv(stellaria.EnvAPIKey); key != "" {
		return key
	}
	return stellaria.DemoKey
}

func parseDate(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		fatal("invalid date %q, want YYYY-MM-DD", s)
	}
	return d
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
