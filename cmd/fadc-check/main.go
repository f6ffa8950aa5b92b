// Command fadc-check exercises the client against a real FortiADC appliance:
// it logs in, pulls a few read-only endpoints, and reports what came back.
// Useful for verifying credentials and firmware compatibility.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/lmittmann/tint"

	fortiadc "github.com/lexfrei/go-fortiadc"
	"github.com/lexfrei/go-fortiadc/observability"
)

var (
	host     = flag.String("host", os.Getenv("FADC_HOST"), "Appliance base URL, e.g. https://10.0.0.5 (or FADC_HOST)")
	username = flag.String("username", os.Getenv("FADC_USERNAME"), "Management username (or FADC_USERNAME)")
	password = flag.String("password", os.Getenv("FADC_PASSWORD"), "Management password (or FADC_PASSWORD)")
	insecure = flag.Bool("insecure", true, "Skip TLS certificate verification (factory self-signed certs)")
	verbose  = flag.Bool("verbose", false, "Log every request at debug level")
)

// Read-only endpoints worth probing on any appliance.
var probes = []struct {
	name string
	path string
}{
	{"virtual servers", "/api/load_balance_virtual_server"},
	{"real server pools", "/api/load_balance_pool"},
	{"error-code catalog", "/api/platform/errMsg"},
}

func main() {
	flag.Parse()

	if *host == "" || *username == "" || *password == "" {
		log.Fatal("host, username and password are required (flags or FADC_* environment variables)")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))

	client, err := fortiadc.New(fortiadc.Config{
		BaseURL:            *host,
		Username:           *username,
		Password:           *password,
		InsecureSkipVerify: *insecure,
		Logger:             observability.NewSlogLogger(logger),
	})
	if err != nil {
		log.Fatalf("create client: %v", err)
	}

	ctx := context.Background()

	err = client.WithSession(ctx, func(c *fortiadc.Client) error {
		fmt.Printf("connected to %s as %s\n\n", *host, *username)

		for _, probe := range probes {
			if err := runProbe(ctx, c, probe.name, probe.path); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Fatalf("check failed: %v", err)
	}
}

func runProbe(ctx context.Context, c *fortiadc.Client, name, path string) error {
	start := time.Now()

	resp, err := c.Do(ctx, "GET", path, url.Values{}, nil)
	if err != nil {
		return fmt.Errorf("probe %s: %w", name, err)
	}

	result, err := c.HandleResponse(ctx, resp)
	switch {
	case err != nil:
		fmt.Printf("✗ %-20s status=%d, unparseable body (%v)\n", name, resp.StatusCode, err)
	case result.IsError:
		fmt.Printf("✗ %-20s status=%d, appliance error: %s\n", name, resp.StatusCode, result.ErrorMessage)
	default:
		fmt.Printf("✓ %-20s status=%d, %d bytes of payload in %v\n",
			name, resp.StatusCode, len(result.Payload), time.Since(start).Round(time.Millisecond))
	}

	return nil
}
