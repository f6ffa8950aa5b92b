// Package fortiadc provides a Go client for the FortiADC management REST API.
//
// The management API is served directly by the appliance over HTTPS. Every
// response wraps its result in a JSON envelope whose "payload" key carries
// either the actual data or a negative vendor error code. This package hides
// the envelope and the token lifecycle: it logs in with username/password,
// installs the returned bearer token on the session, transparently refreshes
// it once when a request comes back 401, and translates vendor error codes
// into messages and typed errors.
//
// # Authentication
//
// Login happens against POST /api/user/login with a JSON credential body.
// The appliance answers with a token that must be presented on subsequent
// requests as "Authorization: Bearer <token>". Tokens expire server-side;
// the client re-authenticates and retries a request exactly once when it
// observes a 401.
//
// # Basic Usage
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    fortiadc "github.com/lexfrei/go-fortiadc"
//	)
//
//	func main() {
//	    client, err := fortiadc.New(fortiadc.Config{
//	        BaseURL:  "https://10.0.0.5",
//	        Username: "admin",
//	        Password: "secret",
//	        // Most appliances ship with a self-signed certificate.
//	        InsecureSkipVerify: true,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    ctx := context.Background()
//	    err = client.WithSession(ctx, func(c *fortiadc.Client) error {
//	        resp, err := c.Get(ctx, "/api/load_balance_virtual_server", nil)
//	        if err != nil {
//	            return err
//	        }
//	        result, err := c.HandleResponse(ctx, resp)
//	        if err != nil {
//	            return err
//	        }
//	        if result.IsError {
//	            return result.Err()
//	        }
//	        fmt.Println(string(result.Payload))
//	        return nil
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Error Handling
//
// HTTP-level failures (connection errors, rejected credentials) surface as
// regular Go errors; check for ErrAuthenticationFailed with errors.Is.
// Application-level failures arrive inside a 200 response as a negative
// payload and surface as Result values; Result.Err builds a typed *APIError
// whose Kind is derived from a static code table. HTTP 404 is deliberately
// not an error at this layer: lookups legitimately miss and the caller
// decides what absence means.
//
// # Thread Safety
//
// A Client owns a single authenticated session and is intended for
// synchronous use. Callers that need parallelism should hold one Client per
// goroutine or serialize access externally.
package fortiadc
