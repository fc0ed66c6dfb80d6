// Package client provides an HTTP client for the Aruba ClearPass REST API.
//
// The client wraps [github.com/go-resty/resty/v2]. It exchanges OAuth
// credentials for a bearer token once, when it is created, and then offers
// generic GET, POST, PUT and DELETE helpers against the server's /api path.
//
// # Basic Usage
//
//	c, err := client.New(ctx, "https://cppm.example.com", client.Credentials{
//	    ClientID:     "api-client",
//	    ClientSecret: "secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := c.Get(ctx, "/network-device", nil, url.Values{"limit": {"10"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(resp.Body()))
//
// # Configuration
//
// Options are supplied as [Option] functions passed to [New]. Invalid values
// are silently ignored and the default is retained. [LoadConfig] reads the
// connection settings from CLEARPASS_* environment variables and
// [NewFromConfig] builds a client from them.
//
// # Authentication
//
// The grant type defaults to client_credentials; set [Credentials.GrantType]
// to "password" for the password grant. The token is never refreshed and
// requests are never retried. Create a new [Client] when the token expires.
//
// # Errors
//
// Responses with a 4xx or 5xx status are returned as [*HTTPError]. A token
// response without an access_token yields an error matching
// [ErrInvalidToken]. Transport errors are wrapped and returned as is.
//
// # Logging
//
// Implement [RequestLogger] and supply it via [WithRequestLogger] to
// integrate with your logging library, or use [NewZerologLogger]. The default
// [NoopLogger] discards all log output. The client never logs credentials or
// tokens itself, but [WithDebug] dumps full request bodies.
package client
