// Package feed provides the minimal HTTP client for the dataset data-status
// endpoint.
//
// A Client issues a single GET per Fetch call, with no retries and no
// caching, and classifies failures with the ErrNetwork, ErrHTTP (plus
// *HTTPError carrying the status code), and ErrParse markers. Options let
// tests supply custom HTTP clients or clocks without modifying production
// code.
package feed
