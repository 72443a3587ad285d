// Package websearch finds pages on the open web.
//
// The one shipped provider scrapes DuckDuckGo's HTML endpoint, which
// needs no API key and no JavaScript. Providers implement the Searcher
// interface and share the server's page fetcher, so web searches obey
// the same rate limit and User-Agent as page visits.
package websearch
