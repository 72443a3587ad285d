// Package mcp exposes the page reading engine as MCP tools over stdio.
//
// The tool surface maps one-to-one onto engine operations:
//
//   - web_search: find URLs worth visiting
//   - visit_page: fetch, extract, chunk, and start a session
//   - load_more: advance the cursor to the next chunk
//   - read_chunk: random-access chunk lookup, cursor untouched
//   - page_status: where navigation stands
//   - search_on_page / search_next_on_page: resumable substring search
//   - extract_news_article, scrape_product, scrape_social_profile:
//     one-shot structured extractions, no session involved
//
// Handlers validate parameters, call the engine, and render JSON text
// results; engine errors map onto MCP error codes (-32001 no session,
// -32002 expired, -32003 chunk out of range, -32004 no active search,
// -32005 fetch failed). stdout carries the protocol, so nothing here
// ever prints to it.
package mcp
