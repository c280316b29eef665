// Package innertube provides the HTTP transport for innertube-style endpoints.
//
// The Client posts a JSON body carrying the client context of a Profile to
// {base}/youtubei/v1/{endpoint} and returns the decoded response document.
// Requests pass through a token bucket RateLimiter that also honours
// Retry-After on 429 responses. Network failures, throttling and 5xx
// responses become *domain.TransportError; error bodies and other 4xx
// responses become *domain.ServiceError.
//
// PlainResolver and Downloader cover media: the former stamps the playback
// nonce onto plain format URLs, the latter streams a URL in ranged chunks.
package innertube
