package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds the proxy selector used by outbound transports:
// detector calls and evidence fetches. Explicitly configured proxy URLs
// take precedence; with none set, the standard proxy environment
// variables (including NO_PROXY) decide per request.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
