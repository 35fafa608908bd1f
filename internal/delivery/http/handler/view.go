package handler

import (
	"net/http"

	"github.com/SaiDecoratives/templehub-catalog/internal/domain"
)

// productView returns a copy of the product with each stored image filename
// rewritten to a fully qualified URL under the serving host. The store keeps
// filenames; only responses carry URLs, and the rewrite is never persisted.
func productView(r *http.Request, product *domain.Product) domain.Product {
	view := *product

	base := requestBaseURL(r)
	urls := make([]string, len(product.Images))
	for i, filename := range product.Images {
		urls[i] = base + "/images/" + filename
	}
	view.Images = urls

	return view
}

// requestBaseURL reconstructs the scheme and host the client used, honoring
// a reverse proxy's X-Forwarded-Proto.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
