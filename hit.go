package main

import (
	"context"
	"strings"
)

// Hit is a single image search result, copied verbatim from the source API.
type Hit struct {
	ID           string  `json:"id"`
	Tags         string  `json:"tags"`
	ThumbnailURL string  `json:"thumbnailUrl"`
	FullURL      string  `json:"fullUrl"`
	Source       string  `json:"source"`
	PageURL      string  `json:"pageUrl"`
	Artist       string  `json:"artist"`
	Aspect       float32 `json:"aspect"`
}

// Anchor is the html element id the gallery renders for this hit.
func (h Hit) Anchor() string {
	return "hit-" + strings.ReplaceAll(h.ID, "/", "-")
}

type ResultPage struct {
	Total     int   `json:"total"`
	TotalHits int   `json:"totalHits"`
	Hits      []Hit `json:"hits"`
}

type ImageSearcher interface {
	Search(ctx context.Context, query string, page int) (ResultPage, error)
	Type() string
	PageSize() int
}

func aspect(width, height float32) float32 {
	if height == 0 {
		return 0
	}
	return width / height
}
