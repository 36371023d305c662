package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

type PixabaySearchItem struct {
	Id              int     `json:"id"`
	Tags            string  `json:"tags"`
	WebFormatUrl    string  `json:"webformatURL"`
	WebFormatWidth  float32 `json:"webformatWidth"`
	WebFormatHeight float32 `json:"webformatHeight"`
	LargeImageUrl   string  `json:"largeImageURL"`
	UserId          int     `json:"user_id"`
	User            string  `json:"user"`
	PageUrl         string  `json:"pageURL"`
}

type PixabaySearchResult struct {
	Total     int                 `json:"total"`
	TotalHits int                 `json:"totalHits"`
	Hits      []PixabaySearchItem `json:"hits"`
}

type PixabayApi struct {
	Http     *http.Client
	apiKey   string
	baseUrl  string
	pageSize int
	log      *slog.Logger
}

func NewPixabayApi(cfg *Config, client *http.Client, logger *slog.Logger) *PixabayApi {
	return &PixabayApi{
		Http:     client,
		apiKey:   cfg.Pixabay.Key,
		baseUrl:  "https://pixabay.com/api/",
		pageSize: clampPageSize(cfg.PerPage, 3, 200),
		log:      logger.With("component", "pixabay"),
	}
}

func (api *PixabayApi) Type() string {
	return "pixabay"
}

func (api *PixabayApi) PageSize() int { return api.pageSize }

func (api *PixabayApi) Search(ctx context.Context, query string, page int) (ResultPage, error) {
	qParam := url.Values{}
	qParam.Add("key", api.apiKey)
	qParam.Add("q", query)
	qParam.Add("page", strconv.Itoa(page))
	qParam.Add("per_page", strconv.Itoa(api.PageSize()))
	qParam.Add("image_type", "photo")
	qParam.Add("orientation", "horizontal")
	getReq, err := http.NewRequestWithContext(ctx, http.MethodGet, api.baseUrl+"?"+qParam.Encode(), nil)
	if err != nil {
		return ResultPage{}, fmt.Errorf("create request: %w", err)
	}

	data := PixabaySearchResult{}
	if err := fetchJSON(api.Http, api.log, getReq, &data); err != nil {
		return ResultPage{}, err
	}
	output := make([]Hit, len(data.Hits))
	for i, el := range data.Hits {
		output[i].ID = "pixabay/" + strconv.Itoa(el.Id)
		output[i].Tags = el.Tags
		output[i].Source = "Pixabay"
		output[i].PageURL = el.PageUrl
		output[i].Artist = el.User
		output[i].Aspect = aspect(el.WebFormatWidth, el.WebFormatHeight)
		output[i].FullURL = el.LargeImageUrl
		output[i].ThumbnailURL = el.WebFormatUrl
	}
	api.log.Debug("search", "q", query, "page", page, "hits", len(output), "totalHits", data.TotalHits)
	return ResultPage{Total: data.Total, TotalHits: data.TotalHits, Hits: output}, nil
}
