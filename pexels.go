package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

type PexelsPhoto struct {
	Id             int            `json:"id"`
	Width          float32        `json:"width"`
	Height         float32        `json:"height"`
	Url            string         `json:"url"`
	Alt            string         `json:"alt"`
	Photographer   string         `json:"photographer"`
	PhotographerId int            `json:"photographer_id"`
	Src            PexelsPhotoSrc `json:"src"`
}

type PexelsPhotoSrc struct {
	Original string `json:"original"`
	Large    string `json:"large"`
}

type PexelsSearchResult struct {
	TotalResults int           `json:"total_results"`
	Page         int           `json:"page"`
	PerPage      int           `json:"per_page"`
	Photos       []PexelsPhoto `json:"photos"`
}

type PexelsApi struct {
	Http     *http.Client
	apiKey   string
	baseUrl  string
	pageSize int
	log      *slog.Logger
}

func NewPexelsApi(cfg *Config, client *http.Client, logger *slog.Logger) *PexelsApi {
	return &PexelsApi{
		Http:     client,
		apiKey:   cfg.Pexels.Key,
		baseUrl:  "https://api.pexels.com/v1/search",
		pageSize: clampPageSize(cfg.PerPage, 1, 80),
		log:      logger.With("component", "pexels"),
	}
}

func (api *PexelsApi) Type() string {
	return "pexels"
}

func (api *PexelsApi) PageSize() int { return api.pageSize }

func (api *PexelsApi) Search(ctx context.Context, query string, page int) (ResultPage, error) {
	qParam := url.Values{}
	qParam.Add("query", query)
	qParam.Add("page", strconv.Itoa(page))
	qParam.Add("per_page", strconv.Itoa(api.PageSize()))
	getReq, err := http.NewRequestWithContext(ctx, http.MethodGet, api.baseUrl+"?"+qParam.Encode(), nil)
	if err != nil {
		return ResultPage{}, fmt.Errorf("create request: %w", err)
	}
	getReq.Header.Set("Authorization", api.apiKey)

	data := PexelsSearchResult{}
	if err := fetchJSON(api.Http, api.log, getReq, &data); err != nil {
		return ResultPage{}, err
	}
	output := make([]Hit, len(data.Photos))
	for i, el := range data.Photos {
		output[i].ID = "pexels/" + strconv.Itoa(el.Id)
		output[i].Tags = el.Alt
		output[i].Source = "Pexels"
		output[i].PageURL = el.Url
		output[i].Artist = el.Photographer
		output[i].Aspect = aspect(el.Width, el.Height)
		output[i].FullURL = el.Src.Original
		output[i].ThumbnailURL = el.Src.Large
	}
	return ResultPage{Total: data.TotalResults, TotalHits: data.TotalResults, Hits: output}, nil
}
