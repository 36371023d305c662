package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

type UnsplashPhoto struct {
	Id             string             `json:"id"`
	Width          float32            `json:"width"`
	Height         float32            `json:"height"`
	Description    string             `json:"description"`
	AltDescription string             `json:"alt_description"`
	User           UnsplashUser       `json:"user"`
	Urls           UnsplashUrls       `json:"urls"`
	Links          UnsplashPhotoLinks `json:"links"`
}

type UnsplashUser struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type UnsplashPhotoLinks struct {
	Self     string `json:"self"`
	Html     string `json:"html"`
	Download string `json:"download"`
}

type UnsplashUrls struct {
	Regular string `json:"regular"`
	Raw     string `json:"raw"`
}

type UnsplashSearchResult struct {
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
	Results    []UnsplashPhoto `json:"results"`
}

type UnsplashApi struct {
	Http      *http.Client
	accessKey string
	baseUrl   string
	pageSize  int
	log       *slog.Logger
}

func NewUnsplashApi(cfg *Config, client *http.Client, logger *slog.Logger) *UnsplashApi {
	return &UnsplashApi{
		Http:      client,
		accessKey: cfg.Unsplash.AccessKey,
		baseUrl:   "https://api.unsplash.com/search/photos",
		pageSize:  clampPageSize(cfg.PerPage, 1, 30),
		log:       logger.With("component", "unsplash"),
	}
}

func (unsp *UnsplashApi) Type() string {
	return "unsplash"
}

func (unsp *UnsplashApi) PageSize() int { return unsp.pageSize }

func (unsp *UnsplashApi) Search(ctx context.Context, query string, page int) (ResultPage, error) {
	qParam := url.Values{}
	qParam.Add("query", query)
	qParam.Add("page", strconv.Itoa(page))
	qParam.Add("per_page", strconv.Itoa(unsp.PageSize()))
	getReq, err := http.NewRequestWithContext(ctx, http.MethodGet, unsp.baseUrl+"?"+qParam.Encode(), nil)
	if err != nil {
		return ResultPage{}, fmt.Errorf("create request: %w", err)
	}
	getReq.Header.Set("Accept-Version", "v1")
	getReq.Header.Set("Authorization", "Client-ID "+unsp.accessKey)

	data := UnsplashSearchResult{}
	if err := fetchJSON(unsp.Http, unsp.log, getReq, &data); err != nil {
		return ResultPage{}, err
	}
	output := make([]Hit, len(data.Results))
	for i, el := range data.Results {
		output[i].ID = "unsplash/" + el.Id
		output[i].Tags = el.Description
		if output[i].Tags == "" {
			output[i].Tags = el.AltDescription
		}
		output[i].Source = "Unsplash"
		output[i].PageURL = el.Links.Html
		output[i].Artist = el.User.Name
		output[i].Aspect = aspect(el.Width, el.Height)
		output[i].FullURL = el.Urls.Raw
		output[i].ThumbnailURL = el.Urls.Regular
	}
	return ResultPage{Total: data.Total, TotalHits: data.Total, Hits: output}, nil
}
