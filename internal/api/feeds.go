package api

import (
	"fmt"
	"net/http"

	fegerrs "github.com/lmoran/feedreg/internal/errors"
	"github.com/lmoran/feedreg/internal/feedreg"
	"github.com/lmoran/feedreg/internal/serverutil"
)

const (
	maxURLLength   = 1000
	maxTitleLength = 100
)

type addFeedRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

func (a addFeedRequest) Validate() error {
	var details []fegerrs.Detail
	if a.URL == "" {
		details = append(details, fegerrs.Detail{Field: "url", Error: blankFieldMsg})
	} else if len(a.URL) > maxURLLength {
		details = append(details, fegerrs.Detail{
			Field: "url",
			Error: fmt.Sprintf("Ensure this field has no more than %d characters.", maxURLLength),
		})
	}
	if len(a.Title) > maxTitleLength {
		details = append(details, fegerrs.Detail{
			Field: "title",
			Error: fmt.Sprintf("Ensure this field has no more than %d characters.", maxTitleLength),
		})
	}
	if len(details) > 0 {
		return fegerrs.E(http.StatusBadRequest, "invalid feed payload", details)
	}

	return nil
}

type feedResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

func apiFeed(f feedreg.Feed) feedResponse {
	var title string
	if f.Title != nil {
		title = *f.Title
	}

	return feedResponse{
		ID:    f.ID,
		Title: title,
		URL:   f.URL,
	}
}

func (s Server) postAddFeed(w http.ResponseWriter, r *http.Request) error {
	body, err := serverutil.DecodeValid[addFeedRequest](r.Body)
	if err != nil {
		return err
	}

	feed, err := s.feeds.AddFeed(r.Context(), userID(r.Context()), body.URL, body.Title)
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusCreated, apiFeed(feed))
}

func (s Server) getFeeds(w http.ResponseWriter, r *http.Request) error {
	feeds, err := s.feeds.ListFeeds(r.Context(), userID(r.Context()))
	if err != nil {
		return err
	}

	resp := make([]feedResponse, 0, len(feeds))
	for _, f := range feeds {
		resp = append(resp, apiFeed(f))
	}

	return serverutil.WriteJSON(w, http.StatusOK, resp)
}

type testResponse struct {
	Message string `json:"message"`
}

func (s Server) getTest(w http.ResponseWriter, r *http.Request) error {
	return serverutil.WriteJSON(w, http.StatusOK, testResponse{Message: "Just a test."})
}
