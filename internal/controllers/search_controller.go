package controllers

import (
	"errors"
	"net/http"
	"strings"
	"warboard/internal/clash"
	"warboard/internal/models"
	"warboard/internal/providers"
	"warboard/internal/services"
)

const queryParam = "q"

type SearchController struct {
	logger   providers.Logger
	searcher clash.ClanSearcher
}

func NewSearchController(logger providers.Logger, searcher clash.ClanSearcher) *SearchController {
	return &SearchController{
		logger:   logger,
		searcher: searcher,
	}
}

// Search answers the ranked clan hits for ?q=. An API rejection of the query
// is passed back as 400, any other upstream failure as 502.
func (sc *SearchController) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get(queryParam))
	if q == "" {
		http.Error(w, "Missing query", http.StatusBadRequest)
		return
	}

	clans, err := sc.searcher.SearchClans(r.Context(), q)
	var apiErr *clash.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest {
		http.Error(w, apiErr.Reason, http.StatusBadRequest)
		return
	}
	if err != nil {
		sc.logger.Errorf(providers.TypeGet, "Clan search for %q failed: %s", q, err)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}

	ranked := services.RankClans(q, clans)
	if ranked == nil {
		ranked = []models.ClanSummary{}
	}
	writeJSON(w, http.StatusOK, ranked)
}
