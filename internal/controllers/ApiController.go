package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"codetrack/internal/ledger"
	"codetrack/internal/models"
	"codetrack/internal/providers"
	"codetrack/internal/services"
)

const maxRequestBodySize = 64 << 10 // 64 KB

type ApiController struct {
	logger    providers.Logger
	dashboard services.DashboardServiceInterface
	cache     providers.CacheProviderInterface
}

type historyResponse struct {
	Snapshots []models.LedgerSnapshot `json:"snapshots"`
	Deltas    []models.DailyDelta     `json:"deltas"`
}

func NewApiController(logger providers.Logger, dashboard services.DashboardServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:    logger,
		dashboard: dashboard,
		cache:     cache,
	}
}

// cacheKey changes with every stored change and with the local day, so a
// cached response never outlives the state it was built from.
func (ac *ApiController) cacheKey(name string) string {
	return fmt.Sprintf("%s:%d:%s", name, ac.dashboard.Generation(), ledger.DateOf(time.Now()))
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (ac *ApiController) respond(w http.ResponseWriter, result any) {
	gson, err := json.Marshal(result)
	if err != nil {
		ac.logger.Errorf(providers.TypeApp, "Encode response: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, gson)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	result, err := compute()
	if err != nil {
		ac.logger.Errorf(providers.TypeApp, "Compute %s: %s", cacheKey, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)
	writeJSON(w, http.StatusOK, gson)
}

func (ac *ApiController) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := ac.dashboard.Refresh(r.Context())
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "Refresh failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.respond(w, result)
}

func (ac *ApiController) Summary(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, ac.cacheKey("summary"), func() (any, error) {
		return ac.dashboard.Summary()
	})
}

func (ac *ApiController) History(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, ac.cacheKey("history"), func() (any, error) {
		snapshots, err := ac.dashboard.History()
		if err != nil {
			return nil, err
		}
		deltas, err := ac.dashboard.DailyDeltas()
		if err != nil {
			return nil, err
		}
		if snapshots == nil {
			snapshots = []models.LedgerSnapshot{}
		}
		return historyResponse{Snapshots: snapshots, Deltas: deltas}, nil
	})
}

func (ac *ApiController) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := ac.dashboard.ClearHistory(); err != nil {
		ac.logger.Errorf(providers.TypePost, "Clear history failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) GetConfig(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, ac.cacheKey("config"), func() (any, error) {
		return ac.dashboard.Config()
	})
}

func (ac *ApiController) SetConfig(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	var payload models.UserConfig
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	saved, err := ac.dashboard.SetConfig(payload)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "Save config failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.respond(w, saved)
}
