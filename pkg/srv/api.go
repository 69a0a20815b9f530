package srv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-adcstat/pkg/adc"
	"jinr.ru/greenlab/go-adcstat/pkg/config"
	"jinr.ru/greenlab/go-adcstat/pkg/log"
)

const (
	ApiPort = 8003

	DefaultReadCount        = 64
	DefaultReadDelayMS      = 0
	DefaultSampleDurationMS = 1000
)

// SampleResponse is the payload of the continuous sampling endpoint.
type SampleResponse struct {
	Channel    string `json:"channel"`
	DurationMS int    `json:"duration_ms"`
	Count      int    `json:"count"`
	SamplesMV  []int  `json:"samples_mv"`
}

// AcqServer exposes the configured channels over an HTTP control API
// and persists discrete read results. Acquisitions are serialized
// internally, the hardware allows one acquisition per unit at a time.
type AcqServer struct {
	context.Context
	*config.Config
	Router   *mux.Router
	state    *ResultState
	unit     *adc.Unit
	channels map[string]*adc.Channel
	acqMu    sync.Mutex
}

func NewAcqServer(ctx context.Context, cfg *config.Config, driver adc.Driver) (*AcqServer, error) {
	log.Info("Initializing acquisition server with address: %s port: %d", cfg.Address, ApiPort)

	unit, err := adc.NewUnit(driver, adc.UnitID(cfg.Unit))
	if err != nil {
		return nil, err
	}
	unit.SetSampleFreq(cfg.SampleFreqHz)

	channels := make(map[string]*adc.Channel)
	for _, chCfg := range cfg.Channels {
		atten, err := chCfg.GetAtten()
		if err != nil {
			return nil, err
		}
		channel, err := adc.NewChannel(unit, adc.ChannelID(chCfg.Channel), atten)
		if err != nil {
			return nil, err
		}
		channels[chCfg.Name] = channel
	}

	state, err := NewResultState(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s := &AcqServer{
		Context:  ctx,
		Config:   cfg,
		state:    state,
		unit:     unit,
		channels: channels,
	}
	s.configureRouter()
	return s, nil
}

// Run ...
func (s *AcqServer) Run() error {
	log.Debug("Starting API server: address: %s port: %d", s.Config.Address, ApiPort)
	specDoc, err := APISpec()
	if err != nil {
		return err
	}
	var handler http.Handler = s.Router
	handler = middleware.Spec("/api", specDoc.Raw(), handler)
	handler = handlers.LoggingHandler(os.Stdout, handler)
	handler = handlers.RecoveryHandler()(handler)
	httpServer := &http.Server{
		Handler: handler,
		Addr:    fmt.Sprintf("%s:%d", s.Config.Address, ApiPort),
	}
	return httpServer.ListenAndServe()
}

// Close releases the results database and the continuous-mode
// resources of the unit.
func (s *AcqServer) Close() {
	s.state.Close()
	if err := s.unit.Close(); err != nil {
		log.Error("Failed to release ADC unit: %s", err)
	}
}

func (s *AcqServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/channels", s.handleChannels()).Methods("GET")
	subRouter.HandleFunc("/read/{channel}", s.handleRead()).Methods("GET")
	subRouter.HandleFunc("/sample/{channel}", s.handleSample()).Methods("GET")
	subRouter.HandleFunc("/results/{channel}", s.handleResults()).Methods("GET")
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode API response: %s", err)
	}
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func (s *AcqServer) handleChannels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.Config.Channels)
	}
}

func (s *AcqServer) handleRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		channel, ok := s.channels[vars["channel"]]
		if !ok {
			http.Error(w, ErrChannelNotFound{Channel: vars["channel"]}.Error(), http.StatusNotFound)
			return
		}

		count, err := queryInt(r, "count", DefaultReadCount)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		delayMS, err := queryInt(r, "delay_ms", DefaultReadDelayMS)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if count <= 0 || delayMS < 0 {
			http.Error(w, adc.ErrSampleCount{Count: count}.Error(), http.StatusBadRequest)
			return
		}

		s.acqMu.Lock()
		result, err := channel.Read(count, time.Duration(delayMS)*time.Millisecond)
		s.acqMu.Unlock()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		rec := &Record{
			Channel:     vars["channel"],
			TimestampMS: Now(),
			Count:       count,
			DelayMS:     delayMS,
			Result:      result,
		}
		if err := s.state.SetResult(rec); err != nil {
			log.Warning("Failed to persist result: channel: %s: %s", rec.Channel, err)
		}

		writeJSON(w, result)
	}
}

func (s *AcqServer) handleSample() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		channel, ok := s.channels[vars["channel"]]
		if !ok {
			http.Error(w, ErrChannelNotFound{Channel: vars["channel"]}.Error(), http.StatusNotFound)
			return
		}

		durationMS, err := queryInt(r, "duration_ms", DefaultSampleDurationMS)
		if err != nil || durationMS <= 0 {
			http.Error(w, "duration_ms must be a positive integer", http.StatusBadRequest)
			return
		}

		s.acqMu.Lock()
		samples := channel.SampleForDuration(time.Duration(durationMS) * time.Millisecond)
		s.acqMu.Unlock()

		// An empty batch is the failure signal of the continuous
		// protocol, it is reported as-is.
		writeJSON(w, &SampleResponse{
			Channel:    vars["channel"],
			DurationMS: durationMS,
			Count:      len(samples),
			SamplesMV:  samples,
		})
	}
}

func (s *AcqServer) handleResults() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		if s.Config.GetChannelByName(vars["channel"]) == nil {
			http.Error(w, ErrChannelNotFound{Channel: vars["channel"]}.Error(), http.StatusNotFound)
			return
		}
		recs, err := s.state.GetResults(vars["channel"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, recs)
	}
}
