// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/aitoothbrush/brusho-vsr/api/utils"
	"github.com/aitoothbrush/brusho-vsr/log"
	"github.com/aitoothbrush/brusho-vsr/metrics"
	"github.com/aitoothbrush/brusho-vsr/registry"
	"github.com/aitoothbrush/brusho-vsr/registry/events"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

const (
	writeWait = 10 * time.Second
	// records buffered per connection before the feed blocks
	recordsBuffer = 64
	backfillLimit = 1000
)

var (
	logger = log.WithContext("pkg", "subscriptions")

	metricActiveCount = metrics.LazyLoadGaugeVec("api_active_websocket_count", []string{"subject"})
)

type Subscriptions struct {
	reg      *registry.Registry
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup
}

func New(reg *registry.Registry, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		reg: reg,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == strings.ToLower(origin) {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

// eventFilter selects the records of one registrar, or all when registrar is nil.
type eventFilter struct {
	registrar *vsr.Address
	from      uint64
}

func (f *eventFilter) match(r *events.Record) bool {
	if f.registrar != nil && r.Registrar != *f.registrar {
		return false
	}
	return r.Seq >= f.from
}

func parseEventFilter(req *http.Request) (*eventFilter, error) {
	query := req.URL.Query()
	filter := &eventFilter{}
	if s := query.Get("registrar"); s != "" {
		addr, err := utils.ParseAddress("registrar", s)
		if err != nil {
			return nil, err
		}
		filter.registrar = &addr
	}
	from, err := utils.ParseUint("from", query.Get("from"), 0)
	if err != nil {
		return nil, err
	}
	if from > 0 && filter.registrar == nil {
		return nil, utils.BadRequest(errors.New("from: requires registrar"))
	}
	filter.from = from
	return filter, nil
}

func (s *Subscriptions) handleSubjectEvents(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseEventFilter(req)
	if err != nil {
		return err
	}

	conn, err := s.upgrader.Upgrade(w, req, nil)
	// since the conn is hijacked here, no error should be returned in lines below
	if err != nil {
		logger.Debug("upgrade to websocket", "err", err)
		return nil
	}
	metricActiveCount().AddWithLabel(1, map[string]string{"subject": "events"})
	defer metricActiveCount().AddWithLabel(-1, map[string]string{"subject": "events"})

	s.wg.Add(1)
	defer s.wg.Done()

	if err := s.pipe(conn, filter); err != nil {
		logger.Debug("websocket closed", "err", err)
		msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error())
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	} else {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	}
	return conn.Close()
}

// pipe sends the stored records the filter asks for, then every matching
// record as it is committed.
func (s *Subscriptions) pipe(conn *websocket.Conn, filter *eventFilter) error {
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := make(chan *events.Record, recordsBuffer)
	sub := s.reg.SubscribeEvents(ch)
	defer sub.Unsubscribe()

	send := func(r *events.Record) error {
		if !filter.match(r) {
			return nil
		}
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
		if err := conn.WriteJSON(r); err != nil {
			return err
		}
		filter.from = r.Seq + 1
		return nil
	}

	if filter.registrar != nil && filter.from > 0 {
		for {
			records, err := s.reg.Events(*filter.registrar, filter.from, backfillLimit)
			if err != nil {
				return err
			}
			for _, r := range records {
				if err := send(r); err != nil {
					return err
				}
			}
			if len(records) < backfillLimit {
				break
			}
		}
	}

	for {
		select {
		case <-s.done:
			return nil
		case <-closed:
			return nil
		case err := <-sub.Err():
			return err
		case r := <-ch:
			if err := send(r); err != nil {
				return err
			}
		}
	}
}

// Close ends all open subscriptions and waits for their handlers.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/events").
		Methods(http.MethodGet).
		Name("subscriptions_events").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubjectEvents))
}
