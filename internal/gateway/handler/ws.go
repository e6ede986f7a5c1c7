package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"slidegen/internal/generation"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = (wsPongWait * 9) / 10
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type wsInbound struct {
	Type string `json:"type"`
	generateRequest
}

type wsOutbound struct {
	Type    string             `json:"type"`
	Text    string             `json:"text,omitempty"`
	Result  *generation.Result `json:"result,omitempty"`
	Status  int                `json:"status,omitempty"`
	Message string             `json:"message,omitempty"`
}

// GenerateWS runs generations over a websocket: each {"type":"generate"}
// message streams "chunk" events followed by one "result" or "error". One
// generation runs at a time per connection.
func (h *Handler) GenerateWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadLimit(MaxBodyBytes)
	if err := conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
		h.logger.Warn("ws set read deadline failed", zap.Error(err))
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	out := make(chan wsOutbound, 64)
	writerDone := make(chan struct{})
	go wsWriter(ctx, cancel, conn, out, writerDone)

	send := func(msg wsOutbound) bool {
		select {
		case out <- msg:
			return true
		case <-ctx.Done():
			return false
		}
	}

	var busy atomic.Bool
	var wg sync.WaitGroup
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var in wsInbound
		if err := json.Unmarshal(raw, &in); err != nil {
			send(wsOutbound{Type: "error", Status: http.StatusBadRequest, Message: "invalid json message"})
			continue
		}
		switch strings.ToLower(strings.TrimSpace(in.Type)) {
		case "ping":
			send(wsOutbound{Type: "pong"})
		case "generate":
			if !busy.CompareAndSwap(false, true) {
				send(wsOutbound{Type: "error", Status: http.StatusConflict, Message: "a generation is already running"})
				continue
			}
			wg.Add(1)
			go func(req generateRequest) {
				defer wg.Done()
				defer busy.Store(false)
				h.wsGenerate(ctx, req, send)
			}(in.generateRequest)
		default:
			send(wsOutbound{Type: "error", Status: http.StatusBadRequest, Message: "unknown message type"})
		}
	}
	cancel()
	wg.Wait()
	<-writerDone
}

func (h *Handler) wsGenerate(ctx context.Context, req generateRequest, send func(wsOutbound) bool) {
	tmpl, err := h.resolve(ctx, req.templateRef)
	if err == nil {
		var res generation.Result
		res, err = h.gen.Generate(ctx, generation.Request{
			Template: tmpl,
			Topic:    req.Topic,
			Language: req.Language,
			Model:    req.Model,
		}, func(chunk string) error {
			if !send(wsOutbound{Type: "chunk", Text: chunk}) {
				return ctx.Err()
			}
			return nil
		})
		if err == nil {
			send(wsOutbound{Type: "result", Result: &res})
			return
		}
	}
	if ctx.Err() != nil {
		return
	}
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Warn("ws generation failed", zap.Int("status", status), zap.Error(err))
	}
	send(wsOutbound{Type: "error", Status: status, Message: err.Error()})
}

// wsWriter owns all writes to conn and pings it periodically. It cancels the
// connection context when a write fails.
func wsWriter(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out <-chan wsOutbound, done chan<- struct{}) {
	defer close(done)
	defer cancel()
	ticker := time.NewTicker(wsPingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(wsWriteWait))
			return
		case msg := <-out:
			if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
