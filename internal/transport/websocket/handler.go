package websocket

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/events"
)

// Handler streams editor events to the live preview.
type Handler struct {
	Upgrader websocket.Upgrader
	Log      hclog.Logger
	EventBus *events.EventBus[any]
}

type Message struct {
	EventType string      `json:"event-type"`
	Data      interface{} `json:"data"`
}

func NewHandler(log hclog.Logger, eventBus *events.EventBus[any], allowedOrigins []string) *Handler {
	return &Handler{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		Log:      log,
		EventBus: eventBus,
	}
}

// checkOrigin accepts requests without an Origin header and those from an allowed origin.
func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// NewMessage wraps an event with its wire name. Unknown events report false.
func NewMessage(event any) (Message, bool) {
	var name string
	switch event.(type) {
	case events.ProductUpdated:
		name = "product_updated"
	case events.FieldAdded:
		name = "field_added"
	case events.FieldUpdated:
		name = "field_updated"
	case events.FieldRemoved:
		name = "field_removed"
	case events.FieldMoved:
		name = "field_moved"
	case events.OptionChanged:
		name = "option_changed"
	case events.InputChanged:
		name = "input_changed"
	case events.PriceRecalculated:
		name = "price_recalculated"
	case events.ValidationFailed:
		name = "validation_failed"
	case events.ProductSaved:
		name = "product_saved"
	case events.EditorReset:
		name = "editor_reset"
	default:
		return Message{}, false
	}
	return Message{EventType: name, Data: event}, true
}

func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Error("Unable to upgrade to WebSocket", "error", err)
		return
	}
	defer conn.Close()

	subscriber := h.EventBus.Subscribe()
	defer h.EventBus.Unsubscribe(subscriber)

	// Closed by readPump when the client goes away
	done := make(chan struct{})

	go h.readPump(conn, done)

	for {
		select {
		case event, ok := <-subscriber:
			if !ok {
				return
			}
			message, known := NewMessage(event)
			if !known {
				h.Log.Warn("Unknown event type", "event", event)
				continue
			}

			payload, err := json.Marshal(message)
			if err != nil {
				h.Log.Error("Error marshalling message", "error", err)
				continue
			}

			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.Log.Error("Error writing message to WebSocket", "error", err)
				return
			}
		case <-done:
			h.Log.Info("WebSocket connection closed by the client")
			return
		}
	}
}

func (h *Handler) readPump(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Log.Error("Error reading message", "error", err)
			}
			break
		}
	}
}
