package products

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

// StockUpdates subscribes a client to live stock changes for one product.
func StockUpdates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	productID := ps.ByName("productid")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers[productID] = append(subscribers[productID], conn)
	mu.Unlock()

	for {
		// Keeps the connection alive until the client disconnects
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	mu.Lock()
	conns := subscribers[productID]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[productID] = newList
	mu.Unlock()

	conn.Close()
}

// BroadcastStockUpdate pushes the remaining stock for a product to every
// subscribed client. Dead connections are dropped on write failure.
func BroadcastStockUpdate(productID string, remaining int) {
	payload, err := json.Marshal(map[string]any{
		"type":      "stock_update",
		"productid": productID,
		"stock":     remaining,
	})
	if err != nil {
		log.Printf("BroadcastStockUpdate marshal error: %v", err)
		return
	}

	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[productID]
	newList := conns[:0]
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}
	subscribers[productID] = newList
}
