package socket

import (
	"log"

	"teccitas_server/models"

	socketio "github.com/googollee/go-socket.io"
)

// Hub is the realtime side of chat: clients join their match's room and
// receive newMessage broadcasts as the chat service stores messages.
// Matching itself never depends on it.
type Hub struct {
	Server *socketio.Server
}

// NewHub initializes the socket.io server and its event handlers.
func NewHub() *Hub {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, matchID string) {
		if matchID == "" {
			log.Println("❌ Invalid matchId in join request")
			return
		}
		log.Printf("👥 Socket %s joined match %s", c.ID(), matchID)
		c.Join(matchID)
	})

	server.OnEvent("/", "leave", func(c socketio.Conn, matchID string) {
		c.Leave(matchID)
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("❌ Socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", reason)
	})

	return &Hub{Server: server}
}

// BroadcastNewMessage delivers a stored message to everyone in the match
// room.
func (h *Hub) BroadcastNewMessage(matchID string, message models.Message) {
	h.Server.BroadcastToRoom("/", matchID, "newMessage", message)
}
