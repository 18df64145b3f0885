package ws

import (
	"log"
	"net/http"

	"ebdadmin/config"
	"ebdadmin/internal/auth"
	"ebdadmin/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// FeedHub pushes registration table mutations to connected list views so
// they refresh on any insert/update/delete from any client.
type FeedHub struct {
	*Hub
}

func NewFeedHub() *FeedHub {
	return &FeedHub{Hub: NewHub()}
}

// Attach subscribes the hub to the repository's mutation events and
// returns the unsubscribe func.
func (f *FeedHub) Attach(regs *repository.RegistrationRepository) func() {
	return regs.Subscribe(func(e repository.Event) {
		f.Broadcast(e)
	})
}

// UpgradeFeed returns the gin handler for the registration feed socket.
// The access token comes in the "token" query param since browsers cannot
// set headers on websocket dials.
func UpgradeFeed(jwtCfg *config.JWTConfig, hub *FeedHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if _, err := auth.ParseAccessToken(jwtCfg, token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[feed] upgrade: %v", err)
			return
		}
		client := &Client{Send: make(chan []byte, 16)}
		hub.Register(client)

		go writePump(conn, client)
		go readPump(conn, client)
	}
}

func writePump(conn *websocket.Conn, client *Client) {
	defer conn.Close()
	for msg := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			client.Close()
			return
		}
	}
}

// readPump discards inbound frames; the feed is one-way. It exists to
// notice the peer going away.
func readPump(conn *websocket.Conn, client *Client) {
	defer client.Close()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
