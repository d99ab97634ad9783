package conn

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tobsdb/tobsrel/internal/auth"
)

type ConnCtx struct {
	conn *websocket.Conn

	// session id, used in logs
	Id   string
	User *auth.TdbUser
}

func NewConnCtx(c *websocket.Conn, user *auth.TdbUser) *ConnCtx {
	return &ConnCtx{c, uuid.New().String(), user}
}

func (ctx *ConnCtx) Read() ([]byte, error) {
	_, message, err := ctx.conn.ReadMessage()
	return message, err
}

func (ctx *ConnCtx) WriteResponse(r Response) error {
	return ctx.conn.WriteMessage(websocket.TextMessage, r.Marshal())
}
