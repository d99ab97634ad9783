package conn

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/tobsdb/tobsrel/internal/auth"
	"github.com/tobsdb/tobsrel/pkg"
)

type WsRequest struct {
	Action RequestAction `json:"action"`
	ReqId  int           `json:"__tdb_client_req_id__"` // used in tdb clients
}

var Upgrader = websocket.Upgrader{
	WriteBufferSize: 1024 * 10,
	ReadBufferSize:  1024 * 10,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (db *TobsRel) HandleConnection(w http.ResponseWriter, r *http.Request) {
	name, password := auth.Credentials(r)
	user, err := db.Users.Validate(name, password)
	if err != nil {
		ConnError(w, r, err.Error())
		return
	}

	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		pkg.ErrorLog(err)
		return
	}
	ctx := NewConnCtx(conn, user)
	pkg.InfoLog("New connection established", ctx.Id, "as", user.Role)
	defer conn.Close()
	defer pkg.InfoLog("Connection closed", ctx.Id)

	for {
		message, err := ctx.Read()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				pkg.ErrorLog("unexpected close", ctx.Id, err)
			} else {
				pkg.DebugLog("connection closed", ctx.Id, err)
			}
			return
		}

		var req WsRequest
		if err := json.Unmarshal(message, &req); err != nil {
			pkg.ErrorLog("parsing request", ctx.Id, err)
			res := NewErrorResponse(http.StatusBadRequest, err.Error())
			if err := ctx.WriteResponse(res); err != nil {
				return
			}
			continue
		}

		pkg.DebugLog(ctx.Id, req.Action)
		res := ActionHandler(db.Schema, req.Action, ctx, message)
		res.ReqId = req.ReqId

		if err := ctx.WriteResponse(res); err != nil {
			pkg.ErrorLog("writing response", ctx.Id, err)
			return
		}
	}
}

func ConnError(w http.ResponseWriter, r *http.Request, conn_error string) {
	pkg.InfoLog("connection error:", conn_error)
	headers := http.Header{}
	headers.Set("tdb-error", conn_error)
	conn, err := Upgrader.Upgrade(w, r, headers)
	if err != nil {
		pkg.ErrorLog(err)
		return
	}

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, conn_error))
	conn.Close()
}
