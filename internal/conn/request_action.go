package conn

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tobsdb/tobsrel/internal/auth"
	"github.com/tobsdb/tobsrel/internal/builder"
	"github.com/tobsdb/tobsrel/pkg"
)

type RequestAction string

const (
	// catalog actions
	RequestActionCreateTable RequestAction = "createTable"
	RequestActionInsert      RequestAction = "insert"
	RequestActionShow        RequestAction = "show"
	RequestActionListTables  RequestAction = "listTables"
	RequestActionDropTable   RequestAction = "dropTable"

	// operators
	RequestActionProject     RequestAction = "project"
	RequestActionSelect      RequestAction = "select"
	RequestActionUnion       RequestAction = "union"
	RequestActionMinus       RequestAction = "minus"
	RequestActionEquiJoin    RequestAction = "equiJoin"
	RequestActionNaturalJoin RequestAction = "naturalJoin"
)

// IsReadOnly reports whether the action leaves existing tables untouched.
// Operators only add their result to the catalog; see RequiresWrite for
// equiJoin requests that rename the right table.
func (action RequestAction) IsReadOnly() bool {
	switch action {
	case RequestActionCreateTable, RequestActionInsert, RequestActionDropTable:
		return false
	default:
		return true
	}
}

// IsOperator reports whether the action registers a derived table.
func (action RequestAction) IsOperator() bool {
	switch action {
	case RequestActionProject, RequestActionSelect, RequestActionUnion,
		RequestActionMinus, RequestActionEquiJoin, RequestActionNaturalJoin:
		return true
	default:
		return false
	}
}

// RequiresWrite reports whether the request changes an existing table.
func RequiresWrite(action RequestAction, raw []byte) bool {
	if !action.IsReadOnly() {
		return true
	}
	if action == RequestActionEquiJoin {
		var req EquiJoinRequest
		if err := json.Unmarshal(raw, &req); err == nil {
			return req.ApplyRenames
		}
	}
	return false
}

func ActionHandler(schema *builder.Schema, action RequestAction, ctx *ConnCtx, raw []byte) Response {
	if RequiresWrite(action, raw) && !ctx.User.HasClearance(auth.TdbUserRoleAdmin) {
		return NewErrorResponse(http.StatusForbidden, auth.InsufficientPermissions.Error())
	}

	// operators mutate the catalog and the derived name counter
	if action.IsReadOnly() && !action.IsOperator() {
		return pkg.RLockWrapRes(schema, func() Response { return handleAction(schema, action, raw) })
	}
	return pkg.LockWrapRes(schema, func() Response { return handleAction(schema, action, raw) })
}

func handleAction(schema *builder.Schema, action RequestAction, raw []byte) Response {
	switch action {
	case RequestActionCreateTable:
		return CreateTableReqHandler(schema, raw)
	case RequestActionInsert:
		return InsertReqHandler(schema, raw)
	case RequestActionShow:
		return ShowReqHandler(schema, raw)
	case RequestActionListTables:
		return ListTablesReqHandler(schema)
	case RequestActionDropTable:
		return DropTableReqHandler(schema, raw)
	case RequestActionProject:
		return ProjectReqHandler(schema, raw)
	case RequestActionSelect:
		return SelectReqHandler(schema, raw)
	case RequestActionUnion:
		return UnionReqHandler(schema, raw)
	case RequestActionMinus:
		return MinusReqHandler(schema, raw)
	case RequestActionEquiJoin:
		return EquiJoinReqHandler(schema, raw)
	case RequestActionNaturalJoin:
		return NaturalJoinReqHandler(schema, raw)
	default:
		return NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("unknown action: %s", action))
	}
}
