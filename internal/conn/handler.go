package conn

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/tobsdb/tobsrel/internal/builder"
	"github.com/tobsdb/tobsrel/internal/query"
	"github.com/tobsdb/tobsrel/internal/types"
	"github.com/tobsdb/tobsrel/pkg"
)

type Response struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	// don't manually set this. it comes from the client
	ReqId int `json:"__tdb_client_req_id__"`
}

func NewErrorResponse(status int, err string) Response {
	return Response{Message: err, Status: status}
}

func NewResponse(status int, message string, data any) Response {
	return Response{Data: data, Message: message, Status: status}
}

func (r Response) Marshal() []byte {
	data, err := json.Marshal(r)
	if err != nil {
		pkg.ErrorLog("marshalling response", err)
		data, _ = json.Marshal(NewErrorResponse(http.StatusInternalServerError, err.Error()))
	}
	return data
}

// ErrorStatus maps engine errors to response status codes.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, builder.ErrTableExists):
		return http.StatusConflict
	case errors.Is(err, builder.ErrAttributeNotFound),
		errors.Is(err, builder.ErrTypeMismatch),
		errors.Is(err, builder.ErrInvalidTable),
		errors.Is(err, query.ErrSchemaMismatch),
		errors.Is(err, query.ErrKeyShape),
		errors.Is(err, query.ErrColumnPairs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(err error) Response {
	return NewErrorResponse(ErrorStatus(err), err.Error())
}

func tableNotFound(name string) Response {
	return NewErrorResponse(http.StatusNotFound, fmt.Sprintf("Table %s not found", name))
}

// TableData is the wire form of a table.
type TableData struct {
	Name       string          `json:"name"`
	Attributes []string        `json:"attributes"`
	Domains    []types.Domain  `json:"domains"`
	Key        []string        `json:"key"`
	Tuples     []builder.Tuple `json:"tuples"`
	Warnings   []string        `json:"warnings,omitempty"`
	// primary key index in key order, filled by show
	Index []builder.KeyValue `json:"index,omitempty"`
}

func NewTableData(t *builder.Table) TableData {
	warnings := []string{}
	for _, w := range t.Warnings() {
		warnings = append(warnings, w.Error())
	}
	return TableData{Name: t.Name, Attributes: t.Attributes, Domains: t.Domains, Key: t.Key, Tuples: t.Tuples(), Warnings: warnings}
}

// coerceTuple converts a json decoded row to the stored types of t's columns.
// Rows of the wrong length are passed through for Insert to reject.
func coerceTuple(t *builder.Table, row []any) (builder.Tuple, error) {
	if len(row) != t.Arity() {
		return row, nil
	}
	tup := make(builder.Tuple, len(row))
	for i, v := range row {
		val, err := types.FromJSON(t.Domains[i], v)
		if err != nil {
			return nil, errors.Wrapf(builder.ErrTypeMismatch, "insert into %s: column %d: %s", t.Name, i, err)
		}
		tup[i] = val
	}
	return tup, nil
}

type CreateTableRequest struct {
	Name       string `json:"name"`
	Attributes string `json:"attributes"`
	Domains    string `json:"domains"`
	Key        string `json:"key"`
}

func CreateTableReqHandler(schema *builder.Schema, raw []byte) Response {
	var req CreateTableRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return NewErrorResponse(http.StatusBadRequest, "Missing table name")
	}

	table, err := schema.CreateTable(req.Name, req.Attributes, req.Domains, req.Key)
	if err != nil {
		return errorResponse(err)
	}

	return NewResponse(http.StatusCreated, fmt.Sprintf("Created table %s", table.Name), NewTableData(table))
}

type InsertRequest struct {
	Table  string  `json:"table"`
	Tuples [][]any `json:"tuples"`
}

func InsertReqHandler(schema *builder.Schema, raw []byte) Response {
	var req InsertRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	table, ok := schema.Table(req.Table)
	if !ok {
		return tableNotFound(req.Table)
	}

	tuples := make([]builder.Tuple, 0, len(req.Tuples))
	for _, row := range req.Tuples {
		tup, err := coerceTuple(table, row)
		if err != nil {
			return errorResponse(err)
		}
		tuples = append(tuples, tup)
	}

	n, err := table.InsertMany(tuples...)
	if err != nil {
		return NewResponse(ErrorStatus(err), fmt.Sprintf("Inserted %d rows into table %s: %s", n, table.Name, err), n)
	}
	return NewResponse(http.StatusCreated, fmt.Sprintf("Inserted %d rows into table %s", n, table.Name), n)
}

type TableRequest struct {
	Table string `json:"table"`
}

func ShowReqHandler(schema *builder.Schema, raw []byte) Response {
	var req TableRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	table, ok := schema.Table(req.Table)
	if !ok {
		return tableNotFound(req.Table)
	}
	data := NewTableData(table)
	if table.HasIndex() {
		data.Index = table.Index().Keys()
	}
	return NewResponse(http.StatusOK, table.String(), data)
}

func ListTablesReqHandler(schema *builder.Schema) Response {
	names := schema.TableNames()
	return NewResponse(http.StatusOK, fmt.Sprintf("Found %d tables", len(names)), names)
}

func DropTableReqHandler(schema *builder.Schema, raw []byte) Response {
	var req TableRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	if !schema.DropTable(req.Table) {
		return tableNotFound(req.Table)
	}
	return NewResponse(http.StatusOK, fmt.Sprintf("Dropped table %s", req.Table), nil)
}

// register adds an operator result to the catalog so later requests can
// refer to it by name.
func register(schema *builder.Schema, res *builder.Table, op string) Response {
	if err := schema.AddTable(res); err != nil {
		return errorResponse(err)
	}
	pkg.DebugLog(op, "registered", res.Name, res.Len(), "rows")
	return NewResponse(http.StatusOK, fmt.Sprintf("%s result in table %s", op, res.Name), NewTableData(res))
}

type ProjectRequest struct {
	Table      string   `json:"table"`
	Attributes []string `json:"attributes"`
}

func ProjectReqHandler(schema *builder.Schema, raw []byte) Response {
	var req ProjectRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	table, ok := schema.Table(req.Table)
	if !ok {
		return tableNotFound(req.Table)
	}

	res, err := query.Project(table, req.Attributes...)
	if err != nil {
		return errorResponse(err)
	}
	return register(schema, res, "project")
}

type SelectRequest struct {
	Table string `json:"table"`
	Key   []any  `json:"key"`
}

func SelectReqHandler(schema *builder.Schema, raw []byte) Response {
	var req SelectRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	table, ok := schema.Table(req.Table)
	if !ok {
		return tableNotFound(req.Table)
	}

	key := make(builder.KeyValue, len(req.Key))
	for i, v := range req.Key {
		d := types.DomainUnset
		if i < len(table.Key) {
			if col := table.Col(table.Key[i]); col >= 0 {
				d = table.Domains[col]
			}
		}
		val, err := types.FromJSON(d, v)
		if err != nil {
			return NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("key value %d: %s", i, err))
		}
		key[i] = val
	}

	res, err := query.Select(table, key)
	if err != nil {
		return errorResponse(err)
	}
	return register(schema, res, "select")
}

type BinaryRequest struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

func operands(schema *builder.Schema, req BinaryRequest) (*builder.Table, *builder.Table, *Response) {
	left, ok := schema.Table(req.Left)
	if !ok {
		res := tableNotFound(req.Left)
		return nil, nil, &res
	}
	right, ok := schema.Table(req.Right)
	if !ok {
		res := tableNotFound(req.Right)
		return nil, nil, &res
	}
	return left, right, nil
}

func setOpReqHandler(schema *builder.Schema, raw []byte, op string,
	f func(t1, t2 *builder.Table) (*builder.Table, error),
) Response {
	var req BinaryRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	left, right, bad := operands(schema, req)
	if bad != nil {
		return *bad
	}

	res, err := f(left, right)
	if err != nil {
		return errorResponse(err)
	}
	return register(schema, res, op)
}

func UnionReqHandler(schema *builder.Schema, raw []byte) Response {
	return setOpReqHandler(schema, raw, "union", query.Union)
}

func MinusReqHandler(schema *builder.Schema, raw []byte) Response {
	return setOpReqHandler(schema, raw, "minus", query.Minus)
}

func NaturalJoinReqHandler(schema *builder.Schema, raw []byte) Response {
	return setOpReqHandler(schema, raw, "naturalJoin", query.NaturalJoin)
}

type EquiJoinRequest struct {
	BinaryRequest
	LeftColumns  []string `json:"leftColumns"`
	RightColumns []string `json:"rightColumns"`
	// rename the right table's colliding join columns in the catalog too
	ApplyRenames bool `json:"applyRenames"`
}

func EquiJoinReqHandler(schema *builder.Schema, raw []byte) Response {
	var req EquiJoinRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	left, right, bad := operands(schema, req.BinaryRequest)
	if bad != nil {
		return *bad
	}

	res, renames, err := query.EquiJoin(left, req.LeftColumns, req.RightColumns, right)
	if err != nil {
		return errorResponse(err)
	}

	if req.ApplyRenames && len(renames) > 0 {
		if err := right.ApplyRenames(renames); err != nil {
			return errorResponse(err)
		}
		pkg.InfoLog("renamed", len(renames), "columns of table", right.Name)
	}
	return register(schema, res, "equiJoin")
}
