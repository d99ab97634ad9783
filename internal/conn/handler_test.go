package conn_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/tobsdb/tobsrel/internal/auth"
	"github.com/tobsdb/tobsrel/internal/builder"
	. "github.com/tobsdb/tobsrel/internal/conn"
	"github.com/tobsdb/tobsrel/internal/sample"
	"gotest.tools/assert"
)

func reqEncode(req map[string]any) []byte {
	v, _ := json.Marshal(req)
	return v
}

func newTestSchema() *builder.Schema {
	s := builder.NewSchema(builder.SchemaOptions{})
	sample.Movie(s)
	sample.Studio(s)
	sample.Producer(s)
	return s
}

func TestCreateTableReqHandler(t *testing.T) {
	t.Run("simple create", func(t *testing.T) {
		schema := builder.NewSchema(builder.SchemaOptions{})
		res := CreateTableReqHandler(schema, reqEncode(map[string]any{
			"name": "a", "attributes": "b c", "domains": "Integer String", "key": "b",
		}))

		assert.Equal(t, res.Status, http.StatusCreated, res.Message)
		assert.Equal(t, res.Message, "Created table a")
		_, ok := schema.Table("a")
		assert.Assert(t, ok)
	})

	t.Run("duplicate", func(t *testing.T) {
		schema := newTestSchema()
		res := CreateTableReqHandler(schema, reqEncode(map[string]any{
			"name": "movie", "attributes": "b", "domains": "Integer", "key": "b",
		}))

		assert.Equal(t, res.Status, http.StatusConflict, res.Message)
		assert.ErrorContains(t, fmt.Errorf(res.Message), "already exists")
	})

	t.Run("unresolved domain", func(t *testing.T) {
		schema := builder.NewSchema(builder.SchemaOptions{})
		res := CreateTableReqHandler(schema, reqEncode(map[string]any{
			"name": "a", "attributes": "b", "domains": "Date", "key": "b",
		}))

		assert.Equal(t, res.Status, http.StatusCreated, res.Message)
		assert.Equal(t, len(res.Data.(TableData).Warnings), 1)
	})

	t.Run("bad key", func(t *testing.T) {
		schema := builder.NewSchema(builder.SchemaOptions{})
		res := CreateTableReqHandler(schema, reqEncode(map[string]any{
			"name": "a", "attributes": "b", "domains": "Integer", "key": "c",
		}))

		assert.Equal(t, res.Status, http.StatusBadRequest, res.Message)
	})
}

func TestInsertReqHandler(t *testing.T) {
	t.Run("json numbers become ints", func(t *testing.T) {
		schema := newTestSchema()
		res := InsertReqHandler(schema, []byte(`{
            "table": "studio",
            "tuples": [["Paramount", "Hollywood", 1111], ["Lionsgate", "Santa_Monica", 2222]]
        }`))

		assert.Equal(t, res.Status, http.StatusCreated, res.Message)
		assert.Equal(t, res.Data, 2)

		studio, _ := schema.Table("studio")
		assert.Equal(t, studio.Len(), 5)
		assert.Equal(t, studio.Tuples()[3][2], 1111)
	})

	t.Run("type mismatch", func(t *testing.T) {
		schema := newTestSchema()
		res := InsertReqHandler(schema, []byte(`{"table": "studio", "tuples": [["Paramount", 1, 1111]]}`))

		assert.Equal(t, res.Status, http.StatusBadRequest, res.Message)
		assert.Equal(t, res.Data, 0)
	})

	t.Run("fraction in integer column", func(t *testing.T) {
		schema := newTestSchema()
		res := InsertReqHandler(schema, []byte(`{"table": "studio", "tuples": [["Paramount", "Hollywood", 1.5]]}`))

		assert.Equal(t, res.Status, http.StatusBadRequest, res.Message)
		assert.ErrorContains(t, fmt.Errorf(res.Message), "not a whole number")
	})

	t.Run("wrong arity stops the batch", func(t *testing.T) {
		schema := newTestSchema()
		res := InsertReqHandler(schema, []byte(`{
            "table": "studio",
            "tuples": [["Paramount", "Hollywood", 1111], ["Lionsgate"]]
        }`))

		assert.Equal(t, res.Status, http.StatusBadRequest, res.Message)
		assert.Equal(t, res.Data, 1)
	})

	t.Run("table not found", func(t *testing.T) {
		schema := newTestSchema()
		res := InsertReqHandler(schema, []byte(`{"table": "b", "tuples": []}`))

		assert.Equal(t, res.Status, http.StatusNotFound, res.Message)
		assert.Equal(t, res.Message, "Table b not found")
	})
}

func TestShowAndList(t *testing.T) {
	schema := newTestSchema()

	res := ShowReqHandler(schema, reqEncode(map[string]any{"table": "producer"}))
	assert.Equal(t, res.Status, http.StatusOK, res.Message)
	data := res.Data.(TableData)
	assert.DeepEqual(t, data.Key, []string{"producerNo"})
	assert.Equal(t, len(data.Tuples), 3)
	assert.DeepEqual(t, data.Index, []builder.KeyValue{{12125}, {12345}, {32356}})

	res = ListTablesReqHandler(schema)
	assert.DeepEqual(t, res.Data, []string{"movie", "studio", "producer"})

	res = DropTableReqHandler(schema, reqEncode(map[string]any{"table": "studio"}))
	assert.Equal(t, res.Status, http.StatusOK, res.Message)
	res = DropTableReqHandler(schema, reqEncode(map[string]any{"table": "studio"}))
	assert.Equal(t, res.Status, http.StatusNotFound, res.Message)

	res = ListTablesReqHandler(schema)
	assert.DeepEqual(t, res.Data, []string{"movie", "producer"})
}

func TestOperatorReqHandlers(t *testing.T) {
	t.Run("select", func(t *testing.T) {
		schema := newTestSchema()
		res := SelectReqHandler(schema, reqEncode(map[string]any{
			"table": "movie", "key": []any{"Star_Wars", 1977},
		}))

		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		data := res.Data.(TableData)
		assert.Equal(t, data.Name, "movie0")
		assert.Equal(t, len(data.Tuples), 1)
		assert.Equal(t, data.Tuples[0][2], 124)
	})

	t.Run("select key shape", func(t *testing.T) {
		schema := newTestSchema()
		res := SelectReqHandler(schema, reqEncode(map[string]any{"table": "movie", "key": []any{"Star_Wars"}}))

		assert.Equal(t, res.Status, http.StatusBadRequest, res.Message)
	})

	t.Run("results can be chained", func(t *testing.T) {
		schema := newTestSchema()
		res := ProjectReqHandler(schema, reqEncode(map[string]any{
			"table": "movie", "attributes": []string{"title", "year"},
		}))
		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		assert.Equal(t, res.Data.(TableData).Name, "movie0")

		res = UnionReqHandler(schema, reqEncode(map[string]any{"left": "movie0", "right": "movie0"}))
		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		assert.Equal(t, res.Data.(TableData).Name, "movie01")
		assert.Equal(t, len(res.Data.(TableData).Tuples), 4)

		_, ok := schema.Table("movie01")
		assert.Assert(t, ok)
	})

	t.Run("user table holding the next derived name", func(t *testing.T) {
		schema := newTestSchema()
		res := CreateTableReqHandler(schema, reqEncode(map[string]any{
			"name": "movie0", "attributes": "b", "domains": "Integer", "key": "b",
		}))
		assert.Equal(t, res.Status, http.StatusCreated, res.Message)

		res = ProjectReqHandler(schema, reqEncode(map[string]any{
			"table": "movie", "attributes": []string{"title"},
		}))
		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		assert.Equal(t, res.Data.(TableData).Name, "movie1")
	})

	t.Run("incompatible union", func(t *testing.T) {
		schema := newTestSchema()
		res := MinusReqHandler(schema, reqEncode(map[string]any{"left": "movie", "right": "studio"}))

		assert.Equal(t, res.Status, http.StatusBadRequest, res.Message)
		assert.ErrorContains(t, fmt.Errorf(res.Message), "different arity")
	})

	t.Run("equi join applies renames", func(t *testing.T) {
		schema := newTestSchema()
		res := EquiJoinReqHandler(schema, reqEncode(map[string]any{
			"left": "movie", "right": "producer",
			"leftColumns": []string{"producerNo"}, "rightColumns": []string{"producerNo"},
			"applyRenames": true,
		}))

		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		data := res.Data.(TableData)
		// Star_Wars and Star_Wars_2 share producer 12345
		assert.Equal(t, len(data.Tuples), 3)
		assert.DeepEqual(t, data.Attributes, []string{
			"title", "year", "length", "genre", "studioName", "producerNo",
			"producerNo2", "year", "producerName",
		})
		producer, _ := schema.Table("producer")
		assert.DeepEqual(t, producer.Attributes, []string{"producerNo2", "year", "producerName"})
		assert.DeepEqual(t, producer.Key, []string{"producerNo2"})
	})

	t.Run("natural join", func(t *testing.T) {
		schema := newTestSchema()
		res := NaturalJoinReqHandler(schema, reqEncode(map[string]any{"left": "movie", "right": "studio"}))

		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		assert.Equal(t, len(res.Data.(TableData).Tuples), 12)
	})

	t.Run("missing operand", func(t *testing.T) {
		schema := newTestSchema()
		res := NaturalJoinReqHandler(schema, reqEncode(map[string]any{"left": "movie", "right": "actor"}))

		assert.Equal(t, res.Status, http.StatusNotFound, res.Message)
	})
}

func TestActionHandler(t *testing.T) {
	schema := newTestSchema()
	reader := &ConnCtx{User: auth.NewUser("guest", "guest", auth.TdbUserRoleReadOnly)}

	res := ActionHandler(schema, RequestActionInsert, reader, []byte(`{"table": "studio", "tuples": []}`))
	assert.Equal(t, res.Status, http.StatusForbidden, res.Message)

	res = ActionHandler(schema, RequestActionNaturalJoin, reader, reqEncode(map[string]any{"left": "movie", "right": "producer"}))
	assert.Equal(t, res.Status, http.StatusOK, res.Message)

	res = ActionHandler(schema, RequestActionDropTable, reader, reqEncode(map[string]any{"table": "movie"}))
	assert.Equal(t, res.Status, http.StatusForbidden, res.Message)

	join := map[string]any{
		"left": "movie", "right": "producer",
		"leftColumns": []string{"producerNo"}, "rightColumns": []string{"producerNo"},
	}
	res = ActionHandler(schema, RequestActionEquiJoin, reader, reqEncode(join))
	assert.Equal(t, res.Status, http.StatusOK, res.Message)

	join["applyRenames"] = true
	res = ActionHandler(schema, RequestActionEquiJoin, reader, reqEncode(join))
	assert.Equal(t, res.Status, http.StatusForbidden, res.Message)
	producer, _ := schema.Table("producer")
	assert.DeepEqual(t, producer.Attributes, []string{"producerNo", "year", "producerName"})

	admin := &ConnCtx{User: auth.NewUser("root", "root", auth.TdbUserRoleAdmin)}
	res = ActionHandler(schema, RequestActionEquiJoin, admin, reqEncode(join))
	assert.Equal(t, res.Status, http.StatusOK, res.Message)
	assert.DeepEqual(t, producer.Attributes, []string{"producerNo2", "year", "producerName"})

	res = ActionHandler(schema, "truncate", reader, nil)
	assert.Equal(t, res.Status, http.StatusBadRequest, res.Message)
}
