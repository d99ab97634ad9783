// Go client for a tobsrel server.
//
// Usage:
//
//	tdb, err := client.NewTdbClient("ws://localhost:7085", client.TdbClientOptions{})
//	res, err := tdb.CreateTable("studio", "name address presNo", "String String Integer", "name")
//	res, err = tdb.Insert("studio", []any{"Fox", "Los_Angeles", 7777})
//	res, err = tdb.NaturalJoin("movie", "studio")
//
// Operator responses carry the derived table, including the name it is
// registered under, so results can be fed to later requests.
package client

import (
	"fmt"
	"net/url"
	"sync"

	ws "github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/tobsdb/tobsrel/pkg"
)

type (
	TdbClientOptions struct {
		Username string
		Password string
	}

	// Tobsrel client
	//
	// Unless you know what you're doing, you probably want to use
	// the `NewTdbClient` function instead.
	TdbClient struct {
		// The websocket connection used by the client
		conn *ws.Conn
		// The formatted connection url of the server
		Url     *url.URL
		options TdbClientOptions

		mu     sync.Mutex
		req_id int
	}
)

func NewTdbClient(urlStr string, options TdbClientOptions) (*TdbClient, error) {
	Url, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}

	if options.Username != "" {
		q := Url.Query()
		q.Add("username", options.Username)
		q.Add("password", options.Password)
		Url.RawQuery = q.Encode()
	}

	return &TdbClient{Url: Url, options: options}, nil
}

func (c *TdbClient) Connect() error {
	if c.conn != nil {
		return nil
	}
	conn, res, err := ws.DefaultDialer.Dial(c.Url.String(), nil)
	if err != nil {
		return err
	}
	if err := res.Header.Get("tdb-error"); err != "" {
		conn.Close()
		return fmt.Errorf("TDB Error: %s", err)
	}

	pkg.InfoLog("Connected to TDB Server")
	c.conn = conn
	return nil
}

func (c *TdbClient) Disconnect() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.WriteMessage(ws.CloseMessage,
		ws.FormatCloseMessage(ws.CloseNormalClosure, "Disconnect"))
	if err != nil {
		pkg.ErrorLog(err)
		return err
	}
	err = c.conn.Close()
	c.conn = nil
	if err != nil {
		pkg.ErrorLog(err)
		return err
	}

	pkg.InfoLog("Disconnected from TDB Server")
	return nil
}

type queryAction string

const (
	queryActionCreateTable queryAction = "createTable"
	queryActionInsert      queryAction = "insert"
	queryActionShow        queryAction = "show"
	queryActionListTables  queryAction = "listTables"
	queryActionDropTable   queryAction = "dropTable"
	queryActionProject     queryAction = "project"
	queryActionSelect      queryAction = "select"
	queryActionUnion       queryAction = "union"
	queryActionMinus       queryAction = "minus"
	queryActionEquiJoin    queryAction = "equiJoin"
	queryActionNaturalJoin queryAction = "naturalJoin"
)

type TdbResponse struct {
	Status    int32  `json:"status"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	RequestId int    `json:"__tdb_client_req_id__"`
}

// Err is non-nil for error statuses.
func (r TdbResponse) Err() error {
	if r.Status >= 400 {
		return errors.Errorf("status %d: %s", r.Status, r.Message)
	}
	return nil
}

// Table returns the registered name of the table in an operator response.
func (r TdbResponse) Table() string {
	data, ok := r.Data.(map[string]any)
	if !ok {
		return ""
	}
	name, _ := data["name"].(string)
	return name
}

// Tuples returns the rows of the table in the response.
func (r TdbResponse) Tuples() [][]any {
	data, ok := r.Data.(map[string]any)
	if !ok {
		return nil
	}
	rows, _ := data["tuples"].([]any)
	tuples := make([][]any, 0, len(rows))
	for _, row := range rows {
		tup, _ := row.([]any)
		tuples = append(tuples, tup)
	}
	return tuples
}

func (c *TdbClient) query(action queryAction, payload map[string]any) (TdbResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.Connect(); err != nil {
		return TdbResponse{}, err
	}

	c.req_id++
	req := map[string]any{"action": action, "__tdb_client_req_id__": c.req_id}
	for k, v := range payload {
		req[k] = v
	}
	if err := c.conn.WriteJSON(req); err != nil {
		return TdbResponse{}, err
	}

	var res TdbResponse
	if err := c.conn.ReadJSON(&res); err != nil {
		return res, err
	}
	if res.RequestId != c.req_id {
		return res, errors.Errorf("response to request %d, expected %d", res.RequestId, c.req_id)
	}
	return res, nil
}

func (c *TdbClient) CreateTable(name, attributes, domains, key string) (TdbResponse, error) {
	return c.query(queryActionCreateTable, map[string]any{
		"name": name, "attributes": attributes, "domains": domains, "key": key,
	})
}

func (c *TdbClient) Insert(table string, tuples ...[]any) (TdbResponse, error) {
	return c.query(queryActionInsert, map[string]any{"table": table, "tuples": tuples})
}

func (c *TdbClient) Show(table string) (TdbResponse, error) {
	return c.query(queryActionShow, map[string]any{"table": table})
}

func (c *TdbClient) ListTables() (TdbResponse, error) {
	return c.query(queryActionListTables, nil)
}

func (c *TdbClient) DropTable(table string) (TdbResponse, error) {
	return c.query(queryActionDropTable, map[string]any{"table": table})
}

func (c *TdbClient) Project(table string, attributes ...string) (TdbResponse, error) {
	return c.query(queryActionProject, map[string]any{"table": table, "attributes": attributes})
}

func (c *TdbClient) Select(table string, key ...any) (TdbResponse, error) {
	return c.query(queryActionSelect, map[string]any{"table": table, "key": key})
}

func (c *TdbClient) Union(left, right string) (TdbResponse, error) {
	return c.query(queryActionUnion, map[string]any{"left": left, "right": right})
}

func (c *TdbClient) Minus(left, right string) (TdbResponse, error) {
	return c.query(queryActionMinus, map[string]any{"left": left, "right": right})
}

func (c *TdbClient) EquiJoin(left string, leftColumns, rightColumns []string, right string, applyRenames bool) (TdbResponse, error) {
	return c.query(queryActionEquiJoin, map[string]any{
		"left": left, "right": right,
		"leftColumns": leftColumns, "rightColumns": rightColumns,
		"applyRenames": applyRenames,
	})
}

func (c *TdbClient) NaturalJoin(left, right string) (TdbResponse, error) {
	return c.query(queryActionNaturalJoin, map[string]any{"left": left, "right": right})
}
