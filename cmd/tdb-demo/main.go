// tdb-demo runs every operator on the movie, studio and producer tables
// and prints the operands and results.
//
// With -url it drives a running server over the websocket client instead.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tobsdb/tobsrel/client"
	"github.com/tobsdb/tobsrel/internal/builder"
	"github.com/tobsdb/tobsrel/internal/query"
	"github.com/tobsdb/tobsrel/internal/sample"
	"github.com/tobsdb/tobsrel/pkg"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#B4A7FF"}).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			Padding(0, 1)

	PassStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true)
	FailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
)

type check struct {
	name string
	run  func() bool
}

func report(c check) bool {
	fmt.Println(TitleStyle.Render("test" + c.name))
	if c.run() {
		fmt.Println(PassStyle.Render("true"))
		return true
	}
	fmt.Println(FailStyle.Render(fmt.Sprintf("%s: unexpected result", c.name)))
	return false
}

func newSchema(index_derived bool) *builder.Schema {
	return builder.NewSchema(builder.SchemaOptions{IndexDerived: index_derived})
}

func localChecks(index_derived bool) []check {
	return []check{
		{"EquiJoin", func() bool {
			s := newSchema(index_derived)
			movie, studio := sample.Movie(s), sample.Studio(s)
			res, _, err := query.EquiJoin(movie, []string{"studioName"}, []string{"name"}, studio)
			if err != nil {
				pkg.ErrorLog(err)
				return false
			}
			fmt.Println(movie, studio, res)
			tup := res.Tuples()[0]
			return tup[res.Col("studioName")] == tup[res.Col("name")]
		}},
		{"Project", func() bool {
			movie := sample.Movie(newSchema(index_derived))
			p1, err1 := query.Project(movie, "title", "year")
			p2, err2 := query.Project(movie, "studioName")
			if err1 != nil || err2 != nil {
				return false
			}
			fmt.Println(p1, p2)
			return p1.Len() == movie.Len() && p2.Len() == movie.Len()
		}},
		{"Select", func() bool {
			movie := sample.Movie(newSchema(index_derived))
			res, err := query.Select(movie, builder.KeyValue{"Star_Wars", 1977})
			if err != nil || res.Len() != 1 {
				return false
			}
			fmt.Println(res)
			tup := res.Tuples()[0]
			return tup[res.Col("title")] == "Star_Wars" &&
				tup[res.Col("year")] == 1977 &&
				tup[res.Col("length")] == 124
		}},
		{"Union", func() bool {
			s := newSchema(index_derived)
			movie, movie2 := sample.Movie(s), sample.MovieNamed(s, "movie2")
			res, err := query.Union(movie, movie2)
			if err != nil {
				return false
			}
			fmt.Println(movie, res)
			return res.Len() == movie.Len()
		}},
		{"Minus", func() bool {
			s := newSchema(index_derived)
			movie, movie2 := sample.Movie(s), sample.MovieNamed(s, "movie2")
			res, err := query.Minus(movie, movie2)
			if err != nil {
				return false
			}
			fmt.Println(movie, res)
			return res.Len() == 0
		}},
		{"NaturalJoin", func() bool {
			s := newSchema(index_derived)
			movie, studio, producer := sample.Movie(s), sample.Studio(s), sample.Producer(s)
			j1, err1 := query.NaturalJoin(movie, studio)
			j2, err2 := query.NaturalJoin(movie, producer)
			if err1 != nil || err2 != nil {
				return false
			}
			fmt.Println(movie, studio, producer, j1, j2)
			return j1.Len() == 12 && j2.Len() == 2 && j2.Arity() == 7
		}},
	}
}

// remoteChecks loads the sample tables into the server behind c.
func remoteChecks(c *client.TdbClient) []check {
	s := newSchema(false)
	for _, t := range []*builder.Table{sample.Movie(s), sample.Studio(s), sample.Producer(s)} {
		domains := make([]string, len(t.Domains))
		for i, d := range t.Domains {
			domains[i] = d.String()
		}
		res, err := c.CreateTable(t.Name, strings.Join(t.Attributes, " "), strings.Join(domains, " "), strings.Join(t.Key, " "))
		if err == nil {
			err = res.Err()
		}
		if err != nil {
			pkg.FatalLog("creating", t.Name, err)
		}
		rows := make([][]any, t.Len())
		for i, tup := range t.Tuples() {
			rows[i] = tup
		}
		res, err = c.Insert(t.Name, rows...)
		if err == nil {
			err = res.Err()
		}
		if err != nil {
			pkg.FatalLog("inserting into", t.Name, err)
		}
	}

	ok := func(res client.TdbResponse, err error, rows int) bool {
		if err == nil {
			err = res.Err()
		}
		if err != nil {
			pkg.ErrorLog(err)
			return false
		}
		fmt.Println(res.Message)
		for _, tup := range res.Tuples() {
			fmt.Println(tup...)
		}
		return len(res.Tuples()) == rows
	}

	return []check{
		{"EquiJoin", func() bool {
			res, err := c.EquiJoin("movie", []string{"studioName"}, []string{"name"}, "studio", false)
			return ok(res, err, 4)
		}},
		{"Project", func() bool {
			res, err := c.Project("movie", "title", "year")
			return ok(res, err, 4)
		}},
		{"Select", func() bool {
			res, err := c.Select("movie", "Star_Wars", 1977)
			return ok(res, err, 1)
		}},
		{"Union", func() bool {
			res, err := c.Union("movie", "movie")
			return ok(res, err, 4)
		}},
		{"Minus", func() bool {
			res, err := c.Minus("movie", "movie")
			return ok(res, err, 0)
		}},
		{"NaturalJoin", func() bool {
			res, err := c.NaturalJoin("movie", "producer")
			return ok(res, err, 2)
		}},
	}
}

func main() {
	log_level := flag.String("log", os.Getenv("TDB_LOG_LEVEL"), "log level: none, error or debug")
	index_derived := flag.Bool("index-derived", false, "build a primary key index for every operator result")
	url := flag.String("url", "", "server to run the checks against, e.g. ws://localhost:7085")

	flag.Parse()

	level, err := pkg.ParseLogLevel(*log_level)
	if err != nil {
		pkg.FatalLog(err)
	}
	pkg.SetLogLevel(level)

	checks := localChecks(*index_derived)
	var c *client.TdbClient
	if *url != "" {
		c, err = client.NewTdbClient(*url, client.TdbClientOptions{
			Username: os.Getenv("TDB_USER"),
			Password: os.Getenv("TDB_PASS"),
		})
		if err != nil {
			pkg.FatalLog(err)
		}
		checks = remoteChecks(c)
	}

	failed := 0
	for _, chk := range checks {
		if !report(chk) {
			failed++
		}
	}
	if c != nil {
		c.Disconnect()
	}
	if failed > 0 {
		os.Exit(1)
	}
}
