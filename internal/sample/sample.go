// Package sample builds the movie, producer and studio tables used by the
// demo driver and by tests.
package sample

import (
	"github.com/tobsdb/tobsrel/internal/builder"
	"github.com/tobsdb/tobsrel/pkg"
)

func mustCreate(s *builder.Schema, name, attributes, domains, key string, tuples ...builder.Tuple) *builder.Table {
	t, err := s.CreateTable(name, attributes, domains, key)
	if err != nil {
		pkg.FatalLog("sample table", name, err)
	}
	if _, err := t.InsertMany(tuples...); err != nil {
		pkg.FatalLog("sample rows", name, err)
	}
	return t
}

func Movie(s *builder.Schema) *builder.Table {
	return MovieNamed(s, "movie")
}

// MovieNamed is Movie registered under another name, for set operators
// that need two tables with the same rows.
func MovieNamed(s *builder.Schema, name string) *builder.Table {
	return mustCreate(s, name, "title year length genre studioName producerNo",
		"String Integer Integer String String Integer", "title year",
		builder.Tuple{"Star_Wars", 1977, 124, "sciFi", "Fox", 12345},
		builder.Tuple{"Star_Wars_2", 1980, 124, "sciFi", "Fox", 12345},
		builder.Tuple{"Rocky", 1985, 200, "action", "Universal", 12125},
		builder.Tuple{"Rambo", 1978, 100, "action", "Universal", 32355},
	)
}

func Producer(s *builder.Schema) *builder.Table {
	return mustCreate(s, "producer", "producerNo year producerName",
		"Integer Integer String", "producerNo",
		builder.Tuple{12345, 1977, "Producer_1"},
		builder.Tuple{12125, 1985, "Producer_2"},
		builder.Tuple{32356, 1978, "Producer_3"},
	)
}

func Studio(s *builder.Schema) *builder.Table {
	return mustCreate(s, "studio", "name address presNo",
		"String String Integer", "name",
		builder.Tuple{"Fox", "Los_Angeles", 7777},
		builder.Tuple{"Universal", "Universal_City", 8888},
		builder.Tuple{"DreamWorks", "Universal_City", 9999},
	)
}
