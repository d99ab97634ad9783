package main

import (
	"flag"
	"os"

	"github.com/tobsdb/tobsrel/internal/auth"
	"github.com/tobsdb/tobsrel/internal/builder"
	"github.com/tobsdb/tobsrel/internal/conn"
	"github.com/tobsdb/tobsrel/pkg"
)

func main() {
	port := flag.Int("port", 7085, "listening port")
	log_level := flag.String("log", os.Getenv("TDB_LOG_LEVEL"), "log level: none, error or debug")
	index_derived := flag.Bool("index-derived", false, "build a primary key index for every operator result")

	flag.Parse()

	level, err := pkg.ParseLogLevel(*log_level)
	if err != nil {
		pkg.FatalLog(err)
	}
	pkg.SetLogLevel(level)

	schema := builder.NewSchema(builder.SchemaOptions{IndexDerived: *index_derived})
	db := conn.NewTobsRel(schema, auth.UsersFromEnv())
	db.Listen(*port)
}
