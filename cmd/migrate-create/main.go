package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func main() {
	dir := flag.String("dir", filepath.Join("db", "migrations"), "directory holding the SQL migrations")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: migrate-create [-dir path] <name>")
	}
	name := flag.Arg(0)
	if !namePattern.MatchString(name) {
		log.Fatalf("migration name %q must be lowercase letters, digits and underscores", name)
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("create %s: %v", *dir, err)
	}

	stamp := time.Now().UTC().Format("20060102150405")
	for _, direction := range []string{"up", "down"} {
		path := filepath.Join(*dir, stamp+"_"+name+"."+direction+".sql")
		if _, err := os.Stat(path); err == nil {
			log.Fatalf("%s already exists", path)
		} else if !os.IsNotExist(err) {
			log.Fatalf("stat %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte("-- "+name+" ("+direction+")\n"), 0o644); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		log.Printf("created %s", path)
	}
}
