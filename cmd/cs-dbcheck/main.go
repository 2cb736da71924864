package main

import (
	"fmt"
	"log"
	"os"

	"crmstock/internal/server"
)

func main() {
	dbPath := os.Getenv("CS_DB_PATH")
	if dbPath == "" {
		dbPath = "./data/crmstock.db"
	}

	db, err := server.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("OpenDB failed: %v", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' ORDER BY name;`)
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}
	defer rows.Close()

	var tables []string
	fmt.Println("Tables:")
	for rows.Next() {
		var name string
		_ = rows.Scan(&name)
		fmt.Println(" -", name)
		tables = append(tables, name)
	}

	for _, t := range tables {
		var n int
		_ = db.QueryRow(`SELECT COUNT(*) FROM "` + t + `";`).Scan(&n)
		fmt.Printf("%s: %d rows\n", t, n)
	}
}
