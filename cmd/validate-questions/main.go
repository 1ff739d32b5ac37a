// Command validate-questions checks a JSON question bank without
// starting the server, so a broken data file is caught before deploy.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quizhall/server/internal/bank"
)

func main() {
	path := flag.String("file", "data/questions.json", "path to the questions JSON file")
	flag.Parse()

	store, err := bank.LoadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: %d questions across %d categories\n", store.Len(), len(store.Categories()))
	for _, cc := range store.CategoryCounts() {
		fmt.Printf("  %-30s %d\n", cc.Name, cc.Count)
	}
}
