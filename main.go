package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/worldaudit/blockscan/region"
	"github.com/worldaudit/blockscan/scan"
)

var (
	configPath = flag.String("config", defaultConfigPath, "config file")
	worldName  = flag.String("world", "cyan", "world to scan")
	regionDir  = flag.String("regions", "", "region directory for the selected world (overrides config)")
	dbPath     = flag.String("db", "", "sqlite database to store scan results in")
	listenAddr = flag.String("addr", "127.0.0.1:9099", "listen address for serve")
	blockID    = flag.Int("id", 0, "block id to locate (find)")
)

func usage() {
	fmt.Println("usage: blockscan [flags] scan|find|serve")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *regionDir != "" {
		cfg.Worlds[*worldName] = *regionDir
	}

	switch flag.Arg(0) {
	case "", "scan":
		runScan(cfg)
	case "find":
		runFind(cfg)
	case "serve":
		log.Fatal(serve(cfg, *listenAddr))
	default:
		usage()
		os.Exit(2)
	}
}

func runScan(cfg *Config) {
	report, err := scanWorld(cfg, *worldName)
	if err != nil {
		log.Fatal(err)
	}
	report.Print(os.Stdout)
	if *dbPath != "" {
		if err := saveReport(*dbPath, *worldName, report); err != nil {
			log.Fatal(err)
		}
	}
}

// runFind prints every coordinate of a single block ID, grouped per chunk.
func runFind(cfg *Config) {
	if *blockID == 0 {
		log.Fatal("find requires -id (0 is air)")
	}

	dir, err := cfg.regionDir(*worldName)
	if err != nil {
		log.Fatal(err)
	}
	files, err := region.ListFiles(dir, cfg.Filters)
	if err != nil {
		log.Fatal(err)
	}

	total := 0
	for _, p := range files {
		f, err := region.Open(p)
		if err != nil {
			log.Fatal(err)
		}
		n, err := findBlocks(os.Stdout, f, *blockID)
		if err != nil {
			log.Fatal(err)
		}
		total += n
	}
	fmt.Printf("Total: %d\n", total)
}

// findBlocks lists the matches in one source, decoding each chunk's block
// list only once.
func findBlocks(w io.Writer, src region.ChunkSource, id int) (int, error) {
	chunks, err := src.Chunks()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, c := range chunks {
		coords := scan.FindByID(id, c.Blocks())
		if len(coords) == 0 {
			continue
		}
		fmt.Fprintf(w, "chunk (%d, %d): %d\n", c.X, c.Z, len(coords))
		for _, co := range coords {
			fmt.Fprintf(w, "  x:%d, y:%d, z:%d\n", co.X, co.Y, co.Z)
		}
		total += len(coords)
	}
	return total, nil
}
