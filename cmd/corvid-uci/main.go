package main

import (
	"flag"

	"github.com/tanemura/corvid/internal/uci"
)

var hashMB = flag.Int("hash", 64, "transposition table size in megabytes")

func main() {
	flag.Parse()

	protocol := uci.New(*hashMB)
	protocol.Run()
}
