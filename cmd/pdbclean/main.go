// 17 Oct 2026

package main

import (
	"os"

	"github.com/andrew-torda/pdbclean/pkg/pdbclean"
)

func main() {
	os.Exit(pdbclean.Main())
}
