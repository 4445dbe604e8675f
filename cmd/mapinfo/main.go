package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"map220-scene/internal/mapdoc"
)

func main() {
	verbose := flag.Bool("v", false, "List every entity's key/value pairs")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-v] <file.map>\n", os.Args[0])
		os.Exit(2)
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	doc, perr := mapdoc.Parse(string(raw))
	if perr != nil {
		fmt.Fprintf(os.Stderr, "Warning: parse stopped early: %v\n", perr)
		fmt.Fprintln(os.Stderr, "Entities closed before the error are listed below; treat them as best effort.")
	}

	fmt.Printf("Entities: %d, Brushes: %d, Faces: %d\n",
		len(doc.Entities), doc.BrushCount(), doc.FaceCount())

	for i := range doc.Entities {
		ent := &doc.Entities[i]
		fmt.Printf("  [%d] %-24s brushes=%d pairs=%d\n",
			i, ent.Classname, len(ent.Brushes), len(ent.Pairs))
		if *verbose {
			keys := make([]string, 0, len(ent.Pairs))
			for k := range ent.Pairs {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("        %q %q\n", k, ent.Pairs[k])
			}
		}
	}

	if perr != nil {
		os.Exit(1)
	}
}
